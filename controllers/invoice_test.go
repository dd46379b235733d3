package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"subserp-backend/config"
	"subserp-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoiceComputesTotals(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)
	customer := seedCustomer(t, config.DB, "inv-totals@example.com")
	product := seedProduct(t, config.DB, "Consulting", 100)
	sub := seedSubscription(t, config.DB, customer, []models.SubscriptionLine{
		{ProductID: product.ID, Quantity: 2, UnitPrice: 100},
	})

	require.NoError(t, config.DB.Create(&models.Tax{
		Name: "VAT", Type: models.TaxTypePercentage, Rate: 10, IsActive: true,
	}).Error)
	require.NoError(t, config.DB.Create(&models.Tax{
		Name: "Stamp", Type: models.TaxTypeFixed, Rate: 3, IsActive: true,
	}).Error)
	// Inactive taxes must not contribute
	require.NoError(t, config.DB.Create(&models.Tax{
		Name: "Old levy", Type: models.TaxTypePercentage, Rate: 50, IsActive: false,
	}).Error)

	before := time.Now()
	w := doRequest(t, r, http.MethodPost, "/api/invoices", gin.H{
		"subscriptionId": sub.ID,
		"invoiceNumber":  "INV-0001",
	}, token)
	assertStatus(t, w, http.StatusCreated)

	var got models.Invoice
	decodeBody(t, w, &got)
	assert.Equal(t, 200.0, got.Subtotal)
	assert.Equal(t, 23.0, got.TaxAmount)
	assert.Equal(t, 223.0, got.TotalAmount)
	assert.Equal(t, models.InvoiceStatusDraft, got.Status)
	// The customer is copied from the subscription
	assert.Equal(t, customer.ID, got.CustomerID)
	assert.WithinDuration(t, before.Add(30*24*time.Hour), got.DueDate, 5*time.Second)
}

func TestCreateInvoiceRequiredFields(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)
	customer := seedCustomer(t, config.DB, "inv-required@example.com")
	sub := seedSubscription(t, config.DB, customer, nil)

	w := doRequest(t, r, http.MethodPost, "/api/invoices", gin.H{
		"invoiceNumber": "INV-0002",
	}, token)
	assertStatus(t, w, http.StatusBadRequest)

	w = doRequest(t, r, http.MethodPost, "/api/invoices", gin.H{
		"subscriptionId": sub.ID,
	}, token)
	assertStatus(t, w, http.StatusBadRequest)
}

func TestCreateInvoiceUnknownSubscription(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/invoices", gin.H{
		"subscriptionId": "3f1f9a52-74d1-4f3e-b1c6-000000000000",
		"invoiceNumber":  "INV-0003",
	}, adminToken(t))
	assertStatus(t, w, http.StatusNotFound)
}

func TestGetInvoiceByID(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)
	customer := seedCustomer(t, config.DB, "inv-get@example.com")
	sub := seedSubscription(t, config.DB, customer, nil)

	invoice := models.Invoice{
		InvoiceNumber:  "INV-GET",
		SubscriptionID: sub.ID,
		CustomerID:     customer.ID,
		Status:         models.InvoiceStatusSent,
		Subtotal:       50,
		TotalAmount:    50,
	}
	require.NoError(t, config.DB.Create(&invoice).Error)

	w := doRequest(t, r, http.MethodGet, "/api/invoices?id="+invoice.ID.String(), nil, token)
	assertStatus(t, w, http.StatusOK)

	var got models.Invoice
	decodeBody(t, w, &got)
	assert.Equal(t, "INV-GET", got.InvoiceNumber)
	assert.Equal(t, "John", got.Customer.User.FirstName)

	w = doRequest(t, r, http.MethodGet, "/api/invoices?id=3f1f9a52-74d1-4f3e-b1c6-000000000000", nil, token)
	assertStatus(t, w, http.StatusNotFound)
}

func TestUpdateInvoiceOverwritesFields(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)
	customer := seedCustomer(t, config.DB, "inv-update@example.com")
	sub := seedSubscription(t, config.DB, customer, nil)

	invoice := models.Invoice{
		InvoiceNumber:  "INV-UPD",
		SubscriptionID: sub.ID,
		CustomerID:     customer.ID,
		Status:         models.InvoiceStatusDraft,
		Subtotal:       50,
		TotalAmount:    50,
	}
	require.NoError(t, config.DB.Create(&invoice).Error)

	// Amounts as numeric strings, same as the create path
	w := doRequest(t, r, http.MethodPut, "/api/invoices", gin.H{
		"id":          invoice.ID,
		"status":      models.InvoiceStatusSent,
		"subtotal":    "80",
		"taxAmount":   8,
		"totalAmount": "88",
	}, token)
	assertStatus(t, w, http.StatusOK)

	var got models.Invoice
	require.NoError(t, config.DB.First(&got, "id = ?", invoice.ID).Error)
	assert.Equal(t, models.InvoiceStatusSent, got.Status)
	assert.Equal(t, 80.0, got.Subtotal)
	assert.Equal(t, 8.0, got.TaxAmount)
	assert.Equal(t, 88.0, got.TotalAmount)
}

func TestDeleteInvoice(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)
	customer := seedCustomer(t, config.DB, "inv-delete@example.com")
	sub := seedSubscription(t, config.DB, customer, nil)

	invoice := models.Invoice{
		InvoiceNumber:  "INV-DEL",
		SubscriptionID: sub.ID,
		CustomerID:     customer.ID,
		Status:         models.InvoiceStatusDraft,
	}
	require.NoError(t, config.DB.Create(&invoice).Error)

	w := doRequest(t, r, http.MethodDelete, "/api/invoices?id="+invoice.ID.String(), nil, token)
	assertStatus(t, w, http.StatusOK)

	w = doRequest(t, r, http.MethodDelete, "/api/invoices?id="+invoice.ID.String(), nil, token)
	assertStatus(t, w, http.StatusNotFound)
}
