// controllers/invoice.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"subserp-backend/config"
	"subserp-backend/models"
	"subserp-backend/services"
	"subserp-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateInvoiceInput defines the expected JSON structure for creating an
// invoice. Totals are computed server-side from the subscription and active
// taxes; any caller-supplied figures are ignored.
type CreateInvoiceInput struct {
	SubscriptionID *uuid.UUID `json:"subscriptionId"`
	InvoiceNumber  string     `json:"invoiceNumber"`
	InvoiceDate    *time.Time `json:"invoiceDate"`
	DueDate        *time.Time `json:"dueDate"`
	Status         string     `json:"status"`
}

// UpdateInvoiceInput defines the expected JSON structure for updating an invoice
type UpdateInvoiceInput struct {
	ID          uuid.UUID   `json:"id" binding:"required"`
	Status      *string     `json:"status"`
	Subtotal    interface{} `json:"subtotal"`
	TaxAmount   interface{} `json:"taxAmount"`
	TotalAmount interface{} `json:"totalAmount"`
	DueDate     *time.Time  `json:"dueDate"`
}

// CreateInvoice creates an invoice for a subscription. The customer is copied
// from the subscription and totals are derived from its lines (or plan price)
// plus the active taxes.
func CreateInvoice(c *gin.Context) {
	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.SubscriptionID == nil || input.InvoiceNumber == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Subscription and invoice number are required")
		return
	}

	var subscription models.Subscription
	if err := config.DB.Preload("Lines").Preload("Plan").
		First(&subscription, "id = ?", *input.SubscriptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Subscription not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var taxes []models.Tax
	if err := config.DB.Where("is_active = ?", true).Find(&taxes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load tax rules")
		return
	}

	subtotal := services.SubscriptionTotal(subscription)
	taxAmount, totalAmount := services.InvoiceTotals(subtotal, taxes)

	invoiceDate := time.Now()
	if input.InvoiceDate != nil {
		invoiceDate = *input.InvoiceDate
	}
	dueDate := time.Now().Add(30 * 24 * time.Hour)
	if input.DueDate != nil {
		dueDate = *input.DueDate
	}
	status := input.Status
	if status == "" {
		status = models.InvoiceStatusDraft
	}

	invoice := models.Invoice{
		SubscriptionID: subscription.ID,
		CustomerID:     subscription.CustomerID,
		InvoiceNumber:  input.InvoiceNumber,
		InvoiceDate:    invoiceDate,
		DueDate:        dueDate,
		Status:         status,
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		TotalAmount:    totalAmount,
	}

	if err := config.DB.Create(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	if err := config.DB.Preload("Subscription.Customer.User").
		First(&invoice, "id = ?", invoice.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load invoice")
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices returns a single invoice by id or the full list
func GetInvoices(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		var invoice models.Invoice
		err := config.DB.
			Preload("Subscription.Customer.User").
			Preload("Subscription.Lines.Product").
			Preload("Customer.User").
			Preload("Payments").
			First(&invoice, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		c.JSON(http.StatusOK, invoice)
		return
	}

	var invoices []models.Invoice
	err := config.DB.
		Preload("Subscription.Customer.User").
		Preload("Customer.User").
		Preload("Payments").
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// UpdateInvoice overwrites status, totals, or due date with the supplied values
func UpdateInvoice(c *gin.Context) {
	var input UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invoice ID is required")
		return
	}

	var invoice models.Invoice
	if err := config.DB.First(&invoice, "id = ?", input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Status != nil {
		invoice.Status = *input.Status
	}
	if input.Subtotal != nil {
		subtotal, err := utils.ParseAmount(input.Subtotal)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid subtotal")
			return
		}
		invoice.Subtotal = subtotal
	}
	if input.TaxAmount != nil {
		taxAmount, err := utils.ParseAmount(input.TaxAmount)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid tax amount")
			return
		}
		invoice.TaxAmount = taxAmount
	}
	if input.TotalAmount != nil {
		totalAmount, err := utils.ParseAmount(input.TotalAmount)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid total amount")
			return
		}
		invoice.TotalAmount = totalAmount
	}
	if input.DueDate != nil {
		invoice.DueDate = *input.DueDate
	}

	if err := config.DB.Save(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	if err := config.DB.Preload("Subscription.Customer.User").
		First(&invoice, "id = ?", invoice.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice removes an invoice. Payments referencing it are not checked.
func DeleteInvoice(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invoice ID is required")
		return
	}

	result := config.DB.Delete(&models.Invoice{}, "id = ?", id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
