package services

import (
	"fmt"
	"testing"

	"subserp-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSubscriptionTotal(t *testing.T) {
	plan := &models.RecurringPlan{Price: 99.99}

	t.Run("lines win over plan price", func(t *testing.T) {
		sub := models.Subscription{
			Plan: plan,
			Lines: []models.SubscriptionLine{
				{Quantity: 2, UnitPrice: 10},
				{Quantity: 1, UnitPrice: 5},
			},
		}
		assert.Equal(t, 25.0, SubscriptionTotal(sub))
	})

	t.Run("falls back to plan price without lines", func(t *testing.T) {
		sub := models.Subscription{Plan: plan}
		assert.Equal(t, 99.99, SubscriptionTotal(sub))
	})

	t.Run("zero without lines or plan", func(t *testing.T) {
		assert.Equal(t, 0.0, SubscriptionTotal(models.Subscription{}))
	})
}

func TestInvoiceTotals(t *testing.T) {
	t.Run("percentage tax", func(t *testing.T) {
		taxAmount, total := InvoiceTotals(200, []models.Tax{
			{Type: models.TaxTypePercentage, Rate: 10, IsActive: true},
		})
		assert.Equal(t, 20.0, taxAmount)
		assert.Equal(t, 220.0, total)
	})

	t.Run("fixed tax", func(t *testing.T) {
		taxAmount, total := InvoiceTotals(200, []models.Tax{
			{Type: models.TaxTypeFixed, Rate: 5, IsActive: true},
		})
		assert.Equal(t, 5.0, taxAmount)
		assert.Equal(t, 205.0, total)
	})

	t.Run("mixed taxes accumulate", func(t *testing.T) {
		taxAmount, total := InvoiceTotals(100, []models.Tax{
			{Type: models.TaxTypePercentage, Rate: 10, IsActive: true},
			{Type: models.TaxTypeFixed, Rate: 2.5, IsActive: true},
		})
		assert.Equal(t, 12.5, taxAmount)
		assert.Equal(t, 112.5, total)
	})

	t.Run("inactive taxes are skipped", func(t *testing.T) {
		taxAmount, total := InvoiceTotals(100, []models.Tax{
			{Type: models.TaxTypePercentage, Rate: 50, IsActive: false},
		})
		assert.Equal(t, 0.0, taxAmount)
		assert.Equal(t, 100.0, total)
	})

	t.Run("no taxes", func(t *testing.T) {
		taxAmount, total := InvoiceTotals(100, nil)
		assert.Equal(t, 0.0, taxAmount)
		assert.Equal(t, 100.0, total)
	})
}

func TestDeriveInvoiceStatus(t *testing.T) {
	tests := []struct {
		name    string
		current string
		total   float64
		paid    float64
		want    string
	}{
		{"full payment marks paid", models.InvoiceStatusDraft, 100, 100, models.InvoiceStatusPaid},
		{"overpayment marks paid", models.InvoiceStatusSent, 100, 150, models.InvoiceStatusPaid},
		{"partial payment marks confirmed", models.InvoiceStatusDraft, 100, 40, models.InvoiceStatusConfirmed},
		{"never paid keeps status", models.InvoiceStatusSent, 100, 0, models.InvoiceStatusSent},
		{"paid reverts to sent when payments vanish", models.InvoiceStatusPaid, 100, 0, models.InvoiceStatusSent},
		{"confirmed reverts to sent when payments vanish", models.InvoiceStatusConfirmed, 100, 0, models.InvoiceStatusSent},
		{"cancelled is never revived", models.InvoiceStatusCancelled, 100, 100, models.InvoiceStatusCancelled},
		{"zero total is never paid", models.InvoiceStatusDraft, 0, 0, models.InvoiceStatusDraft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveInvoiceStatus(tt.current, tt.total, tt.paid))
		})
	}
}

func TestPaymentsSum(t *testing.T) {
	assert.Equal(t, 0.0, PaymentsSum(nil))
	assert.Equal(t, 75.0, PaymentsSum([]models.Payment{
		{Amount: 50},
		{Amount: 25},
	}))
}

func TestReconcileInvoice(t *testing.T) {
	db := openSettlementDB(t)

	customer := seedReconcileCustomer(t, db, "reconcile@erp.com")
	sub := models.Subscription{
		SubscriptionNumber: "SUB-RECONCILE",
		CustomerID:         customer.ID,
		Status:             models.SubscriptionStatusActive,
	}
	require.NoError(t, db.Create(&sub).Error)

	invoice := models.Invoice{
		InvoiceNumber:  "INV-RECONCILE",
		SubscriptionID: sub.ID,
		CustomerID:     customer.ID,
		Status:         models.InvoiceStatusDraft,
		Subtotal:       100,
		TotalAmount:    100,
	}
	require.NoError(t, db.Create(&invoice).Error)

	t.Run("partial payment confirms", func(t *testing.T) {
		require.NoError(t, db.Create(&models.Payment{
			InvoiceID:     invoice.ID,
			Amount:        40,
			PaymentMethod: models.PaymentMethodCreditCard,
		}).Error)
		require.NoError(t, ReconcileInvoice(db, invoice.ID))

		var got models.Invoice
		require.NoError(t, db.First(&got, "id = ?", invoice.ID).Error)
		assert.Equal(t, models.InvoiceStatusConfirmed, got.Status)
	})

	t.Run("covering payment marks paid", func(t *testing.T) {
		require.NoError(t, db.Create(&models.Payment{
			InvoiceID:     invoice.ID,
			Amount:        60,
			PaymentMethod: models.PaymentMethodBankTransfer,
		}).Error)
		require.NoError(t, ReconcileInvoice(db, invoice.ID))

		var got models.Invoice
		require.NoError(t, db.First(&got, "id = ?", invoice.ID).Error)
		assert.Equal(t, models.InvoiceStatusPaid, got.Status)
	})

	t.Run("missing invoice is a no-op", func(t *testing.T) {
		assert.NoError(t, ReconcileInvoice(db, uuid.New()))
	})
}

func openSettlementDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Subscription{},
		&models.SubscriptionLine{},
		&models.Invoice{},
		&models.Payment{},
		&models.ReminderLog{},
	))
	return db
}

func seedReconcileCustomer(t *testing.T, db *gorm.DB, email string) models.Customer {
	t.Helper()
	customer := models.Customer{
		CompanyName: "Reconcile Ltd",
		User: models.User{
			Email:     email,
			FirstName: "Rita",
			LastName:  "Ledger",
			Password:  "Customer@123",
			Role:      models.RoleCustomer,
			IsActive:  true,
		},
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}
