// services/settlement.go
package services

import (
	"errors"

	"subserp-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionTotal computes the billed amount of a subscription: the sum of
// its line subtotals when lines exist, else the plan price, else 0. The total
// is never stored on the subscription row.
func SubscriptionTotal(sub models.Subscription) float64 {
	if len(sub.Lines) > 0 {
		return LinesSubtotal(sub.Lines)
	}
	if sub.Plan != nil {
		return sub.Plan.Price
	}
	return 0
}

// LinesSubtotal sums quantity x unitPrice across subscription lines
func LinesSubtotal(lines []models.SubscriptionLine) float64 {
	var total float64
	for _, line := range lines {
		total += float64(line.Quantity) * line.UnitPrice
	}
	return total
}

// InvoiceTotals applies active taxes to a subtotal. PERCENTAGE taxes add
// rate% of the subtotal, FIXED taxes add the flat rate.
func InvoiceTotals(subtotal float64, taxes []models.Tax) (taxAmount, total float64) {
	for _, tax := range taxes {
		if !tax.IsActive {
			continue
		}
		switch tax.Type {
		case models.TaxTypePercentage:
			taxAmount += subtotal * tax.Rate / 100
		case models.TaxTypeFixed:
			taxAmount += tax.Rate
		}
	}
	return taxAmount, subtotal + taxAmount
}

// PaymentsSum totals the recorded payment amounts of an invoice
func PaymentsSum(payments []models.Payment) float64 {
	var sum float64
	for _, p := range payments {
		sum += p.Amount
	}
	return sum
}

// DeriveInvoiceStatus maps the paid amount against the invoice total:
// fully covered invoices become PAID, partially covered ones CONFIRMED.
// When the paid sum drops back to zero a PAID or CONFIRMED invoice reverts
// to SENT; never-paid invoices and cancelled ones keep their status.
func DeriveInvoiceStatus(current string, totalAmount, paidAmount float64) string {
	if current == models.InvoiceStatusCancelled {
		return current
	}
	if totalAmount > 0 && paidAmount >= totalAmount {
		return models.InvoiceStatusPaid
	}
	if paidAmount > 0 {
		return models.InvoiceStatusConfirmed
	}
	if current == models.InvoiceStatusPaid || current == models.InvoiceStatusConfirmed {
		return models.InvoiceStatusSent
	}
	return current
}

// ReconcileInvoice re-derives an invoice's status from its payments and
// persists the change. Invoked after every payment mutation.
func ReconcileInvoice(db *gorm.DB, invoiceID uuid.UUID) error {
	var invoice models.Invoice
	if err := db.Preload("Payments").First(&invoice, "id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // invoice already gone, nothing to reconcile
		}
		return err
	}

	status := DeriveInvoiceStatus(invoice.Status, invoice.TotalAmount, PaymentsSum(invoice.Payments))
	if status == invoice.Status {
		return nil
	}

	return db.Model(&invoice).Update("status", status).Error
}
