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

// CreatePaymentInput defines the expected JSON structure for recording a
// payment. Amount arrives as a number or numeric string.
type CreatePaymentInput struct {
	InvoiceID     *uuid.UUID  `json:"invoiceId"`
	Amount        interface{} `json:"amount"`
	PaymentMethod string      `json:"paymentMethod"`
	PaymentDate   *time.Time  `json:"paymentDate"`
	Reference     string      `json:"reference"`
}

// UpdatePaymentInput defines the expected JSON structure for updating a payment
type UpdatePaymentInput struct {
	ID            uuid.UUID   `json:"id" binding:"required"`
	Amount        interface{} `json:"amount"`
	PaymentMethod *string     `json:"paymentMethod"`
	Reference     *string     `json:"reference"`
}

// CreatePayment records a payment against an invoice and re-derives the
// invoice status from the payment sum.
func CreatePayment(c *gin.Context) {
	var input CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.InvoiceID == nil || input.Amount == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invoice and amount are required")
		return
	}

	amount, err := utils.ParseAmount(input.Amount)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid amount")
		return
	}

	var invoice models.Invoice
	if err := config.DB.First(&invoice, "id = ?", *input.InvoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCreditCard
	}
	paymentDate := time.Now()
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}

	payment := models.Payment{
		InvoiceID:     invoice.ID,
		Amount:        amount,
		PaymentMethod: paymentMethod,
		PaymentDate:   paymentDate,
		Reference:     input.Reference,
	}

	if err := config.DB.Create(&payment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create payment")
		return
	}

	if err := services.ReconcileInvoice(config.DB, invoice.ID); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reconcile invoice")
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPayments lists all payments with their invoice chain, newest first
func GetPayments(c *gin.Context) {
	query := config.DB.Preload("Invoice.Subscription.Customer.User").
		Order("payment_date DESC")
	if id := c.Query("id"); id != "" {
		query = query.Where("id = ?", id)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, payments)
}

// UpdatePayment overwrites amount, method, or reference, then reconciles the
// owning invoice
func UpdatePayment(c *gin.Context) {
	var input UpdatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Payment ID is required")
		return
	}

	var payment models.Payment
	if err := config.DB.First(&payment, "id = ?", input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Amount != nil {
		amount, err := utils.ParseAmount(input.Amount)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid amount")
			return
		}
		payment.Amount = amount
	}
	if input.PaymentMethod != nil {
		payment.PaymentMethod = *input.PaymentMethod
	}
	if input.Reference != nil {
		payment.Reference = *input.Reference
	}

	if err := config.DB.Save(&payment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update payment")
		return
	}

	if err := services.ReconcileInvoice(config.DB, payment.InvoiceID); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reconcile invoice")
		return
	}

	c.JSON(http.StatusOK, payment)
}

// DeletePayment removes a payment and reconciles the owning invoice
func DeletePayment(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Payment ID is required")
		return
	}

	var payment models.Payment
	if err := config.DB.First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&payment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete payment")
		return
	}

	if err := services.ReconcileInvoice(config.DB, payment.InvoiceID); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reconcile invoice")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
