// services/billing_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"subserp-backend/models"
	"subserp-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type BillingService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewBillingService(db *gorm.DB) *BillingService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &BillingService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *BillingService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.ProcessOverdueInvoices()
	})

	c.Start()
	log.Println("Billing scheduler started")
}

// ProcessOverdueInvoices flags unpaid invoices past their due date and sends
// a payment reminder for each one flagged.
func (s *BillingService) ProcessOverdueInvoices() {
	log.Println("Starting overdue invoice processing...")

	cutoff := utils.BeginningOfDay(time.Now())

	var invoices []models.Invoice
	err := s.db.Preload("Customer").Preload("Customer.User").
		Where("status IN ? AND due_date < ?",
			[]string{models.InvoiceStatusSent, models.InvoiceStatusConfirmed}, cutoff).
		Find(&invoices).Error
	if err != nil {
		log.Printf("Failed to fetch overdue invoices: %v", err)
		return
	}

	for _, invoice := range invoices {
		if err := s.db.Model(&models.Invoice{}).Where("id = ?", invoice.ID).
			Update("status", models.InvoiceStatusOverdue).Error; err != nil {
			log.Printf("Invoice %s: failed to mark overdue: %v", invoice.InvoiceNumber, err)
			continue
		}

		s.sendPaymentReminder(invoice)
	}

	log.Printf("Overdue invoice processing completed, %d invoices flagged", len(invoices))
}

func (s *BillingService) sendPaymentReminder(invoice models.Invoice) {
	phone := invoice.Customer.Phone
	if phone == "" {
		log.Printf("Invoice %s: customer has no phone, skipping reminder", invoice.InvoiceNumber)
		s.logReminder(invoice, "", "", models.ReminderStatusSkipped, "customer has no phone")
		return
	}

	message := fmt.Sprintf("Hi %s, invoice %s for %.2f is overdue since %s. Please settle it at your earliest convenience.",
		invoice.Customer.User.FirstName,
		invoice.InvoiceNumber,
		invoice.TotalAmount,
		invoice.DueDate.Format("2006-01-02"))

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Invoice %s: failed to send reminder to %s: %v", invoice.InvoiceNumber, phone, err)
		s.logReminder(invoice, phone, message, models.ReminderStatusFailed, err.Error())
		return
	}

	detail := ""
	if resp.Sid != nil {
		detail = "SID: " + *resp.Sid
		log.Printf("Invoice %s: reminder sent to %s, %s", invoice.InvoiceNumber, phone, detail)
	} else {
		log.Printf("Invoice %s: reminder sent to %s", invoice.InvoiceNumber, phone)
	}
	s.logReminder(invoice, phone, message, models.ReminderStatusSent, detail)
}

func (s *BillingService) logReminder(invoice models.Invoice, phone, message, status, detail string) {
	entry := models.ReminderLog{
		InvoiceID: invoice.ID,
		Phone:     phone,
		Message:   message,
		Status:    status,
		Detail:    detail,
		SentAt:    time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Invoice %s: failed to log reminder: %v", invoice.InvoiceNumber, err)
	}
}
