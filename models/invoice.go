package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InvoiceStatusDraft     = "DRAFT"
	InvoiceStatusSent      = "SENT"
	InvoiceStatusConfirmed = "CONFIRMED"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusOverdue   = "OVERDUE"
	InvoiceStatusCancelled = "CANCELLED"
)

type Invoice struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNumber  string    `gorm:"uniqueIndex;not null" json:"invoiceNumber"`
	SubscriptionID uuid.UUID `gorm:"type:uuid;index;not null" json:"subscriptionId"`
	// CustomerID is denormalized from the subscription at creation time.
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	InvoiceDate time.Time `json:"invoiceDate"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`

	Subtotal    float64 `gorm:"type:decimal(10,2);default:0.0" json:"subtotal"`
	TaxAmount   float64 `gorm:"type:decimal(10,2);default:0.0" json:"taxAmount"`
	TotalAmount float64 `gorm:"type:decimal(10,2);default:0.0" json:"totalAmount"`

	Subscription Subscription `gorm:"foreignKey:SubscriptionID" json:"subscription"`
	Customer     Customer     `gorm:"foreignKey:CustomerID" json:"customer"`
	Payments     []Payment    `gorm:"foreignKey:InvoiceID" json:"payments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
