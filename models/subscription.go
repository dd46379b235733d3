package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionStatusDraft     = "DRAFT"
	SubscriptionStatusQuotation = "QUOTATION"
	SubscriptionStatusActive    = "ACTIVE"
	SubscriptionStatusPaused    = "PAUSED"
	SubscriptionStatusCancelled = "CANCELLED"
	SubscriptionStatusClosed    = "CLOSED"
)

type Subscription struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SubscriptionNumber string     `gorm:"uniqueIndex;not null" json:"subscriptionNumber"`
	CustomerID         uuid.UUID  `gorm:"type:uuid;index;not null" json:"customerId"`
	PlanID             *uuid.UUID `gorm:"type:uuid;index" json:"planId"`

	StartDate      time.Time `json:"startDate"`
	ExpirationDate time.Time `json:"expirationDate"`
	Status         string    `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`

	Customer Customer           `gorm:"foreignKey:CustomerID" json:"customer"`
	Plan     *RecurringPlan     `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	Lines    []SubscriptionLine `gorm:"foreignKey:SubscriptionID" json:"lines"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SubscriptionLine is a priced product entry within a subscription. Lines are
// replaced wholesale when a subscription form is resubmitted.
type SubscriptionLine struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SubscriptionID uuid.UUID `gorm:"type:uuid;index;not null" json:"subscriptionId"`
	ProductID      uuid.UUID `gorm:"type:uuid;index;not null" json:"productId"`
	Quantity       int       `gorm:"default:1" json:"quantity"`
	UnitPrice      float64   `gorm:"type:decimal(10,2);not null" json:"unitPrice"`

	Product Product `gorm:"foreignKey:ProductID" json:"product"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

func (l *SubscriptionLine) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
