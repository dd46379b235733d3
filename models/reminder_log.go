package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReminderStatusSent    = "SENT"
	ReminderStatusFailed  = "FAILED"
	ReminderStatusSkipped = "SKIPPED"
)

// ReminderLog records one payment reminder attempt per overdue invoice.
type ReminderLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"invoiceId"`

	Phone   string    `json:"phone"`
	Message string    `gorm:"type:text" json:"message"`
	Status  string    `gorm:"type:varchar(20);not null" json:"status"`
	Detail  string    `gorm:"type:text" json:"detail"`
	SentAt  time.Time `json:"sentAt"`

	CreatedAt time.Time `json:"createdAt"`
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
