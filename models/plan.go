package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BillingPeriodDaily   = "DAILY"
	BillingPeriodWeekly  = "WEEKLY"
	BillingPeriodMonthly = "MONTHLY"
	BillingPeriodYearly  = "YEARLY"
)

type RecurringPlan struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	BillingPeriod string    `gorm:"type:varchar(20);not null" json:"billingPeriod"`
	Price         float64   `gorm:"type:decimal(10,2);not null" json:"price"`

	AutoClose bool `gorm:"default:false" json:"autoClose"`
	Closable  bool `gorm:"default:true" json:"closable"`
	Pausable  bool `gorm:"default:true" json:"pausable"`
	Renewable bool `gorm:"default:true" json:"renewable"`
	IsActive  bool `gorm:"default:true" json:"isActive"`

	Subscriptions []Subscription `gorm:"foreignKey:PlanID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *RecurringPlan) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
