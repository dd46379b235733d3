package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProductTypeService    = "SERVICE"
	ProductTypeConsumable = "CONSUMABLE"
	ProductTypeStorable   = "STORABLE"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Type        string    `gorm:"type:varchar(20);not null;default:'SERVICE'" json:"type"`
	Description string    `json:"description"`
	SalesPrice  float64   `gorm:"type:decimal(10,2);not null" json:"salesPrice"`
	CostPrice   float64   `gorm:"type:decimal(10,2);not null" json:"costPrice"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`

	SubscriptionLines []SubscriptionLine `gorm:"foreignKey:ProductID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
