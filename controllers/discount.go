package controllers

import (
	"errors"
	"net/http"
	"time"

	"subserp-backend/config"
	"subserp-backend/models"
	"subserp-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateDiscountInput struct {
	Name      string      `json:"name" binding:"required"`
	Code      string      `json:"code" binding:"required"`
	Type      string      `json:"type" binding:"required,oneof=PERCENTAGE FIXED"`
	Value     interface{} `json:"value"`
	StartDate *time.Time  `json:"startDate"`
	EndDate   *time.Time  `json:"endDate"`
	IsActive  *bool       `json:"isActive"`
}

type UpdateDiscountInput struct {
	ID        uuid.UUID   `json:"id" binding:"required"`
	Name      *string     `json:"name"`
	Code      *string     `json:"code"`
	Type      *string     `json:"type" binding:"omitempty,oneof=PERCENTAGE FIXED"`
	Value     interface{} `json:"value"`
	StartDate *time.Time  `json:"startDate"`
	EndDate   *time.Time  `json:"endDate"`
	IsActive  *bool       `json:"isActive"`
}

// CreateDiscount creates a new discount code
func CreateDiscount(c *gin.Context) {
	var input CreateDiscountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Name, code, type, and value are required")
		return
	}

	value, err := utils.ParseAmount(input.Value)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Name, code, type, and value are required")
		return
	}

	discount := models.Discount{
		Name:      input.Name,
		Code:      input.Code,
		Type:      input.Type,
		Value:     value,
		StartDate: time.Now(),
		EndDate:   input.EndDate,
		IsActive:  true,
	}
	if input.StartDate != nil {
		discount.StartDate = *input.StartDate
	}
	if input.IsActive != nil {
		discount.IsActive = *input.IsActive
	}

	if err := config.DB.Create(&discount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create discount")
		return
	}

	c.JSON(http.StatusCreated, discount)
}

// GetDiscounts lists all discounts, newest first
func GetDiscounts(c *gin.Context) {
	query := config.DB.Order("created_at DESC")
	if id := c.Query("id"); id != "" {
		query = query.Where("id = ?", id)
	}

	var discounts []models.Discount
	if err := query.Find(&discounts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve discounts")
		return
	}

	c.JSON(http.StatusOK, discounts)
}

// UpdateDiscount updates an existing discount
func UpdateDiscount(c *gin.Context) {
	var input UpdateDiscountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Discount ID is required")
		return
	}

	var discount models.Discount
	if err := config.DB.First(&discount, "id = ?", input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Discount not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		discount.Name = *input.Name
	}
	if input.Code != nil {
		discount.Code = *input.Code
	}
	if input.Type != nil {
		discount.Type = *input.Type
	}
	if input.Value != nil {
		value, err := utils.ParseAmount(input.Value)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid value")
			return
		}
		discount.Value = value
	}
	if input.StartDate != nil {
		discount.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		discount.EndDate = input.EndDate
	}
	if input.IsActive != nil {
		discount.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&discount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update discount")
		return
	}

	c.JSON(http.StatusOK, discount)
}

// DeleteDiscount removes a discount
func DeleteDiscount(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Discount ID is required")
		return
	}

	result := config.DB.Delete(&models.Discount{}, "id = ?", id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete discount")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Discount not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
