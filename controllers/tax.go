package controllers

import (
	"errors"
	"net/http"

	"subserp-backend/config"
	"subserp-backend/models"
	"subserp-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateTaxInput struct {
	Name string      `json:"name" binding:"required"`
	Type string      `json:"type" binding:"required,oneof=PERCENTAGE FIXED"`
	Rate interface{} `json:"rate"`
}

type UpdateTaxInput struct {
	ID       uuid.UUID   `json:"id" binding:"required"`
	Name     *string     `json:"name"`
	Type     *string     `json:"type" binding:"omitempty,oneof=PERCENTAGE FIXED"`
	Rate     interface{} `json:"rate"`
	IsActive *bool       `json:"isActive"`
}

// CreateTax creates a new tax rule
func CreateTax(c *gin.Context) {
	var input CreateTaxInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Name, type, and rate are required")
		return
	}

	rate, err := utils.ParseAmount(input.Rate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Name, type, and rate are required")
		return
	}

	tax := models.Tax{
		Name:     input.Name,
		Type:     input.Type,
		Rate:     rate,
		IsActive: true,
	}

	if err := config.DB.Create(&tax).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create tax")
		return
	}

	c.JSON(http.StatusCreated, tax)
}

// GetTaxes lists all tax rules, newest first
func GetTaxes(c *gin.Context) {
	query := config.DB.Order("created_at DESC")
	if id := c.Query("id"); id != "" {
		query = query.Where("id = ?", id)
	}

	var taxes []models.Tax
	if err := query.Find(&taxes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve taxes")
		return
	}

	c.JSON(http.StatusOK, taxes)
}

// UpdateTax updates an existing tax rule
func UpdateTax(c *gin.Context) {
	var input UpdateTaxInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Tax ID is required")
		return
	}

	var tax models.Tax
	if err := config.DB.First(&tax, "id = ?", input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Tax not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		tax.Name = *input.Name
	}
	if input.Type != nil {
		tax.Type = *input.Type
	}
	if input.Rate != nil {
		rate, err := utils.ParseAmount(input.Rate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid rate")
			return
		}
		tax.Rate = rate
	}
	if input.IsActive != nil {
		tax.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&tax).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update tax")
		return
	}

	c.JSON(http.StatusOK, tax)
}

// DeleteTax removes a tax rule
func DeleteTax(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Tax ID is required")
		return
	}

	result := config.DB.Delete(&models.Tax{}, "id = ?", id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete tax")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Tax not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
