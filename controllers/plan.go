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

// CreatePlanInput defines the expected JSON structure for creating a recurring plan
type CreatePlanInput struct {
	Name          string      `json:"name" binding:"required"`
	BillingPeriod string      `json:"billingPeriod" binding:"required,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	Price         interface{} `json:"price"`
	AutoClose     *bool       `json:"autoClose"`
	Closable      *bool       `json:"closable"`
	Pausable      *bool       `json:"pausable"`
	Renewable     *bool       `json:"renewable"`
}

// UpdatePlanInput defines the expected JSON structure for updating a recurring plan
type UpdatePlanInput struct {
	ID            uuid.UUID   `json:"id" binding:"required"`
	Name          *string     `json:"name"`
	BillingPeriod *string     `json:"billingPeriod" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	Price         interface{} `json:"price"`
	AutoClose     *bool       `json:"autoClose"`
	Closable      *bool       `json:"closable"`
	Pausable      *bool       `json:"pausable"`
	Renewable     *bool       `json:"renewable"`
	IsActive      *bool       `json:"isActive"`
}

// CreatePlan creates a new recurring plan
func CreatePlan(c *gin.Context) {
	var input CreatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Name, billing period, and price are required")
		return
	}

	price, err := utils.ParseAmount(input.Price)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Name, billing period, and price are required")
		return
	}

	plan := models.RecurringPlan{
		Name:          input.Name,
		BillingPeriod: input.BillingPeriod,
		Price:         price,
		Closable:      true,
		Pausable:      true,
		Renewable:     true,
		IsActive:      true,
	}
	if input.AutoClose != nil {
		plan.AutoClose = *input.AutoClose
	}
	if input.Closable != nil {
		plan.Closable = *input.Closable
	}
	if input.Pausable != nil {
		plan.Pausable = *input.Pausable
	}
	if input.Renewable != nil {
		plan.Renewable = *input.Renewable
	}

	if err := config.DB.Create(&plan).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create plan")
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// GetPlans lists all recurring plans, newest first
func GetPlans(c *gin.Context) {
	query := config.DB.Order("created_at DESC")
	if id := c.Query("id"); id != "" {
		query = query.Where("id = ?", id)
	}

	var plans []models.RecurringPlan
	if err := query.Find(&plans).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve plans")
		return
	}

	c.JSON(http.StatusOK, plans)
}

// UpdatePlan updates an existing recurring plan
func UpdatePlan(c *gin.Context) {
	var input UpdatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Plan ID is required")
		return
	}

	var plan models.RecurringPlan
	if err := config.DB.First(&plan, "id = ?", input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Plan not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		plan.Name = *input.Name
	}
	if input.BillingPeriod != nil {
		plan.BillingPeriod = *input.BillingPeriod
	}
	if input.Price != nil {
		price, err := utils.ParseAmount(input.Price)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid price")
			return
		}
		plan.Price = price
	}
	if input.AutoClose != nil {
		plan.AutoClose = *input.AutoClose
	}
	if input.Closable != nil {
		plan.Closable = *input.Closable
	}
	if input.Pausable != nil {
		plan.Pausable = *input.Pausable
	}
	if input.Renewable != nil {
		plan.Renewable = *input.Renewable
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&plan).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeletePlan removes a recurring plan
func DeletePlan(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Plan ID is required")
		return
	}

	result := config.DB.Delete(&models.RecurringPlan{}, "id = ?", id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete plan")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Plan not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
