package controllers

import (
	"errors"
	"fmt"
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

// SubscriptionLineInput defines a nested line item. Quantity and unit price
// arrive as numbers or numeric strings.
type SubscriptionLineInput struct {
	ProductID uuid.UUID   `json:"productId" binding:"required"`
	Quantity  interface{} `json:"quantity"`
	UnitPrice interface{} `json:"unitPrice"`
}

// CreateSubscriptionInput defines the expected JSON structure for creating a
// subscription. recurringPlanId is accepted as an alias for planId.
type CreateSubscriptionInput struct {
	CustomerID         *uuid.UUID              `json:"customerId"`
	PlanID             *uuid.UUID              `json:"planId"`
	RecurringPlanID    *uuid.UUID              `json:"recurringPlanId"`
	SubscriptionNumber string                  `json:"subscriptionNumber"`
	StartDate          *time.Time              `json:"startDate"`
	EndDate            *time.Time              `json:"endDate"`
	Status             string                  `json:"status"`
	Lines              []SubscriptionLineInput `json:"lines"`
}

// UpdateSubscriptionInput defines the expected JSON structure for updating a
// subscription. Lines are not mutable through this path.
type UpdateSubscriptionInput struct {
	ID              uuid.UUID  `json:"id" binding:"required"`
	Status          *string    `json:"status"`
	EndDate         *time.Time `json:"endDate"`
	PlanID          *uuid.UUID `json:"planId"`
	RecurringPlanID *uuid.UUID `json:"recurringPlanId"`
}

// subscriptionResponse aliases the plan as recurringPlan and carries the
// derived total, which is never stored on the subscription row.
type subscriptionResponse struct {
	models.Subscription
	RecurringPlan *models.RecurringPlan `json:"recurringPlan,omitempty"`
	TotalAmount   float64               `json:"totalAmount"`
}

func shapeSubscription(sub models.Subscription) subscriptionResponse {
	return subscriptionResponse{
		Subscription:  sub,
		RecurringPlan: sub.Plan,
		TotalAmount:   services.SubscriptionTotal(sub),
	}
}

// CreateSubscription creates a subscription with optional nested lines
func CreateSubscription(c *gin.Context) {
	var input CreateSubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.CustomerID == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer is required")
		return
	}

	planID := input.PlanID
	if planID == nil {
		planID = input.RecurringPlanID
	}

	// Auto-generate the number when absent or still the form placeholder.
	// Timestamp-based, so two creations in the same millisecond collide.
	number := input.SubscriptionNumber
	if number == "" || number == "Draft" {
		number = fmt.Sprintf("SUB-%d", time.Now().UnixMilli())
	}

	start := time.Now()
	if input.StartDate != nil {
		start = *input.StartDate
	}
	expiration := start.Add(30 * 24 * time.Hour)
	if input.EndDate != nil {
		expiration = *input.EndDate
	}

	status := input.Status
	if status == "" {
		status = models.SubscriptionStatusDraft
	}

	lines := make([]models.SubscriptionLine, 0, len(input.Lines))
	for _, line := range input.Lines {
		quantity, err := utils.ParseAmount(line.Quantity)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid line quantity")
			return
		}
		unitPrice, err := utils.ParseAmount(line.UnitPrice)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid line unit price")
			return
		}
		lines = append(lines, models.SubscriptionLine{
			ProductID: line.ProductID,
			Quantity:  int(quantity),
			UnitPrice: unitPrice,
		})
	}

	subscription := models.Subscription{
		CustomerID:         *input.CustomerID,
		PlanID:             planID,
		SubscriptionNumber: number,
		StartDate:          start,
		ExpirationDate:     expiration,
		Status:             status,
		Lines:              lines,
	}

	if err := config.DB.Create(&subscription).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create subscription: "+err.Error())
		return
	}

	// Reload with associations for the response
	if err := config.DB.Preload("Customer.User").Preload("Plan").Preload("Lines").
		First(&subscription, "id = ?", subscription.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load subscription")
		return
	}

	c.JSON(http.StatusCreated, shapeSubscription(subscription))
}

// GetSubscriptions lists subscriptions with nested customer, plan, and line
// data. Totals are computed at read time from lines or the plan price.
func GetSubscriptions(c *gin.Context) {
	query := config.DB.Preload("Customer.User").Preload("Plan").Preload("Lines.Product").
		Order("created_at DESC")
	if id := c.Query("id"); id != "" {
		query = query.Where("id = ?", id)
	}

	var subscriptions []models.Subscription
	if err := query.Find(&subscriptions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve subscriptions")
		return
	}

	response := make([]subscriptionResponse, 0, len(subscriptions))
	for _, sub := range subscriptions {
		response = append(response, shapeSubscription(sub))
	}

	c.JSON(http.StatusOK, response)
}

// UpdateSubscription changes status, plan, or expiration date
func UpdateSubscription(c *gin.Context) {
	var input UpdateSubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Subscription ID is required")
		return
	}

	var subscription models.Subscription
	if err := config.DB.First(&subscription, "id = ?", input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Subscription not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Status != nil {
		subscription.Status = *input.Status
	}
	if input.EndDate != nil {
		subscription.ExpirationDate = *input.EndDate
	}
	if input.PlanID != nil {
		subscription.PlanID = input.PlanID
	} else if input.RecurringPlanID != nil {
		subscription.PlanID = input.RecurringPlanID
	}

	if err := config.DB.Save(&subscription).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update subscription")
		return
	}

	if err := config.DB.Preload("Customer.User").Preload("Plan").Preload("Lines").
		First(&subscription, "id = ?", subscription.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load subscription")
		return
	}

	c.JSON(http.StatusOK, shapeSubscription(subscription))
}

// DeleteSubscription removes a subscription and its lines. Invoices that
// reference the subscription are not checked.
func DeleteSubscription(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Subscription ID is required")
		return
	}

	var subscription models.Subscription
	if err := config.DB.First(&subscription, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Subscription not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("subscription_id = ?", subscription.ID).
		Delete(&models.SubscriptionLine{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete subscription lines")
		return
	}

	if err := tx.Delete(&subscription).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete subscription")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"success": true})
}
