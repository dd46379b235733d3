package controllers

import (
	"errors"
	"net/http"

	"subserp-backend/config"
	"subserp-backend/models"
	"subserp-backend/services"
	"subserp-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Email       string `json:"email" binding:"required,email"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	CompanyName string `json:"companyName"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	ID          uuid.UUID `json:"id" binding:"required"`
	CompanyName *string   `json:"companyName"`
	Phone       *string   `json:"phone"`
	Address     *string   `json:"address"`
	City        *string   `json:"city"`
	State       *string   `json:"state"`
	PostalCode  *string   `json:"postalCode"`
	Country     *string   `json:"country"`
	FirstName   *string   `json:"firstName"`
	LastName    *string   `json:"lastName"`
}

type subscriptionSummary struct {
	ID          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"totalAmount"`
}

type customerResponse struct {
	models.Customer
	Subscriptions []subscriptionSummary `json:"subscriptions"`
}

// CreateCustomer creates a customer together with its login user
func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Email, first name, and last name are required")
		return
	}

	var existingUser models.User
	if err := config.DB.Where("email = ?", input.Email).First(&existingUser).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "A user with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer := models.Customer{
		CompanyName: input.CompanyName,
		Phone:       input.Phone,
		Address:     input.Address,
		City:        input.City,
		State:       input.State,
		PostalCode:  input.PostalCode,
		Country:     input.Country,
		User: models.User{
			Email:     input.Email,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Password:  "Customer@123", // Default password, hashed in hook
			Role:      models.RoleCustomer,
			IsActive:  true,
		},
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists customers with their user and subscription summaries
func GetCustomers(c *gin.Context) {
	query := config.DB.Preload("User").Preload("Subscriptions.Lines").Order("created_at DESC")
	if id := c.Query("id"); id != "" {
		query = query.Where("id = ?", id)
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	response := make([]customerResponse, 0, len(customers))
	for _, customer := range customers {
		summaries := make([]subscriptionSummary, 0, len(customer.Subscriptions))
		for _, sub := range customer.Subscriptions {
			summaries = append(summaries, subscriptionSummary{
				ID:          sub.ID,
				Status:      sub.Status,
				TotalAmount: services.LinesSubtotal(sub.Lines),
			})
		}
		customer.Subscriptions = nil
		response = append(response, customerResponse{Customer: customer, Subscriptions: summaries})
	}

	c.JSON(http.StatusOK, response)
}

// UpdateCustomer updates a customer and the name fields of its user
func UpdateCustomer(c *gin.Context) {
	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer ID is required")
		return
	}

	var customer models.Customer
	if err := config.DB.Preload("User").First(&customer, "id = ?", input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.CompanyName != nil {
		customer.CompanyName = *input.CompanyName
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.City != nil {
		customer.City = *input.City
	}
	if input.State != nil {
		customer.State = *input.State
	}
	if input.PostalCode != nil {
		customer.PostalCode = *input.PostalCode
	}
	if input.Country != nil {
		customer.Country = *input.Country
	}

	if err := config.DB.Model(&models.Customer{}).Where("id = ?", customer.ID).
		Select("CompanyName", "Phone", "Address", "City", "State", "PostalCode", "Country").
		Updates(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	if input.FirstName != nil || input.LastName != nil {
		if input.FirstName != nil {
			customer.User.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			customer.User.LastName = *input.LastName
		}
		if err := config.DB.Model(&models.User{}).Where("id = ?", customer.UserID).
			Updates(map[string]interface{}{
				"first_name": customer.User.FirstName,
				"last_name":  customer.User.LastName,
			}).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer user")
			return
		}
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a customer and cascades to its owned user
func DeleteCustomer(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer ID is required")
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
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

	if err := tx.Delete(&customer).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	if err := tx.Delete(&models.User{}, "id = ?", customer.UserID).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer user")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"success": true})
}
