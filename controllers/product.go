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

// CreateProductInput defines the expected JSON structure for creating a product.
// Price fields arrive as numbers or numeric strings.
type CreateProductInput struct {
	Name        string      `json:"name" binding:"required"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	SalesPrice  interface{} `json:"salesPrice"`
	CostPrice   interface{} `json:"costPrice"`
}

// UpdateProductInput defines the expected JSON structure for updating a product
type UpdateProductInput struct {
	ID          uuid.UUID   `json:"id" binding:"required"`
	Name        *string     `json:"name"`
	Type        *string     `json:"type"`
	Description *string     `json:"description"`
	SalesPrice  interface{} `json:"salesPrice"`
	CostPrice   interface{} `json:"costPrice"`
	IsActive    *bool       `json:"isActive"`
}

// CreateProduct creates a new product
func CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.SalesPrice == nil || input.CostPrice == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Name, sales price, and cost price are required")
		return
	}

	salesPrice, err := utils.ParseAmount(input.SalesPrice)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sales price")
		return
	}
	costPrice, err := utils.ParseAmount(input.CostPrice)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid cost price")
		return
	}

	productType := input.Type
	if productType == "" {
		productType = models.ProductTypeService
	}

	product := models.Product{
		Name:        input.Name,
		Type:        productType,
		Description: input.Description,
		SalesPrice:  salesPrice,
		CostPrice:   costPrice,
		IsActive:    true,
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProducts lists all products, newest first
func GetProducts(c *gin.Context) {
	query := config.DB.Order("created_at DESC")
	if id := c.Query("id"); id != "" {
		query = query.Where("id = ?", id)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	c.JSON(http.StatusOK, products)
}

// UpdateProduct updates an existing product
func UpdateProduct(c *gin.Context) {
	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Product ID is required")
		return
	}

	var product models.Product
	if err := config.DB.First(&product, "id = ?", input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Type != nil {
		product.Type = *input.Type
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.SalesPrice != nil {
		salesPrice, err := utils.ParseAmount(input.SalesPrice)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid sales price")
			return
		}
		product.SalesPrice = salesPrice
	}
	if input.CostPrice != nil {
		costPrice, err := utils.ParseAmount(input.CostPrice)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid cost price")
			return
		}
		product.CostPrice = costPrice
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product
func DeleteProduct(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Product ID is required")
		return
	}

	result := config.DB.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
