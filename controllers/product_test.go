package controllers_test

import (
	"net/http"
	"testing"

	"subserp-backend/config"
	"subserp-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductDefaults(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)

	// Prices arrive as numeric strings from the form
	w := doRequest(t, r, http.MethodPost, "/api/products", gin.H{
		"name":       "Onboarding",
		"salesPrice": "149.50",
		"costPrice":  "80",
	}, token)
	assertStatus(t, w, http.StatusCreated)

	var got models.Product
	decodeBody(t, w, &got)
	assert.Equal(t, models.ProductTypeService, got.Type)
	assert.True(t, got.IsActive)
	assert.Equal(t, 149.50, got.SalesPrice)
	assert.Equal(t, 80.0, got.CostPrice)
}

func TestCreateProductValidation(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)

	w := doRequest(t, r, http.MethodPost, "/api/products", gin.H{
		"salesPrice": 10, "costPrice": 5,
	}, token)
	assertStatus(t, w, http.StatusBadRequest)

	w = doRequest(t, r, http.MethodPost, "/api/products", gin.H{
		"name": "No prices",
	}, token)
	assertStatus(t, w, http.StatusBadRequest)

	w = doRequest(t, r, http.MethodPost, "/api/products", gin.H{
		"name": "Bad price", "salesPrice": "not-a-number", "costPrice": 5,
	}, token)
	assertStatus(t, w, http.StatusBadRequest)
}

func TestUpdateProduct(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)
	product := seedProduct(t, config.DB, "Legacy Plan", 10)

	w := doRequest(t, r, http.MethodPut, "/api/products", gin.H{
		"id":         product.ID,
		"type":       models.ProductTypeStorable,
		"salesPrice": "12.5",
		"isActive":   false,
	}, token)
	assertStatus(t, w, http.StatusOK)

	var got models.Product
	require.NoError(t, config.DB.First(&got, "id = ?", product.ID).Error)
	assert.Equal(t, models.ProductTypeStorable, got.Type)
	assert.Equal(t, 12.5, got.SalesPrice)
	assert.False(t, got.IsActive)
	// Name untouched by the partial update
	assert.Equal(t, "Legacy Plan", got.Name)
}

func TestGetProductsFilterByID(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)
	seedProduct(t, config.DB, "First", 10)
	second := seedProduct(t, config.DB, "Second", 20)

	w := doRequest(t, r, http.MethodGet, "/api/products?id="+second.ID.String(), nil, token)
	assertStatus(t, w, http.StatusOK)

	var got []models.Product
	decodeBody(t, w, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "Second", got[0].Name)
}

func TestDeleteProduct(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)
	product := seedProduct(t, config.DB, "Ephemeral", 10)

	assertStatus(t, doRequest(t, r, http.MethodDelete, "/api/products?id="+product.ID.String(), nil, token), http.StatusOK)
	assertStatus(t, doRequest(t, r, http.MethodDelete, "/api/products?id="+product.ID.String(), nil, token), http.StatusNotFound)
	assertStatus(t, doRequest(t, r, http.MethodDelete, "/api/products", nil, token), http.StatusBadRequest)
}
