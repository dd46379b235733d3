package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"subserp-backend/config"
	"subserp-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"email":     "New.User@Example.com",
		"password":  "Secret123!",
		"firstName": "New",
		"lastName":  "User",
	}, "")
	assertStatus(t, w, http.StatusCreated)

	var signup struct {
		Success bool        `json:"success"`
		Token   string      `json:"token"`
		User    models.User `json:"user"`
	}
	decodeBody(t, w, &signup)
	assert.True(t, signup.Success)
	assert.NotEmpty(t, signup.Token)
	assert.Equal(t, "new.user@example.com", signup.User.Email)
	assert.Equal(t, models.RoleCustomer, signup.User.Role)

	// Stored password must be a bcrypt hash, never the plaintext
	var stored models.User
	require.NoError(t, config.DB.First(&stored, "email = ?", "new.user@example.com").Error)
	assert.NotEqual(t, "Secret123!", stored.Password)

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "new.user@example.com",
		"password": "Secret123!",
	}, "")
	assertStatus(t, w, http.StatusOK)

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "new.user@example.com",
		"password": "wrong-password",
	}, "")
	assertStatus(t, w, http.StatusUnauthorized)
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := setupRouter(t)

	body := gin.H{
		"email":     "dup@example.com",
		"password":  "Secret123!",
		"firstName": "First",
		"lastName":  "Try",
	}
	assertStatus(t, doRequest(t, r, http.MethodPost, "/api/auth/signup", body, ""), http.StatusCreated)
	assertStatus(t, doRequest(t, r, http.MethodPost, "/api/auth/signup", body, ""), http.StatusConflict)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	r := setupRouter(t)

	user := models.User{
		Email:     "locked@example.com",
		Password:  "Secret123!",
		FirstName: "Locked",
		LastName:  "Out",
		Role:      models.RoleCustomer,
		IsActive:  false,
	}
	require.NoError(t, config.DB.Create(&user).Error)

	// Deactivation is checked before the password, so even the correct
	// password yields 403
	w := doRequest(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "locked@example.com",
		"password": "Secret123!",
	}, "")
	assertStatus(t, w, http.StatusForbidden)
}

func TestPasswordResetFlow(t *testing.T) {
	r := setupRouter(t)

	user := models.User{
		Email:     "forgetful@example.com",
		Password:  "OldSecret1!",
		FirstName: "For",
		LastName:  "Getful",
		Role:      models.RoleCustomer,
		IsActive:  true,
	}
	require.NoError(t, config.DB.Create(&user).Error)

	w := doRequest(t, r, http.MethodPost, "/api/auth/forgot-password", gin.H{
		"email": "forgetful@example.com",
	}, "")
	assertStatus(t, w, http.StatusOK)

	var stored models.User
	require.NoError(t, config.DB.First(&stored, "id = ?", user.ID).Error)
	require.NotNil(t, stored.ResetToken)
	require.NotNil(t, stored.ResetTokenExpiry)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *stored.ResetTokenExpiry, time.Minute)

	token := *stored.ResetToken
	w = doRequest(t, r, http.MethodPost, "/api/auth/reset-password", gin.H{
		"token":    token,
		"password": "NewSecret1!",
	}, "")
	assertStatus(t, w, http.StatusOK)

	// Token is single use
	w = doRequest(t, r, http.MethodPost, "/api/auth/reset-password", gin.H{
		"token":    token,
		"password": "AnotherSecret1!",
	}, "")
	assertStatus(t, w, http.StatusBadRequest)

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "forgetful@example.com",
		"password": "NewSecret1!",
	}, "")
	assertStatus(t, w, http.StatusOK)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	r := setupRouter(t)

	token := "expired-token-value"
	expiry := time.Now().Add(-time.Minute)
	user := models.User{
		Email:            "late@example.com",
		Password:         "OldSecret1!",
		FirstName:        "Too",
		LastName:         "Late",
		Role:             models.RoleCustomer,
		IsActive:         true,
		ResetToken:       &token,
		ResetTokenExpiry: &expiry,
	}
	require.NoError(t, config.DB.Create(&user).Error)

	w := doRequest(t, r, http.MethodPost, "/api/auth/reset-password", gin.H{
		"token":    token,
		"password": "NewSecret1!",
	}, "")
	assertStatus(t, w, http.StatusBadRequest)
}

func TestForgotPasswordRejectsInvalidEmail(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/auth/forgot-password", gin.H{
		"email": "not-an-email",
	}, "")
	assertStatus(t, w, http.StatusBadRequest)

	w = doRequest(t, r, http.MethodPost, "/api/auth/forgot-password", gin.H{
		"email": "unknown@example.com",
	}, "")
	assertStatus(t, w, http.StatusNotFound)
}
