package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHasCapability(t *testing.T) {
	assert.True(t, HasCapability("ADMIN", CapUsersManage))
	assert.True(t, HasCapability("ADMIN", CapBillingManage))

	assert.False(t, HasCapability("INTERNAL_USER", CapUsersManage))
	assert.True(t, HasCapability("INTERNAL_USER", CapCatalogManage))
	assert.True(t, HasCapability("INTERNAL_USER", CapBillingManage))

	assert.True(t, HasCapability("CUSTOMER", CapDashboardView))
	assert.False(t, HasCapability("CUSTOMER", CapBillingManage))

	assert.False(t, HasCapability("UNKNOWN_ROLE", CapDashboardView))
}

func TestCapabilitiesForRole(t *testing.T) {
	assert.Len(t, CapabilitiesForRole("ADMIN"), 4)
	assert.Len(t, CapabilitiesForRole("CUSTOMER"), 1)
	assert.Empty(t, CapabilitiesForRole("UNKNOWN_ROLE"))
}

func TestRequireCapability(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role interface{}) *gin.Engine {
		r := gin.New()
		r.GET("/guarded",
			func(c *gin.Context) {
				if role != nil {
					c.Set("role", role)
				}
			},
			RequireCapability(CapUsersManage),
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)
		return r
	}

	serve := func(r *gin.Engine) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, serve(newRouter("ADMIN")))
	assert.Equal(t, http.StatusForbidden, serve(newRouter("INTERNAL_USER")))
	assert.Equal(t, http.StatusForbidden, serve(newRouter(42)))
	assert.Equal(t, http.StatusUnauthorized, serve(newRouter(nil)))
}
