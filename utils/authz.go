// utils/authz.go
package utils

import (
	"github.com/gin-gonic/gin"
)

// Capability strings consulted by RequireCapability. Roles map to a fixed
// capability set instead of handlers comparing role strings ad hoc.
const (
	CapUsersManage   = "users:manage"
	CapCatalogManage = "catalog:manage"
	CapBillingManage = "billing:manage"
	CapDashboardView = "dashboard:view"
)

var roleCapabilities = map[string][]string{
	"ADMIN": {
		CapUsersManage,
		CapCatalogManage,
		CapBillingManage,
		CapDashboardView,
	},
	"INTERNAL_USER": {
		CapCatalogManage,
		CapBillingManage,
		CapDashboardView,
	},
	"CUSTOMER": {
		CapDashboardView,
	},
}

// CapabilitiesForRole returns the capability set granted to a role
func CapabilitiesForRole(role string) []string {
	return roleCapabilities[role]
}

// HasCapability reports whether a role carries the given capability
func HasCapability(role, capability string) bool {
	for _, cap := range roleCapabilities[role] {
		if cap == capability {
			return true
		}
	}
	return false
}

// RequireCapability gates a route group on a capability. Must run after
// AuthMiddleware so the role claim is present in the context.
func RequireCapability(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(401, gin.H{"error": "Role not found in context"})
			return
		}
		roleStr, ok := role.(string)
		if !ok || !HasCapability(roleStr, capability) {
			c.AbortWithStatusJSON(403, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
