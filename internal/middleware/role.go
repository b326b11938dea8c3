package middleware

import (
	"slices"

	appErrors "sankofa/pkg/errors"

	"github.com/gin-gonic/gin"
)

const (
	RoleCollector  = "collector"
	RoleHubManager = "hub-manager"
	RoleVolunteer  = "volunteer"
	RoleDonor      = "donor"
	RoleAdmin      = "admin"
)

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			abortWithError(c, appErrors.Forbidden("ROLE_MISSING", "Role not found in context"))
			return
		}

		userRole, _ := role.(string)
		if slices.Contains(allowedRoles, userRole) {
			c.Next()
			return
		}

		abortWithError(c, appErrors.ErrInsufficientPermissions)
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(RoleAdmin)
}

func CollectorOnly() gin.HandlerFunc {
	return RoleMiddleware(RoleCollector)
}

func DonorOnly() gin.HandlerFunc {
	return RoleMiddleware(RoleDonor)
}

func StaffOnly() gin.HandlerFunc {
	return RoleMiddleware(RoleAdmin, RoleHubManager)
}

// IsStaff reports whether role may act on other users' records.
func IsStaff(role string) bool {
	return role == RoleAdmin || role == RoleHubManager
}
