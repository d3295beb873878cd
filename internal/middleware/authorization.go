package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jonyprachine123/test-2/internal/model"

	"github.com/gin-gonic/gin"
)

// PermissionChecker decides whether user may perform action on resource
type PermissionChecker interface {
	CheckPermission(user *model.User, resource, action string) (bool, error)
}

// RequirePermission rejects requests whose user lacks the permission. It must
// run after AuthMiddleware.
func RequirePermission(checker PermissionChecker, resource, action string, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetUserFromContext(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
			return
		}

		allowed, err := checker.CheckPermission(user, resource, action)
		if err != nil {
			log.Error("Authorization check failed", "user", user.Username, "resource", resource, "action", action, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		c.Next()
	}
}
