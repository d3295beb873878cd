package middleware

import (
	"net/http"
	"strings"

	"github.com/jonyprachine123/test-2/internal/model"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// TokenValidator resolves a bearer token to the user it was issued to
type TokenValidator interface {
	ValidateToken(token string) (*model.User, error)
}

// AuthMiddleware requires a valid Bearer token and stores the user in the context
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		user, err := validator.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// GetUserFromContext returns the authenticated user, if any
func GetUserFromContext(c *gin.Context) (*model.User, bool) {
	user, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}

	userModel, ok := user.(*model.User)
	return userModel, ok
}
