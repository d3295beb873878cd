package handler

import (
	"log/slog"
	"net/http"

	"github.com/jonyprachine123/test-2/internal/middleware"
	"github.com/jonyprachine123/test-2/internal/model"

	"github.com/gin-gonic/gin"
)

// Authenticator checks admin credentials and issues tokens
type Authenticator interface {
	Login(username, password string) (*model.LoginResponse, error)
}

// PermissionLister reports what a role may do
type PermissionLister interface {
	GetRolePermissions(role string) ([][]string, error)
}

// AuthHandler serves the admin login
type AuthHandler struct {
	authService  Authenticator
	authzService PermissionLister
	log          *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService Authenticator, authzService PermissionLister, log *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, authzService: authzService, log: log}
}

// Login exchanges credentials for a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	response, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		h.log.Warn("Admin login failed", "username", req.Username, "client_ip", c.ClientIP())
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Me returns the authenticated user and the permissions of their role
func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := middleware.GetUserFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	permissions, err := h.authzService.GetRolePermissions(user.Role)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"permissions": permissions,
	})
}
