package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonyprachine123/test-2/internal/logger"
	"github.com/jonyprachine123/test-2/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubValidator map[string]*model.User

func (s stubValidator) ValidateToken(token string) (*model.User, error) {
	if user, ok := s[token]; ok {
		return user, nil
	}
	return nil, errors.New("invalid token")
}

type stubChecker struct {
	allow map[string]bool
	err   error
}

func (s stubChecker) CheckPermission(user *model.User, resource, action string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.allow[user.Role+":"+resource+":"+action], nil
}

func newGuardedEngine(checker PermissionChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	validator := stubValidator{
		"admin-token":    {Username: "admin", Role: model.RoleAdmin},
		"operator-token": {Username: "packer", Role: model.RoleOperator},
	}
	r.DELETE("/api/products/:id",
		AuthMiddleware(validator),
		RequirePermission(checker, "products", "write", logger.Discard()),
		func(c *gin.Context) {
			user, _ := GetUserFromContext(c)
			c.JSON(http.StatusOK, gin.H{"user": user.Username})
		})
	return r
}

func TestAuthAndPermission(t *testing.T) {
	checker := stubChecker{allow: map[string]bool{"admin:products:write": true}}
	r := newGuardedEngine(checker)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic admin-token", http.StatusUnauthorized},
		{"unknown token", "Bearer forged", http.StatusUnauthorized},
		{"forbidden role", "Bearer operator-token", http.StatusForbidden},
		{"allowed", "Bearer admin-token", http.StatusOK},
		{"scheme is case insensitive", "bearer admin-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/products/1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestRequirePermissionCheckerError(t *testing.T) {
	r := newGuardedEngine(stubChecker{err: errors.New("enforcer broken")})

	req := httptest.NewRequest(http.MethodDelete, "/api/products/1", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "enforcer broken")
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS("https://shop.example"), RequestLogger(logger.Discard()))
	r.GET("/api/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "OK"}) })

	req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))
}
