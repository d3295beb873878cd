package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jonyprachine123/test-2/internal/auth"
	"github.com/jonyprachine123/test-2/internal/service"

	"github.com/gin-gonic/gin"
)

var notFoundMessages = map[error]string{
	service.ErrProductNotFound: "Product not found",
	service.ErrOrderNotFound:   "Order not found",
	service.ErrBannerNotFound:  "Banner not found",
	service.ErrReviewNotFound:  "Review not found",
}

// writeError maps err onto a status code and a JSON body. Unexpected errors
// are logged and answered with a generic message.
func writeError(c *gin.Context, log *slog.Logger, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		body := gin.H{"error": validationErr.Message}
		if len(validationErr.Details) > 0 {
			body["details"] = validationErr.Details
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	for target, message := range notFoundMessages {
		if errors.Is(err, target) {
			c.JSON(http.StatusNotFound, gin.H{"error": message})
			return
		}
	}

	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	_ = c.Error(err)
	log.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// badRequest answers a body that could not be decoded at all
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": gin.H{"body": err.Error()},
	})
}

// parseID reads a numeric :id. Anything else cannot name an existing entity,
// so it is answered with notFound.
func parseID(c *gin.Context, log *slog.Logger, notFound error) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		writeError(c, log, notFound)
		return 0, false
	}
	return uint(id), true
}
