package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StorageProbe reports which backend is in use and whether it answers
type StorageProbe interface {
	Name() string
	Ping(ctx context.Context) error
}

// HealthHandler answers liveness checks
type HealthHandler struct {
	storage StorageProbe
	log     *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storage StorageProbe, log *slog.Logger) *HealthHandler {
	return &HealthHandler{storage: storage, log: log}
}

// Health reports service status and whether storage answers a ping
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"storage":   h.storage.Name(),
	}

	if err := h.storage.Ping(ctx); err != nil {
		h.log.Error("Storage ping failed", "storage", h.storage.Name(), "error", err)
		body["status"] = "UNAVAILABLE"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}

	c.JSON(http.StatusOK, body)
}
