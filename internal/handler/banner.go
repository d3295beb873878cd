package handler

import (
	"log/slog"
	"net/http"

	"github.com/jonyprachine123/test-2/internal/service"

	"github.com/gin-gonic/gin"
)

// BannerHandler serves promotional banners
type BannerHandler struct {
	bannerService service.BannerService
	log           *slog.Logger
}

// NewBannerHandler creates a new banner handler
func NewBannerHandler(bannerService service.BannerService, log *slog.Logger) *BannerHandler {
	return &BannerHandler{bannerService: bannerService, log: log}
}

// GetBanners lists every banner, newest first
func (h *BannerHandler) GetBanners(c *gin.Context) {
	banners, err := h.bannerService.ListBanners(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, banners)
}

// GetBanner returns one banner
func (h *BannerHandler) GetBanner(c *gin.Context) {
	id, ok := parseID(c, h.log, service.ErrBannerNotFound)
	if !ok {
		return
	}

	banner, err := h.bannerService.GetBanner(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, banner)
}

// CreateBanner accepts a multipart form with an image file, or JSON with an image URL
func (h *BannerHandler) CreateBanner(c *gin.Context) {
	cmd, err := bindBannerCommand(c)
	if err != nil {
		bindFailed(c, h.log, err)
		return
	}

	banner, err := h.bannerService.CreateBanner(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, banner)
}

// UpdateBanner writes the supplied fields only
func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	id, ok := parseID(c, h.log, service.ErrBannerNotFound)
	if !ok {
		return
	}

	cmd, err := bindBannerCommand(c)
	if err != nil {
		bindFailed(c, h.log, err)
		return
	}

	banner, err := h.bannerService.UpdateBanner(c.Request.Context(), id, cmd)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, banner)
}

// DeleteBanner removes a banner and its uploaded image
func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	id, ok := parseID(c, h.log, service.ErrBannerNotFound)
	if !ok {
		return
	}

	if err := h.bannerService.DeleteBanner(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted"})
}
