package handler

import (
	"log/slog"
	"net/http"

	"github.com/jonyprachine123/test-2/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewHandler serves customer reviews
type ReviewHandler struct {
	reviewService service.ReviewService
	log           *slog.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService service.ReviewService, log *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, log: log}
}

// GetReviews lists every review, newest first
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListReviews(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// CreateReview records a customer review
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req service.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), &req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// UpdateReview writes the supplied fields only
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := parseID(c, h.log, service.ErrReviewNotFound)
	if !ok {
		return
	}

	var req service.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// DeleteReview removes a review
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, h.log, service.ErrReviewNotFound)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
