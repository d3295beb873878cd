package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonyprachine123/test-2/internal/model"
	"github.com/jonyprachine123/test-2/internal/store"
)

// ReviewRequest is the body for creating or rewriting a review. The reviewer's
// name may arrive as either name or customerName.
type ReviewRequest struct {
	Name         *string `json:"name"`
	CustomerName *string `json:"customerName"`
	Rating       FlexInt `json:"rating"`
	Comment      string  `json:"comment"`
}

func (r *ReviewRequest) reviewer() string {
	for _, name := range []*string{r.Name, r.CustomerName} {
		if name != nil && strings.TrimSpace(*name) != "" {
			return strings.TrimSpace(*name)
		}
	}
	return ""
}

// ReviewService manages customer reviews
type ReviewService interface {
	ListReviews(ctx context.Context) ([]model.Review, error)
	CreateReview(ctx context.Context, req *ReviewRequest) (*model.Review, error)
	UpdateReview(ctx context.Context, id uint, req *ReviewRequest) (*model.Review, error)
	DeleteReview(ctx context.Context, id uint) error
}

type reviewServiceImpl struct {
	store store.ReviewStore
	log   *slog.Logger
	now   func() time.Time
}

// NewReviewService creates a new review service
func NewReviewService(s store.ReviewStore, log *slog.Logger) ReviewService {
	return &reviewServiceImpl{
		store: s,
		log:   log.With("component", "review_service"),
		now:   time.Now,
	}
}

func validateReview(req *ReviewRequest) (name, comment string, err error) {
	name = req.reviewer()
	comment = strings.TrimSpace(req.Comment)

	missing := fieldErrors{}
	if name == "" {
		missing.add("name", "Name is required")
	}
	if comment == "" {
		missing.add("comment", "Comment is required")
	}
	if err := missing.err("Name and comment are required"); err != nil {
		return "", "", err
	}

	if !ValidRating(req.Rating.Int()) {
		return "", "", &ValidationError{
			Message: "Rating must be between 1 and 5",
			Details: map[string]string{"rating": "must be between 1 and 5"},
		}
	}
	return name, comment, nil
}

func (s *reviewServiceImpl) ListReviews(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.store.ListReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *reviewServiceImpl) CreateReview(ctx context.Context, req *ReviewRequest) (*model.Review, error) {
	name, comment, err := validateReview(req)
	if err != nil {
		return nil, err
	}

	review := &model.Review{
		CustomerName: name,
		Rating:       req.Rating.Int(),
		Comment:      comment,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// UpdateReview rewrites the name, rating and comment and stamps the update time
func (s *reviewServiceImpl) UpdateReview(ctx context.Context, id uint, req *ReviewRequest) (*model.Review, error) {
	name, comment, err := validateReview(req)
	if err != nil {
		return nil, err
	}

	review, err := s.store.UpdateReview(ctx, id, model.ReviewPatch{
		CustomerName: name,
		Rating:       req.Rating.Int(),
		Comment:      comment,
		UpdatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

func (s *reviewServiceImpl) DeleteReview(ctx context.Context, id uint) error {
	if err := s.store.DeleteReview(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
