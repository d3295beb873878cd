package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"github.com/jonyprachine123/test-2/internal/model"
	"github.com/jonyprachine123/test-2/internal/store"
	"github.com/jonyprachine123/test-2/internal/upload"

	"github.com/shopspring/decimal"
)

// BannerCommand is a create or update request for a banner. Nil fields were not supplied.
type BannerCommand struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Discount    *int
	Link        *string
	ImageURL    *string
	Image       *multipart.FileHeader
}

// BannerService manages promotional banners
type BannerService interface {
	ListBanners(ctx context.Context) ([]model.Banner, error)
	GetBanner(ctx context.Context, id uint) (*model.Banner, error)
	CreateBanner(ctx context.Context, cmd *BannerCommand) (*model.Banner, error)
	UpdateBanner(ctx context.Context, id uint, cmd *BannerCommand) (*model.Banner, error)
	DeleteBanner(ctx context.Context, id uint) error
}

type bannerServiceImpl struct {
	store  store.BannerStore
	images upload.ImageStore
	log    *slog.Logger
}

// NewBannerService creates a new banner service
func NewBannerService(s store.BannerStore, images upload.ImageStore, log *slog.Logger) BannerService {
	return &bannerServiceImpl{
		store:  s,
		images: images,
		log:    log.With("component", "banner_service"),
	}
}

func (s *bannerServiceImpl) present(b *model.Banner) *model.Banner {
	b.ImageURL = s.images.Resolve(b.Image)
	return b
}

func (s *bannerServiceImpl) ListBanners(ctx context.Context) ([]model.Banner, error) {
	banners, err := s.store.ListBanners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	for i := range banners {
		s.present(&banners[i])
	}
	return banners, nil
}

func (s *bannerServiceImpl) GetBanner(ctx context.Context, id uint) (*model.Banner, error) {
	banner, err := s.store.GetBanner(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, fmt.Errorf("failed to get banner: %w", err)
	}
	return s.present(banner), nil
}

func validateBannerFields(cmd *BannerCommand, create bool) (*model.Percent, error) {
	if create {
		missing := fieldErrors{}
		if cmd.Title == nil || strings.TrimSpace(*cmd.Title) == "" {
			missing.add("title", "Title is required")
		}
		if cmd.Description == nil || strings.TrimSpace(*cmd.Description) == "" {
			missing.add("description", "Description is required")
		}
		if err := missing.err("Title and description are required"); err != nil {
			return nil, err
		}
	}

	if cmd.Title != nil && strings.TrimSpace(*cmd.Title) == "" {
		return nil, &ValidationError{Message: "Title cannot be empty", Details: map[string]string{"title": "Title is required"}}
	}
	if cmd.Price != nil && cmd.Price.IsNegative() {
		return nil, &ValidationError{Message: "Invalid price", Details: map[string]string{"price": "must not be negative"}}
	}
	if cmd.Discount == nil {
		return nil, nil
	}
	discount, err := percent("discount", *cmd.Discount)
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func optionalLink(link *string) *string {
	if link == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*link)
	return &trimmed
}

// CreateBanner requires a title, a description and either an uploaded image or an image URL
func (s *bannerServiceImpl) CreateBanner(ctx context.Context, cmd *BannerCommand) (*model.Banner, error) {
	discount, err := validateBannerFields(cmd, true)
	if err != nil {
		return nil, err
	}

	image, ok, err := storeImage(s.images, cmd.Image, cmd.ImageURL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ValidationError{
			Message: "Please provide either an image file or image URL",
			Details: map[string]string{"image": "Image is required"},
		}
	}

	now := time.Now().UTC()
	banner := &model.Banner{
		Title:       strings.TrimSpace(*cmd.Title),
		Description: *cmd.Description,
		Price:       decimal.Zero,
		Image:       image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if cmd.Price != nil {
		banner.Price = *cmd.Price
	}
	if discount != nil {
		banner.Discount = *discount
	}
	if link := optionalLink(cmd.Link); link != nil && *link != "" {
		banner.Link = link
	}

	if err := s.store.CreateBanner(ctx, banner); err != nil {
		s.discardImage(image)
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}

	s.log.Info("Banner created", "id", banner.ID)
	return s.present(banner), nil
}

// UpdateBanner writes only the supplied fields. The previous uploaded image is
// removed only when a new file is uploaded.
func (s *bannerServiceImpl) UpdateBanner(ctx context.Context, id uint, cmd *BannerCommand) (*model.Banner, error) {
	discount, err := validateBannerFields(cmd, false)
	if err != nil {
		return nil, err
	}

	current, err := s.store.GetBanner(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, fmt.Errorf("failed to get banner: %w", err)
	}

	patch := model.BannerPatch{
		Description: cmd.Description,
		Price:       cmd.Price,
		Discount:    discount,
		Link:        optionalLink(cmd.Link),
	}
	if cmd.Title != nil {
		title := strings.TrimSpace(*cmd.Title)
		patch.Title = &title
	}

	image, replaced, err := storeImage(s.images, cmd.Image, cmd.ImageURL)
	if err != nil {
		return nil, err
	}
	if replaced {
		patch.Image = &image
	}

	if patch.IsEmpty() {
		return s.present(current), nil
	}

	updated, err := s.store.UpdateBanner(ctx, id, patch)
	if err != nil {
		if cmd.Image != nil {
			s.discardImage(image)
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, fmt.Errorf("failed to update banner: %w", err)
	}

	if cmd.Image != nil && current.Image != image {
		s.discardImage(current.Image)
	}
	return s.present(updated), nil
}

// DeleteBanner removes the banner and its uploaded image, if any
func (s *bannerServiceImpl) DeleteBanner(ctx context.Context, id uint) error {
	banner, err := s.store.GetBanner(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrBannerNotFound
		}
		return fmt.Errorf("failed to find banner: %w", err)
	}

	if err := s.store.DeleteBanner(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrBannerNotFound
		}
		return fmt.Errorf("failed to delete banner: %w", err)
	}

	s.discardImage(banner.Image)
	return nil
}

func (s *bannerServiceImpl) discardImage(ref string) {
	if ref == "" {
		return
	}
	if err := s.images.Remove(ref); err != nil {
		s.log.Warn("Failed to remove banner image", "image", ref, "error", err)
	}
}
