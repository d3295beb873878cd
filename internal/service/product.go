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

// ProductCommand is a create or update request for a product, filled from
// either a multipart form or a JSON body. Nil fields were not supplied.
type ProductCommand struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Discount    *int
	Features    *[]string
	ImageURL    *string
	Image       *multipart.FileHeader
}

// ProductService is the product catalog
type ProductService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	CreateProduct(ctx context.Context, cmd *ProductCommand) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uint, cmd *ProductCommand) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

// productServiceImpl implements ProductService
type productServiceImpl struct {
	store  store.ProductStore
	images upload.ImageStore
	log    *slog.Logger
}

// NewProductService creates a new product service
func NewProductService(s store.ProductStore, images upload.ImageStore, log *slog.Logger) ProductService {
	return &productServiceImpl{
		store:  s,
		images: images,
		log:    log.With("component", "product_service"),
	}
}

func (s *productServiceImpl) present(p *model.Product) *model.Product {
	p.ImageURL = s.images.Resolve(p.Image)
	if p.Features == nil {
		p.Features = []string{}
	}
	return p
}

// ListProducts returns all products, newest first
func (s *productServiceImpl) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	for i := range products {
		s.present(&products[i])
	}
	return products, nil
}

// GetProduct returns a single product
func (s *productServiceImpl) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return s.present(product), nil
}

func validateProductFields(cmd *ProductCommand, create bool) (*model.Percent, error) {
	if create {
		missing := fieldErrors{}
		if cmd.Title == nil || strings.TrimSpace(*cmd.Title) == "" {
			missing.add("title", "Title is required")
		}
		if cmd.Price == nil {
			missing.add("price", "Price is required")
		}
		if err := missing.err("Title and price are required"); err != nil {
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

// CreateProduct validates and persists a new product with its features
func (s *productServiceImpl) CreateProduct(ctx context.Context, cmd *ProductCommand) (*model.Product, error) {
	discount, err := validateProductFields(cmd, true)
	if err != nil {
		return nil, err
	}

	image, _, err := storeImage(s.images, cmd.Image, cmd.ImageURL)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &model.Product{
		Title:     strings.TrimSpace(*cmd.Title),
		Price:     *cmd.Price,
		Image:     image,
		Features:  []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if cmd.Description != nil {
		product.Description = *cmd.Description
	}
	if discount != nil {
		product.Discount = *discount
	}
	if cmd.Features != nil {
		product.Features = *cmd.Features
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		s.discardImage(image)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.log.Info("Product created", "id", product.ID, "features", len(product.Features))
	return s.present(product), nil
}

// UpdateProduct writes only the supplied fields. Supplied features replace the
// existing list; a new image replaces and removes the previous uploaded one.
func (s *productServiceImpl) UpdateProduct(ctx context.Context, id uint, cmd *ProductCommand) (*model.Product, error) {
	discount, err := validateProductFields(cmd, false)
	if err != nil {
		return nil, err
	}

	current, err := s.store.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	patch := model.ProductPatch{
		Description: cmd.Description,
		Price:       cmd.Price,
		Discount:    discount,
		Features:    cmd.Features,
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

	updated, err := s.store.UpdateProduct(ctx, id, patch)
	if err != nil {
		if replaced {
			s.discardImage(image)
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if replaced && current.Image != image {
		s.discardImage(current.Image)
	}
	return s.present(updated), nil
}

// DeleteProduct removes the product and its uploaded image, if any
func (s *productServiceImpl) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to find product: %w", err)
	}

	if err := s.store.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.discardImage(product.Image)
	return nil
}

func (s *productServiceImpl) discardImage(ref string) {
	if ref == "" {
		return
	}
	if err := s.images.Remove(ref); err != nil {
		s.log.Warn("Failed to remove product image", "image", ref, "error", err)
	}
}

// storeImage saves img when present, otherwise falls back to a non-empty url
func storeImage(images upload.ImageStore, img *multipart.FileHeader, url *string) (string, bool, error) {
	if img != nil {
		ref, err := images.Save(img)
		if err != nil {
			if errors.Is(err, upload.ErrUnsupportedType) || errors.Is(err, upload.ErrTooLarge) {
				return "", false, &ValidationError{Message: err.Error(), Details: map[string]string{"image": err.Error()}}
			}
			return "", false, fmt.Errorf("failed to save image: %w", err)
		}
		return ref, true, nil
	}
	if url == nil || strings.TrimSpace(*url) == "" {
		return "", false, nil
	}
	ref := strings.TrimSpace(*url)
	// upload references are only ever issued by Save
	if strings.HasPrefix(ref, upload.PublicPath+"/") {
		msg := "imageUrl must not point into " + upload.PublicPath
		return "", false, &ValidationError{Message: "Invalid image URL", Details: map[string]string{"imageUrl": msg}}
	}
	return ref, true, nil
}
