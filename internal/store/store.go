// Package store defines the persistence capabilities the storefront needs and
// provides a gorm-backed relational implementation and an in-process one.
package store

import (
	"context"
	"errors"

	"github.com/jonyprachine123/test-2/internal/model"
)

// ErrNotFound is returned when the addressed entity does not exist
var ErrNotFound = errors.New("record not found")

// ProductStore persists products and their ordered features
type ProductStore interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	// UpdateProduct applies patch atomically. A non-nil patch.Features replaces
	// every existing feature row or, on failure, none of them.
	UpdateProduct(ctx context.Context, id uint, patch model.ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	CountProducts(ctx context.Context) (int64, error)
}

// OrderStore persists orders
type OrderStore interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	CreateOrder(ctx context.Context, order *model.Order) error
	UpdateOrder(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

// BannerStore persists promotional banners
type BannerStore interface {
	ListBanners(ctx context.Context) ([]model.Banner, error)
	GetBanner(ctx context.Context, id uint) (*model.Banner, error)
	CreateBanner(ctx context.Context, banner *model.Banner) error
	UpdateBanner(ctx context.Context, id uint, patch model.BannerPatch) (*model.Banner, error)
	DeleteBanner(ctx context.Context, id uint) error
	CountBanners(ctx context.Context) (int64, error)
}

// ReviewStore persists customer reviews
type ReviewStore interface {
	ListReviews(ctx context.Context) ([]model.Review, error)
	GetReview(ctx context.Context, id uint) (*model.Review, error)
	CreateReview(ctx context.Context, review *model.Review) error
	UpdateReview(ctx context.Context, id uint, patch model.ReviewPatch) (*model.Review, error)
	DeleteReview(ctx context.Context, id uint) error
}

// Store is the full capability set. List operations return entities newest first.
type Store interface {
	ProductStore
	OrderStore
	BannerStore
	ReviewStore

	// Name identifies the backend, e.g. "sqlite" or "memory"
	Name() string
	Ping(ctx context.Context) error
	Close() error
}
