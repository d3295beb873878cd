package store

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/jonyprachine123/test-2/internal/model"
)

// MemoryStore keeps every entity in process memory. State lives only as long as
// the value; each instance is independent.
type MemoryStore struct {
	mu sync.RWMutex

	products      map[uint]model.Product
	nextProductID uint

	orders   map[string]model.Order
	orderSeq map[string]uint64
	seq      uint64

	banners      map[uint]model.Banner
	nextBannerID uint

	reviews      map[uint]model.Review
	nextReviewID uint
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[uint]model.Product),
		orders:   make(map[string]model.Order),
		orderSeq: make(map[string]uint64),
		banners:  make(map[uint]model.Banner),
		reviews:  make(map[uint]model.Review),
	}
}

// Name returns "memory"
func (s *MemoryStore) Name() string { return "memory" }

// Ping always succeeds
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op
func (s *MemoryStore) Close() error { return nil }

func newer(aTime, bTime time.Time, aKey, bKey uint64) bool {
	if !aTime.Equal(bTime) {
		return aTime.After(bTime)
	}
	return aKey > bKey
}

func cloneProduct(p model.Product) model.Product {
	p.Features = slices.Clone(p.Features)
	if p.Features == nil {
		p.Features = []string{}
	}
	return p
}

// ListProducts returns copies of all products, newest first
func (s *MemoryStore) ListProducts(context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, cloneProduct(p))
	}
	sort.Slice(products, func(i, j int) bool {
		return newer(products[i].CreatedAt, products[j].CreatedAt, uint64(products[i].ID), uint64(products[j].ID))
	})
	return products, nil
}

// GetProduct returns a copy of the product
func (s *MemoryStore) GetProduct(_ context.Context, id uint) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	p = cloneProduct(p)
	return &p, nil
}

// CreateProduct assigns the next ID and stores a copy
func (s *MemoryStore) CreateProduct(_ context.Context, product *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextProductID++
	product.ID = s.nextProductID
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	product.UpdatedAt = product.CreatedAt
	if product.Features == nil {
		product.Features = []string{}
	}
	s.products[product.ID] = cloneProduct(*product)
	return nil
}

// UpdateProduct builds the new version aside and swaps it in under the lock,
// so readers see either the old or the new feature list.
func (s *MemoryStore) UpdateProduct(_ context.Context, id uint, patch model.ProductPatch) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	next := cloneProduct(current)
	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Price != nil {
		next.Price = *patch.Price
	}
	if patch.Discount != nil {
		next.Discount = *patch.Discount
	}
	if patch.Image != nil {
		next.Image = *patch.Image
	}
	if patch.Features != nil {
		next.Features = slices.Clone(*patch.Features)
	}
	next.UpdatedAt = time.Now().UTC()

	s.products[id] = next
	out := cloneProduct(next)
	return &out, nil
}

// DeleteProduct removes a product
func (s *MemoryStore) DeleteProduct(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

// CountProducts returns the number of products
func (s *MemoryStore) CountProducts(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}

// ListOrders returns all orders, newest first
func (s *MemoryStore) ListOrders(context.Context) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return newer(orders[i].CreatedAt, orders[j].CreatedAt, s.orderSeq[orders[i].ID], s.orderSeq[orders[j].ID])
	})
	return orders, nil
}

// GetOrder returns a copy of the order
func (s *MemoryStore) GetOrder(_ context.Context, id string) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

// CreateOrder stores an order under its pre-generated ID
func (s *MemoryStore) CreateOrder(_ context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	order.UpdatedAt = order.CreatedAt
	s.seq++
	s.orders[order.ID] = *order
	s.orderSeq[order.ID] = s.seq
	return nil
}

// UpdateOrder applies the supplied fields
func (s *MemoryStore) UpdateOrder(_ context.Context, id string, patch model.OrderPatch) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.CustomerName != nil {
		o.CustomerName = *patch.CustomerName
	}
	if patch.Email != nil {
		email := *patch.Email
		o.Email = &email
	}
	if patch.Phone != nil {
		o.Phone = *patch.Phone
	}
	if patch.Address != nil {
		o.Address = *patch.Address
	}
	if patch.ProductID != nil {
		o.ProductID = *patch.ProductID
	}
	if patch.ProductTitle != nil {
		o.ProductTitle = *patch.ProductTitle
	}
	if patch.Quantity != nil {
		o.Quantity = *patch.Quantity
	}
	if patch.TotalPrice != nil {
		o.TotalPrice = *patch.TotalPrice
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	o.UpdatedAt = time.Now().UTC()

	s.orders[id] = o
	return &o, nil
}

// DeleteOrder removes an order
func (s *MemoryStore) DeleteOrder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return ErrNotFound
	}
	delete(s.orders, id)
	delete(s.orderSeq, id)
	return nil
}

// ListBanners returns all banners, newest first
func (s *MemoryStore) ListBanners(context.Context) ([]model.Banner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	banners := make([]model.Banner, 0, len(s.banners))
	for _, b := range s.banners {
		banners = append(banners, b)
	}
	sort.Slice(banners, func(i, j int) bool {
		return newer(banners[i].CreatedAt, banners[j].CreatedAt, uint64(banners[i].ID), uint64(banners[j].ID))
	})
	return banners, nil
}

// GetBanner returns a copy of the banner
func (s *MemoryStore) GetBanner(_ context.Context, id uint) (*model.Banner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.banners[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

// CreateBanner assigns the next ID and stores the banner
func (s *MemoryStore) CreateBanner(_ context.Context, banner *model.Banner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextBannerID++
	banner.ID = s.nextBannerID
	if banner.CreatedAt.IsZero() {
		banner.CreatedAt = time.Now().UTC()
	}
	banner.UpdatedAt = banner.CreatedAt
	s.banners[banner.ID] = *banner
	return nil
}

// UpdateBanner applies the supplied fields
func (s *MemoryStore) UpdateBanner(_ context.Context, id uint, patch model.BannerPatch) (*model.Banner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.banners[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.Price != nil {
		b.Price = *patch.Price
	}
	if patch.Discount != nil {
		b.Discount = *patch.Discount
	}
	if patch.Link != nil {
		link := *patch.Link
		b.Link = &link
	}
	if patch.Image != nil {
		b.Image = *patch.Image
	}
	b.UpdatedAt = time.Now().UTC()

	s.banners[id] = b
	return &b, nil
}

// DeleteBanner removes a banner
func (s *MemoryStore) DeleteBanner(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.banners[id]; !ok {
		return ErrNotFound
	}
	delete(s.banners, id)
	return nil
}

// CountBanners returns the number of banners
func (s *MemoryStore) CountBanners(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.banners)), nil
}

// ListReviews returns all reviews, newest first
func (s *MemoryStore) ListReviews(context.Context) ([]model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := make([]model.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		reviews = append(reviews, r)
	}
	sort.Slice(reviews, func(i, j int) bool {
		return newer(reviews[i].CreatedAt, reviews[j].CreatedAt, uint64(reviews[i].ID), uint64(reviews[j].ID))
	})
	return reviews, nil
}

// GetReview returns a copy of the review
func (s *MemoryStore) GetReview(_ context.Context, id uint) (*model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

// CreateReview assigns the next ID and stores the review
func (s *MemoryStore) CreateReview(_ context.Context, review *model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextReviewID++
	review.ID = s.nextReviewID
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	s.reviews[review.ID] = *review
	return nil
}

// UpdateReview rewrites the review
func (s *MemoryStore) UpdateReview(_ context.Context, id uint, patch model.ReviewPatch) (*model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	r.CustomerName = patch.CustomerName
	r.Rating = patch.Rating
	r.Comment = patch.Comment
	updatedAt := patch.UpdatedAt
	r.UpdatedAt = &updatedAt

	s.reviews[id] = r
	return &r, nil
}

// DeleteReview removes a review
func (s *MemoryStore) DeleteReview(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*GormStore)(nil)
)
