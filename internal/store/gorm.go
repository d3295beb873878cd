package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonyprachine123/test-2/internal/model"

	"gorm.io/gorm"
)

// GormStore is a Store backed by a relational database through gorm
type GormStore struct {
	db     *gorm.DB
	driver string
}

// NewGormStore wraps an open, migrated gorm connection
func NewGormStore(db *gorm.DB, driver string) *GormStore {
	return &GormStore{db: db, driver: driver}
}

// Name returns the database driver in use
func (s *GormStore) Name() string {
	return s.driver
}

// Ping checks the underlying connection
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

const newestFirst = "created_at DESC, id DESC"

// order IDs carry a random suffix, so equal timestamps fall back to insertion order
const ordersNewestFirst = "created_at DESC, seq DESC"

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ListProducts returns every product with its features attached
func (s *GormStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := s.db.WithContext(ctx).Order(newestFirst).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if err := s.attachFeatures(ctx, s.db, products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns a single product with its features
func (s *GormStore) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	return s.getProduct(ctx, s.db, id)
}

func (s *GormStore) getProduct(ctx context.Context, db *gorm.DB, id uint) (*model.Product, error) {
	var product model.Product
	if err := db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, notFound(err)
	}
	products := []model.Product{product}
	if err := s.attachFeatures(ctx, db, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (s *GormStore) attachFeatures(ctx context.Context, db *gorm.DB, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uint, len(products))
	for i := range products {
		ids[i] = products[i].ID
		products[i].Features = []string{}
	}

	var rows []model.ProductFeature
	if err := db.WithContext(ctx).
		Where("product_id IN ?", ids).
		Order("product_id, position").
		Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load product features: %w", err)
	}

	byProduct := make(map[uint][]string, len(products))
	for _, row := range rows {
		byProduct[row.ProductID] = append(byProduct[row.ProductID], row.Feature)
	}
	for i := range products {
		if features, ok := byProduct[products[i].ID]; ok {
			products[i].Features = features
		}
	}
	return nil
}

func featureRows(productID uint, features []string, now time.Time) []model.ProductFeature {
	rows := make([]model.ProductFeature, len(features))
	for i, f := range features {
		rows[i] = model.ProductFeature{ProductID: productID, Position: i, Feature: f, CreatedAt: now}
	}
	return rows
}

// CreateProduct inserts the product row and then its feature rows in one transaction
func (s *GormStore) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		if len(product.Features) == 0 {
			product.Features = []string{}
			return nil
		}
		rows := featureRows(product.ID, product.Features, product.CreatedAt)
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to create product features: %w", err)
		}
		return nil
	})
}

// UpdateProduct writes only the supplied columns; features are replaced wholesale
func (s *GormStore) UpdateProduct(ctx context.Context, id uint, patch model.ProductPatch) (*model.Product, error) {
	var updated *model.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.Select("id").Where("id = ?", id).First(&existing).Error; err != nil {
			return notFound(err)
		}

		now := time.Now().UTC()
		updates := map[string]any{"updated_at": now}
		if patch.Title != nil {
			updates["title"] = *patch.Title
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}
		if patch.Price != nil {
			updates["price"] = *patch.Price
		}
		if patch.Discount != nil {
			updates["discount"] = *patch.Discount
		}
		if patch.Image != nil {
			updates["image"] = *patch.Image
		}
		if err := tx.Model(&model.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}

		if patch.Features != nil {
			if err := tx.Where("product_id = ?", id).Delete(&model.ProductFeature{}).Error; err != nil {
				return fmt.Errorf("failed to delete product features: %w", err)
			}
			if features := *patch.Features; len(features) > 0 {
				rows := featureRows(id, features, now)
				if err := tx.Create(&rows).Error; err != nil {
					return fmt.Errorf("failed to create product features: %w", err)
				}
			}
		}

		product, err := s.getProduct(ctx, tx, id)
		if err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProduct removes the product and its feature rows. Orders are left untouched.
func (s *GormStore) DeleteProduct(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.Product{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductFeature{}).Error; err != nil {
			return fmt.Errorf("failed to delete product features: %w", err)
		}
		return nil
	})
}

// CountProducts returns the number of products
func (s *GormStore) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Product{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// ListOrders returns every order, newest first
func (s *GormStore) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := s.db.WithContext(ctx).Order(ordersNewestFirst).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns a single order
func (s *GormStore) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

// CreateOrder inserts an order whose ID has already been generated and
// assigns it the next insertion sequence
func (s *GormStore) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int64
		if err := tx.Model(&model.Order{}).Select("COALESCE(MAX(seq), 0)").Scan(&last).Error; err != nil {
			return fmt.Errorf("failed to read order sequence: %w", err)
		}
		order.Seq = last + 1
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
}

// UpdateOrder writes only the supplied columns
func (s *GormStore) UpdateOrder(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error) {
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if patch.CustomerName != nil {
		updates["customer_name"] = *patch.CustomerName
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	if patch.ProductID != nil {
		updates["product_id"] = *patch.ProductID
	}
	if patch.ProductTitle != nil {
		updates["product_title"] = *patch.ProductTitle
	}
	if patch.Quantity != nil {
		updates["quantity"] = *patch.Quantity
	}
	if patch.TotalPrice != nil {
		updates["total_price"] = *patch.TotalPrice
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}

	var order model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return tx.Where("id = ?", id).First(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder removes an order
func (s *GormStore) DeleteOrder(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Order{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBanners returns every banner, newest first
func (s *GormStore) ListBanners(ctx context.Context) ([]model.Banner, error) {
	var banners []model.Banner
	if err := s.db.WithContext(ctx).Order(newestFirst).Find(&banners).Error; err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}

// GetBanner returns a single banner
func (s *GormStore) GetBanner(ctx context.Context, id uint) (*model.Banner, error) {
	var banner model.Banner
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&banner).Error; err != nil {
		return nil, notFound(err)
	}
	return &banner, nil
}

// CreateBanner inserts a banner
func (s *GormStore) CreateBanner(ctx context.Context, banner *model.Banner) error {
	if err := s.db.WithContext(ctx).Create(banner).Error; err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}
	return nil
}

// UpdateBanner writes only the supplied columns
func (s *GormStore) UpdateBanner(ctx context.Context, id uint, patch model.BannerPatch) (*model.Banner, error) {
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.Discount != nil {
		updates["discount"] = *patch.Discount
	}
	if patch.Link != nil {
		updates["link"] = *patch.Link
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}

	var banner model.Banner
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&banner).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Model(&banner).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update banner: %w", err)
		}
		return tx.Where("id = ?", id).First(&banner).Error
	})
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

// DeleteBanner removes a banner
func (s *GormStore) DeleteBanner(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Banner{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete banner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountBanners returns the number of banners
func (s *GormStore) CountBanners(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Banner{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count banners: %w", err)
	}
	return n, nil
}

// ListReviews returns every review, newest first
func (s *GormStore) ListReviews(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	if err := s.db.WithContext(ctx).Order(newestFirst).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// GetReview returns a single review
func (s *GormStore) GetReview(ctx context.Context, id uint) (*model.Review, error) {
	var review model.Review
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		return nil, notFound(err)
	}
	return &review, nil
}

// CreateReview inserts a review
func (s *GormStore) CreateReview(ctx context.Context, review *model.Review) error {
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// UpdateReview rewrites name, rating and comment and stamps updated_at
func (s *GormStore) UpdateReview(ctx context.Context, id uint, patch model.ReviewPatch) (*model.Review, error) {
	var review model.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&review).Error; err != nil {
			return notFound(err)
		}
		updates := map[string]any{
			"customer_name": patch.CustomerName,
			"rating":        patch.Rating,
			"comment":       patch.Comment,
			"updated_at":    patch.UpdatedAt,
		}
		if err := tx.Model(&review).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}
		return tx.Where("id = ?", id).First(&review).Error
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes a review
func (s *GormStore) DeleteReview(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Review{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
