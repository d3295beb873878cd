package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonyprachine123/test-2/internal/model"
	"github.com/jonyprachine123/test-2/internal/store"

	"github.com/shopspring/decimal"
)

// SeedDataManager fills an empty store with the sample catalog
type SeedDataManager struct {
	store store.Store
	log   *slog.Logger
}

// NewSeedDataManager creates a new seed data manager
func NewSeedDataManager(s store.Store, log *slog.Logger) *SeedDataManager {
	return &SeedDataManager{
		store: s,
		log:   log,
	}
}

// SeedAll inserts the sample product and banner when their tables are empty
func (s *SeedDataManager) SeedAll(ctx context.Context) error {
	if err := s.setupSampleProducts(ctx); err != nil {
		return fmt.Errorf("failed to setup sample products: %w", err)
	}

	if err := s.setupSampleBanners(ctx); err != nil {
		return fmt.Errorf("failed to setup sample banners: %w", err)
	}

	return nil
}

func (s *SeedDataManager) setupSampleProducts(ctx context.Context) error {
	count, err := s.store.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing products: %w", err)
	}
	if count > 0 {
		s.log.Debug("Sample products already exist, skipping creation")
		return nil
	}

	now := time.Now().UTC()
	product := &model.Product{
		Title: "Syp. Chylosin-DS 450ml",
		Description: "আপনি কি মুখের অরুচি, লিভারের দুর্বলতা, জন্ডিস সহ বিভিন্ন সমস্যায় ভুগছেন!\n" +
			"প্রাকৃতিক ঔষধ সেবন করুন, নিজেকে সারা জীবন সুস্থ্য রাখুন",
		Price:    decimal.NewFromInt(6000),
		Discount: 10,
		Image:    "https://www.prachinebangla.com/storage/app/public/product/2024-10-05-6701076548fd0.webp",
		Features: []string{
			"প্রাকৃতিক উপাদানে তৈরি",
			"কোন পার্শ্ব প্রতিক্রিয়া নেই",
			"লিভার রোগের জন্য কার্যকরী",
			"খাবারের রুচি বাড়ায়",
			"হজমে সহায়তা করে",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return err
	}

	s.log.Info("Created sample product", "id", product.ID, "title", product.Title)
	return nil
}

func (s *SeedDataManager) setupSampleBanners(ctx context.Context) error {
	count, err := s.store.CountBanners(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing banners: %w", err)
	}
	if count > 0 {
		s.log.Debug("Sample banners already exist, skipping creation")
		return nil
	}

	now := time.Now().UTC()
	link := "https://www.prachinebangla.com/product/65a4e9f5c8f9f"
	banner := &model.Banner{
		Title:       "প্রিমিয়াম হেডফোন",
		Description: "উচ্চ মানের সাউন্ড কোয়ালিটি সহ বিশেষ হেডফোন।",
		Price:       decimal.NewFromInt(5000),
		Discount:    5,
		Link:        &link,
		Image:       "https://www.prachinebangla.com/storage/app/public/product/2024-01-15-65a4e9f5c8f9f.jpg",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateBanner(ctx, banner); err != nil {
		return err
	}

	s.log.Info("Created sample banner", "id", banner.ID, "title", banner.Title)
	return nil
}
