package infrastructure

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jonyprachine123/test-2/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"` // sqlite file, or ":memory:"
	URL      string `yaml:"url"`  // postgres DSN/URL, takes precedence over the discrete fields
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
	Seed     bool   `yaml:"seed"`
}

// DefaultDatabaseConfig returns default database configuration for development
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Path:     "shop.db",
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "postgres",
		Name:     "storefront",
		SSLMode:  "disable",
		Seed:     true,
	}
}

// DSN returns the postgres connection string
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
		c.SSLMode,
	)
}

// ConnectDatabase opens the configured relational database using GORM
func ConnectDatabase(config DatabaseConfig, log *slog.Logger, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(config.Path)
	case DriverPostgres:
		dialector = postgres.Open(config.DSN())
	default:
		return nil, fmt.Errorf("driver %q is not a relational database", config.Driver)
	}

	level := logger.Warn
	if debug {
		level = logger.Info
	}
	gormConfig := &gorm.Config{
		Logger: logger.New(
			slogWriter{log: log},
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if config.Driver == DriverSQLite {
		// One connection: a ":memory:" database exists per connection, and
		// SQLite serializes writers anyway.
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

// MigrateAllSchemas creates or updates every storefront table
func MigrateAllSchemas(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Product{}); err != nil {
		return fmt.Errorf("failed to migrate Product table: %w", err)
	}

	if err := db.AutoMigrate(&model.ProductFeature{}); err != nil {
		return fmt.Errorf("failed to migrate ProductFeature table: %w", err)
	}

	if err := db.AutoMigrate(&model.Order{}); err != nil {
		return fmt.Errorf("failed to migrate Order table: %w", err)
	}

	if err := db.AutoMigrate(&model.Banner{}); err != nil {
		return fmt.Errorf("failed to migrate Banner table: %w", err)
	}

	if err := db.AutoMigrate(&model.Review{}); err != nil {
		return fmt.Errorf("failed to migrate Review table: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createIndexes creates the indexes used by the newest-first listings
func createIndexes(db *gorm.DB) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_product_features_product ON product_features(product_id, position)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_banners_created_at ON banners(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_created_at ON reviews(created_at)`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// slogWriter adapts slog to gorm's logger.Writer
type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...interface{}) {
	w.log.Info(fmt.Sprintf(format, args...), "component", "gorm")
}
