package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/jonyprachine123/test-2/internal/store"
)

// OpenStore returns the store selected by config.Driver, migrating relational
// schemas before handing them out.
func OpenStore(config DatabaseConfig, log *slog.Logger, debug bool) (store.Store, error) {
	if config.Driver == DriverMemory {
		return store.NewMemoryStore(), nil
	}

	db, err := ConnectDatabase(config, log, debug)
	if err != nil {
		return nil, err
	}
	if err := MigrateAllSchemas(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to migrate database schemas: %w", err)
	}
	return store.NewGormStore(db, config.Driver), nil
}
