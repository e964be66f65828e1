package database

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/chadaustin/gmail-mbox-analyzer/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenWrite opens (creating if necessary) the index database for a rebuild.
// The index is always regenerable from the source mbox, so durability is
// traded for bulk-load speed: WAL journaling with synchronous=OFF.
func OpenWrite(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_synchronous=OFF", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// Single writer; concurrent write connections only contend for the lock.
	sqlDB.SetMaxOpenConns(1)

	slog.Info("opened index for writing", slog.String("path", path))
	return db, nil
}

// OpenRead opens an existing index read-only with a pool of poolSize
// connections so concurrent analytic requests do not serialize on one handle.
func OpenRead(path string, poolSize int) (*gorm.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("index database %s does not exist: %w", path, err)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(poolSize)
	sqlDB.SetMaxOpenConns(poolSize)

	slog.Info("opened index for reading", slog.String("path", path), slog.Int("pool_size", poolSize))
	return db, nil
}

// Migrate runs auto-migration for all models
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.MessageRecord{},
		&models.LabelAssignment{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
