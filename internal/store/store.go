package store

import (
	"context"
	"fmt"

	"github.com/chadaustin/gmail-mbox-analyzer/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsertFunc adds one record and its labels to an in-progress rebuild.
type InsertFunc func(record *models.MessageRecord, labels []string) error

// Store defines write and bookkeeping access to the message index. The query
// side goes through the report package against the same database handle.
type Store interface {
	// Rebuild atomically replaces the entire index. It clears both tables,
	// then streams inserts through the closure handed to load, all inside one
	// transaction: a failing load rolls back and leaves prior contents
	// visible.
	Rebuild(ctx context.Context, load func(insert InsertFunc) error) error

	// GrandTotal sums the size of every indexed record.
	GrandTotal(ctx context.Context) (uint64, error)

	Ping(ctx context.Context) error
}

// sqliteStore implements Store using GORM
type sqliteStore struct {
	db *gorm.DB
}

// New creates a new Store instance
func New(db *gorm.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Rebuild(ctx context.Context, load func(insert InsertFunc) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM labels").Error; err != nil {
			return fmt.Errorf("failed to clear labels: %w", err)
		}
		if err := tx.Exec("DELETE FROM mail").Error; err != nil {
			return fmt.Errorf("failed to clear mail: %w", err)
		}

		insert := func(record *models.MessageRecord, labels []string) error {
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to insert record: %w", err)
			}
			for _, label := range labels {
				assignment := models.LabelAssignment{MailID: record.ID, Label: label}
				// Duplicate labels within one message collapse onto the
				// composite primary key.
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&assignment).Error; err != nil {
					return fmt.Errorf("failed to insert label %q: %w", label, err)
				}
			}
			return nil
		}

		return load(insert)
	})
}

func (s *sqliteStore) GrandTotal(ctx context.Context) (uint64, error) {
	var total uint64
	err := s.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(size), 0) FROM mail").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute grand total: %w", err)
	}
	return total, nil
}

func (s *sqliteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
