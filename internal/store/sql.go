package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore persists cells as rows of the store_entries table. It works with the
// sqlite and postgres gorm dialectors.
type SQLStore struct {
	db     *gorm.DB
	prefix string
	locks  keyLocks
}

// NewSQLStore creates a SQLStore. The table must already be migrated.
func NewSQLStore(db *gorm.DB, prefix string) *SQLStore {
	return &SQLStore{db: db, prefix: prefix}
}

func (s *SQLStore) Name() string { return s.db.Dialector.Name() }

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry models.StoreEntry
	err := s.db.WithContext(ctx).Where("entry_key = ?", s.prefix+key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *SQLStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	unlock := s.locks.lock(key)
	defer unlock()

	fullKey := s.prefix + key
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		// sqlite serializes writers itself and rejects FOR UPDATE.
		if tx.Dialector.Name() == "postgres" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var entry models.StoreEntry
		exists := true
		findErr := query.Where("entry_key = ?", fullKey).First(&entry).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			exists = false
		case findErr != nil:
			return findErr
		}

		next, err := fn(entry.Value, exists)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if exists {
			return tx.Model(&models.StoreEntry{}).
				Where("entry_key = ?", fullKey).
				Updates(map[string]any{"value": next, "updated_at": now}).Error
		}
		return tx.Create(&models.StoreEntry{Key: fullKey, Value: next, UpdatedAt: now}).Error
	})
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", key, err)
	}
	return nil
}
