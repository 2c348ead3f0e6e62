package repository

import (
	"context"

	"github.com/tofrito/till-api/internal/domain/repository"
	"github.com/tofrito/till-api/internal/infrastructure/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type kvRepository struct {
	db *gorm.DB
}

// NewKVRepository creates a KV store backed by the kv_entries table.
func NewKVRepository(db *gorm.DB) repository.KVStore {
	return &kvRepository{db: db}
}

// Get retrieves the value stored under key
func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry database.KVEntry
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	return entry.Value, true, nil
}

// Set stores value under key, replacing any previous value
func (r *kvRepository) Set(ctx context.Context, key string, value []byte) error {
	entry := database.KVEntry{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// Delete removes key; absent keys are not an error
func (r *kvRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&database.KVEntry{}).Error
}
