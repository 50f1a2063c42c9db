package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CREATE TABLE public.store_entries (
//     key        TEXT PRIMARY KEY,
//     value      JSONB NOT NULL,
//     updated_at TIMESTAMPTZ DEFAULT NOW()
// );

type storeEntryRow struct {
	Key       string         `gorm:"column:key;primaryKey"`
	Value     datatypes.JSON `gorm:"column:value"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (storeEntryRow) TableName() string {
	return "store_entries"
}

// StoreRepository is the Postgres-backed alternative to the Redis key-value
// store, satisfying the same contract.
type StoreRepository struct {
	DB *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{DB: db}
}

func (r *StoreRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("context error: %w", err)
	}

	var row storeEntryRow
	err := r.DB.WithContext(ctx).First(&row, "key = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query store_entries: %w", err)
	}

	return []byte(row.Value), true, nil
}

func (r *StoreRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	row := storeEntryRow{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now(),
	}

	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert store entry: %w", err)
	}

	return nil
}

func (r *StoreRepository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Delete(&storeEntryRow{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete store entry: %w", err)
	}

	return nil
}
