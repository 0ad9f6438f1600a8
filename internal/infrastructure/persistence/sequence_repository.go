package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// OrderSequence is a per-scope counter row backing order number generation
type OrderSequence struct {
	Key       string    `gorm:"type:varchar(50);primaryKey"`
	Value     int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (OrderSequence) TableName() string {
	return "order_sequences"
}

// GormSequenceRepository implements SequenceRepository using GORM
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next increments and returns the counter for the key. The upsert takes a
// row lock on the counter, so concurrent callers in separate transactions
// serialize and each receives a distinct value.
func (r *GormSequenceRepository) Next(ctx context.Context, key string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO order_sequences (key, value, updated_at)
		VALUES (?, 1, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = order_sequences.value + 1, updated_at = NOW()
		RETURNING value`, key).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}
