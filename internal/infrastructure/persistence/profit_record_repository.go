package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/usmanhardware/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormProfitRecordRepository implements ProfitRecordRepository using GORM
type GormProfitRecordRepository struct {
	db *gorm.DB
}

// NewGormProfitRecordRepository creates a new GormProfitRecordRepository
func NewGormProfitRecordRepository(db *gorm.DB) *GormProfitRecordRepository {
	return &GormProfitRecordRepository{db: db}
}

// Save creates a profit record
func (r *GormProfitRecordRepository) Save(ctx context.Context, record *trade.ProfitRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByReference finds profit rows for an order
func (r *GormProfitRecordRepository) FindByReference(ctx context.Context, referenceID uuid.UUID) ([]trade.ProfitRecord, error) {
	var records []trade.ProfitRecord
	if err := r.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
