package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/usmanhardware/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormSaleAdjustmentRepository implements SaleAdjustmentRepository using
// GORM. Adjustments are audit records; once written they never change.
type GormSaleAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormSaleAdjustmentRepository creates a new GormSaleAdjustmentRepository
func NewGormSaleAdjustmentRepository(db *gorm.DB) *GormSaleAdjustmentRepository {
	return &GormSaleAdjustmentRepository{db: db}
}

// Save creates an adjustment with its items
func (r *GormSaleAdjustmentRepository) Save(ctx context.Context, adjustment *trade.SaleAdjustment) error {
	return r.db.WithContext(ctx).Create(adjustment).Error
}

// FindBySale finds all adjustments recorded against a sale
func (r *GormSaleAdjustmentRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]trade.SaleAdjustment, error) {
	var adjustments []trade.SaleAdjustment
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("sale_id = ?", saleID).
		Order("created_at DESC").
		Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}
