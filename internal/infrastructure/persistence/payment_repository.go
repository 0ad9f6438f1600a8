package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/usmanhardware/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Save creates a payment record
func (r *GormPaymentRepository) Save(ctx context.Context, payment *trade.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// FindBySale finds all payments recorded against a sale
func (r *GormPaymentRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]trade.Payment, error) {
	var payments []trade.Payment
	if err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("payment_date DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
