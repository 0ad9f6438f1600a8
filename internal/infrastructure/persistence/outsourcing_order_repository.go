package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/usmanhardware/backend/internal/domain/shared"
	"github.com/usmanhardware/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormOutsourcingOrderRepository implements OutsourcingOrderRepository using GORM
type GormOutsourcingOrderRepository struct {
	db *gorm.DB
}

// NewGormOutsourcingOrderRepository creates a new GormOutsourcingOrderRepository
func NewGormOutsourcingOrderRepository(db *gorm.DB) *GormOutsourcingOrderRepository {
	return &GormOutsourcingOrderRepository{db: db}
}

// FindByID finds an outsourcing order
func (r *GormOutsourcingOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.OutsourcingOrder, error) {
	var order trade.OutsourcingOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindBySale finds outsourcing orders spawned by a sale
func (r *GormOutsourcingOrderRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]trade.OutsourcingOrder, error) {
	var orders []trade.OutsourcingOrder
	if err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll finds outsourcing orders matching the filter
func (r *GormOutsourcingOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.OutsourcingOrder, error) {
	var orders []trade.OutsourcingOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.OutsourcingOrder{}), filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an outsourcing order
func (r *GormOutsourcingOrderRepository) Save(ctx context.Context, order *trade.OutsourcingOrder) error {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		if isDuplicateKeyError(err) {
			return shared.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// Count counts outsourcing orders matching the filter
func (r *GormOutsourcingOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&trade.OutsourcingOrder{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormOutsourcingOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, OutsourcingOrderSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOutsourcingOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "sale_id":
			query = query.Where("sale_id = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		}
	}

	return query
}
