package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByOrderNumber finds a sale by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Sale, error)

	// FindAll finds sales matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)

	// Save creates or updates a sale with its items
	Save(ctx context.Context, sale *Sale) error

	// DeleteItems removes sale item rows consumed by returns
	DeleteItems(ctx context.Context, itemIDs []uuid.UUID) error

	// Count counts sales matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// SaleAdjustmentRepository persists return and reversal records
type SaleAdjustmentRepository interface {
	// Save creates an adjustment with its items
	Save(ctx context.Context, adjustment *SaleAdjustment) error

	// FindBySale finds all adjustments recorded against a sale
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]SaleAdjustment, error)
}

// PaymentRepository persists payment bookkeeping records
type PaymentRepository interface {
	// Save creates a payment record
	Save(ctx context.Context, payment *Payment) error

	// FindBySale finds all payments recorded against a sale
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]Payment, error)
}

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByOrderNumber finds a purchase order by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)

	// FindAll finds purchase orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)

	// Save creates or updates a purchase order with its items
	Save(ctx context.Context, po *PurchaseOrder) error

	// ReplaceItems deletes the old line set and inserts the new one
	ReplaceItems(ctx context.Context, poID uuid.UUID, items []PurchaseOrderItem) error

	// Delete deletes a purchase order and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts purchase orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// QuotationRepository defines the interface for quotation persistence
type QuotationRepository interface {
	// FindByID finds a quotation with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Quotation, error)

	// FindAll finds quotations matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Quotation, error)

	// Save creates or updates a quotation with its items
	Save(ctx context.Context, quotation *Quotation) error

	// ReplaceItems deletes the old line set and inserts the new one
	ReplaceItems(ctx context.Context, quotationID uuid.UUID, items []QuotationItem) error

	// Delete deletes a quotation and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts quotations matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// OutsourcingOrderRepository defines the interface for outsourcing order persistence
type OutsourcingOrderRepository interface {
	// FindByID finds an outsourcing order
	FindByID(ctx context.Context, id uuid.UUID) (*OutsourcingOrder, error)

	// FindBySale finds outsourcing orders spawned by a sale
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]OutsourcingOrder, error)

	// FindAll finds outsourcing orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]OutsourcingOrder, error)

	// Save creates or updates an outsourcing order
	Save(ctx context.Context, order *OutsourcingOrder) error

	// Count counts outsourcing orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ProfitRecordRepository persists per-line profit rows
type ProfitRecordRepository interface {
	// Save creates a profit record
	Save(ctx context.Context, record *ProfitRecord) error

	// FindByReference finds profit rows for an order
	FindByReference(ctx context.Context, referenceID uuid.UUID) ([]ProfitRecord, error)
}

// SequenceRepository hands out order-number sequence values. Next must
// lock the per-key counter row inside the caller's transaction so two
// concurrent creations in the same scope serialize instead of racing to
// the same number.
type SequenceRepository interface {
	// Next increments and returns the counter for the key
	Next(ctx context.Context, key string) (int64, error)
}
