package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// LedgerRepository defines the interface for the append-only stock ledger.
// There is deliberately no update or delete.
type LedgerRepository interface {
	// Append persists a new ledger entry
	Append(ctx context.Context, entry *LedgerEntry) error

	// FindByID finds a ledger entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*LedgerEntry, error)

	// FindByProduct finds entries for a product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]LedgerEntry, error)

	// FindByReference finds entries carrying a reference (order number, adjustment id)
	FindByReference(ctx context.Context, reference string) ([]LedgerEntry, error)

	// FindLatestByProduct finds the most recent entry for a product
	FindLatestByProduct(ctx context.Context, productID uuid.UUID) (*LedgerEntry, error)

	// FindAll finds entries matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]LedgerEntry, error)

	// Count counts entries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
