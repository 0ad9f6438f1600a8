package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/usmanhardware/backend/internal/domain/inventory"
	"github.com/usmanhardware/backend/internal/domain/shared"
	"github.com/usmanhardware/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ProductCacheInvalidator drops a product's cached read state after its
// stock changed. A nil invalidator is allowed.
type ProductCacheInvalidator interface {
	InvalidateProduct(ctx context.Context, productID uuid.UUID) error
}

// StockService is the only code path allowed to change a product's
// stock. Every mutation locks the product row, enforces the
// non-negative invariant, writes the new stock value, and appends
// exactly one ledger entry, all inside the caller's transaction. A
// stock write can never be persisted without its ledger row or vice
// versa.
type StockService struct {
	scope  TransactionScope
	cache  ProductCacheInvalidator
	logger *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(scope TransactionScope, logger *zap.Logger) *StockService {
	return &StockService{
		scope:  scope,
		logger: logger,
	}
}

// SetCacheInvalidator wires the product read cache (optional)
func (s *StockService) SetCacheInvalidator(cache ProductCacheInvalidator) {
	s.cache = cache
}

// Adjust applies one signed stock delta inside the caller's transaction.
// The engines call this once per affected line; they never touch
// Product.Stock themselves.
func (s *StockService) Adjust(ctx context.Context, repos TransactionalRepositories, input AdjustStockInput) (*StockAdjustment, error) {
	if !input.Movement.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type")
	}
	if input.Delta.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock delta cannot be zero")
	}

	product, err := repos.Products().FindByIDForUpdate(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() && !input.AllowInactive {
		return nil, shared.NewDomainErrorWithDetails("NOT_FOUND",
			fmt.Sprintf("Product %s is not active", product.SKU),
			map[string]interface{}{"product_id": product.ID.String()})
	}

	balanceBefore := product.Stock
	balanceAfter := balanceBefore.Add(input.Delta)
	if balanceAfter.IsNegative() {
		return nil, shared.NewDomainErrorWithDetails("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for %s: requested %s, available %s", product.SKU, input.Delta.Neg(), balanceBefore),
			map[string]interface{}{
				"product_id": product.ID.String(),
				"requested":  input.Delta.Neg().String(),
				"available":  balanceBefore.String(),
			})
	}

	entry, err := inventory.NewLedgerEntry(product.ID, input.Movement, input.Delta, balanceBefore, input.Reference, input.Reason)
	if err != nil {
		return nil, err
	}
	if input.Condition != nil {
		if entry, err = entry.WithCondition(*input.Condition); err != nil {
			return nil, err
		}
	}

	if err := product.ApplyStockChange(balanceAfter); err != nil {
		return nil, err
	}
	if err := repos.Products().Save(ctx, product); err != nil {
		return nil, err
	}
	if err := repos.Ledger().Append(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Debug("stock adjusted",
		zap.String("product_id", product.ID.String()),
		zap.String("movement", input.Movement.String()),
		zap.String("delta", input.Delta.String()),
		zap.String("balance_after", balanceAfter.String()),
		zap.String("reference", input.Reference))

	return &StockAdjustment{
		ProductID:     product.ID,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		LedgerEntryID: entry.ID,
	}, nil
}

// ManualAdjustment applies a stock-taking correction in its own
// transaction and invalidates the product cache once it commits.
func (s *StockService) ManualAdjustment(ctx context.Context, input ManualAdjustmentInput) (*StockAdjustment, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "stock", "manual_adjustment",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, input.ProductID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrMovementType, string(input.Movement)))
	defer span.End()

	switch input.Movement {
	case inventory.MovementTypeAdjustment, inventory.MovementTypeRestock, inventory.MovementTypeDamage:
	default:
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Manual adjustments must be adjustment, restock, or damage movements")
	}
	if input.Reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "A reason is required for manual adjustments")
	}

	var result *StockAdjustment
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		adjusted, err := s.Adjust(ctx, repos, AdjustStockInput{
			ProductID: input.ProductID,
			Delta:     input.Delta,
			Movement:  input.Movement,
			Reference: "manual",
			Reason:    input.Reason,
		})
		if err != nil {
			return err
		}
		result = adjusted
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetOK(span)
	s.InvalidateProducts(ctx, input.ProductID)

	return result, nil
}

// GetLedger returns a product's movement history, newest first
func (s *StockService) GetLedger(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]LedgerEntryDTO, error) {
	var entries []inventory.LedgerEntry
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.Ledger().FindByProduct(ctx, productID, filter)
		if err != nil {
			return err
		}
		entries = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]LedgerEntryDTO, 0, len(entries))
	for idx := range entries {
		dtos = append(dtos, ToLedgerEntryDTO(&entries[idx]))
	}
	return dtos, nil
}

// InvalidateProducts drops the cached read state of every product whose
// stock changed. Engines call this after their transaction commits, so
// a reader can never re-populate the cache from pre-commit state.
// Failures are logged and swallowed; the cache self-heals on expiry.
func (s *StockService) InvalidateProducts(ctx context.Context, productIDs ...uuid.UUID) {
	if s.cache == nil || len(productIDs) == 0 {
		return
	}
	seen := make(map[uuid.UUID]struct{}, len(productIDs))
	for _, productID := range productIDs {
		if _, done := seen[productID]; done {
			continue
		}
		seen[productID] = struct{}{}
		if err := s.cache.InvalidateProduct(ctx, productID); err != nil {
			s.logger.Warn("failed to invalidate product cache",
				zap.String("product_id", productID.String()),
				zap.Error(err))
		}
	}
}
