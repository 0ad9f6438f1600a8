package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	inventoryapp "github.com/usmanhardware/backend/internal/application/inventory"
	"github.com/usmanhardware/backend/internal/domain/inventory"
	"github.com/usmanhardware/backend/internal/domain/shared"
	"github.com/usmanhardware/backend/internal/domain/trade"
	"github.com/usmanhardware/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PurchaseOrderService manages the purchase order lifecycle. Supplier
// total_purchases is raised at creation time, not receipt, so every
// total revision, supplier change, cancellation and deletion must
// reconcile the supplier ledger symmetrically.
type PurchaseOrderService struct {
	scope  inventoryapp.TransactionScope
	stock  *inventoryapp.StockService
	logger *zap.Logger
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(scope inventoryapp.TransactionScope, stock *inventoryapp.StockService, logger *zap.Logger) *PurchaseOrderService {
	return &PurchaseOrderService{
		scope:  scope,
		stock:  stock,
		logger: logger,
	}
}

// Create creates a draft purchase order and books its total onto the
// supplier's purchase history immediately.
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "A purchase order requires at least one item")
	}

	var po *trade.PurchaseOrder
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		supplier, err := repos.Suppliers().FindByIDForUpdate(ctx, req.SupplierID)
		if err != nil {
			return err
		}
		if !supplier.IsActive() {
			return shared.NewDomainErrorWithDetails("NOT_FOUND",
				fmt.Sprintf("Supplier %s is not active", supplier.Name),
				map[string]interface{}{"supplier_id": supplier.ID.String()})
		}

		now := time.Now()
		seq, err := repos.Sequences().Next(ctx, trade.OrderScopePurchase.SequenceKey(now))
		if err != nil {
			return err
		}
		orderNumber, err := trade.FormatOrderNumber(trade.OrderScopePurchase, now, seq)
		if err != nil {
			return err
		}

		po, err = trade.NewPurchaseOrder(orderNumber, supplier.ID, req.ExpectedDelivery, req.Notes)
		if err != nil {
			return err
		}

		for _, line := range req.Items {
			product, err := repos.Products().FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive() {
				return shared.NewDomainErrorWithDetails("NOT_FOUND",
					fmt.Sprintf("Product %s is not active", product.SKU),
					map[string]interface{}{"product_id": product.ID.String()})
			}
			if err := po.AddItem(product.ID, product.Name, line.Quantity, line.UnitPrice); err != nil {
				return err
			}
		}

		if err := repos.PurchaseOrders().Save(ctx, po); err != nil {
			return err
		}

		if err := supplier.AddPurchases(po.Total); err != nil {
			return err
		}
		return repos.Suppliers().Save(ctx, supplier)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase order created",
		zap.String("order_number", po.OrderNumber),
		zap.String("total", po.Total.String()))

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// Update patches a purchase order. Items are replaced wholesale when
// provided. The supplier ledger is reconciled from each supplier's
// effective contribution before and after the patch, which covers all
// four cases: same-supplier total change, supplier change, moving into
// cancelled, and moving out of cancelled.
func (s *PurchaseOrderService) Update(ctx context.Context, poID uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	var po *trade.PurchaseOrder
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.PurchaseOrders().FindByID(ctx, poID)
		if err != nil {
			return err
		}
		po = found

		hasContentPatch := req.SupplierID != nil || req.ExpectedDelivery != nil || req.Notes != nil || req.Items != nil
		if hasContentPatch && !po.CanModify() {
			return shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Cannot modify purchase order in %s status", po.Status))
		}

		oldSupplierID := po.SupplierID
		oldTotal := po.Total
		wasCancelled := po.IsCancelled()

		if req.SupplierID != nil && *req.SupplierID != po.SupplierID {
			if _, err := repos.Suppliers().FindByID(ctx, *req.SupplierID); err != nil {
				return err
			}
			if err := po.ChangeSupplier(*req.SupplierID); err != nil {
				return err
			}
		}
		if req.ExpectedDelivery != nil {
			if err := po.SetExpectedDelivery(req.ExpectedDelivery); err != nil {
				return err
			}
		}
		if req.Notes != nil {
			po.SetNotes(*req.Notes)
		}
		if req.Items != nil {
			items := make([]trade.PurchaseOrderItem, 0, len(req.Items))
			for _, line := range req.Items {
				product, err := repos.Products().FindByID(ctx, line.ProductID)
				if err != nil {
					return err
				}
				item, err := trade.NewPurchaseOrderItem(po.ID, product.ID, product.Name, line.Quantity, line.UnitPrice)
				if err != nil {
					return err
				}
				items = append(items, *item)
			}
			if err := po.ReplaceItems(items); err != nil {
				return err
			}
			if err := repos.PurchaseOrders().ReplaceItems(ctx, po.ID, po.Items); err != nil {
				return err
			}
		}
		if req.Status != nil {
			target := trade.PurchaseOrderStatus(*req.Status)
			if target == trade.PurchaseOrderStatusCancelled {
				if err := po.Cancel(); err != nil {
					return err
				}
			} else if err := po.UpdateStatus(target); err != nil {
				return err
			}
		}

		if err := s.reconcileSupplierTotals(ctx, repos, oldSupplierID, oldTotal, wasCancelled, po); err != nil {
			return err
		}

		return repos.PurchaseOrders().Save(ctx, po)
	})
	if err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// Receive books a delivery against the order. Good lines add stock
// through the stock service; damaged lines update receipt bookkeeping
// without touching stock. At least one line must receive a positive
// quantity. The order resolves to received when every line is fully
// received, else partially_received.
func (s *PurchaseOrderService) Receive(ctx context.Context, poID uuid.UUID, req ReceivePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_orders", "receive",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, poID.String()))
	defer span.End()

	var po *trade.PurchaseOrder
	var stocked []uuid.UUID
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.PurchaseOrders().FindByID(ctx, poID)
		if err != nil {
			return err
		}
		po = found

		if !po.CanReceive() {
			return shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Cannot receive items on a %s purchase order", po.Status))
		}

		anyReceived := false
		for _, line := range req.Items {
			if !line.QuantityReceived.IsPositive() {
				continue
			}

			condition := inventory.ItemConditionGood
			if line.Condition != "" {
				condition = inventory.ItemCondition(line.Condition)
				if !condition.IsValid() {
					return shared.NewDomainError("INVALID_CONDITION",
						fmt.Sprintf("Unknown item condition %q", line.Condition))
				}
			}

			if err := po.ReceiveItem(line.ProductID, line.QuantityReceived, condition); err != nil {
				return err
			}
			anyReceived = true

			if condition == inventory.ItemConditionGood {
				_, err := s.stock.Adjust(ctx, repos, inventoryapp.AdjustStockInput{
					ProductID: line.ProductID,
					Delta:     line.QuantityReceived,
					Movement:  inventory.MovementTypePurchase,
					Reference: po.OrderNumber,
					Condition: &condition,
				})
				if err != nil {
					return err
				}
				stocked = append(stocked, line.ProductID)
			}
		}

		if !anyReceived {
			return shared.NewDomainError("NO_ITEMS_RECEIVED", "No items were received")
		}

		po.ResolveReceiptStatus()
		if req.Notes != "" {
			po.SetNotes(req.Notes)
		}

		return repos.PurchaseOrders().Save(ctx, po)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderNumber, po.OrderNumber,
		telemetry.SpanAttrOrderStatus, string(po.Status))
	telemetry.SetOK(span)

	s.stock.InvalidateProducts(ctx, stocked...)

	s.logger.Info("purchase order received",
		zap.String("order_number", po.OrderNumber),
		zap.String("status", string(po.Status)))

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// Delete removes a draft purchase order and reverses the supplier
// total booked at creation.
func (s *PurchaseOrderService) Delete(ctx context.Context, poID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		po, err := repos.PurchaseOrders().FindByID(ctx, poID)
		if err != nil {
			return err
		}
		if !po.CanDelete() {
			return shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Cannot delete a %s purchase order", po.Status))
		}

		supplier, err := repos.Suppliers().FindByIDForUpdate(ctx, po.SupplierID)
		if err != nil {
			return err
		}
		if err := supplier.SubtractPurchases(po.Total); err != nil {
			return err
		}
		if err := repos.Suppliers().Save(ctx, supplier); err != nil {
			return err
		}

		return repos.PurchaseOrders().Delete(ctx, po.ID)
	})
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, poID uuid.UUID) (*PurchaseOrderResponse, error) {
	var po *trade.PurchaseOrder
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.PurchaseOrders().FindByID(ctx, poID)
		if err != nil {
			return err
		}
		po = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// List retrieves purchase orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter PurchaseOrderListFilter) ([]PurchaseOrderResponse, int64, error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	var orders []trade.PurchaseOrder
	var total int64
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.PurchaseOrders().FindAll(ctx, domainFilter)
		if err != nil {
			return err
		}
		count, err := repos.PurchaseOrders().Count(ctx, domainFilter)
		if err != nil {
			return err
		}
		orders = found
		total = count
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PurchaseOrderResponse, 0, len(orders))
	for idx := range orders {
		responses = append(responses, ToPurchaseOrderResponse(&orders[idx]))
	}
	return responses, total, nil
}

// reconcileSupplierTotals compares each supplier's effective
// contribution before and after an update. A cancelled order
// contributes nothing; otherwise the order contributes its total to
// its supplier. The diff is applied per supplier, which resolves the
// same-supplier total change, the supplier swap, and both directions
// of a cancellation flip without branching on their combinations.
func (s *PurchaseOrderService) reconcileSupplierTotals(ctx context.Context, repos inventoryapp.TransactionalRepositories, oldSupplierID uuid.UUID, oldTotal decimal.Decimal, wasCancelled bool, po *trade.PurchaseOrder) error {
	oldContribution := oldTotal
	if wasCancelled {
		oldContribution = decimal.Zero
	}
	newContribution := po.Total
	if po.IsCancelled() {
		newContribution = decimal.Zero
	}

	if oldSupplierID == po.SupplierID {
		diff := newContribution.Sub(oldContribution)
		if diff.IsZero() {
			return nil
		}
		supplier, err := repos.Suppliers().FindByIDForUpdate(ctx, oldSupplierID)
		if err != nil {
			return err
		}
		if diff.IsPositive() {
			if err := supplier.AddPurchases(diff); err != nil {
				return err
			}
		} else if err := supplier.SubtractPurchases(diff.Neg()); err != nil {
			return err
		}
		return repos.Suppliers().Save(ctx, supplier)
	}

	if oldContribution.IsPositive() {
		oldSupplier, err := repos.Suppliers().FindByIDForUpdate(ctx, oldSupplierID)
		if err != nil {
			return err
		}
		if err := oldSupplier.SubtractPurchases(oldContribution); err != nil {
			return err
		}
		if err := repos.Suppliers().Save(ctx, oldSupplier); err != nil {
			return err
		}
	}
	if newContribution.IsPositive() {
		newSupplier, err := repos.Suppliers().FindByIDForUpdate(ctx, po.SupplierID)
		if err != nil {
			return err
		}
		if err := newSupplier.AddPurchases(newContribution); err != nil {
			return err
		}
		if err := repos.Suppliers().Save(ctx, newSupplier); err != nil {
			return err
		}
	}
	return nil
}
