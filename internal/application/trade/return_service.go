package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	inventoryapp "github.com/usmanhardware/backend/internal/application/inventory"
	"github.com/usmanhardware/backend/internal/domain/inventory"
	"github.com/usmanhardware/backend/internal/domain/partner"
	"github.com/usmanhardware/backend/internal/domain/shared"
	"github.com/usmanhardware/backend/internal/domain/trade"
	"github.com/usmanhardware/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReturnService handles partial returns and full reversals against
// sales. Each operation writes one adjustment record, mutates the
// sale's own lines to reflect what the customer still holds, and
// restocks through the stock service where requested, all in one
// transaction.
type ReturnService struct {
	scope  inventoryapp.TransactionScope
	stock  *inventoryapp.StockService
	events shared.EventPublisher
	logger *zap.Logger
}

// NewReturnService creates a new ReturnService
func NewReturnService(scope inventoryapp.TransactionScope, stock *inventoryapp.StockService, logger *zap.Logger) *ReturnService {
	return &ReturnService{
		scope:  scope,
		stock:  stock,
		logger: logger,
	}
}

// SetEventPublisher wires the post-commit event sink (optional)
func (s *ReturnService) SetEventPublisher(events shared.EventPublisher) {
	s.events = events
}

// ReturnItems records a partial return against a completed sale. Each
// returned line reduces the matching sale item in place; lines that
// reach zero are deleted. The refund amount is applied as given.
func (s *ReturnService) ReturnItems(ctx context.Context, saleID uuid.UUID, req ReturnItemsRequest) (*SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "A return requires at least one item")
	}

	var sale *trade.Sale
	var restocked []uuid.UUID
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.Sales().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		sale = found

		if !sale.CanBeAdjusted() {
			return shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Cannot return items on a %s sale", sale.Status))
		}

		adjustment, err := trade.NewReturnAdjustment(sale.ID, req.AdjustmentReason, req.RefundAmount)
		if err != nil {
			return err
		}

		condition := inventory.ItemConditionGood
		for _, line := range req.Items {
			item := sale.GetItemByProduct(line.ProductID)
			if item == nil {
				return shared.NewDomainErrorWithDetails("INVALID_RETURN",
					"Sale has no line for the returned product",
					map[string]interface{}{"product_id": line.ProductID.String()})
			}

			if err := item.Return(line.Quantity, req.RestockItems); err != nil {
				return err
			}
			if err := adjustment.AddItem(line.ProductID, line.Quantity, line.Reason, req.RestockItems); err != nil {
				return err
			}

			if req.RestockItems {
				_, err := s.stock.Adjust(ctx, repos, inventoryapp.AdjustStockInput{
					ProductID:     line.ProductID,
					Delta:         line.Quantity,
					Movement:      inventory.MovementTypeReturn,
					Reference:     adjustment.ID.String(),
					Reason:        line.Reason,
					Condition:     &condition,
					AllowInactive: true,
				})
				if err != nil {
					return err
				}
				restocked = append(restocked, line.ProductID)
			}
		}

		if err := repos.Adjustments().Save(ctx, adjustment); err != nil {
			return err
		}
		if err := sale.ApplyRefund(req.RefundAmount); err != nil {
			return err
		}

		if removed := sale.RemoveEmptyItems(); len(removed) > 0 {
			if err := repos.Sales().DeleteItems(ctx, removed); err != nil {
				return err
			}
		}

		return repos.Sales().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.stock.InvalidateProducts(ctx, restocked...)
	shared.PublishEvents(ctx, s.events, sale)

	s.logger.Info("items returned",
		zap.String("order_number", sale.OrderNumber),
		zap.String("refund", req.RefundAmount.String()),
		zap.Bool("restocked", req.RestockItems))

	response := ToSaleResponse(sale)
	return &response, nil
}

// RevertOrder cancels a whole sale. Restocking restores each line's
// remaining quantity, so quantities already consumed by partial returns
// are never credited twice. Outsourced lines never decremented stock
// and are not restocked. A credit sale releases the customer's
// receivable; ProcessRefund additionally records a refund payment.
func (s *ReturnService) RevertOrder(ctx context.Context, saleID uuid.UUID, req RevertOrderRequest) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "returns", "revert_order",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, saleID.String()))
	defer span.End()

	var sale *trade.Sale
	var restocked []uuid.UUID
	var creditCustomer *partner.Customer
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.Sales().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		sale = found

		if !sale.CanBeReverted() {
			return shared.NewDomainError("INVALID_STATE", "Sale is already cancelled")
		}

		refund := sale.Total
		adjustment, err := trade.NewFullReversalAdjustment(sale.ID, req.Reason, refund)
		if err != nil {
			return err
		}

		condition := inventory.ItemConditionGood
		for idx := range sale.Items {
			item := &sale.Items[idx]
			if item.Quantity.IsZero() {
				continue
			}

			restock := req.RestoreInventory && !item.IsOutsourced
			if err := adjustment.AddItem(item.ProductID, item.Quantity, req.Reason, restock); err != nil {
				return err
			}

			if restock {
				_, err := s.stock.Adjust(ctx, repos, inventoryapp.AdjustStockInput{
					ProductID:     item.ProductID,
					Delta:         item.Quantity,
					Movement:      inventory.MovementTypeReturn,
					Reference:     adjustment.ID.String(),
					Reason:        req.Reason,
					Condition:     &condition,
					AllowInactive: true,
				})
				if err != nil {
					return err
				}
				restocked = append(restocked, item.ProductID)
			}
		}

		if err := repos.Adjustments().Save(ctx, adjustment); err != nil {
			return err
		}

		if sale.IsCredit() && sale.CustomerID != nil {
			customer, err := repos.Customers().FindByIDForUpdate(ctx, *sale.CustomerID)
			if err != nil {
				return err
			}
			if err := customer.DecreaseBalance(refund); err != nil {
				return err
			}
			if err := repos.Customers().Save(ctx, customer); err != nil {
				return err
			}
			creditCustomer = customer
		}

		if req.ProcessRefund && refund.IsPositive() {
			payment, err := trade.NewPayment(sale.ID, sale.CustomerID, trade.PaymentKindRefund, refund, sale.PaymentMethod,
				fmt.Sprintf("Refund for reverted sale %s", sale.OrderNumber))
			if err != nil {
				return err
			}
			if err := repos.Payments().Save(ctx, payment); err != nil {
				return err
			}
		}

		if err := sale.Revert(req.Reason); err != nil {
			return err
		}
		return repos.Sales().Save(ctx, sale)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrOrderNumber, sale.OrderNumber)
	telemetry.SetOK(span)

	s.stock.InvalidateProducts(ctx, restocked...)
	raised := []shared.EventRaiser{sale}
	if creditCustomer != nil {
		raised = append(raised, creditCustomer)
	}
	shared.PublishEvents(ctx, s.events, raised...)

	s.logger.Info("sale reverted",
		zap.String("order_number", sale.OrderNumber),
		zap.Bool("restored_inventory", req.RestoreInventory),
		zap.Bool("refunded", req.ProcessRefund))

	response := ToSaleResponse(sale)
	return &response, nil
}
