package trade

import (
	"context"

	"github.com/google/uuid"
	inventoryapp "github.com/usmanhardware/backend/internal/application/inventory"
	"github.com/usmanhardware/backend/internal/domain/inventory"
	"github.com/usmanhardware/backend/internal/domain/shared"
	"github.com/usmanhardware/backend/internal/domain/trade"
	"github.com/usmanhardware/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// OutsourcingService tracks supplier fulfillment of outsourced sale
// lines. Delivery is the only transition that moves stock, and it moves
// it exactly once.
type OutsourcingService struct {
	scope  inventoryapp.TransactionScope
	stock  *inventoryapp.StockService
	events shared.EventPublisher
	logger *zap.Logger
}

// NewOutsourcingService creates a new OutsourcingService
func NewOutsourcingService(scope inventoryapp.TransactionScope, stock *inventoryapp.StockService, logger *zap.Logger) *OutsourcingService {
	return &OutsourcingService{
		scope:  scope,
		stock:  stock,
		logger: logger,
	}
}

// SetEventPublisher wires the post-commit event sink (optional)
func (s *OutsourcingService) SetEventPublisher(events shared.EventPublisher) {
	s.events = events
}

// UpdateStatus moves an outsourcing order through its status machine.
// Delivery cannot be reached through this path; MarkDelivered owns it.
func (s *OutsourcingService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*OutsourcingOrderResponse, error) {
	var order *trade.OutsourcingOrder
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.OutsourcingOrders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := found.UpdateStatus(trade.OutsourcingStatus(status)); err != nil {
			return err
		}
		order = found
		return repos.OutsourcingOrders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	response := ToOutsourcingOrderResponse(order)
	return &response, nil
}

// MarkDelivered records the supplier delivery and adds the delivered
// quantity to stock, in the same transaction. An already delivered or
// cancelled order rejects the call, so stock can never be credited
// twice for one order.
func (s *OutsourcingService) MarkDelivered(ctx context.Context, orderID uuid.UUID) (*OutsourcingOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "outsourcing", "mark_delivered",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, orderID.String()))
	defer span.End()

	var order *trade.OutsourcingOrder
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.OutsourcingOrders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := found.MarkDelivered(); err != nil {
			return err
		}
		order = found

		_, err = s.stock.Adjust(ctx, repos, inventoryapp.AdjustStockInput{
			ProductID: order.ProductID,
			Delta:     order.Quantity,
			Movement:  inventory.MovementTypeOutsourcingDelivery,
			Reference: order.OrderNumber,
		})
		if err != nil {
			return err
		}

		return repos.OutsourcingOrders().Save(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrOrderNumber, order.OrderNumber)
	telemetry.SetOK(span)

	s.stock.InvalidateProducts(ctx, order.ProductID)
	shared.PublishEvents(ctx, s.events, order)

	s.logger.Info("outsourcing order delivered",
		zap.String("order_number", order.OrderNumber),
		zap.String("quantity", order.Quantity.String()))

	response := ToOutsourcingOrderResponse(order)
	return &response, nil
}

// AppendNote adds a timestamped line to the order's note trail
func (s *OutsourcingService) AppendNote(ctx context.Context, orderID uuid.UUID, note string) (*OutsourcingOrderResponse, error) {
	var order *trade.OutsourcingOrder
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.OutsourcingOrders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := found.AppendNote(note); err != nil {
			return err
		}
		order = found
		return repos.OutsourcingOrders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	response := ToOutsourcingOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an outsourcing order by ID
func (s *OutsourcingService) GetByID(ctx context.Context, orderID uuid.UUID) (*OutsourcingOrderResponse, error) {
	var order *trade.OutsourcingOrder
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.OutsourcingOrders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToOutsourcingOrderResponse(order)
	return &response, nil
}

// List retrieves outsourcing orders with filtering and pagination
func (s *OutsourcingService) List(ctx context.Context, filter OutsourcingListFilter) ([]OutsourcingOrderResponse, int64, error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, "")
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.SaleID != nil {
		domainFilter.Filters["sale_id"] = *filter.SaleID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	var orders []trade.OutsourcingOrder
	var total int64
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.OutsourcingOrders().FindAll(ctx, domainFilter)
		if err != nil {
			return err
		}
		count, err := repos.OutsourcingOrders().Count(ctx, domainFilter)
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

	responses := make([]OutsourcingOrderResponse, 0, len(orders))
	for idx := range orders {
		responses = append(responses, ToOutsourcingOrderResponse(&orders[idx]))
	}
	return responses, total, nil
}
