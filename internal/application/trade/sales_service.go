package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	inventoryapp "github.com/usmanhardware/backend/internal/application/inventory"
	"github.com/usmanhardware/backend/internal/domain/inventory"
	"github.com/usmanhardware/backend/internal/domain/partner"
	"github.com/usmanhardware/backend/internal/domain/shared"
	"github.com/usmanhardware/backend/internal/domain/trade"
	"github.com/usmanhardware/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SalesService creates and maintains sales. Every operation runs in one
// transaction: the sale row, its lines, stock movements, profit rows,
// outsourcing orders and customer balance changes commit or roll back
// together.
type SalesService struct {
	scope  inventoryapp.TransactionScope
	stock  *inventoryapp.StockService
	events shared.EventPublisher
	logger *zap.Logger
}

// NewSalesService creates a new SalesService
func NewSalesService(scope inventoryapp.TransactionScope, stock *inventoryapp.StockService, logger *zap.Logger) *SalesService {
	return &SalesService{
		scope:  scope,
		stock:  stock,
		logger: logger,
	}
}

// SetEventPublisher wires the post-commit event sink (optional)
func (s *SalesService) SetEventPublisher(events shared.EventPublisher) {
	s.events = events
}

// CreateSale creates a sale that completes synchronously. Stocked lines
// decrement stock through the stock service; outsourced lines create a
// pending outsourcing order instead and touch no stock. Credit sales
// raise the customer's balance with no credit limit check.
func (s *SalesService) CreateSale(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales", "create",
		telemetry.WithAttribute(telemetry.SpanAttrQuantity, len(req.Items)))
	defer span.End()

	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "A sale requires at least one item")
	}

	method := trade.PaymentMethodCash
	if req.PaymentMethod != "" {
		method = trade.PaymentMethod(req.PaymentMethod)
	}

	var sale *trade.Sale
	var creditCustomer *partner.Customer
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		now := time.Now()
		orderNumber, err := s.nextOrderNumber(ctx, repos, trade.OrderScopeSale, now)
		if err != nil {
			return err
		}

		sale, err = trade.NewSale(orderNumber, req.CustomerID, method, req.Notes)
		if err != nil {
			return err
		}

		for _, line := range req.Items {
			product, err := repos.Products().FindByIDForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive() {
				return shared.NewDomainErrorWithDetails("NOT_FOUND",
					fmt.Sprintf("Product %s is not active", product.SKU),
					map[string]interface{}{"product_id": product.ID.String()})
			}

			item, err := sale.AddItem(product.ID, product.Name, line.Quantity, line.UnitPrice, product.CostPrice)
			if err != nil {
				return err
			}

			if line.Outsourcing != nil {
				if _, err := repos.Suppliers().FindByID(ctx, line.Outsourcing.SupplierID); err != nil {
					return err
				}
				if err := item.Outsource(line.Outsourcing.SupplierID, line.Outsourcing.CostPerUnit); err != nil {
					return err
				}
			} else if !product.CanFulfill(line.Quantity) {
				return shared.NewDomainErrorWithDetails("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock for %s: requested %s, available %s", product.SKU, line.Quantity, product.Stock),
					map[string]interface{}{
						"product_id": product.ID.String(),
						"requested":  line.Quantity.String(),
						"available":  product.Stock.String(),
					})
			}
		}

		if err := sale.ApplyDiscount(req.Discount); err != nil {
			return err
		}
		if err := sale.ApplyTax(req.Tax); err != nil {
			return err
		}
		if err := sale.Finalize(); err != nil {
			return err
		}
		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}

		for idx := range sale.Items {
			item := &sale.Items[idx]
			if item.IsOutsourced {
				if err := s.createOutsourcingOrder(ctx, repos, sale, item, now); err != nil {
					return err
				}
			} else {
				_, err := s.stock.Adjust(ctx, repos, inventoryapp.AdjustStockInput{
					ProductID: item.ProductID,
					Delta:     item.Quantity.Neg(),
					Movement:  inventory.MovementTypeSale,
					Reference: sale.OrderNumber,
				})
				if err != nil {
					return err
				}
			}

			if err := s.writeProfitRecord(ctx, repos, sale, item, false); err != nil {
				return err
			}
		}

		if sale.IsCredit() && sale.CustomerID != nil {
			customer, err := s.raiseCustomerBalance(ctx, repos, *sale.CustomerID, sale.Total)
			if err != nil {
				return err
			}
			creditCustomer = customer
		}

		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrOrderNumber, sale.OrderNumber)
	telemetry.SetOK(span)

	s.stock.InvalidateProducts(ctx, stockedProductIDs(sale)...)

	raised := []shared.EventRaiser{sale}
	if creditCustomer != nil {
		raised = append(raised, creditCustomer)
	}
	shared.PublishEvents(ctx, s.events, raised...)

	s.logger.Info("sale created",
		zap.String("order_number", sale.OrderNumber),
		zap.String("total", sale.Total.String()),
		zap.Int("items", len(sale.Items)))

	response := ToSaleResponse(sale)
	return &response, nil
}

// UpdateOrderStatus moves a sale through its status machine
func (s *SalesService) UpdateOrderStatus(ctx context.Context, saleID uuid.UUID, status string) (*SaleResponse, error) {
	var sale *trade.Sale
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.Sales().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		if err := found.UpdateStatus(trade.SaleStatus(status)); err != nil {
			return err
		}
		sale = found
		return repos.Sales().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	shared.PublishEvents(ctx, s.events, sale)

	response := ToSaleResponse(sale)
	return &response, nil
}

// UpdateOrderDetails patches a sale's payment method, customer or notes.
// Moves to and from the credit method adjust the customer balance
// symmetrically: moving to credit checks the credit limit and raises
// the balance, moving off credit lowers it and records a compensating
// payment. Changing the customer moves the balance effect with it.
func (s *SalesService) UpdateOrderDetails(ctx context.Context, saleID uuid.UUID, req UpdateSaleDetailsRequest) (*SaleResponse, error) {
	var sale *trade.Sale
	var touchedCustomers []shared.EventRaiser
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.Sales().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		sale = found

		oldMethod := sale.PaymentMethod
		oldCustomerID := sale.CustomerID

		newMethod := oldMethod
		if req.PaymentMethod != nil {
			newMethod = trade.PaymentMethod(*req.PaymentMethod)
		}
		newCustomerID := oldCustomerID
		if req.CustomerID != nil {
			newCustomerID = req.CustomerID
		}

		wasCredit := oldMethod == trade.PaymentMethodCredit && oldCustomerID != nil
		willBeCredit := newMethod == trade.PaymentMethodCredit && newCustomerID != nil
		customerChanged := req.CustomerID != nil && (oldCustomerID == nil || *oldCustomerID != *req.CustomerID)

		// Release the receivable from the old customer before charging
		// the new one so a same-customer no-op stays a no-op.
		if wasCredit && (!willBeCredit || customerChanged) {
			customer, err := repos.Customers().FindByIDForUpdate(ctx, *oldCustomerID)
			if err != nil {
				return err
			}
			if err := customer.DecreaseBalance(sale.Total); err != nil {
				return err
			}
			if err := repos.Customers().Save(ctx, customer); err != nil {
				return err
			}
			touchedCustomers = append(touchedCustomers, customer)
			if !willBeCredit {
				payment, err := trade.NewPayment(sale.ID, oldCustomerID, trade.PaymentKindReceived, sale.Total, newMethod,
					fmt.Sprintf("Payment method changed from credit on %s", sale.OrderNumber))
				if err != nil {
					return err
				}
				if err := repos.Payments().Save(ctx, payment); err != nil {
					return err
				}
			}
		}

		if willBeCredit && (!wasCredit || customerChanged) {
			customer, err := repos.Customers().FindByIDForUpdate(ctx, *newCustomerID)
			if err != nil {
				return err
			}
			if customer.WouldExceedCreditLimit(sale.Total) {
				return shared.NewDomainErrorWithDetails("CREDIT_LIMIT_EXCEEDED",
					fmt.Sprintf("Sale total %s would exceed the credit limit for %s", sale.Total, customer.Name),
					map[string]interface{}{
						"customer_id":     customer.ID.String(),
						"credit_limit":    customer.CreditLimit.String(),
						"current_balance": customer.CurrentBalance.String(),
					})
			}
			if err := customer.IncreaseBalance(sale.Total); err != nil {
				return err
			}
			if err := repos.Customers().Save(ctx, customer); err != nil {
				return err
			}
			touchedCustomers = append(touchedCustomers, customer)
		}

		if req.CustomerID != nil {
			if err := sale.ReassignCustomer(req.CustomerID); err != nil {
				return err
			}
		}
		if req.PaymentMethod != nil {
			if err := sale.ChangePaymentMethod(newMethod); err != nil {
				return err
			}
		}
		if req.Notes != nil {
			sale.SetNotes(*req.Notes)
		}

		return repos.Sales().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	shared.PublishEvents(ctx, s.events, append([]shared.EventRaiser{sale}, touchedCustomers...)...)

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a sale by ID
func (s *SalesService) GetByID(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	var sale *trade.Sale
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.Sales().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		sale = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with filtering and pagination
func (s *SalesService) List(ctx context.Context, filter SaleListFilter) ([]SaleResponse, int64, error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.PaymentMethod != "" {
		domainFilter.Filters["payment_method"] = filter.PaymentMethod
	}

	var sales []trade.Sale
	var total int64
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.Sales().FindAll(ctx, domainFilter)
		if err != nil {
			return err
		}
		count, err := repos.Sales().Count(ctx, domainFilter)
		if err != nil {
			return err
		}
		sales = found
		total = count
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SaleResponse, 0, len(sales))
	for idx := range sales {
		responses = append(responses, ToSaleResponse(&sales[idx]))
	}
	return responses, total, nil
}

// nextOrderNumber draws the next number for the scope from its locked
// sequence row, inside the current transaction.
func (s *SalesService) nextOrderNumber(ctx context.Context, repos inventoryapp.TransactionalRepositories, scope trade.OrderScope, now time.Time) (string, error) {
	seq, err := repos.Sequences().Next(ctx, scope.SequenceKey(now))
	if err != nil {
		return "", err
	}
	return trade.FormatOrderNumber(scope, now, seq)
}

// createOutsourcingOrder spawns a pending outsourcing order for a sale
// line fulfilled by a supplier. No stock moves until delivery.
func (s *SalesService) createOutsourcingOrder(ctx context.Context, repos inventoryapp.TransactionalRepositories, sale *trade.Sale, item *trade.SaleItem, now time.Time) error {
	if item.OutsourcingSupplierID == nil || item.OutsourcingCostPerUnit == nil {
		return shared.NewDomainError("INVALID_OUTSOURCING", "Outsourced line is missing supplier or cost")
	}

	orderNumber, err := s.nextOrderNumber(ctx, repos, trade.OrderScopeOutsourcing, now)
	if err != nil {
		return err
	}

	order, err := trade.NewOutsourcingOrder(orderNumber, item.ProductID, *item.OutsourcingSupplierID, item.Quantity, *item.OutsourcingCostPerUnit)
	if err != nil {
		return err
	}
	order.LinkSale(sale.ID, item.ID)

	return repos.OutsourcingOrders().Save(ctx, order)
}

// writeProfitRecord books one profit row for a sale line. COGS uses the
// outsourcing cost for outsourced lines and the cost captured at sale
// time otherwise; approximate marks rows whose cost was read from the
// current catalog instead.
func (s *SalesService) writeProfitRecord(ctx context.Context, repos inventoryapp.TransactionalRepositories, sale *trade.Sale, item *trade.SaleItem, approximate bool) error {
	revenue := item.Quantity.Mul(item.UnitPrice)
	cogs := item.Quantity.Mul(item.UnitCost())

	record, err := trade.NewProfitRecord(sale.ID, item.ProductID, revenue, cogs, sale.SaleDate, approximate)
	if err != nil {
		return err
	}
	return repos.ProfitRecords().Save(ctx, record)
}

// raiseCustomerBalance books a credit sale against the customer's
// receivable balance and purchase history. No credit limit check is
// applied on creation. The saved customer is returned so its events
// can be drained after commit.
func (s *SalesService) raiseCustomerBalance(ctx context.Context, repos inventoryapp.TransactionalRepositories, customerID uuid.UUID, total decimal.Decimal) (*partner.Customer, error) {
	customer, err := repos.Customers().FindByIDForUpdate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := customer.IncreaseBalance(total); err != nil {
		return nil, err
	}
	if err := customer.AddPurchases(total); err != nil {
		return nil, err
	}
	if err := repos.Customers().Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// stockedProductIDs lists the products whose stock a completed sale
// moved. Outsourced lines never touch stock.
func stockedProductIDs(sale *trade.Sale) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(sale.Items))
	for idx := range sale.Items {
		if !sale.Items[idx].IsOutsourced {
			ids = append(ids, sale.Items[idx].ProductID)
		}
	}
	return ids
}
