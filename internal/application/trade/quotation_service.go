package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	inventoryapp "github.com/usmanhardware/backend/internal/application/inventory"
	"github.com/usmanhardware/backend/internal/domain/inventory"
	"github.com/usmanhardware/backend/internal/domain/partner"
	"github.com/usmanhardware/backend/internal/domain/shared"
	"github.com/usmanhardware/backend/internal/domain/trade"
	"github.com/usmanhardware/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// QuotationService manages quotations and their one-shot conversion
// into credit sales. Quotations carry no balance side effects until
// conversion.
type QuotationService struct {
	scope  inventoryapp.TransactionScope
	stock  *inventoryapp.StockService
	events shared.EventPublisher
	logger *zap.Logger
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(scope inventoryapp.TransactionScope, stock *inventoryapp.StockService, logger *zap.Logger) *QuotationService {
	return &QuotationService{
		scope:  scope,
		stock:  stock,
		logger: logger,
	}
}

// SetEventPublisher wires the post-commit event sink (optional)
func (s *QuotationService) SetEventPublisher(events shared.EventPublisher) {
	s.events = events
}

// Create creates a draft quotation
func (s *QuotationService) Create(ctx context.Context, req CreateQuotationRequest) (*QuotationResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "A quotation requires at least one item")
	}

	var quotation *trade.Quotation
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		customer, err := repos.Customers().FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		if !customer.IsActive() {
			return shared.NewDomainErrorWithDetails("NOT_FOUND",
				fmt.Sprintf("Customer %s is not active", customer.Name),
				map[string]interface{}{"customer_id": customer.ID.String()})
		}

		now := time.Now()
		seq, err := repos.Sequences().Next(ctx, trade.OrderScopeQuotation.SequenceKey(now))
		if err != nil {
			return err
		}
		quoteNumber, err := trade.FormatOrderNumber(trade.OrderScopeQuotation, now, seq)
		if err != nil {
			return err
		}

		quotation, err = trade.NewQuotation(quoteNumber, customer.ID, req.ValidUntil, req.Notes)
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
			if err := quotation.AddItem(product.ID, product.Name, line.Quantity, line.UnitPrice); err != nil {
				return err
			}
		}

		if err := quotation.ApplyDiscount(req.Discount); err != nil {
			return err
		}

		return repos.Quotations().Save(ctx, quotation)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quotation created",
		zap.String("quote_number", quotation.QuoteNumber),
		zap.String("total", quotation.Total.String()))

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// Update patches a draft or sent quotation. A non-nil item list
// replaces the line set wholesale.
func (s *QuotationService) Update(ctx context.Context, quotationID uuid.UUID, req UpdateQuotationRequest) (*QuotationResponse, error) {
	var quotation *trade.Quotation
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.Quotations().FindByID(ctx, quotationID)
		if err != nil {
			return err
		}
		quotation = found

		if !quotation.CanModify() {
			return shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Cannot modify quotation in %s status", quotation.Status))
		}

		if req.Items != nil {
			items := make([]trade.QuotationItem, 0, len(req.Items))
			for _, line := range req.Items {
				product, err := repos.Products().FindByID(ctx, line.ProductID)
				if err != nil {
					return err
				}
				item, err := trade.NewQuotationItem(quotation.ID, product.ID, product.Name, line.Quantity, line.UnitPrice)
				if err != nil {
					return err
				}
				items = append(items, *item)
			}
			if err := quotation.ReplaceItems(items); err != nil {
				return err
			}
			if err := repos.Quotations().ReplaceItems(ctx, quotation.ID, quotation.Items); err != nil {
				return err
			}
		}
		if req.Discount != nil {
			if err := quotation.ApplyDiscount(*req.Discount); err != nil {
				return err
			}
		}
		if req.ValidUntil != nil {
			if err := quotation.SetValidUntil(req.ValidUntil); err != nil {
				return err
			}
		}
		if req.Notes != nil {
			quotation.SetNotes(*req.Notes)
		}

		return repos.Quotations().Save(ctx, quotation)
	})
	if err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// UpdateStatus moves a quotation through draft/sent/accepted/rejected
func (s *QuotationService) UpdateStatus(ctx context.Context, quotationID uuid.UUID, status string) (*QuotationResponse, error) {
	var quotation *trade.Quotation
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.Quotations().FindByID(ctx, quotationID)
		if err != nil {
			return err
		}
		if err := found.UpdateStatus(trade.QuotationStatus(status)); err != nil {
			return err
		}
		quotation = found
		return repos.Quotations().Save(ctx, quotation)
	})
	if err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// Delete removes a quotation that was never converted
func (s *QuotationService) Delete(ctx context.Context, quotationID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		quotation, err := repos.Quotations().FindByID(ctx, quotationID)
		if err != nil {
			return err
		}
		if !quotation.CanDelete() {
			return shared.NewDomainError("INVALID_STATE", "Cannot delete a converted quotation")
		}
		return repos.Quotations().Delete(ctx, quotation.ID)
	})
}

// ConvertToSale turns a quotation into a completed credit sale.
// Stock is re-validated against current levels per line, since the
// quoted products may have sold out since drafting. The customer's
// balance and purchase history rise by the sale total, mirroring the
// credit accounting of direct sale creation. Conversion is one-shot
// and terminal.
func (s *QuotationService) ConvertToSale(ctx context.Context, quotationID uuid.UUID) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "quotations", "convert_to_sale",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, quotationID.String()))
	defer span.End()

	var sale *trade.Sale
	var quotation *trade.Quotation
	var creditCustomer *partner.Customer
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.Quotations().FindByID(ctx, quotationID)
		if err != nil {
			return err
		}
		quotation = found
		if !quotation.CanConvert() {
			return shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Cannot convert quotation in %s status", quotation.Status))
		}

		now := time.Now()
		seq, err := repos.Sequences().Next(ctx, trade.OrderScopeSale.SequenceKey(now))
		if err != nil {
			return err
		}
		orderNumber, err := trade.FormatOrderNumber(trade.OrderScopeSale, now, seq)
		if err != nil {
			return err
		}

		customerID := quotation.CustomerID
		sale, err = trade.NewSale(orderNumber, &customerID, trade.PaymentMethodCredit,
			fmt.Sprintf("Converted from quotation %s", quotation.QuoteNumber))
		if err != nil {
			return err
		}

		for idx := range quotation.Items {
			line := &quotation.Items[idx]
			product, err := repos.Products().FindByIDForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if !product.CanFulfill(line.Quantity) {
				return shared.NewDomainErrorWithDetails("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock for %s: quoted %s, available %s", product.SKU, line.Quantity, product.Stock),
					map[string]interface{}{
						"product_id": product.ID.String(),
						"requested":  line.Quantity.String(),
						"available":  product.Stock.String(),
					})
			}
			if _, err := sale.AddItem(product.ID, product.Name, line.Quantity, line.UnitPrice, product.CostPrice); err != nil {
				return err
			}
		}

		if err := sale.ApplyDiscount(quotation.Discount); err != nil {
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
			_, err := s.stock.Adjust(ctx, repos, inventoryapp.AdjustStockInput{
				ProductID: item.ProductID,
				Delta:     item.Quantity.Neg(),
				Movement:  inventory.MovementTypeSale,
				Reference: sale.OrderNumber,
			})
			if err != nil {
				return err
			}

			// The line's cost is read from the catalog at conversion
			// time, not quote time, so the profit row is approximate.
			revenue := item.Quantity.Mul(item.UnitPrice)
			cogs := item.Quantity.Mul(item.UnitCost())
			record, err := trade.NewProfitRecord(sale.ID, item.ProductID, revenue, cogs, sale.SaleDate, true)
			if err != nil {
				return err
			}
			if err := repos.ProfitRecords().Save(ctx, record); err != nil {
				return err
			}
		}

		customer, err := repos.Customers().FindByIDForUpdate(ctx, customerID)
		if err != nil {
			return err
		}
		if err := customer.IncreaseBalance(sale.Total); err != nil {
			return err
		}
		if err := customer.AddPurchases(sale.Total); err != nil {
			return err
		}
		if err := repos.Customers().Save(ctx, customer); err != nil {
			return err
		}
		creditCustomer = customer

		if err := quotation.MarkConverted(sale.ID); err != nil {
			return err
		}
		return repos.Quotations().Save(ctx, quotation)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrOrderNumber, sale.OrderNumber)
	telemetry.SetOK(span)

	s.stock.InvalidateProducts(ctx, stockedProductIDs(sale)...)
	shared.PublishEvents(ctx, s.events, quotation, sale, creditCustomer)

	s.logger.Info("quotation converted to sale",
		zap.String("order_number", sale.OrderNumber),
		zap.String("total", sale.Total.String()))

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a quotation by ID
func (s *QuotationService) GetByID(ctx context.Context, quotationID uuid.UUID) (*QuotationResponse, error) {
	var quotation *trade.Quotation
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.Quotations().FindByID(ctx, quotationID)
		if err != nil {
			return err
		}
		quotation = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// List retrieves quotations with filtering and pagination
func (s *QuotationService) List(ctx context.Context, filter QuotationListFilter) ([]QuotationResponse, int64, error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	var quotations []trade.Quotation
	var total int64
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		found, err := repos.Quotations().FindAll(ctx, domainFilter)
		if err != nil {
			return err
		}
		count, err := repos.Quotations().Count(ctx, domainFilter)
		if err != nil {
			return err
		}
		quotations = found
		total = count
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	responses := make([]QuotationResponse, 0, len(quotations))
	for idx := range quotations {
		responses = append(responses, ToQuotationResponse(&quotations[idx]))
	}
	return responses, total, nil
}
