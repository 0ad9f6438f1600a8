package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeSale             = "Sale"
	AggregateTypePurchaseOrder    = "PurchaseOrder"
	AggregateTypeQuotation        = "Quotation"
	AggregateTypeOutsourcingOrder = "OutsourcingOrder"
)

// Event type constants
const (
	EventTypeSaleCompleted        = "SaleCompleted"
	EventTypeSaleReverted         = "SaleReverted"
	EventTypeQuotationConverted   = "QuotationConverted"
	EventTypeOutsourcingDelivered = "OutsourcingDelivered"
)

// SaleCompletedEvent is published when a sale finalizes
type SaleCompletedEvent struct {
	shared.BaseDomainEvent
	SaleID      uuid.UUID       `json:"sale_id"`
	OrderNumber string          `json:"order_number"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
}

// NewSaleCompletedEvent creates a new SaleCompletedEvent
func NewSaleCompletedEvent(sale *Sale) *SaleCompletedEvent {
	return &SaleCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCompleted, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		OrderNumber:     sale.OrderNumber,
		Total:           sale.Total,
		ItemCount:       len(sale.Items),
	}
}

// SaleRevertedEvent is published when a sale is fully reversed
type SaleRevertedEvent struct {
	shared.BaseDomainEvent
	SaleID       uuid.UUID `json:"sale_id"`
	OrderNumber  string    `json:"order_number"`
	CancelReason string    `json:"cancel_reason"`
}

// NewSaleRevertedEvent creates a new SaleRevertedEvent
func NewSaleRevertedEvent(sale *Sale) *SaleRevertedEvent {
	return &SaleRevertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleReverted, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		OrderNumber:     sale.OrderNumber,
		CancelReason:    sale.CancelReason,
	}
}

// QuotationConvertedEvent is published when a quotation becomes a sale
type QuotationConvertedEvent struct {
	shared.BaseDomainEvent
	QuotationID uuid.UUID `json:"quotation_id"`
	QuoteNumber string    `json:"quote_number"`
	SaleID      uuid.UUID `json:"sale_id"`
}

// NewQuotationConvertedEvent creates a new QuotationConvertedEvent
func NewQuotationConvertedEvent(quotation *Quotation, saleID uuid.UUID) *QuotationConvertedEvent {
	return &QuotationConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationConverted, AggregateTypeQuotation, quotation.ID),
		QuotationID:     quotation.ID,
		QuoteNumber:     quotation.QuoteNumber,
		SaleID:          saleID,
	}
}

// OutsourcingDeliveredEvent is published when outsourced goods arrive
type OutsourcingDeliveredEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// NewOutsourcingDeliveredEvent creates a new OutsourcingDeliveredEvent
func NewOutsourcingDeliveredEvent(order *OutsourcingOrder) *OutsourcingDeliveredEvent {
	return &OutsourcingDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOutsourcingDelivered, AggregateTypeOutsourcingOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		ProductID:       order.ProductID,
		Quantity:        order.Quantity,
	}
}
