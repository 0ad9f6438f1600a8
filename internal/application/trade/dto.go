package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/usmanhardware/backend/internal/domain/shared"
	"github.com/usmanhardware/backend/internal/domain/trade"
)

// ==================== Sale DTOs ====================

// OutsourcingRequest marks a sale line as fulfilled by a supplier
type OutsourcingRequest struct {
	SupplierID  uuid.UUID       `json:"supplier_id" binding:"required"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit" binding:"required"`
}

// CreateSaleItemRequest is one requested sale line
type CreateSaleItemRequest struct {
	ProductID   uuid.UUID           `json:"product_id" binding:"required"`
	Quantity    decimal.Decimal     `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal     `json:"unit_price" binding:"required"`
	Outsourcing *OutsourcingRequest `json:"outsourcing,omitempty"`
}

// CreateSaleRequest creates a sale that completes synchronously
type CreateSaleRequest struct {
	CustomerID    *uuid.UUID              `json:"customer_id,omitempty"`
	PaymentMethod string                  `json:"payment_method,omitempty"`
	Discount      decimal.Decimal         `json:"discount"`
	Tax           decimal.Decimal         `json:"tax"`
	Notes         string                  `json:"notes,omitempty"`
	Items         []CreateSaleItemRequest `json:"items" binding:"required,min=1"`
}

// UpdateSaleDetailsRequest patches a sale's payment method, customer or notes
type UpdateSaleDetailsRequest struct {
	PaymentMethod *string    `json:"payment_method,omitempty"`
	CustomerID    *uuid.UUID `json:"customer_id,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

// SaleItemResponse is the read shape for one sale line
type SaleItemResponse struct {
	ID                     uuid.UUID        `json:"id"`
	ProductID              uuid.UUID        `json:"product_id"`
	ProductName            string           `json:"product_name"`
	Quantity               decimal.Decimal  `json:"quantity"`
	UnitPrice              decimal.Decimal  `json:"unit_price"`
	Total                  decimal.Decimal  `json:"total"`
	IsOutsourced           bool             `json:"is_outsourced"`
	OutsourcingSupplierID  *uuid.UUID       `json:"outsourcing_supplier_id,omitempty"`
	OutsourcingCostPerUnit *decimal.Decimal `json:"outsourcing_cost_per_unit,omitempty"`
	QuantityReturned       decimal.Decimal  `json:"quantity_returned"`
	QuantityRestocked      decimal.Decimal  `json:"quantity_restocked"`
}

// SaleResponse is the read shape for a sale
type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	OrderNumber   string             `json:"order_number"`
	CustomerID    *uuid.UUID         `json:"customer_id,omitempty"`
	SaleDate      time.Time          `json:"sale_date"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	Notes         string             `json:"notes,omitempty"`
	CancelReason  string             `json:"cancel_reason,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ToSaleResponse maps a sale aggregate to its read shape
func ToSaleResponse(sale *trade.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(sale.Items))
	for idx := range sale.Items {
		item := &sale.Items[idx]
		items = append(items, SaleItemResponse{
			ID:                     item.ID,
			ProductID:              item.ProductID,
			ProductName:            item.ProductName,
			Quantity:               item.Quantity,
			UnitPrice:              item.UnitPrice,
			Total:                  item.Total,
			IsOutsourced:           item.IsOutsourced,
			OutsourcingSupplierID:  item.OutsourcingSupplierID,
			OutsourcingCostPerUnit: item.OutsourcingCostPerUnit,
			QuantityReturned:       item.QuantityReturned,
			QuantityRestocked:      item.QuantityRestocked,
		})
	}

	return SaleResponse{
		ID:            sale.ID,
		OrderNumber:   sale.OrderNumber,
		CustomerID:    sale.CustomerID,
		SaleDate:      sale.SaleDate,
		Subtotal:      sale.Subtotal,
		Discount:      sale.Discount,
		Tax:           sale.Tax,
		Total:         sale.Total,
		PaymentMethod: string(sale.PaymentMethod),
		Status:        string(sale.Status),
		Notes:         sale.Notes,
		CancelReason:  sale.CancelReason,
		Items:         items,
		CreatedAt:     sale.CreatedAt,
		UpdatedAt:     sale.UpdatedAt,
	}
}

// SaleListFilter narrows and paginates sale listings
type SaleListFilter struct {
	Page          int
	PageSize      int
	OrderBy       string
	OrderDir      string
	Search        string
	CustomerID    *uuid.UUID
	Status        string
	PaymentMethod string
}

// ==================== Return / Reversal DTOs ====================

// ReturnItemRequest is one returned line
type ReturnItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Reason    string          `json:"reason,omitempty"`
}

// ReturnItemsRequest records a partial return against a completed sale.
// RefundAmount is taken as given, not recomputed from the lines.
type ReturnItemsRequest struct {
	Items            []ReturnItemRequest `json:"items" binding:"required,min=1"`
	RefundAmount     decimal.Decimal     `json:"refund_amount"`
	RestockItems     bool                `json:"restock_items"`
	AdjustmentReason string              `json:"adjustment_reason,omitempty"`
}

// RevertOrderRequest cancels a whole sale
type RevertOrderRequest struct {
	Reason           string `json:"reason" binding:"required"`
	RestoreInventory bool   `json:"restore_inventory"`
	ProcessRefund    bool   `json:"process_refund"`
}

// ==================== Purchase Order DTOs ====================

// PurchaseOrderItemRequest is one ordered line
type PurchaseOrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreatePurchaseOrderRequest creates a draft purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID       uuid.UUID                  `json:"supplier_id" binding:"required"`
	ExpectedDelivery *time.Time                 `json:"expected_delivery,omitempty"`
	Notes            string                     `json:"notes,omitempty"`
	Items            []PurchaseOrderItemRequest `json:"items" binding:"required,min=1"`
}

// UpdatePurchaseOrderRequest patches a purchase order. A nil Items slice
// leaves the line set unchanged; a non-nil slice fully replaces it.
type UpdatePurchaseOrderRequest struct {
	SupplierID       *uuid.UUID                 `json:"supplier_id,omitempty"`
	ExpectedDelivery *time.Time                 `json:"expected_delivery,omitempty"`
	Notes            *string                    `json:"notes,omitempty"`
	Status           *string                    `json:"status,omitempty"`
	Items            []PurchaseOrderItemRequest `json:"items,omitempty"`
}

// ReceiveItemRequest books received quantity for one line
type ReceiveItemRequest struct {
	ProductID        uuid.UUID       `json:"product_id" binding:"required"`
	QuantityReceived decimal.Decimal `json:"quantity_received" binding:"required"`
	Condition        string          `json:"condition,omitempty"`
}

// ReceivePurchaseOrderRequest books a delivery against a purchase order
type ReceivePurchaseOrderRequest struct {
	Items []ReceiveItemRequest `json:"items" binding:"required,min=1"`
	Notes string               `json:"notes,omitempty"`
}

// PurchaseOrderItemResponse is the read shape for one ordered line
type PurchaseOrderItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Total            decimal.Decimal `json:"total"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	ItemCondition    string          `json:"item_condition,omitempty"`
}

// PurchaseOrderResponse is the read shape for a purchase order
type PurchaseOrderResponse struct {
	ID               uuid.UUID                   `json:"id"`
	OrderNumber      string                      `json:"order_number"`
	SupplierID       uuid.UUID                   `json:"supplier_id"`
	OrderDate        time.Time                   `json:"order_date"`
	ExpectedDelivery *time.Time                  `json:"expected_delivery,omitempty"`
	Subtotal         decimal.Decimal             `json:"subtotal"`
	Tax              decimal.Decimal             `json:"tax"`
	Total            decimal.Decimal             `json:"total"`
	Status           string                      `json:"status"`
	Notes            string                      `json:"notes,omitempty"`
	Items            []PurchaseOrderItemResponse `json:"items"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

// ToPurchaseOrderResponse maps a purchase order aggregate to its read shape
func ToPurchaseOrderResponse(po *trade.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, 0, len(po.Items))
	for idx := range po.Items {
		item := &po.Items[idx]
		resp := PurchaseOrderItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			Total:            item.Total,
			QuantityReceived: item.QuantityReceived,
		}
		if item.ItemCondition != nil {
			resp.ItemCondition = string(*item.ItemCondition)
		}
		items = append(items, resp)
	}

	return PurchaseOrderResponse{
		ID:               po.ID,
		OrderNumber:      po.OrderNumber,
		SupplierID:       po.SupplierID,
		OrderDate:        po.OrderDate,
		ExpectedDelivery: po.ExpectedDelivery,
		Subtotal:         po.Subtotal,
		Tax:              po.Tax,
		Total:            po.Total,
		Status:           string(po.Status),
		Notes:            po.Notes,
		Items:            items,
		CreatedAt:        po.CreatedAt,
		UpdatedAt:        po.UpdatedAt,
	}
}

// PurchaseOrderListFilter narrows and paginates purchase order listings
type PurchaseOrderListFilter struct {
	Page       int
	PageSize   int
	OrderBy    string
	OrderDir   string
	Search     string
	SupplierID *uuid.UUID
	Status     string
}

// ==================== Quotation DTOs ====================

// QuotationItemRequest is one quoted line
type QuotationItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateQuotationRequest creates a draft quotation
type CreateQuotationRequest struct {
	CustomerID uuid.UUID              `json:"customer_id" binding:"required"`
	ValidUntil *time.Time             `json:"valid_until,omitempty"`
	Discount   decimal.Decimal        `json:"discount"`
	Notes      string                 `json:"notes,omitempty"`
	Items      []QuotationItemRequest `json:"items" binding:"required,min=1"`
}

// UpdateQuotationRequest patches a draft or sent quotation
type UpdateQuotationRequest struct {
	ValidUntil *time.Time             `json:"valid_until,omitempty"`
	Discount   *decimal.Decimal       `json:"discount,omitempty"`
	Notes      *string                `json:"notes,omitempty"`
	Items      []QuotationItemRequest `json:"items,omitempty"`
}

// QuotationItemResponse is the read shape for one quoted line
type QuotationItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// QuotationResponse is the read shape for a quotation
type QuotationResponse struct {
	ID              uuid.UUID               `json:"id"`
	QuoteNumber     string                  `json:"quote_number"`
	CustomerID      uuid.UUID               `json:"customer_id"`
	QuoteDate       time.Time               `json:"quote_date"`
	ValidUntil      *time.Time              `json:"valid_until,omitempty"`
	Subtotal        decimal.Decimal         `json:"subtotal"`
	Discount        decimal.Decimal         `json:"discount"`
	Total           decimal.Decimal         `json:"total"`
	Status          string                  `json:"status"`
	ConvertedSaleID *uuid.UUID              `json:"converted_sale_id,omitempty"`
	Notes           string                  `json:"notes,omitempty"`
	Items           []QuotationItemResponse `json:"items"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// ToQuotationResponse maps a quotation aggregate to its read shape
func ToQuotationResponse(quotation *trade.Quotation) QuotationResponse {
	items := make([]QuotationItemResponse, 0, len(quotation.Items))
	for idx := range quotation.Items {
		item := &quotation.Items[idx]
		items = append(items, QuotationItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}

	return QuotationResponse{
		ID:              quotation.ID,
		QuoteNumber:     quotation.QuoteNumber,
		CustomerID:      quotation.CustomerID,
		QuoteDate:       quotation.QuoteDate,
		ValidUntil:      quotation.ValidUntil,
		Subtotal:        quotation.Subtotal,
		Discount:        quotation.Discount,
		Total:           quotation.Total,
		Status:          string(quotation.Status),
		ConvertedSaleID: quotation.ConvertedSaleID,
		Notes:           quotation.Notes,
		Items:           items,
		CreatedAt:       quotation.CreatedAt,
		UpdatedAt:       quotation.UpdatedAt,
	}
}

// QuotationListFilter narrows and paginates quotation listings
type QuotationListFilter struct {
	Page       int
	PageSize   int
	OrderBy    string
	OrderDir   string
	Search     string
	CustomerID *uuid.UUID
	Status     string
}

// ==================== Outsourcing DTOs ====================

// OutsourcingOrderResponse is the read shape for an outsourcing order
type OutsourcingOrderResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	SaleID      *uuid.UUID      `json:"sale_id,omitempty"`
	SaleItemID  *uuid.UUID      `json:"sale_item_id,omitempty"`
	ProductID   uuid.UUID       `json:"product_id"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	DeliveredAt *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToOutsourcingOrderResponse maps an outsourcing order to its read shape
func ToOutsourcingOrderResponse(order *trade.OutsourcingOrder) OutsourcingOrderResponse {
	return OutsourcingOrderResponse{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		SaleID:      order.SaleID,
		SaleItemID:  order.SaleItemID,
		ProductID:   order.ProductID,
		SupplierID:  order.SupplierID,
		Quantity:    order.Quantity,
		CostPerUnit: order.CostPerUnit,
		TotalCost:   order.TotalCost,
		Status:      string(order.Status),
		Notes:       order.Notes,
		DeliveredAt: order.DeliveredAt,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

// OutsourcingListFilter narrows and paginates outsourcing listings
type OutsourcingListFilter struct {
	Page       int
	PageSize   int
	OrderBy    string
	OrderDir   string
	SupplierID *uuid.UUID
	SaleID     *uuid.UUID
	Status     string
}

// buildFilter applies the listing defaults shared by all engines
func buildFilter(page, pageSize int, orderBy, orderDir, search string) shared.Filter {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if orderBy == "" {
		orderBy = "created_at"
	}
	if orderDir == "" {
		orderDir = "desc"
	}
	return shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  orderBy,
		OrderDir: orderDir,
		Search:   search,
		Filters:  make(map[string]interface{}),
	}
}
