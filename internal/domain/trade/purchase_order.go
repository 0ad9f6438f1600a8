package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/usmanhardware/backend/internal/domain/inventory"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft             PurchaseOrderStatus = "draft"
	PurchaseOrderStatusSent              PurchaseOrderStatus = "sent"
	PurchaseOrderStatusConfirmed         PurchaseOrderStatus = "confirmed"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "partially_received"
	PurchaseOrderStatusReceived          PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "cancelled"
)

// IsValid returns true if the status is known
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusSent, PurchaseOrderStatusConfirmed,
		PurchaseOrderStatusPartiallyReceived, PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for received and cancelled
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == PurchaseOrderStatusReceived || s == PurchaseOrderStatusCancelled
}

// PurchaseOrderItem is one ordered line. QuantityReceived only ever
// grows and never passes Quantity.
type PurchaseOrderItem struct {
	shared.BaseEntity
	PurchaseOrderID  uuid.UUID                `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID                `gorm:"type:uuid;not null;index"`
	ProductName      string                   `gorm:"type:varchar(200);not null"`
	Quantity         decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	UnitPrice        decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	Total            decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	QuantityReceived decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	ItemCondition    *inventory.ItemCondition `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// NewPurchaseOrderItem creates an ordered line
func NewPurchaseOrderItem(purchaseOrderID, productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal) (*PurchaseOrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &PurchaseOrderItem{
		BaseEntity:       shared.NewBaseEntity(),
		PurchaseOrderID:  purchaseOrderID,
		ProductID:        productID,
		ProductName:      productName,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		Total:            quantity.Mul(unitPrice),
		QuantityReceived: decimal.Zero,
	}, nil
}

// Receive books a received quantity onto the line. The running total is
// monotone and capped at the ordered quantity.
func (i *PurchaseOrderItem) Receive(quantity decimal.Decimal, condition inventory.ItemCondition) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	if !condition.IsValid() {
		return shared.NewDomainError("INVALID_CONDITION", "Condition must be good or damaged")
	}

	newReceived := i.QuantityReceived.Add(quantity)
	if newReceived.GreaterThan(i.Quantity) {
		return shared.NewDomainErrorWithDetails("INVALID_QUANTITY",
			fmt.Sprintf("Receiving %s would exceed ordered quantity %s (already received %s)", quantity, i.Quantity, i.QuantityReceived),
			map[string]interface{}{"product_id": i.ProductID.String(), "ordered": i.Quantity.String(), "received": i.QuantityReceived.String()})
	}

	i.QuantityReceived = newReceived
	i.ItemCondition = &condition
	i.UpdatedAt = time.Now()

	return nil
}

// IsFullyReceived returns true once the whole ordered quantity arrived
func (i *PurchaseOrderItem) IsFullyReceived() bool {
	return i.QuantityReceived.GreaterThanOrEqual(i.Quantity)
}

// PurchaseOrder drafts and tracks an order against a supplier.
// The supplier's total_purchases rises at creation time, not receipt,
// so cancellation must symmetrically reverse it.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber      string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	OrderDate        time.Time           `gorm:"type:timestamptz;not null"`
	ExpectedDelivery *time.Time          `gorm:"type:timestamptz"`
	Subtotal         decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Tax              decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Total            decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Status           PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	Notes            string              `gorm:"type:text"`
	Items            []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a draft purchase order
func NewPurchaseOrder(orderNumber string, supplierID uuid.UUID, expectedDelivery *time.Time, notes string) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}

	po := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		SupplierID:        supplierID,
		OrderDate:         time.Now(),
		ExpectedDelivery:  expectedDelivery,
		Subtotal:          decimal.Zero,
		Tax:               decimal.Zero,
		Total:             decimal.Zero,
		Status:            PurchaseOrderStatusDraft,
		Items:             make([]PurchaseOrderItem, 0),
	}

	return po, nil
}

// AddItem adds an ordered line while the order is modifiable
func (po *PurchaseOrder) AddItem(productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal) error {
	if !po.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify purchase order in %s status", po.Status))
	}

	item, err := NewPurchaseOrderItem(po.ID, productID, productName, quantity, unitPrice)
	if err != nil {
		return err
	}

	po.Items = append(po.Items, *item)
	po.recalculateTotals()
	po.UpdatedAt = time.Now()

	return nil
}

// ReplaceItems swaps the whole line set and recomputes totals. Used by
// updates, which treat the incoming item list as authoritative.
func (po *PurchaseOrder) ReplaceItems(items []PurchaseOrderItem) error {
	if !po.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify purchase order in %s status", po.Status))
	}

	po.Items = items
	po.recalculateTotals()
	po.UpdatedAt = time.Now()
	po.IncrementVersion()

	return nil
}

// ChangeSupplier reassigns the order to a different supplier while it
// is still modifiable. Supplier total reconciliation is the calling
// service's responsibility.
func (po *PurchaseOrder) ChangeSupplier(supplierID uuid.UUID) error {
	if supplierID == uuid.Nil {
		return shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if !po.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify purchase order in %s status", po.Status))
	}

	po.SupplierID = supplierID
	po.UpdatedAt = time.Now()

	return nil
}

// SetExpectedDelivery updates the expected delivery date
func (po *PurchaseOrder) SetExpectedDelivery(expectedDelivery *time.Time) error {
	if !po.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify purchase order in %s status", po.Status))
	}

	po.ExpectedDelivery = expectedDelivery
	po.UpdatedAt = time.Now()

	return nil
}

// SetNotes replaces the order's free-form notes
func (po *PurchaseOrder) SetNotes(notes string) {
	po.Notes = notes
	po.UpdatedAt = time.Now()
}

// UpdateStatus moves the order to the target status. Receipt statuses
// are owned by ReceiveItems, not this method.
func (po *PurchaseOrder) UpdateStatus(target PurchaseOrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown purchase order status")
	}
	if po.Status.IsTerminal() && po.Status != PurchaseOrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change status of a %s purchase order", po.Status))
	}
	if target == PurchaseOrderStatusReceived || target == PurchaseOrderStatusPartiallyReceived {
		return shared.NewDomainError("INVALID_STATE", "Receipt statuses are set by receiving items")
	}

	po.Status = target
	po.UpdatedAt = time.Now()
	po.IncrementVersion()

	return nil
}

// ReceiveItem books a received quantity against the line for a product
func (po *PurchaseOrder) ReceiveItem(productID uuid.UUID, quantity decimal.Decimal, condition inventory.ItemCondition) error {
	if !po.CanReceive() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot receive items on a %s purchase order", po.Status))
	}

	for idx := range po.Items {
		if po.Items[idx].ProductID == productID {
			return po.Items[idx].Receive(quantity, condition)
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Purchase order has no line for this product")
}

// ResolveReceiptStatus settles the status after a receipt pass:
// received when every line is fully in, else partially_received.
func (po *PurchaseOrder) ResolveReceiptStatus() {
	for _, item := range po.Items {
		if !item.IsFullyReceived() {
			po.Status = PurchaseOrderStatusPartiallyReceived
			po.UpdatedAt = time.Now()
			po.IncrementVersion()
			return
		}
	}
	po.Status = PurchaseOrderStatusReceived
	po.UpdatedAt = time.Now()
	po.IncrementVersion()
}

// Cancel cancels the order from draft or sent
func (po *PurchaseOrder) Cancel() error {
	if !po.CanCancel() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel purchase order in %s status", po.Status))
	}

	po.Status = PurchaseOrderStatusCancelled
	po.UpdatedAt = time.Now()
	po.IncrementVersion()

	return nil
}

// CanModify reports whether the line set may change
func (po *PurchaseOrder) CanModify() bool {
	return po.Status == PurchaseOrderStatusDraft || po.Status == PurchaseOrderStatusSent
}

// CanReceive reports whether goods may be booked in. Receipt is allowed
// from any status short of received or cancelled, including draft.
func (po *PurchaseOrder) CanReceive() bool {
	return po.Status != PurchaseOrderStatusReceived && po.Status != PurchaseOrderStatusCancelled
}

// CanCancel reports whether cancellation is allowed
func (po *PurchaseOrder) CanCancel() bool {
	return po.Status == PurchaseOrderStatusDraft || po.Status == PurchaseOrderStatusSent
}

// CanDelete reports whether the whole order may be deleted
func (po *PurchaseOrder) CanDelete() bool {
	return po.Status == PurchaseOrderStatusDraft
}

// IsCancelled returns true if the order is cancelled
func (po *PurchaseOrder) IsCancelled() bool {
	return po.Status == PurchaseOrderStatusCancelled
}

// GetItemByProduct returns the line for a product, or nil
func (po *PurchaseOrder) GetItemByProduct(productID uuid.UUID) *PurchaseOrderItem {
	for idx := range po.Items {
		if po.Items[idx].ProductID == productID {
			return &po.Items[idx]
		}
	}
	return nil
}

// recalculateTotals recomputes subtotal and total from the lines
func (po *PurchaseOrder) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range po.Items {
		subtotal = subtotal.Add(item.Total)
	}
	po.Subtotal = subtotal
	po.Total = po.Subtotal.Add(po.Tax)
}
