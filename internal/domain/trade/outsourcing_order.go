package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// OutsourcingStatus represents the status of an outsourcing order
type OutsourcingStatus string

const (
	OutsourcingStatusPending   OutsourcingStatus = "pending"
	OutsourcingStatusOrdered   OutsourcingStatus = "ordered"
	OutsourcingStatusDelivered OutsourcingStatus = "delivered"
	OutsourcingStatusCancelled OutsourcingStatus = "cancelled"
)

// IsValid returns true if the status is known
func (s OutsourcingStatus) IsValid() bool {
	switch s {
	case OutsourcingStatusPending, OutsourcingStatusOrdered, OutsourcingStatusDelivered, OutsourcingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s OutsourcingStatus) CanTransitionTo(target OutsourcingStatus) bool {
	switch s {
	case OutsourcingStatusPending:
		return target == OutsourcingStatusOrdered || target == OutsourcingStatusDelivered || target == OutsourcingStatusCancelled
	case OutsourcingStatusOrdered:
		return target == OutsourcingStatusDelivered || target == OutsourcingStatusCancelled
	case OutsourcingStatusDelivered, OutsourcingStatusCancelled:
		return false
	}
	return false
}

// OutsourcingOrder tracks a sale line fulfilled by a supplier directly.
// Delivery adds the quantity to stock exactly once; the delivered and
// cancelled states are terminal.
type OutsourcingOrder struct {
	shared.BaseAggregateRoot
	OrderNumber string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	SaleID      *uuid.UUID        `gorm:"type:uuid;index"`
	SaleItemID  *uuid.UUID        `gorm:"type:uuid"`
	ProductID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	SupplierID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	Quantity    decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	CostPerUnit decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	TotalCost   decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	Status      OutsourcingStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes       string            `gorm:"type:text"` // append-only note trail
	DeliveredAt *time.Time        `gorm:"type:timestamptz"`
}

// TableName returns the table name for GORM
func (OutsourcingOrder) TableName() string {
	return "outsourcing_orders"
}

// NewOutsourcingOrder creates a pending outsourcing order
func NewOutsourcingOrder(orderNumber string, productID, supplierID uuid.UUID, quantity, costPerUnit decimal.Decimal) (*OutsourcingOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if costPerUnit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost per unit cannot be negative")
	}

	return &OutsourcingOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		ProductID:         productID,
		SupplierID:        supplierID,
		Quantity:          quantity,
		CostPerUnit:       costPerUnit,
		TotalCost:         quantity.Mul(costPerUnit),
		Status:            OutsourcingStatusPending,
	}, nil
}

// LinkSale ties the order back to the sale line that spawned it
func (o *OutsourcingOrder) LinkSale(saleID, saleItemID uuid.UUID) {
	o.SaleID = &saleID
	o.SaleItemID = &saleItemID
	o.UpdatedAt = time.Now()
}

// UpdateStatus moves the order through its status machine. The
// delivered transition is owned by MarkDelivered.
func (o *OutsourcingOrder) UpdateStatus(target OutsourcingStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown outsourcing status")
	}
	if target == OutsourcingStatusDelivered {
		return shared.NewDomainError("INVALID_STATE", "Delivery is recorded through the delivery flow")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move outsourcing order from %s to %s", o.Status, target))
	}

	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// MarkDelivered records delivery exactly once. The caller adds the
// quantity to stock in the same transaction.
func (o *OutsourcingOrder) MarkDelivered() error {
	if o.Status == OutsourcingStatusDelivered {
		return shared.NewDomainError("INVALID_STATE", "Outsourcing order has already been delivered")
	}
	if !o.Status.CanTransitionTo(OutsourcingStatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver outsourcing order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OutsourcingStatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOutsourcingDeliveredEvent(o))

	return nil
}

// AppendNote appends to the order's note trail. Existing notes are
// never rewritten.
func (o *OutsourcingOrder) AppendNote(note string) error {
	note = strings.TrimSpace(note)
	if note == "" {
		return shared.NewDomainError("INVALID_NOTE", "Note cannot be empty")
	}

	stamped := fmt.Sprintf("[%s] %s", time.Now().Format("2006-01-02 15:04"), note)
	if o.Notes == "" {
		o.Notes = stamped
	} else {
		o.Notes = o.Notes + "\n" + stamped
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// IsDelivered returns true once delivery was recorded
func (o *OutsourcingOrder) IsDelivered() bool {
	return o.Status == OutsourcingStatusDelivered
}
