package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// MovementType classifies a stock movement in the ledger
type MovementType string

const (
	MovementTypeSale                MovementType = "sale"
	MovementTypePurchase            MovementType = "purchase"
	MovementTypeAdjustment          MovementType = "adjustment"
	MovementTypeRestock             MovementType = "restock"
	MovementTypeDamage              MovementType = "damage"
	MovementTypeReturn              MovementType = "return"
	MovementTypeOutsourcingDelivery MovementType = "outsourcing_delivery"
)

// String returns the string representation of MovementType
func (m MovementType) String() string {
	return string(m)
}

// IsValid returns true if the movement type is valid
func (m MovementType) IsValid() bool {
	switch m {
	case MovementTypeSale,
		MovementTypePurchase,
		MovementTypeAdjustment,
		MovementTypeRestock,
		MovementTypeDamage,
		MovementTypeReturn,
		MovementTypeOutsourcingDelivery:
		return true
	}
	return false
}

// ItemCondition describes the physical state of moved stock
type ItemCondition string

const (
	ItemConditionGood    ItemCondition = "good"
	ItemConditionDamaged ItemCondition = "damaged"
)

// IsValid returns true if the condition is valid
func (c ItemCondition) IsValid() bool {
	return c == ItemConditionGood || c == ItemConditionDamaged
}

// LedgerEntry is an immutable record of one stock movement. Entries are
// append-only: corrections are made with new entries, never by editing.
// The product's stock column is a cached projection of the sum of all
// ledger deltas, so BalanceAfter of the latest entry must equal current
// stock.
type LedgerEntry struct {
	shared.BaseEntity
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_product_time,priority:1"`
	MovementType  MovementType    `gorm:"type:varchar(30);not null;index"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // signed: negative = decrease
	BalanceBefore decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reference     string          `gorm:"type:varchar(100);index"` // order number or free text
	Reason        string          `gorm:"type:varchar(255)"`
	Condition     *ItemCondition  `gorm:"type:varchar(20)"`
	MovementDate  time.Time       `gorm:"type:timestamptz;not null;index:idx_ledger_product_time,priority:2"`
}

// TableName returns the table name for GORM
func (LedgerEntry) TableName() string {
	return "stock_ledger_entries"
}

// NewLedgerEntry creates a ledger entry for a stock transition. It
// enforces balanceAfter = balanceBefore + quantity and rejects negative
// resulting balances.
func NewLedgerEntry(
	productID uuid.UUID,
	movement MovementType,
	quantity decimal.Decimal,
	balanceBefore decimal.Decimal,
	reference string,
	reason string,
) (*LedgerEntry, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !movement.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be zero")
	}
	if balanceBefore.IsNegative() {
		return nil, shared.NewDomainError("INVALID_BALANCE", "Balance before cannot be negative")
	}

	balanceAfter := balanceBefore.Add(quantity)
	if balanceAfter.IsNegative() {
		return nil, shared.ErrInsufficientStock
	}

	return &LedgerEntry{
		BaseEntity:    shared.NewBaseEntity(),
		ProductID:     productID,
		MovementType:  movement,
		Quantity:      quantity,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Reference:     reference,
		Reason:        reason,
		MovementDate:  time.Now(),
	}, nil
}

// WithCondition records the physical condition of the moved stock
func (e *LedgerEntry) WithCondition(condition ItemCondition) (*LedgerEntry, error) {
	if !condition.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONDITION", "Condition must be good or damaged")
	}
	e.Condition = &condition
	return e, nil
}

// IsIncrease returns true if this entry added stock
func (e *LedgerEntry) IsIncrease() bool {
	return e.Quantity.IsPositive()
}

// IsDecrease returns true if this entry removed stock
func (e *LedgerEntry) IsDecrease() bool {
	return e.Quantity.IsNegative()
}
