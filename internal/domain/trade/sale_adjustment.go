package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// AdjustmentType classifies a post-sale adjustment
type AdjustmentType string

const (
	AdjustmentTypeReturn       AdjustmentType = "return"
	AdjustmentTypeFullReversal AdjustmentType = "full_reversal"
)

// IsValid returns true if the adjustment type is known
func (t AdjustmentType) IsValid() bool {
	return t == AdjustmentTypeReturn || t == AdjustmentTypeFullReversal
}

// SaleAdjustment records one return or full reversal against a sale.
// Adjustments are append-only history; the sale's own lines are mutated
// separately to reflect what the customer still holds.
type SaleAdjustment struct {
	shared.BaseEntity
	SaleID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	Type         AdjustmentType   `gorm:"type:varchar(20);not null"`
	Reason       string           `gorm:"type:varchar(255)"`
	RefundAmount decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	Items        []AdjustmentItem `gorm:"foreignKey:AdjustmentID"`
}

// TableName returns the table name for GORM
func (SaleAdjustment) TableName() string {
	return "sale_adjustments"
}

// AdjustmentItem records one returned line within an adjustment
type AdjustmentItem struct {
	shared.BaseEntity
	AdjustmentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason       string          `gorm:"type:varchar(255)"`
	Restocked    bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AdjustmentItem) TableName() string {
	return "sale_adjustment_items"
}

// NewReturnAdjustment creates an adjustment for a partial return
func NewReturnAdjustment(saleID uuid.UUID, reason string, refundAmount decimal.Decimal) (*SaleAdjustment, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if refundAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Refund amount cannot be negative")
	}

	return &SaleAdjustment{
		BaseEntity:   shared.NewBaseEntity(),
		SaleID:       saleID,
		Type:         AdjustmentTypeReturn,
		Reason:       reason,
		RefundAmount: refundAmount,
		Items:        make([]AdjustmentItem, 0),
	}, nil
}

// NewFullReversalAdjustment creates an adjustment cancelling a whole sale
func NewFullReversalAdjustment(saleID uuid.UUID, reason string, refundAmount decimal.Decimal) (*SaleAdjustment, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Reversal reason is required")
	}
	if refundAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Refund amount cannot be negative")
	}

	return &SaleAdjustment{
		BaseEntity:   shared.NewBaseEntity(),
		SaleID:       saleID,
		Type:         AdjustmentTypeFullReversal,
		Reason:       reason,
		RefundAmount: refundAmount,
		Items:        make([]AdjustmentItem, 0),
	}, nil
}

// AddItem records a returned line on the adjustment
func (a *SaleAdjustment) AddItem(productID uuid.UUID, quantity decimal.Decimal, reason string, restocked bool) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	a.Items = append(a.Items, AdjustmentItem{
		BaseEntity:   shared.NewBaseEntity(),
		AdjustmentID: a.ID,
		ProductID:    productID,
		Quantity:     quantity,
		Reason:       reason,
		Restocked:    restocked,
	})

	return nil
}
