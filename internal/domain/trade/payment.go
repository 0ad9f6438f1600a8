package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// PaymentKind distinguishes money received from money paid back
type PaymentKind string

const (
	// PaymentKindReceived is money collected against a sale, including
	// the compensating payment written when a sale moves off credit
	PaymentKindReceived PaymentKind = "received"
	// PaymentKindRefund is money returned to the customer
	PaymentKindRefund PaymentKind = "refund"
)

// IsValid returns true if the kind is known
func (k PaymentKind) IsValid() bool {
	return k == PaymentKindReceived || k == PaymentKindRefund
}

// Payment is a bookkeeping record tied to a sale. Written when a credit
// sale is settled (or its payment method changes off credit) and when a
// reversal refunds the customer.
type Payment struct {
	shared.BaseEntity
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID  *uuid.UUID      `gorm:"type:uuid;index"`
	Kind        PaymentKind     `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Method      PaymentMethod   `gorm:"type:varchar(20);not null"`
	Notes       string          `gorm:"type:varchar(255)"`
	PaymentDate time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a payment record against a sale
func NewPayment(saleID uuid.UUID, customerID *uuid.UUID, kind PaymentKind, amount decimal.Decimal, method PaymentMethod, notes string) (*Payment, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_KIND", "Unknown payment kind")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	return &Payment{
		BaseEntity:  shared.NewBaseEntity(),
		SaleID:      saleID,
		CustomerID:  customerID,
		Kind:        kind,
		Amount:      amount,
		Method:      method,
		Notes:       notes,
		PaymentDate: time.Now(),
	}, nil
}
