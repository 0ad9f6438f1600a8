package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// QuotationStatus represents the status of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusAccepted QuotationStatus = "accepted"
	QuotationStatusRejected QuotationStatus = "rejected"
)

// IsValid returns true if the status is known
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusAccepted, QuotationStatusRejected:
		return true
	}
	return false
}

// QuotationItem is one quoted line
type QuotationItem struct {
	shared.BaseEntity
	QuotationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (QuotationItem) TableName() string {
	return "quotation_items"
}

// NewQuotationItem creates a quoted line
func NewQuotationItem(quotationID, productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal) (*QuotationItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &QuotationItem{
		BaseEntity:  shared.NewBaseEntity(),
		QuotationID: quotationID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       quantity.Mul(unitPrice),
	}, nil
}

// Quotation is a priced offer to a customer. It carries no balance side
// effects until conversion; conversion into a sale is one-shot and
// cannot be undone.
type Quotation struct {
	shared.BaseAggregateRoot
	QuoteNumber     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuoteDate       time.Time       `gorm:"type:timestamptz;not null"`
	ValidUntil      *time.Time      `gorm:"type:timestamptz"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Discount        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status          QuotationStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	ConvertedSaleID *uuid.UUID      `gorm:"type:uuid"`
	Notes           string          `gorm:"type:text"`
	Items           []QuotationItem `gorm:"foreignKey:QuotationID"`
}

// TableName returns the table name for GORM
func (Quotation) TableName() string {
	return "quotations"
}

// NewQuotation creates a draft quotation
func NewQuotation(quoteNumber string, customerID uuid.UUID, validUntil *time.Time, notes string) (*Quotation, error) {
	if quoteNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Quote number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	return &Quotation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		QuoteNumber:       quoteNumber,
		CustomerID:        customerID,
		QuoteDate:         time.Now(),
		ValidUntil:        validUntil,
		Subtotal:          decimal.Zero,
		Discount:          decimal.Zero,
		Total:             decimal.Zero,
		Status:            QuotationStatusDraft,
		Items:             make([]QuotationItem, 0),
	}, nil
}

// AddItem adds a quoted line while the quotation is modifiable
func (q *Quotation) AddItem(productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal) error {
	if !q.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify quotation in %s status", q.Status))
	}

	item, err := NewQuotationItem(q.ID, productID, productName, quantity, unitPrice)
	if err != nil {
		return err
	}

	q.Items = append(q.Items, *item)
	q.recalculateTotals()
	q.UpdatedAt = time.Now()

	return nil
}

// ReplaceItems swaps the whole line set and recomputes totals
func (q *Quotation) ReplaceItems(items []QuotationItem) error {
	if !q.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify quotation in %s status", q.Status))
	}

	q.Items = items
	q.recalculateTotals()
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

// ApplyDiscount applies a quotation-level discount while modifiable
func (q *Quotation) ApplyDiscount(discount decimal.Decimal) error {
	if !q.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify quotation in %s status", q.Status))
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.GreaterThan(q.Subtotal) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed subtotal")
	}

	q.Discount = discount
	q.recalculateTotals()
	q.UpdatedAt = time.Now()

	return nil
}

// SetValidUntil updates the expiry date while modifiable
func (q *Quotation) SetValidUntil(validUntil *time.Time) error {
	if !q.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify quotation in %s status", q.Status))
	}

	q.ValidUntil = validUntil
	q.UpdatedAt = time.Now()

	return nil
}

// SetNotes replaces the quotation's free-form notes
func (q *Quotation) SetNotes(notes string) {
	q.Notes = notes
	q.UpdatedAt = time.Now()
}

// UpdateStatus moves the quotation through draft/sent/accepted/rejected
func (q *Quotation) UpdateStatus(target QuotationStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown quotation status")
	}
	if q.IsConverted() {
		return shared.NewDomainError("INVALID_STATE", "Quotation has already been converted to a sale")
	}
	if q.Status == QuotationStatusAccepted || q.Status == QuotationStatusRejected {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change status of a %s quotation", q.Status))
	}

	q.Status = target
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

// MarkConverted records the one-shot conversion into a sale and accepts
// the quotation. Terminal.
func (q *Quotation) MarkConverted(saleID uuid.UUID) error {
	if saleID == uuid.Nil {
		return shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if !q.CanConvert() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot convert quotation in %s status", q.Status))
	}

	q.ConvertedSaleID = &saleID
	q.Status = QuotationStatusAccepted
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	q.AddDomainEvent(NewQuotationConvertedEvent(q, saleID))

	return nil
}

// CanModify reports whether the line set may change
func (q *Quotation) CanModify() bool {
	return q.Status == QuotationStatusDraft || q.Status == QuotationStatusSent
}

// CanConvert reports whether conversion into a sale is allowed.
// Draft, sent, and accepted quotations all convert; rejection and a
// prior conversion block it.
func (q *Quotation) CanConvert() bool {
	return !q.IsConverted() && q.Status != QuotationStatusRejected
}

// CanDelete reports whether deletion is allowed
func (q *Quotation) CanDelete() bool {
	return !q.IsConverted()
}

// IsConverted returns true once a sale was created from this quotation
func (q *Quotation) IsConverted() bool {
	return q.ConvertedSaleID != nil
}

// recalculateTotals recomputes subtotal and total from the lines
func (q *Quotation) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range q.Items {
		subtotal = subtotal.Add(item.Total)
	}
	q.Subtotal = subtotal
	q.Total = q.Subtotal.Sub(q.Discount)
	if q.Total.IsNegative() {
		q.Total = decimal.Zero
	}
}
