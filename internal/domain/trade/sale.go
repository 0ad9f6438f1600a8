package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// PaymentMethod represents how a sale is paid
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCredit       PaymentMethod = "credit"
	PaymentMethodCheque       PaymentMethod = "cheque"
)

// IsValid returns true if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodCredit, PaymentMethodCheque:
		return true
	}
	return false
}

// SaleStatus represents the status of a sale
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

// IsValid returns true if the status is known
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	switch s {
	case SaleStatusPending:
		return target == SaleStatusCompleted || target == SaleStatusCancelled
	case SaleStatusCompleted:
		return target == SaleStatusCancelled
	case SaleStatusCancelled:
		return false
	}
	return false
}

// SaleItem represents a line item in a sale. Quantity is reduced in
// place by returns so it always reflects what the customer still holds;
// QuantityReturned and QuantityRestocked count what has left the line
// and what of that went back into stock.
type SaleItem struct {
	shared.BaseEntity
	SaleID                 uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductID              uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductName            string           `gorm:"type:varchar(200);not null"`
	Quantity               decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	UnitPrice              decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	Total                  decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	CostAtSale             decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"` // catalog cost captured at sale time
	IsOutsourced           bool             `gorm:"not null;default:false"`
	OutsourcingSupplierID  *uuid.UUID       `gorm:"type:uuid"`
	OutsourcingCostPerUnit *decimal.Decimal `gorm:"type:decimal(18,4)"`
	QuantityReturned       decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	QuantityRestocked      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// NewSaleItem creates a sale line, capturing the product's current cost
// so later profit reporting never needs the catalog's cost history.
func NewSaleItem(saleID, productID uuid.UUID, productName string, quantity, unitPrice, costAtSale decimal.Decimal) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if costAtSale.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}

	return &SaleItem{
		BaseEntity:        shared.NewBaseEntity(),
		SaleID:            saleID,
		ProductID:         productID,
		ProductName:       productName,
		Quantity:          quantity,
		UnitPrice:         unitPrice,
		Total:             quantity.Mul(unitPrice),
		CostAtSale:        costAtSale,
		QuantityReturned:  decimal.Zero,
		QuantityRestocked: decimal.Zero,
	}, nil
}

// Outsource marks the line as fulfilled by a supplier rather than from
// on-hand stock
func (i *SaleItem) Outsource(supplierID uuid.UUID, costPerUnit decimal.Decimal) error {
	if supplierID == uuid.Nil {
		return shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if costPerUnit.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Outsourcing cost cannot be negative")
	}

	i.IsOutsourced = true
	i.OutsourcingSupplierID = &supplierID
	i.OutsourcingCostPerUnit = &costPerUnit
	i.UpdatedAt = time.Now()

	return nil
}

// Return reduces the line in place by the returned quantity. Rejects
// quantities above what the customer still holds.
func (i *SaleItem) Return(quantity decimal.Decimal, restocked bool) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
	}
	if quantity.GreaterThan(i.Quantity) {
		return shared.NewDomainErrorWithDetails("INVALID_RETURN",
			fmt.Sprintf("Return quantity %s exceeds remaining quantity %s", quantity, i.Quantity),
			map[string]interface{}{"product_id": i.ProductID.String(), "remaining": i.Quantity.String()})
	}

	i.Quantity = i.Quantity.Sub(quantity)
	i.Total = i.Quantity.Mul(i.UnitPrice)
	i.QuantityReturned = i.QuantityReturned.Add(quantity)
	if restocked {
		i.QuantityRestocked = i.QuantityRestocked.Add(quantity)
	}
	i.UpdatedAt = time.Now()

	return nil
}

// IsEmpty returns true once returns have consumed the whole line
func (i *SaleItem) IsEmpty() bool {
	return i.Quantity.IsZero()
}

// UnitCost returns the per-unit cost for profit purposes: the
// outsourcing cost when the line is outsourced, else the captured
// cost at sale.
func (i *SaleItem) UnitCost() decimal.Decimal {
	if i.IsOutsourced && i.OutsourcingCostPerUnit != nil {
		return *i.OutsourcingCostPerUnit
	}
	return i.CostAtSale
}

// Sale represents a completed customer order. Sales complete
// synchronously on creation; there is no separate confirm step.
type Sale struct {
	shared.BaseAggregateRoot
	OrderNumber   string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"` // nil = walk-in
	SaleDate      time.Time       `gorm:"type:timestamptz;not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Discount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Tax           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null;default:'cash'"`
	Status        SaleStatus      `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes         string          `gorm:"type:text"`
	CancelReason  string          `gorm:"type:varchar(255)"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a pending sale shell; lines are added and the sale is
// finalized by the sales service inside one transaction.
func NewSale(orderNumber string, customerID *uuid.UUID, method PaymentMethod, notes string) (*Sale, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if customerID != nil && *customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be nil")
	}

	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		SaleDate:          time.Now(),
		Subtotal:          decimal.Zero,
		Discount:          decimal.Zero,
		Tax:               decimal.Zero,
		Total:             decimal.Zero,
		PaymentMethod:     method,
		Status:            SaleStatusPending,
		Notes:             notes,
		Items:             make([]SaleItem, 0),
	}

	return sale, nil
}

// AddItem adds a line while the sale is still pending
func (s *Sale) AddItem(productID uuid.UUID, productName string, quantity, unitPrice, costAtSale decimal.Decimal) (*SaleItem, error) {
	if s.Status != SaleStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a finalized sale")
	}

	item, err := NewSaleItem(s.ID, productID, productName, quantity, unitPrice, costAtSale)
	if err != nil {
		return nil, err
	}

	s.Items = append(s.Items, *item)
	s.recalculateTotals()
	s.UpdatedAt = time.Now()

	return &s.Items[len(s.Items)-1], nil
}

// ApplyDiscount applies an order-level discount while pending
func (s *Sale) ApplyDiscount(discount decimal.Decimal) error {
	if s.Status != SaleStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply discount to a finalized sale")
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.GreaterThan(s.Subtotal) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed subtotal")
	}

	s.Discount = discount
	s.recalculateTotals()
	s.UpdatedAt = time.Now()

	return nil
}

// ApplyTax sets the tax amount while the sale is still pending. The
// current tax rate is always zero but the totals formula stays general.
func (s *Sale) ApplyTax(tax decimal.Decimal) error {
	if s.Status != SaleStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply tax to a finalized sale")
	}
	if tax.IsNegative() {
		return shared.NewDomainError("INVALID_TAX", "Tax cannot be negative")
	}

	s.Tax = tax
	s.recalculateTotals()
	s.UpdatedAt = time.Now()

	return nil
}

// SetNotes replaces the sale's free-form notes
func (s *Sale) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
}

// Finalize completes the sale. Requires at least one line.
func (s *Sale) Finalize() error {
	if s.Status != SaleStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot finalize sale in %s status", s.Status))
	}
	if len(s.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot finalize a sale without items")
	}

	s.recalculateTotals()
	s.Status = SaleStatusCompleted
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleCompletedEvent(s))

	return nil
}

// UpdateStatus moves the sale through its status machine
func (s *Sale) UpdateStatus(target SaleStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown sale status")
	}
	if !s.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move sale from %s to %s", s.Status, target))
	}

	s.Status = target
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// ChangePaymentMethod changes how the sale is paid. Balance side
// effects for moves to/from credit are the sales service's concern.
func (s *Sale) ChangePaymentMethod(method PaymentMethod) error {
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if s.Status == SaleStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot change payment method of a cancelled sale")
	}

	s.PaymentMethod = method
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// ReassignCustomer moves the sale to another customer (or to walk-in)
func (s *Sale) ReassignCustomer(customerID *uuid.UUID) error {
	if s.Status == SaleStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot reassign a cancelled sale")
	}
	if customerID != nil && *customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be nil")
	}

	s.CustomerID = customerID
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// ApplyRefund reduces the sale's subtotal and total by the refunded
// amount, flooring both at zero. The amount is caller-supplied and is
// not derived from the returned lines.
func (s *Sale) ApplyRefund(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Refund amount cannot be negative")
	}

	s.Subtotal = s.Subtotal.Sub(amount)
	if s.Subtotal.IsNegative() {
		s.Subtotal = decimal.Zero
	}
	s.Total = s.Total.Sub(amount)
	if s.Total.IsNegative() {
		s.Total = decimal.Zero
	}
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Revert cancels the whole sale. Terminal.
func (s *Sale) Revert(reason string) error {
	if !s.CanBeReverted() {
		return shared.NewDomainError("INVALID_STATE", "Sale is already cancelled")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	s.Status = SaleStatusCancelled
	s.CancelReason = reason
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleRevertedEvent(s))

	return nil
}

// CanBeAdjusted reports whether partial returns are legal
func (s *Sale) CanBeAdjusted() bool {
	return s.Status == SaleStatusCompleted
}

// CanBeReverted reports whether a full reversal is legal
func (s *Sale) CanBeReverted() bool {
	return s.Status != SaleStatusCancelled
}

// IsCredit returns true if the sale is on the credit payment method
func (s *Sale) IsCredit() bool {
	return s.PaymentMethod == PaymentMethodCredit
}

// GetItemByProduct returns the line for a product, or nil
func (s *Sale) GetItemByProduct(productID uuid.UUID) *SaleItem {
	for idx := range s.Items {
		if s.Items[idx].ProductID == productID {
			return &s.Items[idx]
		}
	}
	return nil
}

// RemoveEmptyItems drops lines fully consumed by returns and returns
// the IDs of the removed rows so persistence can delete them.
func (s *Sale) RemoveEmptyItems() []uuid.UUID {
	removed := make([]uuid.UUID, 0)
	kept := s.Items[:0]
	for _, item := range s.Items {
		if item.IsEmpty() {
			removed = append(removed, item.ID)
			continue
		}
		kept = append(kept, item)
	}
	s.Items = kept
	return removed
}

// recalculateTotals recomputes subtotal and total from the lines.
// Tax is carried so the formula stays general even while the rate is 0.
func (s *Sale) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range s.Items {
		subtotal = subtotal.Add(item.Total)
	}
	s.Subtotal = subtotal
	s.Total = s.Subtotal.Sub(s.Discount).Add(s.Tax)
	if s.Total.IsNegative() {
		s.Total = decimal.Zero
	}
}
