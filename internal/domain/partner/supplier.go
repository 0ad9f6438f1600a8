package partner

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
)

// Supplier represents a supplier in the partner context.
// TotalPurchases is the accounts-payable view of everything ordered from
// this supplier; it rises when a purchase order is created and falls
// when one is cancelled or trimmed, never below zero.
type Supplier struct {
	shared.BaseAggregateRoot
	Name           string          `gorm:"type:varchar(200);not null"`
	ContactName    string          `gorm:"type:varchar(100)"`
	Phone          string          `gorm:"type:varchar(50);index"`
	Address        string          `gorm:"type:text"`
	TotalPurchases decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status         SupplierStatus  `gorm:"type:varchar(20);not null;default:'active'"`
	Notes          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new active supplier
func NewSupplier(name, contactName, phone string) (*Supplier, error) {
	if err := validateSupplierName(name); err != nil {
		return nil, err
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone number format is invalid")
	}

	supplier := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ContactName:       contactName,
		Phone:             phone,
		TotalPurchases:    decimal.Zero,
		Status:            SupplierStatusActive,
	}

	supplier.AddDomainEvent(NewSupplierCreatedEvent(supplier))

	return supplier, nil
}

// AddPurchases adds to the supplier's total purchase volume
func (s *Supplier) AddPurchases(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}

	s.TotalPurchases = s.TotalPurchases.Add(amount)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SubtractPurchases reduces the supplier's total purchase volume,
// flooring at zero. Used when a purchase order is cancelled or its
// total is revised downward.
func (s *Supplier) SubtractPurchases(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}

	s.TotalPurchases = s.TotalPurchases.Sub(amount)
	if s.TotalPurchases.IsNegative() {
		s.TotalPurchases = decimal.Zero
	}
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Update updates the supplier's basic information
func (s *Supplier) Update(name, contactName, phone, address, notes string) error {
	if err := validateSupplierName(name); err != nil {
		return err
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number format is invalid")
	}

	s.Name = name
	s.ContactName = contactName
	s.Phone = phone
	s.Address = address
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Activate activates the supplier
func (s *Supplier) Activate() error {
	if s.Status == SupplierStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Supplier is already active")
	}

	s.Status = SupplierStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Deactivate deactivates the supplier
func (s *Supplier) Deactivate() error {
	if s.Status == SupplierStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Supplier is already inactive")
	}

	s.Status = SupplierStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// IsActive returns true if the supplier is active
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}

func validateSupplierName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}
	return nil
}
