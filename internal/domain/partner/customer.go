package partner

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-() ]{5,50}$`)

// Customer represents a customer in the partner context.
// CurrentBalance is the accounts-receivable balance from credit sales;
// it rises when a sale is made on credit and falls on payment or when a
// sale moves off the credit payment method.
type Customer struct {
	shared.BaseAggregateRoot
	Name           string          `gorm:"type:varchar(200);not null"`
	Phone          string          `gorm:"type:varchar(50);index"`
	Address        string          `gorm:"type:text"`
	CreditLimit    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalPurchases decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status         CustomerStatus  `gorm:"type:varchar(20);not null;default:'active'"`
	Notes          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new active customer
func NewCustomer(name, phone string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone number format is invalid")
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		CreditLimit:       decimal.Zero,
		CurrentBalance:    decimal.Zero,
		TotalPurchases:    decimal.Zero,
		Status:            CustomerStatusActive,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// SetCreditLimit sets the customer's credit limit
func (c *Customer) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}

	c.CreditLimit = limit
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// WouldExceedCreditLimit reports whether adding amount to the outstanding
// balance would pass the credit limit. A zero limit means no limit.
func (c *Customer) WouldExceedCreditLimit(amount decimal.Decimal) bool {
	if c.CreditLimit.IsZero() {
		return false
	}
	return c.CurrentBalance.Add(amount).GreaterThan(c.CreditLimit)
}

// IncreaseBalance raises the outstanding receivable balance after a
// credit sale. No credit-limit check happens here; callers that need the
// check use WouldExceedCreditLimit first.
func (c *Customer) IncreaseBalance(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}

	oldBalance := c.CurrentBalance
	c.CurrentBalance = c.CurrentBalance.Add(amount)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerBalanceChangedEvent(c, oldBalance, c.CurrentBalance))

	return nil
}

// DecreaseBalance lowers the outstanding balance, flooring at zero.
// Used when a credit sale is paid off or its payment method changes.
func (c *Customer) DecreaseBalance(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}

	oldBalance := c.CurrentBalance
	c.CurrentBalance = c.CurrentBalance.Sub(amount)
	if c.CurrentBalance.IsNegative() {
		c.CurrentBalance = decimal.Zero
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerBalanceChangedEvent(c, oldBalance, c.CurrentBalance))

	return nil
}

// AddPurchases adds to the customer's lifetime purchase total
func (c *Customer) AddPurchases(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}

	c.TotalPurchases = c.TotalPurchases.Add(amount)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Update updates the customer's basic information
func (c *Customer) Update(name, phone, address, notes string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number format is invalid")
	}

	c.Name = name
	c.Phone = phone
	c.Address = address
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Activate activates the customer
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}

	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate deactivates the customer
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}

	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}
