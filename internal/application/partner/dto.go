package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/usmanhardware/backend/internal/domain/partner"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// ==================== Customer DTOs ====================

// CreateCustomerRequest creates a new customer
type CreateCustomerRequest struct {
	Name        string           `json:"name" binding:"required"`
	Phone       string           `json:"phone,omitempty"`
	Address     string           `json:"address,omitempty"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// UpdateCustomerRequest patches a customer. Nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Name        *string          `json:"name,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	Address     *string          `json:"address,omitempty"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
	Status      *string          `json:"status,omitempty"`
}

// CustomerResponse is the read shape for a customer
type CustomerResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	Address        string          `json:"address,omitempty"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToCustomerResponse maps a customer aggregate to its read shape
func ToCustomerResponse(customer *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             customer.ID,
		Name:           customer.Name,
		Phone:          customer.Phone,
		Address:        customer.Address,
		CreditLimit:    customer.CreditLimit,
		CurrentBalance: customer.CurrentBalance,
		TotalPurchases: customer.TotalPurchases,
		Status:         string(customer.Status),
		Notes:          customer.Notes,
		CreatedAt:      customer.CreatedAt,
		UpdatedAt:      customer.UpdatedAt,
	}
}

// ==================== Supplier DTOs ====================

// CreateSupplierRequest creates a new supplier
type CreateSupplierRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// UpdateSupplierRequest patches a supplier. Nil fields are left unchanged.
type UpdateSupplierRequest struct {
	Name        *string `json:"name,omitempty"`
	ContactName *string `json:"contact_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// SupplierResponse is the read shape for a supplier
type SupplierResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	ContactName    string          `json:"contact_name,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Address        string          `json:"address,omitempty"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToSupplierResponse maps a supplier aggregate to its read shape
func ToSupplierResponse(supplier *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:             supplier.ID,
		Name:           supplier.Name,
		ContactName:    supplier.ContactName,
		Phone:          supplier.Phone,
		Address:        supplier.Address,
		TotalPurchases: supplier.TotalPurchases,
		Status:         string(supplier.Status),
		Notes:          supplier.Notes,
		CreatedAt:      supplier.CreatedAt,
		UpdatedAt:      supplier.UpdatedAt,
	}
}

// PartnerListFilter narrows and paginates customer and supplier listings
type PartnerListFilter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Status   string
}

func buildFilter(filter PartnerListFilter) (domainFilter shared.Filter) {
	domainFilter.Page = filter.Page
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	domainFilter.PageSize = filter.PageSize
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 20
	}
	domainFilter.OrderBy = filter.OrderBy
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "created_at"
	}
	domainFilter.OrderDir = filter.OrderDir
	if domainFilter.OrderDir == "" {
		domainFilter.OrderDir = "desc"
	}
	domainFilter.Search = filter.Search
	domainFilter.Filters = make(map[string]interface{})
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}
