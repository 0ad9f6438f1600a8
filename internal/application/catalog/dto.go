package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/usmanhardware/backend/internal/domain/catalog"
)

// CreateProductRequest creates a new catalog product
type CreateProductRequest struct {
	SKU         string           `json:"sku" binding:"required"`
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description,omitempty"`
	Unit        string           `json:"unit" binding:"required"`
	CostPrice   decimal.Decimal  `json:"cost_price"`
	Price       decimal.Decimal  `json:"price"`
	MinStock    *decimal.Decimal `json:"min_stock,omitempty"`
}

// UpdateProductRequest patches a product. Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	MinStock    *decimal.Decimal `json:"min_stock,omitempty"`
	Status      *string          `json:"status,omitempty"`
}

// ProductResponse is the read shape for a product
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Unit        string          `json:"unit"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Price       decimal.Decimal `json:"price"`
	Stock       decimal.Decimal `json:"stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
	Status      string          `json:"status"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse maps a product aggregate to its read shape
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		SKU:         product.SKU,
		Name:        product.Name,
		Description: product.Description,
		Unit:        product.Unit,
		CostPrice:   product.CostPrice,
		Price:       product.Price,
		Stock:       product.Stock,
		MinStock:    product.MinStock,
		Status:      string(product.Status),
		LowStock:    product.IsLowStock(),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// ProductListFilter narrows and paginates product listings
type ProductListFilter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Status   string
	LowStock bool
}
