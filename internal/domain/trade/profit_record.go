package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// ReferenceType identifies what a profit record was computed from
type ReferenceType string

const (
	ReferenceTypeSale ReferenceType = "sale"
)

// ProfitRecord captures per-line revenue and cost at transaction time,
// one row per sale item. Approximate marks rows whose COGS fell back to
// the current catalog cost because no captured cost was available.
type ProfitRecord struct {
	shared.BaseEntity
	ReferenceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReferenceType ReferenceType   `gorm:"type:varchar(20);not null;default:'sale'"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Revenue       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	COGS          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Profit        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	SaleDate      time.Time       `gorm:"type:timestamptz;not null;index"`
	Approximate   bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ProfitRecord) TableName() string {
	return "profit_records"
}

// NewProfitRecord computes profit from revenue and cost of goods sold
func NewProfitRecord(referenceID, productID uuid.UUID, revenue, cogs decimal.Decimal, saleDate time.Time, approximate bool) (*ProfitRecord, error) {
	if referenceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reference ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if revenue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Revenue cannot be negative")
	}
	if cogs.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "COGS cannot be negative")
	}

	return &ProfitRecord{
		BaseEntity:    shared.NewBaseEntity(),
		ReferenceID:   referenceID,
		ReferenceType: ReferenceTypeSale,
		ProductID:     productID,
		Revenue:       revenue,
		COGS:          cogs,
		Profit:        revenue.Sub(cogs),
		SaleDate:      saleDate,
		Approximate:   approximate,
	}, nil
}
