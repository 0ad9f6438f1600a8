package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/usmanhardware/backend/internal/domain/inventory"
)

// AdjustStockInput carries one stock mutation request. Delta is signed:
// negative removes stock, positive adds it.
type AdjustStockInput struct {
	ProductID uuid.UUID
	Delta     decimal.Decimal
	Movement  inventory.MovementType
	Reference string
	Reason    string
	Condition *inventory.ItemCondition
	// AllowInactive bypasses the active-product check for return and
	// restock flows targeting catalog rows that were deactivated after
	// the original transaction.
	AllowInactive bool
}

// StockAdjustment reports the stock transition a mutation produced
type StockAdjustment struct {
	ProductID     uuid.UUID
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	LedgerEntryID uuid.UUID
}

// ManualAdjustmentInput is a stock-taking correction submitted over HTTP
type ManualAdjustmentInput struct {
	ProductID uuid.UUID
	Delta     decimal.Decimal
	Movement  inventory.MovementType // adjustment, restock, or damage
	Reason    string
}

// LedgerEntryDTO is the read shape for ledger history
type LedgerEntryDTO struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	MovementType  string          `json:"movement_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Reference     string          `json:"reference,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	Condition     string          `json:"condition,omitempty"`
	MovementDate  string          `json:"movement_date"`
}

// ToLedgerEntryDTO maps a domain ledger entry to its read shape
func ToLedgerEntryDTO(entry *inventory.LedgerEntry) LedgerEntryDTO {
	dto := LedgerEntryDTO{
		ID:            entry.ID,
		ProductID:     entry.ProductID,
		MovementType:  entry.MovementType.String(),
		Quantity:      entry.Quantity,
		BalanceBefore: entry.BalanceBefore,
		BalanceAfter:  entry.BalanceAfter,
		Reference:     entry.Reference,
		Reason:        entry.Reason,
		MovementDate:  entry.MovementDate.Format("2006-01-02T15:04:05Z07:00"),
	}
	if entry.Condition != nil {
		dto.Condition = string(*entry.Condition)
	}
	return dto
}
