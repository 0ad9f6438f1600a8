package trade

import (
	"fmt"
	"time"

	"github.com/usmanhardware/backend/internal/domain/shared"
)

// OrderScope identifies an order-number sequence. Each scope has its own
// prefix and period granularity; sequences reset when the period rolls over.
type OrderScope string

const (
	OrderScopeSale        OrderScope = "sale"
	OrderScopeOutsourcing OrderScope = "outsourcing"
	OrderScopePurchase    OrderScope = "purchase"
	OrderScopeQuotation   OrderScope = "quotation"
)

// IsValid returns true if the scope is known
func (s OrderScope) IsValid() bool {
	switch s {
	case OrderScopeSale, OrderScopeOutsourcing, OrderScopePurchase, OrderScopeQuotation:
		return true
	}
	return false
}

// Prefix returns the human-readable prefix for the scope
func (s OrderScope) Prefix() string {
	switch s {
	case OrderScopeSale:
		return "INV"
	case OrderScopeOutsourcing:
		return "OUT"
	case OrderScopePurchase:
		return "PO"
	case OrderScopeQuotation:
		return "QUO"
	}
	return ""
}

// Period returns the sequence period key for the scope at the given time.
// Sales and outsourcing orders number daily, purchase orders and
// quotations monthly.
func (s OrderScope) Period(t time.Time) string {
	switch s {
	case OrderScopeSale, OrderScopeOutsourcing:
		return t.Format("20060102")
	case OrderScopePurchase, OrderScopeQuotation:
		return t.Format("200601")
	}
	return ""
}

// SequenceKey returns the per-scope counter key for the given time,
// e.g. "INV-20250102" or "PO-202501". One counter row exists per key.
func (s OrderScope) SequenceKey(t time.Time) string {
	return fmt.Sprintf("%s-%s", s.Prefix(), s.Period(t))
}

// FormatOrderNumber renders an order number from a scope, time, and
// sequence value. The sequence is zero-padded to three digits and widens
// naturally past 999 ("INV-20250102-1000").
func FormatOrderNumber(scope OrderScope, t time.Time, seq int64) (string, error) {
	if !scope.IsValid() {
		return "", shared.NewDomainError("INVALID_SCOPE", "Unknown order number scope")
	}
	if seq <= 0 {
		return "", shared.NewDomainError("INVALID_SEQUENCE", "Sequence must be positive")
	}
	return fmt.Sprintf("%s-%s-%03d", scope.Prefix(), scope.Period(t), seq), nil
}
