package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "DESC"},
		{"asc", "ASC"},
		{"ASC", "ASC"},
		{"  Asc  ", "ASC"},
		{"desc", "DESC"},
		{"descending", "DESC"},
		{"ASC; DROP TABLE products;--", "DESC"},
		{"   ", "DESC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ValidateSortOrder(tt.input), "input %q", tt.input)
	}
}

func TestValidateSortField(t *testing.T) {
	t.Run("empty input falls back to default", func(t *testing.T) {
		assert.Equal(t, "name", ValidateSortField("", ProductSortFields, "name"))
		assert.Equal(t, "name", ValidateSortField("   ", ProductSortFields, "name"))
	})

	t.Run("whitelisted column passes through", func(t *testing.T) {
		assert.Equal(t, "sku", ValidateSortField("sku", ProductSortFields, "name"))
		assert.Equal(t, "movement_date", ValidateSortField(" movement_date ", LedgerSortFields, "created_at"))
	})

	t.Run("unknown column falls back to default", func(t *testing.T) {
		assert.Equal(t, "name", ValidateSortField("secret_column", ProductSortFields, "name"))
		assert.Equal(t, "name", ValidateSortField("SKU", ProductSortFields, "name"), "matching is case sensitive")
	})

	t.Run("injection-shaped input falls back to default", func(t *testing.T) {
		payloads := []string{
			"sku; DROP TABLE products;--",
			"sku' OR '1'='1",
			"sku, (SELECT phone FROM customers)",
			"sku UNION SELECT * FROM suppliers",
			"sku/**/;DELETE FROM sales",
			"sku\n; TRUNCATE stock_ledger_entries",
		}
		for _, p := range payloads {
			assert.Equal(t, "created_at", ValidateSortField(p, ProductSortFields, "created_at"), "payload %q", p)
		}
	})
}

func TestSortFieldWhitelists_CoverTimestamps(t *testing.T) {
	whitelists := map[string]map[string]bool{
		"products":           ProductSortFields,
		"customers":          CustomerSortFields,
		"suppliers":          SupplierSortFields,
		"ledger":             LedgerSortFields,
		"sales":              SaleSortFields,
		"purchase_orders":    PurchaseOrderSortFields,
		"quotations":         QuotationSortFields,
		"outsourcing_orders": OutsourcingOrderSortFields,
	}

	for name, fields := range whitelists {
		assert.True(t, fields["created_at"], "%s should allow created_at", name)
		assert.True(t, fields["id"], "%s should allow id", name)
		assert.NotEmpty(t, fields, name)
	}
}

func TestSortFieldWhitelists_MatchDefaults(t *testing.T) {
	// default ordering columns used by the repositories must be whitelisted
	assert.True(t, ProductSortFields["name"])
	assert.True(t, CustomerSortFields["name"])
	assert.True(t, SupplierSortFields["name"])
	assert.True(t, LedgerSortFields["movement_date"])
	assert.True(t, SaleSortFields["sale_date"])
	assert.True(t, PurchaseOrderSortFields["order_date"])
	assert.True(t, QuotationSortFields["created_at"])
	assert.True(t, OutsourcingOrderSortFields["created_at"])
}
