package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC.
// Returns "DESC" if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks the sort field against a whitelist of columns.
// Returns the defaultField if the input is empty or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort columns for products.
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"sku":        true,
	"name":       true,
	"unit":       true,
	"cost_price": true,
	"price":      true,
	"stock":      true,
	"min_stock":  true,
	"status":     true,
}

// CustomerSortFields contains allowed sort columns for customers.
var CustomerSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"name":            true,
	"phone":           true,
	"credit_limit":    true,
	"current_balance": true,
	"total_purchases": true,
	"status":          true,
}

// SupplierSortFields contains allowed sort columns for suppliers.
var SupplierSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"name":            true,
	"contact_name":    true,
	"phone":           true,
	"total_purchases": true,
	"status":          true,
}

// LedgerSortFields contains allowed sort columns for stock ledger entries.
var LedgerSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"product_id":    true,
	"movement_type": true,
	"quantity":      true,
	"balance_after": true,
	"reference":     true,
	"movement_date": true,
}

// SaleSortFields contains allowed sort columns for sales.
var SaleSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"customer_id":  true,
	"sale_date":    true,
	"subtotal":     true,
	"discount":     true,
	"total":        true,
	"status":       true,
}

// PurchaseOrderSortFields contains allowed sort columns for purchase orders.
var PurchaseOrderSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"order_number":      true,
	"supplier_id":       true,
	"order_date":        true,
	"expected_delivery": true,
	"total":             true,
	"status":            true,
}

// QuotationSortFields contains allowed sort columns for quotations.
var QuotationSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"quote_number": true,
	"customer_id":  true,
	"quote_date":   true,
	"valid_until":  true,
	"total":        true,
	"status":       true,
}

// OutsourcingOrderSortFields contains allowed sort columns for outsourcing orders.
var OutsourcingOrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"order_number":  true,
	"supplier_id":   true,
	"sale_id":       true,
	"quantity":      true,
	"total_cost":    true,
	"status":        true,
	"delivered_at":  true,
	"cost_per_unit": true,
}
