package dto

import "net/http"

// Transport-level error codes. Domain error codes pass through as-is and
// are mapped to HTTP status by DomainCodeHTTPStatus.
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// DomainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Invalid field values answer 400, business rule violations answer 422
// so callers can tell a rejected operation from a malformed request.
var DomainCodeHTTPStatus = map[string]int{
	"NOT_FOUND":      http.StatusNotFound,
	"ITEM_NOT_FOUND": http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"DUPLICATE_KEY":        http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_SKU":            http.StatusBadRequest,
	"INVALID_NAME":           http.StatusBadRequest,
	"INVALID_UNIT":           http.StatusBadRequest,
	"INVALID_PHONE":          http.StatusBadRequest,
	"INVALID_PRICE":          http.StatusBadRequest,
	"INVALID_COST":           http.StatusBadRequest,
	"INVALID_MIN_STOCK":      http.StatusBadRequest,
	"INVALID_CREDIT_LIMIT":   http.StatusBadRequest,
	"INVALID_BALANCE":        http.StatusBadRequest,
	"INVALID_QUANTITY":       http.StatusBadRequest,
	"INVALID_AMOUNT":         http.StatusBadRequest,
	"INVALID_DISCOUNT":       http.StatusBadRequest,
	"INVALID_TAX":            http.StatusBadRequest,
	"INVALID_PAYMENT_METHOD": http.StatusBadRequest,
	"INVALID_PAYMENT_KIND":   http.StatusBadRequest,
	"INVALID_CONDITION":      http.StatusBadRequest,
	"INVALID_MOVEMENT_TYPE":  http.StatusBadRequest,
	"INVALID_REASON":         http.StatusBadRequest,
	"INVALID_REFERENCE":      http.StatusBadRequest,
	"INVALID_NOTE":           http.StatusBadRequest,
	"INVALID_STATUS":         http.StatusBadRequest,
	"INVALID_SCOPE":          http.StatusBadRequest,
	"INVALID_ORDER_NUMBER":   http.StatusBadRequest,
	"INVALID_SEQUENCE":       http.StatusBadRequest,
	"INVALID_PRODUCT":        http.StatusBadRequest,
	"INVALID_CUSTOMER":       http.StatusBadRequest,
	"INVALID_SUPPLIER":       http.StatusBadRequest,
	"INVALID_SALE":           http.StatusBadRequest,
	"NO_ITEMS":               http.StatusBadRequest,

	"INVALID_STATE":         http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":    http.StatusUnprocessableEntity,
	"INVALID_RETURN":        http.StatusUnprocessableEntity,
	"INVALID_OUTSOURCING":   http.StatusUnprocessableEntity,
	"CREDIT_LIMIT_EXCEEDED": http.StatusUnprocessableEntity,
	"NO_ITEMS_RECEIVED":     http.StatusUnprocessableEntity,
	"PRODUCT_INACTIVE":      http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":        http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE":      http.StatusUnprocessableEntity,

	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status for a domain error code. Codes
// with no explicit mapping answer 422: a DomainError is always a
// rejected operation, never an internal fault, so new codes must not
// surface as 500.
func GetHTTPStatus(code string) int {
	if status, ok := DomainCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
