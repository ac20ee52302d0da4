package dto

import "net/http"

// Error codes the handlers emit themselves
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to 500.
var errorCodeHTTPStatus = map[string]int{
	// input and validation errors
	ErrCodeBadRequest:        http.StatusBadRequest,
	"INVALID_CODE":           http.StatusBadRequest,
	"INVALID_NAME":           http.StatusBadRequest,
	"INVALID_PHONE":          http.StatusBadRequest,
	"INVALID_PRICE":          http.StatusBadRequest,
	"INVALID_QUANTITY":       http.StatusBadRequest,
	"INVALID_MIN_STOCK":      http.StatusBadRequest,
	"INVALID_AMOUNT":         http.StatusBadRequest,
	"INVALID_ITEM":           http.StatusBadRequest,
	"INVALID_BARCODE":        http.StatusBadRequest,
	"INVALID_ADJUSTMENT":     http.StatusBadRequest,
	"INVALID_PERIOD":         http.StatusBadRequest,
	"INVALID_NUMBER":         http.StatusBadRequest,
	"INVALID_CREDIT_LIMIT":   http.StatusBadRequest,
	"INVALID_PAYMENT_METHOD": http.StatusBadRequest,
	"INVALID_INPUT":          http.StatusBadRequest,
	"EMPTY_SALE":             http.StatusBadRequest,

	// auth
	ErrCodeUnauthorized: http.StatusUnauthorized,
	"TOKEN_EXPIRED":     http.StatusUnauthorized,
	"INVALID_TOKEN":     http.StatusUnauthorized,

	// resources
	ErrCodeNotFound:          http.StatusNotFound,
	"ALREADY_EXISTS":         http.StatusConflict,
	"CONCURRENCY_CONFLICT":   http.StatusConflict,
	"OPTIMISTIC_LOCK_FAILED": http.StatusConflict,
	"INVALID_STATE":          http.StatusUnprocessableEntity,

	// business rules
	"CREDIT_LIMIT_EXCEEDED": http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":    http.StatusUnprocessableEntity,
	"PRODUCT_INACTIVE":      http.StatusUnprocessableEntity,
	"ALREADY_SETTLED":       http.StatusUnprocessableEntity,
	"NOTHING_OWED":          http.StatusUnprocessableEntity,
	"HAS_OUTSTANDING_DEBT":  http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":        http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE":      http.StatusUnprocessableEntity,
	"CUSTOMER_INACTIVE":     http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not mapped.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
