package dto

import "net/http"

// Error codes produced by the HTTP layer itself. Domain errors carry their
// own codes (see internal/domain/shared/errors.go); both families resolve to
// a status through GetHTTPStatus.
const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Workflow
// conflicts (duplicate pending requests, insufficient stock, drift between
// request and settlement) answer 400: the request was well-formed but the
// ledger state does not admit it.
var ErrorCodeHTTPStatus = map[string]int{
	// Request shape and domain validation -> 400 Bad Request
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeBadRequest:       http.StatusBadRequest,
	"INVALID_INPUT":         http.StatusBadRequest,
	"INVALID_ACTION":        http.StatusBadRequest,
	"INVALID_ADMIN":         http.StatusBadRequest,
	"INVALID_CODE":          http.StatusBadRequest,
	"INVALID_COORDINATES":   http.StatusBadRequest,
	"INVALID_EMAIL":         http.StatusBadRequest,
	"INVALID_MUTATION_TYPE": http.StatusBadRequest,
	"INVALID_NAME":          http.StatusBadRequest,
	"INVALID_PRICE":         http.StatusBadRequest,
	"INVALID_PRODUCT":       http.StatusBadRequest,
	"INVALID_QUANTITY":      http.StatusBadRequest,
	"INVALID_ROLE":          http.StatusBadRequest,
	"INVALID_SKU":           http.StatusBadRequest,
	"INVALID_STATUS":        http.StatusBadRequest,
	"INVALID_USER":          http.StatusBadRequest,
	"INVALID_WAREHOUSE":     http.StatusBadRequest,
	"SAME_WAREHOUSE":        http.StatusBadRequest,

	// Workflow conflicts -> 400 Bad Request
	"DUPLICATE_REQUEST":    http.StatusBadRequest,
	"INSUFFICIENT_STOCK":   http.StatusBadRequest,
	"STOCK_DRIFT":          http.StatusBadRequest,
	"CONCURRENCY_CONFLICT": http.StatusBadRequest,
	"INVALID_STATE":        http.StatusBadRequest,
	"ALREADY_EXISTS":       http.StatusBadRequest,
	"ALREADY_INACTIVE":     http.StatusBadRequest,
	"WAREHOUSE_INACTIVE":   http.StatusBadRequest,
	"PRODUCT_INACTIVE":     http.StatusBadRequest,

	// Authorization -> 403 Forbidden
	"FORBIDDEN_WAREHOUSE": http.StatusForbidden,

	// Missing resources -> 404 Not Found
	ErrCodeNotFound:      http.StatusNotFound,
	"NO_DONOR_WAREHOUSE": http.StatusNotFound,

	// Invariant breaches surface as server faults -> 500
	"JOURNAL_MISMATCH": http.StatusInternalServerError,
	ErrCodeInternal:    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to
// 500 Internal Server Error for codes absent from the table
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
