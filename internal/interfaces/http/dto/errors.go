package dto

import (
	"net/http"
	"strings"
)

// Error codes used by the HTTP layer itself
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request binding fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeRequestTooLarge is used when the body exceeds the limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// domainErrorHTTPStatus maps domain error codes to HTTP status codes.
// Business rule violations map to 422; conflicts to 409.
var domainErrorHTTPStatus = map[string]int{
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"LEDGER_DRIFT":         http.StatusConflict,
	"INVALID_INPUT":        http.StatusBadRequest,
	"BAD_REQUEST":          http.StatusBadRequest,
	"VALIDATION_ERROR":     http.StatusBadRequest,

	"INSUFFICIENT_STOCK":    http.StatusUnprocessableEntity,
	"NO_CONVERSION_PATH":    http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":    http.StatusUnprocessableEntity,
	"OVER_RECEIPT":          http.StatusUnprocessableEntity,
	"INVALID_YIELD":         http.StatusUnprocessableEntity,
	"INVALID_MOVEMENT_TYPE": http.StatusUnprocessableEntity,
	"DUPLICATE_MOVEMENT":    http.StatusConflict,
	"EXPIRED_STORE":         http.StatusUnprocessableEntity,
	"STORE_DISABLED":        http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Validation codes produced by entity constructors all start with
// INVALID_ and map to 400 unless listed above. Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := domainErrorHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
