package dto

import "net/http"

// Error codes returned in the error envelope. Domain codes pass through
// unchanged so clients see the same code the ledger raised.

// General error codes
const (
	ErrCodeInternal = "INTERNAL_ERROR"
	ErrCodeUnknown  = "UNKNOWN_ERROR"
)

// Request error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST"
)

// Ledger error codes
const (
	ErrCodeInvalidQuantity            = "INVALID_QUANTITY"
	ErrCodeInvalidMovementType        = "INVALID_MOVEMENT_TYPE"
	ErrCodeInsufficientStock          = "INSUFFICIENT_STOCK"
	ErrCodeInsufficientAvailableStock = "INSUFFICIENT_AVAILABLE_STOCK"
	ErrCodeInvalidState               = "INVALID_STATE"
)

// Resource error codes
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,
	ErrCodeUnknown:  http.StatusInternalServerError,

	// Malformed or rejected requests -> 400
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeInvalidQuantity:     http.StatusBadRequest,
	ErrCodeInvalidMovementType: http.StatusBadRequest,
	ErrCodeRequestTooLarge:     http.StatusRequestEntityTooLarge,

	// Ledger rules -> 422 Unprocessable Entity
	ErrCodeInsufficientStock:          http.StatusUnprocessableEntity,
	ErrCodeInsufficientAvailableStock: http.StatusUnprocessableEntity,
	ErrCodeInvalidState:               http.StatusUnprocessableEntity,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeDuplicateRequest:    http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
