package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is works against the sentinels below regardless of message or details.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetails returns a copy of the error carrying the given details
func (e *DomainError) WithDetails(details map[string]any) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorWithDetails creates a new domain error with structured context
func NewDomainErrorWithDetails(code, message string, details map[string]any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Common domain errors
var (
	ErrNotFound                   = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists              = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput               = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict        = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState               = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock          = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrInsufficientAvailableStock = NewDomainError("INSUFFICIENT_AVAILABLE_STOCK", "Insufficient available stock")
	ErrInvalidQuantity            = NewDomainError("INVALID_QUANTITY", "Quantity must be greater than zero")
	ErrInvalidMovementType        = NewDomainError("INVALID_MOVEMENT_TYPE", "Unrecognized movement type")
)
