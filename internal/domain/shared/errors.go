package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrNoConversionPath    = NewDomainError("NO_CONVERSION_PATH", "No conversion path between units")
	ErrInvalidTransition   = NewDomainError("INVALID_TRANSITION", "Operation not allowed in current status")
	ErrOverReceipt         = NewDomainError("OVER_RECEIPT", "Received quantity exceeds ordered quantity beyond tolerance")
	ErrInvalidYield        = NewDomainError("INVALID_YIELD", "Recipe yield quantity must be positive")
	ErrLedgerDrift         = NewDomainError("LEDGER_DRIFT", "Stock level does not match replayed movement history")
)
