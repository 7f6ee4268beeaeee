package sync

// DomainError represents a domain-level error with a stable code.
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
	return &DomainError{Code: code, Message: message}
}

// Common sync domain errors
var (
	ErrMissingCredentials = NewDomainError("MISSING_CREDENTIALS", "ERP credentials are not configured")
	ErrSyncInProgress     = NewDomainError("SYNC_IN_PROGRESS", "a sync run is already in progress")
	ErrInvalidSyncType    = NewDomainError("INVALID_SYNC_TYPE", "unknown sync type")
)
