package shared

// DomainError is the error type the domain layer returns. The code is
// stable and machine readable; the HTTP layer maps it to a status.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError builds an error with the given stable code.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Sentinel errors for the common failure classes. Services wrap these
// with more specific messages via NewDomainError.
var (
	ErrNotFound       = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists  = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrConflict       = NewDomainError("CONFLICT", "Operation conflicts with current data")
	ErrInvalidState   = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidRequest = NewDomainError("INVALID_REQUEST", "Invalid request parameters")
	ErrUnauthorized   = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden      = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
)
