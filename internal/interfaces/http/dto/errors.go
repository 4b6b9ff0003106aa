package dto

import "net/http"

// API error codes returned in the response envelope. Handlers translate
// domain error codes into these before writing the response.
const (
	ErrCodeInternal      = "ERR_INTERNAL"
	ErrCodeValidation    = "ERR_VALIDATION"
	ErrCodeBadRequest    = "ERR_BAD_REQUEST"
	ErrCodeUnauthorized  = "ERR_UNAUTHORIZED"
	ErrCodeForbidden     = "ERR_FORBIDDEN"
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
	ErrCodeInvalidState  = "ERR_INVALID_STATE"
)

// domainCodeMapping translates the codes carried by shared.DomainError
// into their API equivalents.
var domainCodeMapping = map[string]string{
	"NOT_FOUND":       ErrCodeNotFound,
	"ALREADY_EXISTS":  ErrCodeAlreadyExists,
	"CONFLICT":        ErrCodeConflict,
	"INVALID_REQUEST": ErrCodeBadRequest,
	"INVALID_STATE":   ErrCodeInvalidState,
	"UNAUTHORIZED":    ErrCodeUnauthorized,
	"FORBIDDEN":       ErrCodeForbidden,
	"INTERNAL_ERROR":  ErrCodeInternal,
}

// NormalizeErrorCode maps a domain error code to its API code. Codes that
// are already in the API format, or unknown, pass through unchanged.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainCodeMapping[code]; ok {
		return apiCode
	}
	return code
}

// GetHTTPStatus returns the HTTP status an error code responds with.
// Unknown codes fall back to 500 so a missing mapping never leaks a 200.
func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeValidation, ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeAlreadyExists, ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeInvalidState:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
