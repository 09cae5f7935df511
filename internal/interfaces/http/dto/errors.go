package dto

import "net/http"

// Domain error codes surfaced over HTTP
const (
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeInvalidStatus       = "INVALID_STATUS"
	ErrCodeInvalidTransition   = "INVALID_TRANSITION"
	ErrCodeInvalidParties      = "INVALID_PARTIES"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Validation-style codes all map to 400; anything unknown is a 500.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeMissingField:      http.StatusBadRequest,
	ErrCodeInvalidStatus:     http.StatusBadRequest,
	ErrCodeInvalidTransition: http.StatusBadRequest,
	ErrCodeInvalidParties:    http.StatusBadRequest,
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_USERNAME":       http.StatusBadRequest,
	"INVALID_PASSWORD":       http.StatusBadRequest,
	"INVALID_ROLE":           http.StatusBadRequest,
	"INVALID_TITLE":          http.StatusBadRequest,
	"INVALID_AUTHOR":         http.StatusBadRequest,
	"INVALID_CATEGORY":       http.StatusBadRequest,
	"INVALID_YEAR":           http.StatusBadRequest,
	"INVALID_OWNER":          http.StatusBadRequest,
	"INVALID_BOOK":           http.StatusBadRequest,
	"INVALID_USER":           http.StatusBadRequest,
	"INVALID_RATING":         http.StatusBadRequest,
	"INVALID_TEXT":           http.StatusBadRequest,
	"INVALID_STATE":          http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	"INVALID_TOKEN":     http.StatusUnauthorized,
	"TOKEN_EXPIRED":     http.StatusUnauthorized,

	ErrCodeForbidden: http.StatusForbidden,

	ErrCodeNotFound: http.StatusNotFound,

	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unknown codes are reported as 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
