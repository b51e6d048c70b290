package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures from the upstream profile service.
type ErrorType string

const (
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeAuthWall    ErrorType = "auth_wall"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeServerError ErrorType = "server_error"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error is a typed upstream fetch error. The batch runner inspects Type to
// decide whether a failed attempt is worth retrying.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
}

// New creates a typed error.
func New(t ErrorType, code int, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...), Code: code}
}

// TypeOf returns the ErrorType of err, or ErrorTypeUnknown if err is not a
// typed *Error.
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// IsRetryable reports whether an error type is transient.
func IsRetryable(t ErrorType) bool {
	switch t {
	case ErrorTypeNetwork, ErrorTypeRateLimit, ErrorTypeServerError:
		return true
	case ErrorTypeAuthWall, ErrorTypeNotFound, ErrorTypeParsing:
		return false
	default:
		return false
	}
}

// IsRetryableStatusCode reports whether an HTTP status code indicates a
// transient failure.
func IsRetryableStatusCode(statusCode int) bool {
	switch statusCode {
	case 0: // network error, no response
		return true
	case 429:
		return true
	case 500, 502, 503, 504:
		return true
	case 401, 403, 404:
		return false
	default:
		return statusCode >= 500
	}
}

// Followers export parsing failures. These surface immediately to the caller
// of the followers parser; they never interrupt a running batch.
var (
	// ErrParse marks a followers export whose JSON could not be decoded.
	ErrParse = errors.New("followers export: malformed JSON")

	// ErrUnsupportedArchive marks an archive that needs decryption support
	// not available to the parser (wrong or missing password).
	ErrUnsupportedArchive = errors.New("followers export: unsupported archive protection")
)
