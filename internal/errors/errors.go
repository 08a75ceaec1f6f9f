// Package errors provides the classified error type used across the
// pricing core. Every failure that crosses the engine boundary is one
// of these, carrying a user-facing message, a technical detail string
// for logging, and a suggested remediation.
package errors

import (
	"fmt"
)

// Type identifies the category of failure
type Type string

const (
	// TypeInvalidInput indicates malformed or out-of-domain request data
	TypeInvalidInput Type = "INVALID_INPUT"

	// TypeSkuNotFound indicates the specification has no catalog match
	TypeSkuNotFound Type = "SKU_NOT_FOUND"

	// TypePriceUnavailable indicates the pricing collaborator failed or
	// returned unusable data
	TypePriceUnavailable Type = "PRICE_UNAVAILABLE"

	// TypeCalculation indicates an internal computation could not resolve
	TypeCalculation Type = "CALCULATION_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeNetwork indicates a transport-level error talking to a collaborator
	TypeNetwork Type = "NETWORK_ERROR"

	// TypeUnknown indicates an unanticipated failure caught at the boundary
	TypeUnknown Type = "UNKNOWN"
)

// Error is a classified domain error
type Error struct {
	Type       Type   `json:"type"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Cause      error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithDetail attaches a technical detail string
func (e *Error) WithDetail(format string, args ...interface{}) *Error {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion replaces the default remediation text
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:       errType,
		Message:    message,
		Suggestion: defaultSuggestion(errType),
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return New(errType, fmt.Sprintf(format, args...))
}

// Wrap wraps an error with classification
func Wrap(errType Type, message string, cause error) *Error {
	e := New(errType, message)
	e.Cause = cause
	return e
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// AsError returns err as a classified *Error, classifying it as
// TypeUnknown if it is anything else. nil stays nil.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return Wrap(TypeUnknown, "unexpected error during pricing", err)
}

func defaultSuggestion(t Type) string {
	switch t {
	case TypeInvalidInput:
		return "Check the entered size, shape, color, quality, width and thickness values."
	case TypeSkuNotFound:
		return "Try a different width/thickness combination for this metal."
	case TypePriceUnavailable:
		return "The supplier pricing service did not respond usefully. Retry shortly."
	case TypeCalculation:
		return "Verify the metal quality and color are a supported combination."
	case TypeConfig:
		return "Check the configuration file and environment variables."
	case TypeNetwork:
		return "Check network connectivity and supplier credentials, then retry."
	default:
		return "Contact support if the problem persists."
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(message string) *Error {
	return New(TypeInvalidInput, message)
}

// SkuNotFound creates a no-catalog-match error
func SkuNotFound(message string) *Error {
	return New(TypeSkuNotFound, message)
}

// PriceUnavailable creates a pricing collaborator failure
func PriceUnavailable(message string, cause error) *Error {
	return Wrap(TypePriceUnavailable, message, cause)
}

// Calculation creates an internal computation error
func Calculation(message string) *Error {
	return New(TypeCalculation, message)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Network creates a transport error
func Network(message string, cause error) *Error {
	return Wrap(TypeNetwork, message, cause)
}
