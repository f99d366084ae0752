package ordering

import (
	"errors"
	"fmt"
)

// The checkout boundary maps a closed set of error types to responses:
// InvalidMethodError -> 405, EmptyCartError -> 400, everything else -> 500.
// None of them propagate past the handler.

// InvalidMethodError indicates the creation endpoint was invoked with a
// verb other than POST.
type InvalidMethodError struct {
	Method string
}

func (e *InvalidMethodError) Error() string {
	if e == nil || e.Method == "" {
		return "method not allowed"
	}
	return fmt.Sprintf("method %s not allowed", e.Method)
}

// EmptyCartError indicates the cart is missing, empty, or resolves to a
// subtotal of zero (unknown items only, or all quantities clamped to 0).
// Such a cart must never reach the payment provider.
type EmptyCartError struct{}

func (e *EmptyCartError) Error() string {
	return "cart is empty or invalid"
}

// MissingConfigurationError is a deployment error: a required environment
// value is absent. It names the variable but never carries its value.
type MissingConfigurationError struct {
	Variable string
}

func (e *MissingConfigurationError) Error() string {
	if e == nil || e.Variable == "" {
		return "missing required configuration"
	}
	return fmt.Sprintf("missing required configuration: %s", e.Variable)
}

// ProviderError represents a failed call to the payment provider. Type,
// Code and Message come from the provider's error envelope and are meant
// for server-side logs; callers get a generic response.
type ProviderError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *ProviderError) Error() string {
	if e == nil {
		return "payment provider error"
	}
	if e.Type == "" && e.Code == "" && e.Message == "" {
		return fmt.Sprintf("payment provider error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("payment provider error: status %d type=%s code=%s: %s", e.StatusCode, e.Type, e.Code, e.Message)
}

// ValidationError indicates a session request is missing required fields or
// contains invalid data. The builder never produces such requests; hitting
// this means a caller assembled one by hand.
type ValidationError struct {
	Fields []FieldError
}

type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation error"
	}
	if len(e.Fields) == 1 {
		fe := e.Fields[0]
		if fe.Field == "" {
			return fmt.Sprintf("validation error: %s", fe.Message)
		}
		return fmt.Sprintf("validation error: %s: %s", fe.Field, fe.Message)
	}
	return fmt.Sprintf("validation error: %d fields", len(e.Fields))
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// IsValidationError checks whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
