// Package errors provides the error taxonomy for the Celora client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrEmptyInput   = errors.New("nothing to send")
	ErrBusy         = errors.New("a message is already in flight")
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrTokenInvalid = errors.New("session token is invalid or expired")
	ErrNoSession    = errors.New("session not found")
	ErrNoAPIKey     = errors.New("no API key configured")
)

// GenerationError represents a failed call to the generation service.
// The conversation keeps the user's message; no reply is appended.
type GenerationError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

func (e *GenerationError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("generation failed [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError creates a GenerationError for an HTTP-level failure.
func NewGenerationError(statusCode int, endpoint, message string) *GenerationError {
	return &GenerationError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// WrapGenerationError creates a GenerationError around a transport error.
func WrapGenerationError(err error) *GenerationError {
	return &GenerationError{Message: err.Error(), Err: err}
}

// IsGenerationError reports whether err is (or wraps) a GenerationError.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}

// IsInputRejected reports whether err is one of the silent no-op
// rejections: empty submission or submission while a prior exchange is
// still in flight.
func IsInputRejected(err error) bool {
	return errors.Is(err, ErrEmptyInput) || errors.Is(err, ErrBusy)
}

// AuthError represents a failed login or token validation.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// Is allows comparison with the token sentinel.
func (e *AuthError) Is(target error) bool {
	if target == ErrTokenInvalid {
		return true
	}
	_, ok := target.(*AuthError)
	return ok
}

// NewAuthError creates a new AuthError.
func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message}
}
