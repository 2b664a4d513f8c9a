package costmn

import (
	"errors"
	"fmt"

	"github.com/costmn/costmn-go/internal/types"
)

// Sentinel errors surfaced by the client. They alias the internal
// definitions so errors.Is works across package boundaries.
var (
	// ErrNotAuthenticated is returned when authentication is required
	ErrNotAuthenticated = types.ErrNotAuthenticated

	// ErrSessionExpired is returned when the backend rejected the token
	ErrSessionExpired = types.ErrSessionExpired

	// ErrLoginFailed is returned when login fails
	ErrLoginFailed = types.ErrLoginFailed

	// ErrBackendUnreachable is returned when the backend cannot be
	// reached at all, as opposed to answering with an error
	ErrBackendUnreachable = types.ErrBackendUnreachable

	// ErrNotFound is returned when a resource does not exist
	ErrNotFound = types.ErrNotFound

	// ErrRateLimited is returned when rate limited
	ErrRateLimited = types.ErrRateLimited

	// ErrServerError is returned for 5xx responses
	ErrServerError = types.ErrServerError

	// ErrCompletionInFlight is returned when a completion is re-submitted
	// for a budget whose previous completion has not finished
	ErrCompletionInFlight = errors.New("completion already in progress for this budget")
)

// Error represents an API error
type Error = types.Error

// ValidationError reports a client-side invariant violation. It is
// raised before any network call is made.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// IsValidationError reports whether err is a client-side validation failure
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuthError checks if error is authentication related
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrLoginFailed) ||
		errors.Is(err, ErrSessionExpired)
}

// IsConnectionError checks if the backend could not be reached at the
// transport level
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrBackendUnreachable)
}
