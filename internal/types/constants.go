package types

import (
	"errors"
	"time"
)

const (
	// DefaultBaseURL is the default CostMN API base URL
	DefaultBaseURL = "https://costmn-be.onrender.com"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string
	UserAgent = "costmn-go/1.0.0"
)

// Common errors
var (
	// ErrNotAuthenticated is returned when authentication is required
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired is returned when the session token was rejected
	ErrSessionExpired = errors.New("session expired")

	// ErrLoginFailed is returned when login fails
	ErrLoginFailed = errors.New("login failed")

	// ErrBackendUnreachable is returned when the backend cannot be reached
	// at the transport level, as opposed to an HTTP error response
	ErrBackendUnreachable = errors.New("cannot reach backend")

	// ErrRateLimited is returned when rate limited
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout is returned on timeout
	ErrTimeout = errors.New("request timeout")

	// ErrNotFound is returned when resource not found
	ErrNotFound = errors.New("resource not found")

	// ErrServerError is returned for server errors
	ErrServerError = errors.New("server error")
)
