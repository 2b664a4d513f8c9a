package costmn

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/costmn/costmn-go/internal/transport"
	internalTypes "github.com/costmn/costmn-go/internal/types"
)

const (
	// DefaultBaseURL is the default CostMN API base URL
	DefaultBaseURL = internalTypes.DefaultBaseURL

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = internalTypes.DefaultTimeout
)

// Client is the main CostMN API client
type Client struct {
	// Service interfaces
	Budgets      BudgetService
	Transactions TransactionService
	Auth         AuthService

	// Internal fields
	baseURL    string
	httpClient *http.Client
	transport  Transport
	options    *ClientOptions
	session    *Session
}

// ClientOptions configures the client
type ClientOptions struct {
	// BaseURL overrides the default API base URL
	BaseURL string

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// Token provides direct authentication token
	Token string

	// SessionFile path for session persistence
	SessionFile string

	// Logger for debug logging
	Logger Logger

	// RetryConfig configures retry behavior; nil disables retries
	RetryConfig *internalTypes.RetryConfig

	// RateLimiter for rate limiting
	RateLimiter RateLimiter

	// Hooks for observability
	Hooks *internalTypes.Hooks

	// OnUnauthorized runs after any 401 has cleared the session. Callers
	// use it to route the user back to a login entry point.
	OnUnauthorized func()

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// NewClient creates a new CostMN client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	// Initialize Sentry if DSN is provided
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}
		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}
		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}
		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}
		if err := sentry.Init(sentryOpts); err != nil {
			// Log error but don't fail client creation
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	// Set defaults
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	if opts.Timeout > 0 {
		opts.HTTPClient.Timeout = opts.Timeout
	}

	c := &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		options:    opts,
	}

	// Create transport using the internal package. A 401 anywhere clears
	// the in-memory session and any persisted session file before handing
	// control to the caller's hook.
	transportOpts := &transport.Options{
		BaseURL:        opts.BaseURL,
		HTTPClient:     opts.HTTPClient,
		RetryConfig:    opts.RetryConfig,
		Logger:         opts.Logger,
		Hooks:          opts.Hooks,
		OnUnauthorized: c.handleUnauthorized,
	}
	c.transport = transport.NewRESTClient(transportOpts)

	// Set auth if token provided
	if opts.Token != "" {
		c.transport.SetAuth(opts.Token)
		c.session = &Session{Token: opts.Token}
	}

	// Initialize services
	c.initServices()

	// Load session if file specified
	if opts.SessionFile != "" {
		if err := c.Auth.LoadSession(opts.SessionFile); err != nil && opts.Logger != nil {
			opts.Logger.Warn("Failed to load session", "error", err)
		}
	}

	return c, nil
}

// NewClientWithToken creates a client with an auth token
func NewClientWithToken(token string) (*Client, error) {
	return NewClient(&ClientOptions{
		Token: token,
	})
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Budgets = &budgetService{client: c}
	c.Transactions = &transactionService{client: c}
	c.Auth = newAuthService(c)
}

// SetToken sets the authentication token
func (c *Client) SetToken(token string) {
	c.transport.SetAuth(token)
	if c.session == nil {
		c.session = &Session{}
	}
	c.session.Token = token
}

// GetSession returns the current session
func (c *Client) GetSession() *Session {
	return c.session
}

// handleUnauthorized is the fatal-to-session path: drop credentials
// everywhere they live, then notify the caller
func (c *Client) handleUnauthorized() {
	c.session = nil
	if c.options.SessionFile != "" {
		_ = os.Remove(c.options.SessionFile)
	}
	if c.options.OnUnauthorized != nil {
		c.options.OnUnauthorized()
	}
}

// do executes a REST request with rate limiting and error tracking
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	if c.options.RateLimiter != nil {
		if err := c.options.RateLimiter.Wait(ctx); err != nil {
			return err
		}
	}

	start := time.Now()
	err := c.transport.Do(ctx, method, path, query, body, result)
	duration := time.Since(start)

	if err != nil {
		c.captureError(ctx, err, method, path, duration)
	}

	return err
}

// captureError reports request failures to Sentry when configured
func (c *Client) captureError(ctx context.Context, err error, method, path string, duration time.Duration) {
	if c.options.SentryDSN == "" && c.options.SentryOptions == nil {
		return
	}

	capture := func(scope *sentry.Scope) {
		scope.SetTag("api.endpoint", path)
		scope.SetTag("api.method", method)
		scope.SetContext("request", map[string]interface{}{
			"duration": duration.String(),
		})
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			capture(scope)
			hub.CaptureException(err)
		})
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		capture(scope)
		sentry.CaptureException(err)
	})
}

// Close flushes any pending Sentry events and performs cleanup
func (c *Client) Close() {
	sentry.Flush(2 * time.Second)
}
