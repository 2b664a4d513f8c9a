package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/costmn/costmn-go/internal/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	loginEndpoint    = "/api/auth/login"
	registerEndpoint = "/api/auth/register"
	profileEndpoint  = "/api/auth/profile"
)

// User is the account profile returned by the auth endpoints
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Service handles authentication operations
type Service struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
	session    *types.Session
	logger     types.Logger
}

// NewService creates a new auth service
func NewService(baseURL string, httpClient *http.Client, logger types.Logger) *Service {
	headers := map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
		"User-Agent":   types.UserAgent,
		"device-uuid":  uuid.New().String(),
	}

	return &Service{
		baseURL:    baseURL,
		httpClient: httpClient,
		headers:    headers,
		logger:     logger,
	}
}

// authPayload is the {user, token} body inside the auth envelope
type authPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type authResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    authPayload `json:"data"`
}

// Login authenticates with email and password
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	return s.authenticate(ctx, loginEndpoint, body)
}

// Register creates a new account and logs it in
func (s *Service) Register(ctx context.Context, username, email, password, fullName string) (*User, error) {
	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
		"fullName": fullName,
	}
	return s.authenticate(ctx, registerEndpoint, body)
}

// authenticate posts credentials and captures the returned token
func (s *Service) authenticate(ctx context.Context, endpoint string, body map[string]string) (*User, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal credentials")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &types.Error{
			Code:    "CONNECTION_ERROR",
			Message: "cannot reach backend, check that the server is running",
			Err:     types.ErrBackendUnreachable,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	var authResp authResponse
	if err := json.Unmarshal(respBody, &authResp); err != nil {
		return nil, errors.Wrap(err, "failed to parse response")
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated || !authResp.Success {
		msg := authResp.Message
		if msg == "" {
			msg = "invalid credentials"
		}
		return nil, &types.Error{
			Code:       "LOGIN_FAILED",
			Message:    msg,
			StatusCode: resp.StatusCode,
			Err:        types.ErrLoginFailed,
		}
	}

	if authResp.Data.Token == "" {
		return nil, errors.New("login response missing token")
	}

	user := authResp.Data.User
	s.session = &types.Session{
		Token:      authResp.Data.Token,
		DeviceUUID: s.headers["device-uuid"],
	}
	if user != nil {
		s.session.UserID = user.ID
		s.session.Username = user.Username
		s.session.Email = user.Email
	}

	if s.logger != nil {
		s.logger.Info("Logged in", "email", s.session.Email)
	}

	return user, nil
}

// Profile verifies the current token and returns the account profile
func (s *Service) Profile(ctx context.Context) (*User, error) {
	if s.session == nil || s.session.Token == "" {
		return nil, types.ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+profileEndpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Authorization", "Bearer "+s.session.Token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &types.Error{
			Code:    "CONNECTION_ERROR",
			Message: "cannot reach backend, check that the server is running",
			Err:     types.ErrBackendUnreachable,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		s.session = nil
		return nil, types.ErrSessionExpired
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	var profileResp struct {
		Success bool `json:"success"`
		Data    struct {
			User *User `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &profileResp); err != nil {
		return nil, errors.Wrap(err, "failed to parse response")
	}
	if !profileResp.Success || profileResp.Data.User == nil {
		return nil, types.ErrNotAuthenticated
	}

	return profileResp.Data.User, nil
}

// GetSession returns the current session
func (s *Service) GetSession() (*types.Session, error) {
	if s.session == nil {
		return nil, types.ErrNotAuthenticated
	}
	return s.session, nil
}

// SetSession sets the current session
func (s *Service) SetSession(session *types.Session) {
	s.session = session
}

// ClearSession drops the current session
func (s *Service) ClearSession() {
	s.session = nil
}

// SaveSession saves session to file
func (s *Service) SaveSession(path string) error {
	if s.session == nil {
		return types.ErrNotAuthenticated
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrap(err, "failed to create session directory")
	}

	data, err := json.MarshalIndent(s.session, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}

	// Restrictive permissions, the file holds a bearer token
	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write session file")
	}

	if s.logger != nil {
		s.logger.Info("Session saved", "path", path)
	}

	return nil
}

// LoadSession loads session from file
func (s *Service) LoadSession(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.ErrNotAuthenticated
		}
		return errors.Wrap(err, "failed to read session file")
	}

	var session types.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return errors.Wrap(err, "failed to unmarshal session")
	}

	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		return types.ErrSessionExpired
	}

	s.session = &session

	if s.logger != nil {
		s.logger.Info("Session loaded", "path", path, "email", session.Email)
	}

	return nil
}
