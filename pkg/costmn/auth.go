package costmn

import (
	"context"

	"github.com/costmn/costmn-go/internal/auth"
)

// authService implements the AuthService interface
type authService struct {
	client  *Client
	service *auth.Service
}

// newAuthService creates a new auth service
func newAuthService(client *Client) *authService {
	return &authService{
		client: client,
		service: auth.NewService(
			client.baseURL,
			client.httpClient,
			client.options.Logger,
		),
	}
}

func convertUser(u *auth.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
	}
}

// adoptSession propagates the freshly acquired session into the client
// and transport, and persists it when a session file is configured
func (a *authService) adoptSession() error {
	session, err := a.service.GetSession()
	if err != nil {
		return err
	}

	a.client.session = session
	a.client.transport.SetSession(session)

	if a.client.options.SessionFile != "" {
		_ = a.service.SaveSession(a.client.options.SessionFile)
	}

	return nil
}

// Login authenticates with email and password
func (a *authService) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := a.service.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := a.adoptSession(); err != nil {
		return nil, err
	}
	return convertUser(user), nil
}

// Register creates an account and logs it in
func (a *authService) Register(ctx context.Context, username, email, password, fullName string) (*User, error) {
	user, err := a.service.Register(ctx, username, email, password, fullName)
	if err != nil {
		return nil, err
	}
	if err := a.adoptSession(); err != nil {
		return nil, err
	}
	return convertUser(user), nil
}

// Profile verifies the current token and returns the account
func (a *authService) Profile(ctx context.Context) (*User, error) {
	if a.client.session != nil {
		a.service.SetSession(a.client.session)
	}
	user, err := a.service.Profile(ctx)
	if err != nil {
		return nil, err
	}
	return convertUser(user), nil
}

// SaveSession persists the session to a file
func (a *authService) SaveSession(path string) error {
	if a.client.session != nil {
		a.service.SetSession(a.client.session)
	}
	return a.service.SaveSession(path)
}

// LoadSession restores a previously saved session
func (a *authService) LoadSession(path string) error {
	if err := a.service.LoadSession(path); err != nil {
		return err
	}

	session, err := a.service.GetSession()
	if err != nil {
		return err
	}

	a.client.session = session
	a.client.transport.SetSession(session)
	return nil
}

// Logout drops the session locally
func (a *authService) Logout() {
	a.service.ClearSession()
	a.client.session = nil
	a.client.transport.SetSession(nil)
}
