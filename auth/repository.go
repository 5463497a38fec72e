package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	directus "teamop.dk/bosted/directus/v1"
	"teamop.dk/bosted/logging"
	"teamop.dk/bosted/model"
)

var ErrUserNotFound = errors.New("user not found")

// AuthenticationFailedError wraps whatever went wrong while authenticating
// the service identity.
type AuthenticationFailedError struct {
	Message string
	Err     error
}

func (e *AuthenticationFailedError) Error() string {
	return "authentication failed: " + e.Message
}

func (e *AuthenticationFailedError) Unwrap() error {
	return e.Err
}

// ServiceAuthenticator logs the shared service identity in.
type ServiceAuthenticator interface {
	Login(ctx context.Context) (*model.Credentials, error)
	HasToken() bool
}

type UserLister interface {
	List(ctx context.Context) ([]model.User, error)
}

// Repository exposes "log in by email" on top of the service session. The
// backend has no per-user authentication, so a login is the service login
// followed by a check that the email belongs to a known user.
type Repository struct {
	service ServiceAuthenticator
	users   UserLister
}

func NewRepository(service ServiceAuthenticator, users UserLister) *Repository {
	return &Repository{service: service, users: users}
}

func NewDirectusRepository(client *directus.DirectusClient) *Repository {
	return NewRepository(client, client.Users)
}

func (r *Repository) AuthenticateService(ctx context.Context) (*model.Credentials, error) {
	return r.service.Login(ctx)
}

// VerifyUserExists returns the user whose email equals email exactly.
func (r *Repository) VerifyUserExists(ctx context.Context, email string) (*model.User, error) {
	users, err := r.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// Login ignores password.
func (r *Repository) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	logger := logging.FromContext(ctx).With("email", email)

	if _, err := r.AuthenticateService(ctx); err != nil {
		logger.Warn("service authentication failed", "error", err)
		return nil, &AuthenticationFailedError{Message: failureMessage(err), Err: err}
	}

	user, err := r.VerifyUserExists(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			logger.Info("login rejected, unknown email")
		}
		return nil, err
	}

	logger.Info("login accepted", "user_id", user.ID)
	return user, nil
}

func (r *Repository) IsLoggedIn() bool {
	return r.service.HasToken()
}

func failureMessage(err error) string {
	var authErr *directus.AuthFailure
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return fmt.Sprint(err)
}
