package v1

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidResponse    = errors.New("invalid response from server")
	ErrNotAuthenticated   = errors.New("not authenticated - please login first")
	ErrNoRefreshToken     = errors.New("no refresh token available")
	ErrTokenRefreshFailed = errors.New("failed to refresh access token")
	ErrNotImplemented     = errors.New("not supported by the backend")
)

const unknownErrorMessage = "Unknown error"

// TransportError is a request that never produced an HTTP response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrInvalidResponse, e.Err}
}

// DecodeError is a response body that could not be decoded into the expected shape.
type DecodeError struct {
	Resource string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Resource, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrInvalidResponse, e.Err}
}

// ServerError is any non-success status returned for an authenticated request.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// AuthFailure is a rejected service login.
type AuthFailure struct {
	StatusCode int
	Message    string
}

func (e *AuthFailure) Error() string {
	return fmt.Sprintf("login failed (%d): %s", e.StatusCode, e.Message)
}

type Kind string

const (
	KindInvalidResponse    Kind = "invalid_response"
	KindNotAuthenticated   Kind = "not_authenticated"
	KindNoRefreshToken     Kind = "no_refresh_token"
	KindTokenRefreshFailed Kind = "token_refresh_failed"
	KindServerError        Kind = "server_error"
	KindAuthFailure        Kind = "auth_failure"
	KindNotImplemented     Kind = "not_implemented"
	KindUnknown            Kind = "unknown"
)

// KindOf classifies err into one of the client's error kinds.
func KindOf(err error) Kind {
	var serverErr *ServerError
	var authErr *AuthFailure

	switch {
	case err == nil:
		return ""
	case errors.As(err, &serverErr):
		return KindServerError
	case errors.As(err, &authErr):
		return KindAuthFailure
	case errors.Is(err, ErrNotAuthenticated):
		return KindNotAuthenticated
	case errors.Is(err, ErrNoRefreshToken):
		return KindNoRefreshToken
	case errors.Is(err, ErrTokenRefreshFailed):
		return KindTokenRefreshFailed
	case errors.Is(err, ErrNotImplemented):
		return KindNotImplemented
	case errors.Is(err, ErrInvalidResponse):
		return KindInvalidResponse
	}
	return KindUnknown
}
