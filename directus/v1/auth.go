package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/sync/singleflight"

	"teamop.dk/bosted/directus/v1/common"
	"teamop.dk/bosted/logging"
	"teamop.dk/bosted/model"
)

const refreshKey = "refresh"

// ServiceIdentity is the privileged account the backend is accessed with.
type ServiceIdentity struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Authenticator obtains and refreshes the session's token pair. Refreshes are
// serialized: concurrent callers share a single in-flight request.
type Authenticator struct {
	transport *Transport
	session   *Session
	identity  ServiceIdentity
	group     singleflight.Group
}

func NewAuthenticator(transport *Transport, session *Session, identity ServiceIdentity) *Authenticator {
	return &Authenticator{
		transport: transport,
		session:   session,
		identity:  identity,
	}
}

// Login exchanges the service identity for a fresh token pair and stores it.
func (a *Authenticator) Login(ctx context.Context) (*model.Credentials, error) {
	resp, err := a.transport.Post(ctx, "/auth/login", a.identity, "")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &AuthFailure{
			StatusCode: resp.StatusCode,
			Message:    common.MessageOr(resp.Data, unknownErrorMessage),
		}
	}

	var result common.DataResponse[model.Credentials]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, &DecodeError{Resource: "auth/login", Err: err}
	}
	if result.Data.AccessToken == "" {
		return nil, fmt.Errorf("%w: login response carries no access token", ErrInvalidResponse)
	}

	a.session.Set(result.Data)
	logging.FromContext(ctx).Info("service login succeeded", "identity", a.identity.Email)

	return &result.Data, nil
}

// Refresh trades the stored refresh token for a new access token.
func (a *Authenticator) Refresh(ctx context.Context) (*model.Credentials, error) {
	v, err, _ := a.group.Do(refreshKey, func() (any, error) {
		return a.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	creds := v.(model.Credentials)
	return &creds, nil
}

// RefreshStale returns a usable access token for a caller whose request was
// rejected with stale. If another caller already replaced stale, the current
// token is returned without contacting the backend.
func (a *Authenticator) RefreshStale(ctx context.Context, stale string) (string, error) {
	v, err, shared := a.group.Do(refreshKey, func() (any, error) {
		if creds, ok := a.session.Credentials(); ok && creds.AccessToken != "" && creds.AccessToken != stale {
			return creds, nil
		}
		return a.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return "", err
	}
	if shared {
		logging.FromContext(ctx).Debug("joined in-flight token refresh")
	}
	return v.(model.Credentials).AccessToken, nil
}

func (a *Authenticator) refresh(ctx context.Context) (model.Credentials, error) {
	refreshToken, ok := a.session.RefreshToken()
	if !ok {
		a.transport.Metrics.observeRefresh("no_token")
		return model.Credentials{}, ErrNoRefreshToken
	}

	resp, err := a.transport.Post(ctx, "/auth/refresh", refreshRequest{RefreshToken: refreshToken}, "")
	if err != nil {
		a.transport.Metrics.observeRefresh("failed")
		return model.Credentials{}, fmt.Errorf("%w: %w", ErrTokenRefreshFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		a.transport.Metrics.observeRefresh("failed")
		return model.Credentials{}, fmt.Errorf("%w: status %d: %s", ErrTokenRefreshFailed,
			resp.StatusCode, common.MessageOr(resp.Data, unknownErrorMessage))
	}

	var result common.DataResponse[model.Credentials]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		a.transport.Metrics.observeRefresh("failed")
		return model.Credentials{}, fmt.Errorf("%w: %w", ErrTokenRefreshFailed, &DecodeError{Resource: "auth/refresh", Err: err})
	}
	if result.Data.AccessToken == "" {
		a.transport.Metrics.observeRefresh("failed")
		return model.Credentials{}, fmt.Errorf("%w: refresh response carries no access token", ErrTokenRefreshFailed)
	}

	a.session.Rotate(result.Data)
	a.transport.Metrics.observeRefresh("ok")
	logging.FromContext(ctx).Info("access token refreshed", "rotated_refresh_token", result.Data.HasRefreshToken())

	creds, _ := a.session.Credentials()
	return creds, nil
}
