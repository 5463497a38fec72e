package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"teamop.dk/bosted/directus/v1/common"
	"teamop.dk/bosted/logging"
	"teamop.dk/bosted/model"
)

type Options struct {
	BaseURL         string
	Identity        ServiceIdentity
	RequestTimeout  time.Duration
	ResourceTimeout time.Duration
	Metrics         *Metrics
}

type DirectusClient struct {
	Transport    *Transport
	Session      *Session
	Auth         *Authenticator
	Users        *UserEndpoint
	Schedules    *ScheduleEndpoint
	Events       *EventEndpoint
	SubLocations *SubLocationEndpoint
	Junctions    *JunctionEndpoint
}

// NewDirectusClient initializes the API client
func NewDirectusClient(opts Options) *DirectusClient {
	t := NewTransport(opts.BaseURL, opts.RequestTimeout, opts.ResourceTimeout, opts.Metrics)
	s := NewSession()
	c := &DirectusClient{
		Transport: t,
		Session:   s,
		Auth:      NewAuthenticator(t, s, opts.Identity),
	}
	c.Users = &UserEndpoint{client: c}
	c.Schedules = &ScheduleEndpoint{client: c}
	c.Events = &EventEndpoint{client: c}
	c.SubLocations = &SubLocationEndpoint{client: c}
	c.Junctions = &JunctionEndpoint{client: c}
	return c
}

func (c *DirectusClient) HasToken() bool {
	return c.Session.HasToken()
}

func (c *DirectusClient) Login(ctx context.Context) (*model.Credentials, error) {
	return c.Auth.Login(ctx)
}

// AuthenticatedGet reads path with the session's access token. An expired
// token (401, or a TOKEN_EXPIRED error body) triggers exactly one refresh and
// one replay of the request; whatever the replay returns is final.
func (c *DirectusClient) AuthenticatedGet(ctx context.Context, path string, query url.Values) ([]byte, error) {
	token, ok := c.Session.AccessToken()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	resp, err := c.Transport.Get(ctx, path, query, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || common.IsTokenExpired(resp.Data) {
		logging.FromContext(ctx).Info("access token expired, refreshing", "path", path, "status", resp.StatusCode)

		fresh, err := c.Auth.RefreshStale(ctx, token)
		if err != nil {
			return nil, err
		}

		resp, err = c.Transport.Get(ctx, path, query, fresh)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ServerError{
			StatusCode: resp.StatusCode,
			Message:    common.MessageOr(resp.Data, unknownErrorMessage),
		}
	}

	return resp.Data, nil
}

// fetchItems reads a whole /items collection and decodes its data envelope.
func fetchItems[T any](ctx context.Context, c *DirectusClient, collection string, query url.Values) ([]T, error) {
	data, err := c.AuthenticatedGet(ctx, "/items/"+collection, query)
	if err != nil {
		return nil, err
	}

	var result common.DataResponse[[]T]
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &DecodeError{Resource: collection, Err: err}
	}
	return result.Data, nil
}

func filterEq(field string, value string) url.Values {
	return url.Values{"filter[" + field + "][_eq]": []string{value}}
}
