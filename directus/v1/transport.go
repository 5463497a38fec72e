package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"teamop.dk/bosted/logging"
)

const (
	DefaultRequestTimeout  = 30 * time.Second
	DefaultResourceTimeout = 5 * time.Minute
)

type Response struct {
	StatusCode int
	Data       []byte
}

// Transport handles low-level HTTP against a single Directus origin. It never
// interprets status codes; that is left to the caller.
type Transport struct {
	BaseURL    string
	HTTPClient *http.Client
	Metrics    *Metrics
}

// NewTransport creates a transport bounded by a per-request timeout (time to
// response headers) and a per-resource timeout (whole exchange).
func NewTransport(baseURL string, requestTimeout, resourceTimeout time.Duration, metrics *Metrics) *Transport {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	if resourceTimeout <= 0 {
		resourceTimeout = DefaultResourceTimeout
	}

	rt := http.DefaultTransport.(*http.Transport).Clone()
	rt.ResponseHeaderTimeout = requestTimeout

	return &Transport{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Transport: rt,
			Timeout:   resourceTimeout,
		},
		Metrics: metrics,
	}
}

// helper: build full URL with query params
func (t *Transport) buildURL(path string, query url.Values) (string, error) {
	u, err := url.Parse(t.BaseURL + path)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Post sends a POST request with JSON body
func (t *Transport) Post(ctx context.Context, path string, data any, token string) (*Response, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return t.do(ctx, http.MethodPost, path, nil, bytes.NewReader(body), token)
}

// Get sends a GET request
func (t *Transport) Get(ctx context.Context, path string, query url.Values, token string) (*Response, error) {
	return t.do(ctx, http.MethodGet, path, query, nil, token)
}

func (t *Transport) do(ctx context.Context, method, path string, query url.Values, body io.Reader, token string) (*Response, error) {
	fullURL, err := t.buildURL(path, query)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	started := time.Now()
	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		t.Metrics.observeRequest(method, "error", time.Since(started))
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Metrics.observeRequest(method, "error", time.Since(started))
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	elapsed := time.Since(started)
	t.Metrics.observeRequest(method, strconv.Itoa(resp.StatusCode), elapsed)
	logging.FromContext(ctx).Debug("directus request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", elapsed,
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Data:       data,
	}, nil
}
