package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const (
	testEmail    = "svc@team-op.dk"
	testPassword = "secret"
)

// fakeDirectus is an in-memory stand-in for the Directus auth and items API.
type fakeDirectus struct {
	server *httptest.Server

	mu           sync.Mutex
	valid        string
	issued       int
	refreshToken string
	lastQuery    url.Values
	lastAuth     string

	rotate        bool
	rejectAll     bool
	refreshStatus int
	refreshDelay  time.Duration
	collections   map[string]string

	logins    atomic.Int32
	refreshes atomic.Int32
	reads     atomic.Int32
}

func newFakeDirectus(t *testing.T) *fakeDirectus {
	t.Helper()
	f := &fakeDirectus{
		refreshToken:  "refresh-0",
		refreshStatus: http.StatusOK,
		collections:   map[string]string{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", f.login)
	mux.HandleFunc("/auth/refresh", f.refresh)
	mux.HandleFunc("/items/", f.items)
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeDirectus) client() *DirectusClient {
	return NewDirectusClient(Options{
		BaseURL:  f.server.URL,
		Identity: ServiceIdentity{Email: testEmail, Password: testPassword},
	})
}

func (f *fakeDirectus) set(collection string, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collections[collection] = body
}

// configure mutates the fake's behaviour under its lock.
func (f *fakeDirectus) configure(fn func(f *fakeDirectus)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

// expire invalidates every access token handed out so far.
func (f *fakeDirectus) expire() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.valid = ""
}

func (f *fakeDirectus) query() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

func (f *fakeDirectus) issue() string {
	f.issued++
	f.valid = fmt.Sprintf("access-%d", f.issued)
	return f.valid
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func (f *fakeDirectus) login(w http.ResponseWriter, r *http.Request) {
	f.logins.Add(1)

	var body ServiceIdentity
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email != testEmail || body.Password != testPassword {
		writeJSON(w, http.StatusUnauthorized, `{"errors":[{"message":"Invalid user credentials.","extensions":{"code":"INVALID_CREDENTIALS"}}]}`)
		return
	}

	f.mu.Lock()
	access := f.issue()
	refresh := f.refreshToken
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, fmt.Sprintf(`{"data":{"access_token":%q,"refresh_token":%q,"expires":900000}}`, access, refresh))
}

func (f *fakeDirectus) refresh(w http.ResponseWriter, r *http.Request) {
	f.refreshes.Add(1)

	f.mu.Lock()
	delay, status := f.refreshDelay, f.refreshStatus
	f.mu.Unlock()

	time.Sleep(delay)
	if status != http.StatusOK {
		writeJSON(w, status, `{"errors":[{"message":"Invalid refresh token."}]}`)
		return
	}

	var body refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, `{"errors":[{"message":"bad body"}]}`)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if body.RefreshToken != f.refreshToken {
		writeJSON(w, http.StatusUnauthorized, `{"errors":[{"message":"Invalid refresh token."}]}`)
		return
	}

	access := f.issue()
	if f.rotate {
		f.refreshToken = fmt.Sprintf("refresh-%d", f.issued)
		writeJSON(w, http.StatusOK, fmt.Sprintf(`{"data":{"access_token":%q,"refresh_token":%q}}`, access, f.refreshToken))
		return
	}
	writeJSON(w, http.StatusOK, fmt.Sprintf(`{"data":{"access_token":%q}}`, access))
}

func (f *fakeDirectus) items(w http.ResponseWriter, r *http.Request) {
	f.reads.Add(1)
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	f.mu.Lock()
	f.lastQuery = r.URL.Query()
	f.lastAuth = token
	ok := !f.rejectAll && f.valid != "" && token == f.valid
	body, found := f.collections[strings.TrimPrefix(r.URL.Path, "/items/")]
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusUnauthorized, `{"errors":[{"message":"Token expired.","extensions":{"code":"TOKEN_EXPIRED"}}]}`)
		return
	}
	if !found {
		body = `{"data":[]}`
	}
	writeJSON(w, http.StatusOK, body)
}
