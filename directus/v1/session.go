package v1

import (
	"sync"

	"teamop.dk/bosted/model"
)

// Session holds the current token pair in memory only.
type Session struct {
	mu    sync.RWMutex
	creds *model.Credentials
}

func NewSession() *Session {
	return &Session{}
}

// Set replaces the whole token pair.
func (s *Session) Set(creds model.Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = &creds
}

// Rotate applies a refresh result: the access token is always replaced, the
// refresh token and expiry only when the backend sent new ones.
func (s *Session) Rotate(creds model.Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := creds
	if s.creds != nil {
		if next.RefreshToken == "" {
			next.RefreshToken = s.creds.RefreshToken
		}
		if next.Expires == nil {
			next.Expires = s.creds.Expires
		}
	}
	s.creds = &next
}

func (s *Session) Credentials() (model.Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return model.Credentials{}, false
	}
	return *s.creds, true
}

func (s *Session) AccessToken() (string, bool) {
	creds, ok := s.Credentials()
	if !ok || creds.AccessToken == "" {
		return "", false
	}
	return creds.AccessToken, true
}

func (s *Session) RefreshToken() (string, bool) {
	creds, ok := s.Credentials()
	if !ok || !creds.HasRefreshToken() {
		return "", false
	}
	return creds.RefreshToken, true
}

// HasToken reports whether an access token is held. It says nothing about validity.
func (s *Session) HasToken() bool {
	_, ok := s.AccessToken()
	return ok
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
}
