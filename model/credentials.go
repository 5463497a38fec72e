package model

// Credentials is the token pair issued by the backend's auth endpoints.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Expires      *int64 `json:"expires,omitempty"` // milliseconds, informational only
}

func (c Credentials) HasRefreshToken() bool {
	return c.RefreshToken != ""
}
