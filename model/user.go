package model

import "strings"

type User struct {
	ID        string  `json:"id"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     string  `json:"email"`
}

// DisplayName is "first last" trimmed, or the email when both names are blank.
func (u User) DisplayName() string {
	var first, last string
	if u.FirstName != nil {
		first = *u.FirstName
	}
	if u.LastName != nil {
		last = *u.LastName
	}
	combined := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if combined == "" {
		return u.Email
	}
	return combined
}
