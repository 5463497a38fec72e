package common

import "encoding/json"

// CodeTokenExpired is the error code Directus reports once an access token
// has run out, independently of the HTTP status.
const CodeTokenExpired = "TOKEN_EXPIRED"

// DataResponse is the success envelope every Directus endpoint wraps its payload in.
type DataResponse[T any] struct {
	Data T `json:"data"`
}

type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

type ErrorItem struct {
	Message    string           `json:"message"`
	Extensions *ErrorExtensions `json:"extensions,omitempty"`
}

type ErrorExtensions struct {
	Code string `json:"code,omitempty"`
}

// ParseError decodes an error envelope. ok is false when the body is not one.
func ParseError(data []byte) (*ErrorResponse, bool) {
	var resp ErrorResponse
	if err := json.Unmarshal(data, &resp); err != nil || len(resp.Errors) == 0 {
		return nil, false
	}
	return &resp, true
}

func (e *ErrorResponse) FirstMessage() string {
	if e == nil || len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Message
}

func (e *ErrorResponse) HasCode(code string) bool {
	if e == nil {
		return false
	}
	for _, item := range e.Errors {
		if item.Extensions != nil && item.Extensions.Code == code {
			return true
		}
	}
	return false
}

// MessageOr returns the first error message of an error envelope, or fallback.
func MessageOr(data []byte, fallback string) string {
	if resp, ok := ParseError(data); ok && resp.FirstMessage() != "" {
		return resp.FirstMessage()
	}
	return fallback
}

func IsTokenExpired(data []byte) bool {
	resp, ok := ParseError(data)
	return ok && resp.HasCode(CodeTokenExpired)
}
