package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Type categorizes an API-facing error for consistent messaging.
type Type string

const (
	// Transport means no usable response reached the client.
	Transport Type = "transport"
	// Auth means the session is over: a 401 that could not be recovered by a refresh.
	Auth Type = "auth"
	// Validation means the server rejected the operation (4xx with a detail message).
	Validation Type = "validation"
	// Server means the backend failed (5xx).
	Server Type = "server"
)

// Error is a structured error for a failed API operation.
type Error struct {
	Type       Type
	StatusCode int    // 0 for transport errors
	Detail     string // server-provided detail message, verbatim
	Err        error  // optional underlying error
}

func (e *Error) Error() string { return e.Detail }
func (e *Error) Unwrap() error { return e.Err }

// New constructs a new API Error.
func New(t Type, detail string, err error) *Error {
	return &Error{Type: t, Detail: detail, Err: err}
}

// FromResponse builds an Error from a non-2xx response body.
// The backend reports failures as {"detail": "..."}; the detail is kept
// verbatim so the UI can surface it unchanged.
func FromResponse(statusCode int, body []byte) *Error {
	var payload struct {
		Detail string `json:"detail"`
	}
	detail := http.StatusText(statusCode)
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		detail = payload.Detail
	}
	return &Error{Type: classify(statusCode), StatusCode: statusCode, Detail: detail}
}

func classify(statusCode int) Type {
	switch {
	case statusCode == http.StatusUnauthorized:
		return Auth
	case statusCode >= 500:
		return Server
	default:
		return Validation
	}
}

// IsType reports whether err is an *Error of the given type.
func IsType(err error, t Type) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Type == t
}
