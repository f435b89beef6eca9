package modeapi

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials marks an authentication rejection by the service.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrMissingCredentials is returned by New when neither the arguments nor
// the environment provide an email and password.
var ErrMissingCredentials = errors.New("email and password must be provided or set via MODE_API_EMAIL/MODE_API_PASSWORD")

// AuthError is any failure of the login handshake.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return "authentication failed: " + e.Err.Error() }
func (e *AuthError) Unwrap() error { return e.Err }

// APIError is a transport-level failure: a non-2xx response, a network
// error, or a syntactically malformed response body. It is disjoint from
// marketdata.ValidationError, which the client wraps and propagates when an
// otherwise well-formed payload violates a data invariant.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}
