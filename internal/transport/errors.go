package transport

import (
	"errors"
	"fmt"
)

// ErrorKind buckets gateway failures for callers that branch on them.
type ErrorKind string

const (
	// KindAPI covers non-2xx responses without a dedicated kind below.
	KindAPI ErrorKind = "API_ERROR"
	// KindUnauthorized marks 401 responses. The session has already been
	// cleared by the time the caller sees this error.
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	// KindForbidden marks 403 responses. Session state is untouched.
	KindForbidden ErrorKind = "FORBIDDEN"
	// KindNoResponse marks transport failures where no response arrived at
	// all, so "server said no" can be told apart from "could not reach
	// server".
	KindNoResponse ErrorKind = "NO_RESPONSE"
)

// APIError standardizes gateway failures.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// AsAPIError unwraps err into an APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNoResponse reports whether err represents a request that never got a
// response from the server.
func IsNoResponse(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == KindNoResponse
}

// IsStatus reports whether err carries the given HTTP status.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == status
}
