package contentful

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("contentful: service unavailable")

// APIError is a non-2xx response from the Delivery API.
type APIError struct {
	StatusCode int
	ID         string // sys.id of the error, e.g. "AccessTokenInvalid"
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("contentful: %d %s: %s", e.StatusCode, e.ID, e.Message)
	}
	return fmt.Sprintf("contentful: unexpected status %d", e.StatusCode)
}

// Temporary reports whether the failure is on the server side or a rate limit.
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

type errorBody struct {
	Sys       Sys    `json:"sys"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}
