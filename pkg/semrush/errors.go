package semrush

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidOptions wraps request validation failures
	ErrInvalidOptions = errors.New("semrush: invalid request options")
	// ErrMissingAPIKey is returned by NewClient without a key
	ErrMissingAPIKey = errors.New("semrush: api key is required")
	// ErrColumnMismatch is returned when a response does not match the requested columns
	ErrColumnMismatch = errors.New("semrush: response columns do not match request")
)

// Provider error codes with special handling
const (
	CodeNothingFound = 50
	CodeWrongKey     = 120
	CodeUnitsBalance = 132
	CodeLimitReached = 134
)

var apiErrorPattern = regexp.MustCompile(`^ERROR\s+(\d+)\s*::\s*(.*)$`)

// APIError is an error reported by the provider in the response body
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("semrush api error %d: %s", e.Code, e.Message)
}

// NothingFound reports whether the provider had no rows for the query
func (e *APIError) NothingFound() bool {
	return e.Code == CodeNothingFound
}

// StatusError is a non-200 HTTP response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("semrush returned status %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether the status is worth retrying
func (e *StatusError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// parseAPIError recognises "ERROR <code> :: <message>" bodies
func parseAPIError(body []byte) (*APIError, bool) {
	line := strings.TrimSpace(string(body))
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}

	m := apiErrorPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, false
	}
	return &APIError{Code: code, Message: strings.TrimSpace(m[2])}, true
}

// IsRetryable classifies an error returned by a single request attempt.
// Provider-reported errors and client-side 4xx are final; transport errors,
// 429 and 5xx are retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrInvalidOptions) || errors.Is(err, ErrColumnMismatch) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}

	return true
}
