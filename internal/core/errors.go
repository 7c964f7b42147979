package core

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// NotFoundMessage is the error message recorded on a failed result when the
// registry definitively reports the package absent.
const NotFoundMessage = "Package not found"

// ErrUnavailable is returned when a registry cannot be reached at all, for
// example when its circuit breaker is open.
var ErrUnavailable = errors.New("registry unavailable")

// RateLimitError is raised when the registry rate limits requests.
// RetryAfter is a server-specified wait in seconds; zero means the server
// did not say.
type RateLimitError struct {
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// ServerError represents a 5xx response from a registry.
type ServerError struct {
	StatusCode int
	URL        string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.URL)
}

// NetworkError wraps a transport-level failure (DNS, connection).
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RetryAfter extracts the server-specified wait from a rate limit error.
// Returns zero when err is not a rate limit or carries no duration.
func RetryAfter(err error) int {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return rl.RetryAfter
	}
	return 0
}

// IsRetryable reports whether a later attempt could succeed: rate limits,
// server errors, transport failures, and recognized timeout or
// connection-reset conditions. Definitive negatives are never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var rl *RateLimitError
	if errors.As(err, &rl) {
		return true
	}
	var se *ServerError
	if errors.As(err, &se) {
		return true
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return true
	}
	if errors.Is(err, ErrUnavailable) {
		return true
	}

	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"timeout", "timed out", "connection reset", "econnreset", "etimedout"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
