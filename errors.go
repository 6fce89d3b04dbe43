package aitrader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrNoSearch is returned by ReviewSession.SaveReview when no search has
// been persisted yet. It is a local validation failure: no request is made.
var ErrNoSearch = errors.New("no search ID available, search for a quote first")

// StatusError is a failed call to the service. Status 0 means the request
// never got an HTTP response (connection refused, DNS, timeout).
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("network error: %s", e.Message)
	}
	if e.Message == "" {
		return fmt.Sprintf("service returned status %d", e.Status)
	}
	return fmt.Sprintf("service returned status %d: %s", e.Status, e.Message)
}

// NetError wraps a transport-level failure as a status-0 StatusError.
func NetError(err error) error {
	return &StatusError{Status: 0, Message: err.Error()}
}

// ResponseError turns a non-2xx response into a StatusError, salvaging
// the service's error or message field when the body carries one.
func ResponseError(resp *http.Response) error {
	se := &StatusError{Status: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(body) > 0 {
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil {
			if payload.Error != "" {
				se.Message = payload.Error
			} else {
				se.Message = payload.Message
			}
		}
	}
	return se
}

func statusOf(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status, true
	}
	return 0, false
}

// IsNotFound reports a 404 from the service.
func IsNotFound(err error) bool { s, ok := statusOf(err); return ok && s == http.StatusNotFound }

// IsRateLimited reports a 429 from the service.
func IsRateLimited(err error) bool {
	s, ok := statusOf(err)
	return ok && s == http.StatusTooManyRequests
}

// IsNetworkError reports a request that never reached the service.
func IsNetworkError(err error) bool { s, ok := statusOf(err); return ok && s == 0 }

// IsAuthError reports a 401 or 403 from the service.
func IsAuthError(err error) bool {
	s, ok := statusOf(err)
	return ok && (s == http.StatusUnauthorized || s == http.StatusForbidden)
}

// IsTokenError reports a failure that calls for re-authorization: an auth
// status, or a service message blaming the token.
func IsTokenError(err error) bool {
	if IsAuthError(err) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return strings.Contains(strings.ToLower(se.Message), "token")
	}
	return false
}

// UserMessage classifies an error into the message shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case IsNotFound(err):
		return "Stock symbol not found. Please check the symbol and try again."
	case IsRateLimited(err):
		return "Rate limit exceeded. Please wait a moment and try again."
	case IsNetworkError(err):
		return "Network error. Please check your connection."
	default:
		var se *StatusError
		if errors.As(err, &se) && se.Message != "" {
			return se.Message
		}
		return "An error occurred while fetching the quote."
	}
}
