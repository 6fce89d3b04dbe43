package aitrader

import (
	"net/http"
	"testing"
)

func TestUserMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"not found", &StatusError{Status: http.StatusNotFound}, "Stock symbol not found. Please check the symbol and try again."},
		{"rate limited", &StatusError{Status: http.StatusTooManyRequests}, "Rate limit exceeded. Please wait a moment and try again."},
		{"network", &StatusError{Status: 0, Message: "connection refused"}, "Network error. Please check your connection."},
		{"server with message", &StatusError{Status: 500, Message: "provider exploded"}, "provider exploded"},
		{"server without message", &StatusError{Status: 500}, "An error occurred while fetching the quote."},
		{"nil", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := UserMessage(tc.err); got != tc.want {
				t.Errorf("UserMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsTokenError(t *testing.T) {
	if !IsTokenError(&StatusError{Status: http.StatusUnauthorized}) {
		t.Error("IsTokenError() = false for a 401")
	}
	if !IsTokenError(&StatusError{Status: http.StatusForbidden}) {
		t.Error("IsTokenError() = false for a 403")
	}
	if !IsTokenError(&StatusError{Status: 500, Message: "Token expired"}) {
		t.Error("IsTokenError() = false for a token-blaming message")
	}
	if IsTokenError(&StatusError{Status: 500, Message: "db down"}) {
		t.Error("IsTokenError() = true for an unrelated server fault")
	}
}

func TestParseRange(t *testing.T) {
	for _, good := range []string{"1D", "5d", " 1M ", "3M", "1y"} {
		if _, err := ParseRange(good); err != nil {
			t.Errorf("ParseRange(%q) unexpected error = %v", good, err)
		}
	}
	for _, bad := range []string{"", "2W", "1", "day"} {
		if _, err := ParseRange(bad); err == nil {
			t.Errorf("ParseRange(%q) expected an error", bad)
		}
	}
}
