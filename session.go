package aitrader

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Local client state lives in small files under the temp directory: the
// bearer token from `atx login`, and the last searched symbol used to
// prefill the next search. Neither is a correctness requirement.

const (
	tokenFile      = "atx-session"
	lastSymbolFile = "atx-last-symbol"
	lastSearchFile = "atx-last-search"
)

// stateDir is a variable so tests can point it at a scratch directory.
var stateDir = os.TempDir()

// SaveToken stores the bearer token for subsequent commands.
func SaveToken(token string) error {
	return os.WriteFile(filepath.Join(stateDir, tokenFile), []byte(strings.TrimSpace(token)), 0600)
}

// LoadToken returns the stored bearer token.
func LoadToken() (string, error) {
	data, err := os.ReadFile(filepath.Join(stateDir, tokenFile))
	if err != nil {
		return "", fmt.Errorf("session not found, run 'atx login' first: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ClearToken forgets the stored session.
func ClearToken() error {
	err := os.Remove(filepath.Join(stateDir, tokenFile))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func saveLastSymbol(symbol string) {
	// best effort, a failure here only loses the prefill
	_ = os.WriteFile(filepath.Join(stateDir, lastSymbolFile), []byte(symbol), 0600)
}

// LastSymbol returns the most recently searched symbol, or "" when none
// was saved yet.
func LastSymbol() string {
	data, err := os.ReadFile(filepath.Join(stateDir, lastSymbolFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func saveLastSearchID(id string) {
	_ = os.WriteFile(filepath.Join(stateDir, lastSearchFile), []byte(id), 0600)
}

// LastSearchID returns the id of the most recently persisted search,
// or "" when none was saved yet. It is the default target of a review.
func LastSearchID() string {
	data, err := os.ReadFile(filepath.Join(stateDir, lastSearchFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// authTransport attaches the stored bearer token to every request.
// Requests still go out without one so that unauthenticated endpoints
// keep working before the first login.
type authTransport struct {
	base http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token, err := LoadToken(); err == nil && token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(req)
}

// NewHTTPClient returns an http client that authenticates against the
// service with the stored session token.
func NewHTTPClient() *http.Client {
	return &http.Client{Transport: &authTransport{base: http.DefaultTransport}}
}
