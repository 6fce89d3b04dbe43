package aitrader

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	isolateState(t)

	if _, err := LoadToken(); err == nil {
		t.Error("LoadToken() before login expected an error")
	}
	if err := SaveToken("  secret-token\n"); err != nil {
		t.Fatalf("SaveToken() unexpected error = %v", err)
	}
	token, err := LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() unexpected error = %v", err)
	}
	if token != "secret-token" {
		t.Errorf("LoadToken() = %q, want trimmed secret-token", token)
	}
	if err := ClearToken(); err != nil {
		t.Fatalf("ClearToken() unexpected error = %v", err)
	}
	if _, err := LoadToken(); err == nil {
		t.Error("LoadToken() after ClearToken expected an error")
	}
	// Clearing twice is fine.
	if err := ClearToken(); err != nil {
		t.Errorf("ClearToken() second call unexpected error = %v", err)
	}
}

func TestAuthTransport_AttachesBearer(t *testing.T) {
	isolateState(t)

	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}))
	defer server.Close()

	client := NewHTTPClient()

	// Without a session the request goes out bare.
	if _, err := client.Get(server.URL); err != nil {
		t.Fatalf("Get() unexpected error = %v", err)
	}
	if got != "" {
		t.Errorf("request carried Authorization %q before login", got)
	}

	if err := SaveToken("secret"); err != nil {
		t.Fatalf("SaveToken() unexpected error = %v", err)
	}
	if _, err := client.Get(server.URL); err != nil {
		t.Fatalf("Get() unexpected error = %v", err)
	}
	if got != "Bearer secret" {
		t.Errorf("Authorization = %q, want Bearer secret", got)
	}
}
