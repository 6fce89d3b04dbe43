package etrade

import (
	"bytes"
	"log"
	"net/http"
	"strings"
	"testing"
)

func newController(t *testing.T, routes map[string]http.HandlerFunc) (*LinkingController, *callLog) {
	t.Helper()
	srv, log := newLinkServer(t, routes)
	return NewLinkingController(NewClient(srv.URL)), log
}

func TestLinking_InitLoadsStatusAndAccountsTogether(t *testing.T) {
	l, log := newController(t, map[string]http.HandlerFunc{
		"GET /api/etrade/oauth/status": jsonHandler(`{"connected":true,"hasAccounts":true,"accountCount":2,"tokenStatus":"VALID"}`),
		"GET /api/etrade/accounts":     jsonHandler(twoAccounts),
	})
	if err := l.Init(); err != nil {
		t.Fatal(err)
	}
	if log.count("GET /api/etrade/oauth/status") != 1 || log.count("GET /api/etrade/accounts") != 1 {
		t.Error("both loads must run")
	}
	if len(l.Accounts()) != 2 {
		t.Errorf("want 2 accounts, got %d", len(l.Accounts()))
	}
	if b := l.Banner(); b.Severity != BannerSuccess {
		t.Errorf("connected with valid token must be success, got %q", b.Severity)
	}
}

func TestLinking_AccountsProveConnection(t *testing.T) {
	// The status endpoint lags behind; a populated account list wins.
	l, _ := newController(t, map[string]http.HandlerFunc{
		"GET /api/etrade/oauth/status": jsonHandler(`{"connected":false}`),
		"GET /api/etrade/accounts":     jsonHandler(twoAccounts),
	})
	if err := l.Init(); err != nil {
		t.Fatal(err)
	}
	status := l.Status()
	if !status.Connected || status.AccountCount != 2 {
		t.Errorf("accounts must prove the connection, got %+v", status)
	}
}

func TestLinking_StatusFailureIsLoggedNotFatal(t *testing.T) {
	var logged bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&logged)
	t.Cleanup(func() { log.SetOutput(prev) })

	l, _ := newController(t, map[string]http.HandlerFunc{
		"GET /api/etrade/oauth/status": failHandler(http.StatusInternalServerError, "status store down"),
		"GET /api/etrade/accounts":     jsonHandler(twoAccounts),
	})
	if err := l.Init(); err != nil {
		t.Fatalf("a status failure alone must not fail Init, got %v", err)
	}
	status := l.Status()
	if !status.Connected || status.AccountCount != 2 {
		t.Errorf("state must be derived from accounts, got %+v", status)
	}
	if !strings.Contains(logged.String(), "oauth status check failed") {
		t.Errorf("discarded status error must be logged, got %q", logged.String())
	}
}

func TestLinking_NoAccountsIsEmptyState(t *testing.T) {
	l, _ := newController(t, map[string]http.HandlerFunc{
		"GET /api/etrade/oauth/status": jsonHandler(`{"connected":false}`),
		"GET /api/etrade/accounts":     failHandler(http.StatusNotFound, "no accounts linked"),
	})
	if err := l.Init(); err != nil {
		t.Fatalf("missing accounts is the empty state, got %v", err)
	}
	if l.LoadError() != nil {
		t.Errorf("no load error expected, got %v", l.LoadError())
	}
	if b := l.Banner(); b.Severity != BannerWarning {
		t.Errorf("not connected must warn, got %q", b.Severity)
	}
}

func TestLinking_AccountLoadFailureIsReported(t *testing.T) {
	l, _ := newController(t, map[string]http.HandlerFunc{
		"GET /api/etrade/oauth/status": jsonHandler(`{"connected":true,"tokenStatus":"VALID"}`),
		"GET /api/etrade/accounts":     failHandler(http.StatusInternalServerError, "boom"),
	})
	if err := l.Init(); err == nil {
		t.Fatal("a 500 on accounts is a real failure")
	}
	if l.LoadError() == nil {
		t.Error("load error must be kept for the view")
	}
}

func TestLinking_BannerTable(t *testing.T) {
	cases := []struct {
		name     string
		status   OAuthStatus
		severity string
	}{
		{"disconnected", OAuthStatus{}, BannerWarning},
		{"expired", OAuthStatus{Connected: true, TokenStatus: TokenExpired}, BannerDanger},
		{"invalid", OAuthStatus{Connected: true, TokenStatus: TokenInvalid}, BannerDanger},
		{"valid", OAuthStatus{Connected: true, TokenStatus: TokenValid}, BannerSuccess},
		{"no token info", OAuthStatus{Connected: true}, BannerSuccess},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := NewLinkingController(nil)
			l.status = c.status
			if b := l.Banner(); b.Severity != c.severity {
				t.Errorf("want %q, got %q (%q)", c.severity, b.Severity, b.Message)
			}
		})
	}
}

func TestLinking_ConnectSyncsAndUpdatesState(t *testing.T) {
	l, _ := newController(t, map[string]http.HandlerFunc{
		"POST /api/etrade/accounts/sync": jsonHandler(twoAccounts),
	})
	res, err := l.Connect("1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Message, "connected successfully") {
		t.Errorf("wrong success message %q", res.Message)
	}
	if len(res.Accounts) != 2 || len(l.Accounts()) != 2 {
		t.Error("sync result must replace the account list")
	}
	if s := l.Status(); !s.Connected || s.TokenStatus != TokenValid {
		t.Errorf("connect must mark the link live, got %+v", s)
	}
}

func TestLinking_ConnectRedirectsOnDeadToken(t *testing.T) {
	l, log := newController(t, map[string]http.HandlerFunc{
		"POST /api/etrade/accounts/sync":  failHandler(http.StatusUnauthorized, "oauth token expired"),
		"GET /api/etrade/oauth/authorize": jsonHandler(`{"authorizationUrl":"https://us.etrade.com/authorize?key=abc","state":"s1"}`),
	})
	res, err := l.Connect("1")
	if err != nil {
		t.Fatal(err)
	}
	if res.AuthorizeURL != "https://us.etrade.com/authorize?key=abc" {
		t.Errorf("want authorization hand-off, got %+v", res)
	}
	if log.count("GET /api/etrade/oauth/authorize") != 1 {
		t.Error("dead token must trigger the authorize call")
	}
	if b := l.Banner(); b.Severity != BannerDanger {
		t.Errorf("dead token must show danger, got %q", b.Severity)
	}
}

func TestLinking_ConnectTokenMessageAlsoRedirects(t *testing.T) {
	// Some service versions answer 400 with a token message instead of 401.
	l, _ := newController(t, map[string]http.HandlerFunc{
		"POST /api/etrade/accounts/sync":  failHandler(http.StatusBadRequest, "request token rejected"),
		"GET /api/etrade/oauth/authorize": jsonHandler(`{"authorizationUrl":"https://us.etrade.com/authorize?key=abc"}`),
	})
	res, err := l.Connect("1")
	if err != nil {
		t.Fatal(err)
	}
	if res.AuthorizeURL == "" {
		t.Error("token message must trigger the authorize hand-off")
	}
}

func TestLinking_RevokeMarksLinkDead(t *testing.T) {
	l, _ := newController(t, map[string]http.HandlerFunc{
		"POST /api/etrade/oauth/revoke-token": jsonHandler(`{"success":true,"message":"revoked"}`),
	})
	l.status = OAuthStatus{Connected: true, TokenStatus: TokenValid}
	action, err := l.Revoke("1")
	if err != nil || !action.Success {
		t.Fatalf("revoke: %v %+v", err, action)
	}
	if b := l.Banner(); b.Severity != BannerWarning {
		t.Errorf("revoked link must show disconnected, got %q", b.Severity)
	}
}
