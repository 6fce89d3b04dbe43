package aitrader

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// requestLog records every request a fake service receives, so tests
// can assert how many network calls a flow produced.
type requestLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *requestLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, r.Method+" "+r.URL.Path)
}

func (l *requestLog) count(method, path string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e == method+" "+path {
			n++
		}
	}
	return n
}

func (l *requestLog) total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// newStockServer starts a fake aitradex service from a method+path to
// handler table. Unrouted requests fail the test.
func newStockServer(t *testing.T, routes map[string]http.HandlerFunc) (*httptest.Server, *requestLog) {
	t.Helper()
	log := &requestLog{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(r)
		if h, ok := routes[r.Method+" "+r.URL.Path]; ok {
			h(w, r)
			return
		}
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return server, log
}

// jsonHandler replies 200 with a fixed JSON body.
func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

// failHandler replies with a status and a JSON error payload.
func failHandler(status int, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`{"error":"` + message + `"}`))
	}
}

// isolateState points the local session files at a scratch directory.
func isolateState(t *testing.T) {
	t.Helper()
	old := stateDir
	stateDir = t.TempDir()
	t.Cleanup(func() { stateDir = old })
}

const aaplQuote = `{"symbol":"AAPL","asOf":"2025-06-02T14:30:00Z","open":175.10,"high":178.00,"low":174.95,"close":177.30,"volume":52014000,"source":"yahoo"}`

const aaplHistory = `[
  {"timestamp":"2025-06-02T09:30:00Z","open":175.10,"high":175.80,"low":174.95,"close":175.60,"volume":9800000},
  {"timestamp":"2025-06-02T10:30:00Z","open":175.60,"high":176.40,"low":175.20,"close":176.10,"volume":8700000},
  {"timestamp":"2025-06-02T11:30:00Z","open":176.10,"high":176.90,"low":175.80,"close":176.70,"volume":8100000},
  {"timestamp":"2025-06-02T12:30:00Z","open":176.70,"high":177.50,"low":176.40,"close":177.00,"volume":7400000},
  {"timestamp":"2025-06-02T13:30:00Z","open":177.00,"high":178.00,"low":176.80,"close":177.30,"volume":9100000}
]`

const aaplSearch = `{"id":"abc","createdAt":"2025-06-02T14:30:01Z","symbol":"AAPL","range":"1D","requestedAt":"2025-06-02T14:30:01Z","status":"SUCCESS","price":177.30,"changeAmount":2.20,"changePercent":1.26,"volume":52014000,"provider":"yahoo","reviewStatus":"NOT_REVIEWED","reviewNote":null}`
