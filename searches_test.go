package aitrader

import (
	"net/http"
	"testing"
)

func TestSearchBrowser_FilterResetsPage(t *testing.T) {
	isolateState(t)
	var lastPage string
	server, _ := newStockServer(t, map[string]http.HandlerFunc{
		"GET /api/stock/searches": func(w http.ResponseWriter, r *http.Request) {
			lastPage = r.URL.Query().Get("page")
			jsonHandler(`{"content":[],"totalElements":0,"totalPages":0,"size":20,"number":0}`)(w, r)
		},
	})
	browser := NewSearchBrowser(NewClient(server.URL, NewQuoteCache()))

	if err := browser.Go(3); err != nil {
		t.Fatalf("Go() unexpected error = %v", err)
	}
	if lastPage != "3" {
		t.Errorf("Go(3) requested page %q, want 3", lastPage)
	}

	if err := browser.Filter("AAPL", "SUCCESS", "", ""); err != nil {
		t.Fatalf("Filter() unexpected error = %v", err)
	}
	if lastPage != "0" {
		t.Errorf("Filter() requested page %q, want reset to 0", lastPage)
	}
	if browser.Page != 0 {
		t.Errorf("Filter() left page index at %d, want 0", browser.Page)
	}
}

func TestSearchBrowser_LoadKeepsTotals(t *testing.T) {
	isolateState(t)
	server, _ := newStockServer(t, map[string]http.HandlerFunc{
		"GET /api/stock/searches": jsonHandler(`{"content":[` + aaplSearch + `],"totalElements":41,"totalPages":3,"size":20,"number":1}`),
	})
	browser := NewSearchBrowser(NewClient(server.URL, NewQuoteCache()))

	if err := browser.Load(); err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}
	if len(browser.Records()) != 1 {
		t.Errorf("Records() = %d records, want 1", len(browser.Records()))
	}
	if browser.TotalElements() != 41 || browser.TotalPages() != 3 {
		t.Errorf("Load() totals = %d/%d, want 41/3", browser.TotalElements(), browser.TotalPages())
	}
}

func TestSearchBrowser_RerunNavigatesToNewRecord(t *testing.T) {
	isolateState(t)
	rerun := `{"id":"def","createdAt":"2025-06-03T09:00:00Z","symbol":"AAPL","range":"1D","requestedAt":"2025-06-03T09:00:00Z","status":"SUCCESS","provider":"yahoo","reviewStatus":"NOT_REVIEWED"}`
	server, calls := newStockServer(t, map[string]http.HandlerFunc{
		"POST /api/stock/searches/abc/rerun": jsonHandler(rerun),
		"GET /api/stock/searches":            jsonHandler(`{"content":[],"totalElements":2,"totalPages":1,"size":20,"number":0}`),
	})
	browser := NewSearchBrowser(NewClient(server.URL, NewQuoteCache()))

	target, err := browser.Rerun("abc")
	if err != nil {
		t.Fatalf("Rerun() unexpected error = %v", err)
	}
	// Rerun creates a new record; the target points at it, not at "abc".
	if target.SearchID != "def" || target.Symbol != "AAPL" {
		t.Errorf("Rerun() target = %+v, want def/AAPL", target)
	}
	if calls.count("GET", "/api/stock/searches") != 1 {
		t.Error("Rerun() did not reload the listing")
	}
}

func TestSearchBrowser_View(t *testing.T) {
	browser := NewSearchBrowser(nil)
	target := browser.View(SearchRecord{ID: "abc", Symbol: "AAPL"})
	if target.SearchID != "abc" || target.Symbol != "AAPL" {
		t.Errorf("View() target = %+v", target)
	}
}
