package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xmyqyl4x/aitrader"
	"github.com/xmyqyl4x/aitrader/etrade"
)

func price(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func TestRenderQuote(t *testing.T) {
	vol := int64(52_000_000)
	note := "looks strong"
	result := aitrader.ReviewResult{
		State:  aitrader.StateLoaded,
		Symbol: "AAPL",
		Range:  aitrader.Range1M,
		Quote: &aitrader.Quote{
			Symbol: "AAPL",
			AsOf:   time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC),
			Open:   price("175.10"),
			High:   price("178.00"),
			Low:    price("174.80"),
			Close:  price("177.30"),
			Volume: &vol,
			Source: "default",
		},
		History: []aitrader.HistoryPoint{
			{Timestamp: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Close: price("177.30")},
		},
		SearchID: "abc",
		Review:   aitrader.Review{Status: aitrader.Reviewed, Note: &note},
		Success:  "Quote retrieved successfully",
	}

	out := RenderQuote(NewQuoteReport(result))
	for _, want := range []string{
		"# AAPL (1M)",
		"| 2025-06-02 14:30 | 175.10 | 178.00 | 174.80 | 177.30 | 52000000 | +1.26% |",
		"## History",
		"`abc`",
		"Status: REVIEWED",
		"Note: looks strong",
		"Quote retrieved successfully",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderQuote_MissingFieldsShowNA(t *testing.T) {
	result := aitrader.ReviewResult{
		Symbol: "NVDA",
		Range:  aitrader.Range1D,
		Quote: &aitrader.Quote{
			Symbol: "NVDA",
			AsOf:   time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC),
			Close:  price("120.00"),
		},
		Warning: "Quote retrieved (search not saved)",
	}
	out := RenderQuote(NewQuoteReport(result))
	if !strings.Contains(out, "n/a") {
		t.Errorf("null fields must render as n/a:\n%s", out)
	}
	if !strings.Contains(out, "Quote retrieved (search not saved)") {
		t.Errorf("warning missing:\n%s", out)
	}
	if strings.Contains(out, "## Review") {
		t.Errorf("no review section without a persisted search:\n%s", out)
	}
}

func TestRenderSearches(t *testing.T) {
	records := []aitrader.SearchRecord{
		{
			ID:           "abc",
			Symbol:       "AAPL",
			Range:        aitrader.Range1M,
			RequestedAt:  time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC),
			Status:       aitrader.SearchSuccess,
			Price:        price("177.30"),
			ReviewStatus: aitrader.NotReviewed,
		},
	}
	out := RenderSearches(NewSearchListing(records, 0, 3, 41, true))
	for _, want := range []string{
		"# Search History (filtered)",
		"| `abc` | AAPL | 1M |",
		"Page 1 of 3 (41 searches)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderSearches_Empty(t *testing.T) {
	out := RenderSearches(NewSearchListing(nil, 0, 0, 0, false))
	if !strings.Contains(out, "No searches recorded yet.") {
		t.Errorf("empty listing must say so:\n%s", out)
	}
	if strings.Contains(out, "Page ") {
		t.Errorf("no pager on an empty listing:\n%s", out)
	}
}

func TestRenderAccounts(t *testing.T) {
	linked := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	accounts := []etrade.Account{
		{ID: "1", AccountIDKey: "k1", AccountName: "Main", AccountType: "INDIVIDUAL", AccountStatus: "ACTIVE", LinkedAt: linked},
	}
	banner := etrade.Banner{Severity: etrade.BannerSuccess, Message: "Your E*TRADE account is connected."}
	out := RenderAccounts(NewAccountListing(banner, accounts, nil))
	for _, want := range []string{
		"[success] Your E*TRADE account is connected.",
		"| 1 | `k1` | Main | INDIVIDUAL | ACTIVE |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderAccounts_EmptyState(t *testing.T) {
	banner := etrade.Banner{Severity: etrade.BannerWarning, Message: "Your E*TRADE account is not connected. Connect it to sync your accounts."}
	out := RenderAccounts(NewAccountListing(banner, nil, nil))
	if !strings.Contains(out, "No accounts linked.") {
		t.Errorf("empty state missing:\n%s", out)
	}
	if !strings.Contains(out, "[warning]") {
		t.Errorf("warning banner missing:\n%s", out)
	}
}

func TestRenderBalance(t *testing.T) {
	b := etrade.Balance{
		AccountID:                  "1",
		TotalAccountValue:          decimal.RequireFromString("10500.25"),
		CashAvailableForInvestment: decimal.RequireFromString("2500"),
		CashBalance:                decimal.RequireFromString("2500"),
	}
	out := RenderBalance(NewBalanceReport(b))
	for _, want := range []string{"10500.25", "2500.00", "n/a"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	b.Currency = "USD"
	out = RenderBalance(NewBalanceReport(b))
	if !strings.Contains(out, "$10,500.25") {
		t.Errorf("amounts must carry the account currency:\n%s", out)
	}
}

func TestRenderPortfolio(t *testing.T) {
	p := etrade.Portfolio{
		AccountID:  "1",
		TotalValue: decimal.RequireFromString("1773.00"),
		Positions: []etrade.Position{
			{Symbol: "AAPL", Quantity: decimal.NewFromInt(10), CurrentPrice: decimal.RequireFromString("177.30"), MarketValue: decimal.RequireFromString("1773.00")},
		},
	}
	out := RenderPortfolio(NewPortfolioReport(p))
	if !strings.Contains(out, "| AAPL | 10 | 177.30 | 1773.00 |") {
		t.Errorf("position row missing:\n%s", out)
	}
	if !strings.Contains(out, "Total value: 1773.00") {
		t.Errorf("total missing:\n%s", out)
	}
}

func TestRenderOrders_Empty(t *testing.T) {
	out := RenderOrders(NewOrderListing("1", nil))
	if !strings.Contains(out, "No orders.") {
		t.Errorf("empty order list must say so:\n%s", out)
	}
}
