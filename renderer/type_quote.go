package renderer

import (
	"github.com/xmyqyl4x/aitrader"
)

// QuoteReport is the view of one finished quote run: the price block,
// the history table and the review state, already formatted.
type QuoteReport struct {
	Symbol        string
	Range         string
	AsOf          string
	Source        string
	Open          string
	High          string
	Low           string
	Close         string
	Volume        string
	ChangePercent string
	History       []HistoryRow
	SearchID      string
	ReviewStatus  string
	ReviewNote    string
	Warning       string
	Success       string
	Error         string
}

// HistoryRow is one formatted line of the history table.
type HistoryRow struct {
	When   string
	Open   string
	High   string
	Low    string
	Close  string
	Volume string
}

// NewQuoteReport builds the view from a finished workflow result.
func NewQuoteReport(r aitrader.ReviewResult) *QuoteReport {
	report := &QuoteReport{
		Symbol:   r.Symbol,
		Range:    r.Range.String(),
		SearchID: r.SearchID,
		Warning:  r.Warning,
		Success:  r.Success,
		Error:    r.Error,
	}
	if r.SearchID != "" {
		report.ReviewStatus = string(r.Review.Status)
		report.ReviewNote = strPtr(r.Review.Note)
	}
	if r.Quote != nil {
		q := r.Quote
		report.AsOf = fmtTime(q.AsOf)
		report.Source = q.Source
		report.Open = fmtNullDecimal(q.Open)
		report.High = fmtNullDecimal(q.High)
		report.Low = fmtNullDecimal(q.Low)
		report.Close = fmtNullDecimal(q.Close)
		report.Volume = fmtVolume(q.Volume)
		if pct, ok := q.ChangePercent(); ok {
			report.ChangePercent = fmtPercent(pct)
		} else {
			report.ChangePercent = naCell
		}
	}
	for _, p := range r.History {
		report.History = append(report.History, HistoryRow{
			When:   fmtTime(p.Timestamp),
			Open:   fmtNullDecimal(p.Open),
			High:   fmtNullDecimal(p.High),
			Low:    fmtNullDecimal(p.Low),
			Close:  fmtNullDecimal(p.Close),
			Volume: fmtVolume(p.Volume),
		})
	}
	return report
}
