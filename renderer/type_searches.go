package renderer

import (
	"github.com/xmyqyl4x/aitrader"
)

// SearchListing is the view of one page of persisted searches.
type SearchListing struct {
	Page          int // 1-based for display
	TotalPages    int
	TotalElements int64
	Rows          []SearchRow
	Filtered      bool
}

// SearchRow is one formatted search line.
type SearchRow struct {
	ID           string
	Symbol       string
	Range        string
	RequestedAt  string
	Status       string
	Price        string
	Change       string
	ReviewStatus string
}

// NewSearchListing builds the listing view from a loaded page.
func NewSearchListing(records []aitrader.SearchRecord, page, totalPages int, totalElements int64, filtered bool) *SearchListing {
	l := &SearchListing{
		Page:          page + 1,
		TotalPages:    totalPages,
		TotalElements: totalElements,
		Filtered:      filtered,
	}
	for _, rec := range records {
		l.Rows = append(l.Rows, SearchRow{
			ID:           rec.ID,
			Symbol:       rec.Symbol,
			Range:        rec.Range.String(),
			RequestedAt:  fmtTime(rec.RequestedAt),
			Status:       string(rec.Status),
			Price:        fmtNullDecimal(rec.Price),
			Change:       fmtNullPercent(rec.ChangePercent),
			ReviewStatus: string(rec.ReviewStatus),
		})
	}
	return l
}
