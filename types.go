package aitrader

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Range is a quote history window as understood by the service.
type Range string

const (
	Range1D Range = "1D"
	Range5D Range = "5D"
	Range1M Range = "1M"
	Range3M Range = "3M"
	Range1Y Range = "1Y"
)

// Ranges lists every window the service accepts, in display order.
func Ranges() []Range { return []Range{Range1D, Range5D, Range1M, Range3M, Range1Y} }

func (r Range) String() string { return string(r) }

// ParseRange validates a user-supplied range.
func ParseRange(s string) (Range, error) {
	r := Range(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Ranges() {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid range %q (expected one of 1D, 5D, 1M, 3M, 1Y)", s)
}

// SearchStatus is the outcome of a persisted search.
type SearchStatus string

const (
	SearchSuccess SearchStatus = "SUCCESS"
	SearchFailed  SearchStatus = "FAILED"
)

// ReviewStatus tells whether a persisted search has been reviewed yet.
type ReviewStatus string

const (
	NotReviewed ReviewStatus = "NOT_REVIEWED"
	Reviewed    ReviewStatus = "REVIEWED"
)

// ParseReviewStatus validates a user-supplied review status.
func ParseReviewStatus(s string) (ReviewStatus, error) {
	switch st := ReviewStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case NotReviewed, Reviewed:
		return st, nil
	default:
		return "", fmt.Errorf("invalid review status %q (expected NOT_REVIEWED or REVIEWED)", s)
	}
}

// Quote is an immutable snapshot of a symbol's latest prices.
// The service leaves OHLC and volume null when a provider has gaps.
type Quote struct {
	Symbol string              `json:"symbol"`
	AsOf   time.Time           `json:"asOf"`
	Open   decimal.NullDecimal `json:"open"`
	High   decimal.NullDecimal `json:"high"`
	Low    decimal.NullDecimal `json:"low"`
	Close  decimal.NullDecimal `json:"close"`
	Volume *int64              `json:"volume"`
	Source string              `json:"source"`
}

// ChangePercent returns the close-over-open change in percent,
// or false when either side is missing.
func (q Quote) ChangePercent() (decimal.Decimal, bool) {
	if !q.Open.Valid || !q.Close.Valid || q.Open.Decimal.IsZero() {
		return decimal.Decimal{}, false
	}
	change := q.Close.Decimal.Sub(q.Open.Decimal)
	return change.Div(q.Open.Decimal).Mul(decimal.NewFromInt(100)), true
}

// HistoryPoint is one point of a chronological quote history.
type HistoryPoint struct {
	Timestamp time.Time           `json:"timestamp"`
	Open      decimal.NullDecimal `json:"open"`
	High      decimal.NullDecimal `json:"high"`
	Low       decimal.NullDecimal `json:"low"`
	Close     decimal.NullDecimal `json:"close"`
	Volume    *int64              `json:"volume"`
}

// SearchRecord is a search persisted by the service. It is created by
// search-and-save, and only ever mutated through the review endpoint;
// a rerun creates a fresh record instead.
type SearchRecord struct {
	ID              string              `json:"id"`
	CreatedAt       time.Time           `json:"createdAt"`
	CreatedByUserID *string             `json:"createdByUserId"`
	Symbol          string              `json:"symbol"`
	CompanyName     *string             `json:"companyName"`
	Exchange        *string             `json:"exchange"`
	Range           Range               `json:"range"`
	RequestedAt     time.Time           `json:"requestedAt"`
	Status          SearchStatus        `json:"status"`
	QuoteTimestamp  *time.Time          `json:"quoteTimestamp"`
	Price           decimal.NullDecimal `json:"price"`
	Currency        *string             `json:"currency"`
	ChangeAmount    decimal.NullDecimal `json:"changeAmount"`
	ChangePercent   decimal.NullDecimal `json:"changePercent"`
	Volume          *int64              `json:"volume"`
	Provider        string              `json:"provider"`
	RequestID       *string             `json:"requestId"`
	CorrelationID   *string             `json:"correlationId"`
	ErrorCode       *string             `json:"errorCode"`
	ErrorMessage    *string             `json:"errorMessage"`
	DurationMs      *int64              `json:"durationMs"`
	ReviewStatus    ReviewStatus        `json:"reviewStatus"`
	ReviewNote      *string             `json:"reviewNote"`
	ReviewedAt      *time.Time          `json:"reviewedAt"`
}

// SearchPage is one page of persisted searches. After normalization all
// five fields are set, whatever the service actually sent.
type SearchPage struct {
	Content       []SearchRecord `json:"content"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	Size          int            `json:"size"`
	Number        int            `json:"number"`
}

// Review is the reviewer's verdict on a persisted search.
type Review struct {
	Status ReviewStatus
	Note   *string
}
