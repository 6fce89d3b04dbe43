package aitrader

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
)

// ReviewState is where a review run currently stands.
type ReviewState int

const (
	StateIdle ReviewState = iota
	StateFetchingQuote
	StateFetchingHistory
	StatePersistingSearch
	StateLoaded
	StateFailed
)

func (s ReviewState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetchingQuote:
		return "fetching quote"
	case StateFetchingHistory:
		return "fetching history"
	case StatePersistingSearch:
		return "persisting search"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrSuperseded is returned by Run when a newer run started before this
// one finished; its result was discarded.
var ErrSuperseded = errors.New("superseded by a newer search")

var symbolPattern = regexp.MustCompile(`^[A-Za-z]{1,10}$`)

// ValidateSymbol checks the symbol the way the search form does:
// required, letters only, at most ten.
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return errors.New("symbol is required")
	}
	if !symbolPattern.MatchString(symbol) {
		return fmt.Errorf("invalid symbol %q: 1 to 10 letters expected", symbol)
	}
	return nil
}

// ReviewResult is a snapshot of a review session for display.
type ReviewResult struct {
	State    ReviewState
	Symbol   string
	Range    Range
	Quote    *Quote
	History  []HistoryPoint
	SearchID string
	Review   Review
	Error    string // user-facing, set only in StateFailed
	Warning  string // soft warning, the run still loaded
	Success  string
}

// ReviewSession runs the search-and-review workflow: fetch the quote,
// then the history, then persist the search, strictly in that order.
// A quote or history failure ends the run; a persist failure does not,
// because the quote and history are already on screen, so it degrades
// to a warning and review editing is simply unavailable.
type ReviewSession struct {
	client *Client

	mu     sync.Mutex
	gen    atomic.Uint64
	result ReviewResult
}

// NewReviewSession returns an idle session bound to the client.
func NewReviewSession(client *Client) *ReviewSession {
	return &ReviewSession{client: client, result: ReviewResult{State: StateIdle, Review: Review{Status: NotReviewed}}}
}

// PrefillSymbol is the symbol to offer as a default, the most recently
// searched one if any.
func (s *ReviewSession) PrefillSymbol() string { return LastSymbol() }

// Result returns a copy of the current session state.
func (s *ReviewSession) Result() ReviewResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Run executes one full search cycle. Each run carries a generation
// number; if a newer run starts while this one is in flight, its late
// results are discarded instead of clobbering newer state.
func (s *ReviewSession) Run(symbol string, r Range, source string) (ReviewResult, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if err := ValidateSymbol(symbol); err != nil {
		return s.Result(), err
	}
	if _, err := ParseRange(string(r)); err != nil {
		return s.Result(), err
	}

	gen := s.gen.Add(1)
	saveLastSymbol(symbol)
	s.commit(gen, ReviewResult{State: StateFetchingQuote, Symbol: symbol, Range: r, Review: Review{Status: NotReviewed}})

	quote, err := s.client.Quote(symbol, source)
	if err != nil {
		return s.fail(gen, symbol, r, err)
	}
	s.commit(gen, ReviewResult{State: StateFetchingHistory, Symbol: symbol, Range: r, Quote: &quote, Review: Review{Status: NotReviewed}})

	history, err := s.client.History(symbol, r, source)
	if err != nil {
		return s.fail(gen, symbol, r, err)
	}
	s.commit(gen, ReviewResult{State: StatePersistingSearch, Symbol: symbol, Range: r, Quote: &quote, History: history, Review: Review{Status: NotReviewed}})

	loaded := ReviewResult{
		State:   StateLoaded,
		Symbol:  symbol,
		Range:   r,
		Quote:   &quote,
		History: history,
		Review:  Review{Status: NotReviewed},
	}
	rec, err := s.client.SearchAndSave(symbol, r, source)
	if err != nil {
		// Quote and history are already displayed, do not fail the run.
		loaded.Warning = "Quote retrieved (search not saved)"
	} else {
		loaded.SearchID = rec.ID
		loaded.Review = Review{Status: rec.ReviewStatus, Note: rec.ReviewNote}
		loaded.Success = "Quote retrieved successfully"
		saveLastSearchID(rec.ID)
	}
	if !s.commit(gen, loaded) {
		return s.Result(), ErrSuperseded
	}
	return loaded, nil
}

// SaveReview persists the review verdict for the current search. It is
// a local error, with no network call, when the run never persisted a
// search.
func (s *ReviewSession) SaveReview(status ReviewStatus, note *string) (ReviewResult, error) {
	s.mu.Lock()
	id := s.result.SearchID
	s.mu.Unlock()
	if id == "" {
		return s.Result(), ErrNoSearch
	}

	rec, err := s.client.UpdateReview(id, status, note)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.result.Error = UserMessage(err)
		return s.result, err
	}
	s.result.Review = Review{Status: rec.ReviewStatus, Note: rec.ReviewNote}
	s.result.Success = "Review saved successfully"
	s.result.Error = ""
	return s.result, nil
}

// Adopt points the session at an existing record, the way the review
// page opens when navigated to from the history listing. The quote and
// history are refetched through the normal cycle if wanted; Adopt only
// wires the review state.
func (s *ReviewSession) Adopt(rec SearchRecord) {
	s.gen.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = ReviewResult{
		State:    StateLoaded,
		Symbol:   rec.Symbol,
		Range:    rec.Range,
		SearchID: rec.ID,
		Review:   Review{Status: rec.ReviewStatus, Note: rec.ReviewNote},
	}
}

func (s *ReviewSession) fail(gen uint64, symbol string, r Range, err error) (ReviewResult, error) {
	failed := ReviewResult{State: StateFailed, Symbol: symbol, Range: r, Error: UserMessage(err), Review: Review{Status: NotReviewed}}
	if !s.commit(gen, failed) {
		return s.Result(), ErrSuperseded
	}
	return failed, err
}

// commit stores the result unless a newer generation has started.
func (s *ReviewSession) commit(gen uint64, result ReviewResult) bool {
	if s.gen.Load() != gen {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen.Load() != gen {
		return false
	}
	s.result = result
	return true
}
