package aitrader

import (
	"time"
)

// QuoteTTL is how long a fetched quote or history stays fresh.
// Short enough to follow an open market, long enough to spare the
// service while the user flips between ranges.
const QuoteTTL = 60 * time.Second

type cacheEntry struct {
	data      any
	symbol    string
	expiresAt time.Time
}

// QuoteCache is a short-lived in-memory cache for quotes and histories,
// keyed by (kind, symbol, source-or-range). It never refreshes on its
// own: an expired entry is simply a miss, and the caller refetches.
//
// There is no eviction beyond the TTL and explicit invalidation; the
// entry count is bounded by the symbols looked at in one session.
// The zero value is not usable, construct with NewQuoteCache.
type QuoteCache struct {
	now       func() time.Time
	ttl       time.Duration
	quotes    map[string]cacheEntry
	histories map[string]cacheEntry
}

// NewQuoteCache returns a cache with the standard TTL and wall clock.
func NewQuoteCache() *QuoteCache { return NewQuoteCacheWithClock(time.Now) }

// NewQuoteCacheWithClock returns a cache driven by the given clock, so
// tests can move time instead of sleeping.
func NewQuoteCacheWithClock(now func() time.Time) *QuoteCache {
	return &QuoteCache{
		now:       now,
		ttl:       QuoteTTL,
		quotes:    make(map[string]cacheEntry),
		histories: make(map[string]cacheEntry),
	}
}

// quoteKey and historyKey build composite keys; collisions are only
// possible for identical (kind, symbol, source/range) tuples.
func quoteKey(symbol, source string) string {
	return "quote:" + symbol + ":" + orDefault(source)
}

func historyKey(symbol string, r Range, source string) string {
	return "history:" + symbol + ":" + string(r) + ":" + orDefault(source)
}

func orDefault(source string) string {
	if source == "" {
		return "default"
	}
	return source
}

func (c *QuoteCache) quote(key string) (Quote, bool) {
	e, ok := c.quotes[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return Quote{}, false
	}
	return e.data.(Quote), true
}

func (c *QuoteCache) putQuote(key, symbol string, q Quote) {
	c.quotes[key] = cacheEntry{data: q, symbol: symbol, expiresAt: c.now().Add(c.ttl)}
}

func (c *QuoteCache) history(key string) ([]HistoryPoint, bool) {
	e, ok := c.histories[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.data.([]HistoryPoint), true
}

func (c *QuoteCache) putHistory(key, symbol string, h []HistoryPoint) {
	c.histories[key] = cacheEntry{data: h, symbol: symbol, expiresAt: c.now().Add(c.ttl)}
}

// Invalidate drops every entry for the symbol, quotes and histories
// alike. Called after a write so the next read sees the new canonical
// snapshot instead of a stale pre-search one. Entries remember their
// symbol, so symbols or sources containing the key delimiter still
// invalidate correctly.
func (c *QuoteCache) Invalidate(symbol string) {
	for key, e := range c.quotes {
		if e.symbol == symbol {
			delete(c.quotes, key)
		}
	}
	for key, e := range c.histories {
		if e.symbol == symbol {
			delete(c.histories, key)
		}
	}
}

// Clear empties the cache entirely.
func (c *QuoteCache) Clear() {
	clear(c.quotes)
	clear(c.histories)
}
