package aitrader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
)

// Client talks to the aitradex stock endpoints under <base>/api/stock.
// Reads go through the quote cache; writes invalidate it. Errors come
// back as *StatusError, unretried, for the caller to classify.
type Client struct {
	base   string
	http   *http.Client
	cache  *QuoteCache
	userID string
}

// NewClient returns a client for the service at baseURL (no trailing
// /api). The cache is injected so callers and tests own its lifetime.
func NewClient(baseURL string, cache *QuoteCache) *Client {
	return &Client{base: baseURL, http: NewHTTPClient(), cache: cache}
}

// SetUserID attributes subsequent searches and reruns to a user.
func (c *Client) SetUserID(userID string) { c.userID = userID }

// Quote returns the latest snapshot for symbol, from cache when fresh.
func (c *Client) Quote(symbol, source string) (Quote, error) {
	key := quoteKey(symbol, source)
	if q, ok := c.cache.quote(key); ok {
		return q, nil
	}

	query := url.Values{}
	if source != "" {
		query.Set("source", source)
	}
	var q Quote
	if err := c.getJSON("/api/stock/quotes/"+url.PathEscape(symbol), query, &q); err != nil {
		return Quote{}, err
	}
	c.cache.putQuote(key, symbol, q)
	return q, nil
}

// History returns the chronological history for symbol over the range,
// from cache when fresh.
func (c *Client) History(symbol string, r Range, source string) ([]HistoryPoint, error) {
	key := historyKey(symbol, r, source)
	if h, ok := c.cache.history(key); ok {
		return h, nil
	}

	query := url.Values{}
	query.Set("range", string(r))
	if source != "" {
		query.Set("source", source)
	}
	points := make([]HistoryPoint, 0)
	if err := c.getJSON("/api/stock/quotes/"+url.PathEscape(symbol)+"/history", query, &points); err != nil {
		return nil, err
	}
	c.cache.putHistory(key, symbol, points)
	return points, nil
}

// SearchAndSave asks the service to fetch a fresh snapshot and persist it
// as a search record. It always hits the network, and drops the symbol's
// cached entries since the record is the new canonical snapshot.
func (c *Client) SearchAndSave(symbol string, r Range, source string) (SearchRecord, error) {
	c.cache.Invalidate(symbol)

	query := url.Values{}
	query.Set("range", string(r))
	if source != "" {
		query.Set("source", source)
	}
	if c.userID != "" {
		query.Set("userId", c.userID)
	}
	var rec SearchRecord
	if err := c.postJSON("/api/stock/quotes/"+url.PathEscape(symbol)+"/search", query, nil, &rec); err != nil {
		return SearchRecord{}, err
	}
	return rec, nil
}

// ListQuery filters a search listing. Zero values mean "no filter";
// dates are YYYY-MM-DD.
type ListQuery struct {
	Page     int
	Size     int
	Symbol   string
	Status   string
	DateFrom string
	DateTo   string
}

// ListSearches returns one page of persisted searches. The envelope is
// validated at the boundary: the page always comes back with all five
// fields set, absent ones defaulting to empty or zero.
func (c *Client) ListSearches(q ListQuery) (SearchPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("size", strconv.Itoa(q.Size))
	if q.Symbol != "" {
		query.Set("symbol", q.Symbol)
	}
	if q.Status != "" {
		query.Set("status", q.Status)
	}
	if q.DateFrom != "" {
		query.Set("dateFrom", q.DateFrom)
	}
	if q.DateTo != "" {
		query.Set("dateTo", q.DateTo)
	}

	// The page shape is not strictly guaranteed at this layer, so decode
	// into pointers and fill in what the service left out.
	var envelope struct {
		Content       *[]SearchRecord `json:"content"`
		TotalElements *int64          `json:"totalElements"`
		TotalPages    *int            `json:"totalPages"`
		Size          *int            `json:"size"`
		Number        *int            `json:"number"`
	}
	if err := c.getJSON("/api/stock/searches", query, &envelope); err != nil {
		return SearchPage{}, err
	}

	page := SearchPage{Content: []SearchRecord{}}
	if envelope.Content != nil {
		page.Content = *envelope.Content
	} else {
		log.Printf("searches page %d: response has no content field, treating as empty", q.Page)
	}
	if envelope.TotalElements != nil {
		page.TotalElements = *envelope.TotalElements
	}
	if envelope.TotalPages != nil {
		page.TotalPages = *envelope.TotalPages
	}
	if envelope.Size != nil {
		page.Size = *envelope.Size
	}
	if envelope.Number != nil {
		page.Number = *envelope.Number
	}
	return page, nil
}

// GetSearch returns a single persisted search.
func (c *Client) GetSearch(id string) (SearchRecord, error) {
	var rec SearchRecord
	err := c.getJSON("/api/stock/searches/"+url.PathEscape(id), nil, &rec)
	return rec, err
}

// RerunSearch re-executes a past search. The service creates a new
// record rather than mutating the old one.
func (c *Client) RerunSearch(id string) (SearchRecord, error) {
	query := url.Values{}
	if c.userID != "" {
		query.Set("userId", c.userID)
	}
	var rec SearchRecord
	err := c.postJSON("/api/stock/searches/"+url.PathEscape(id)+"/rerun", query, nil, &rec)
	return rec, err
}

// UpdateReview sets the review verdict on a persisted search.
func (c *Client) UpdateReview(id string, status ReviewStatus, note *string) (SearchRecord, error) {
	body := struct {
		ReviewStatus ReviewStatus `json:"reviewStatus"`
		ReviewNote   *string      `json:"reviewNote"`
	}{ReviewStatus: status, ReviewNote: note}

	var rec SearchRecord
	err := c.doJSON(http.MethodPut, "/api/stock/searches/"+url.PathEscape(id)+"/review", nil, body, &rec)
	return rec, err
}

// getJSON performs a GET and unmarshals the JSON response into out.
func (c *Client) getJSON(path string, query url.Values, out any) error {
	return c.doJSON(http.MethodGet, path, query, nil, out)
}

func (c *Client) postJSON(path string, query url.Values, body, out any) error {
	return c.doJSON(http.MethodPost, path, query, body, out)
}

func (c *Client) doJSON(method, path string, query url.Values, body, out any) error {
	addr := c.base + path
	if len(query) > 0 {
		addr += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request for %s: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, addr, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return NetError(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return ResponseError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("cannot decode %s %s response: %w", method, path, err)
	}
	return nil
}
