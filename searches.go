package aitrader

// NavTarget is where a listing action sends the user: the review page
// for the given symbol and persisted search.
type NavTarget struct {
	Symbol   string
	SearchID string
}

// SearchBrowser pages through the persisted search history with
// optional filters. It keeps only view state: the current page index,
// size, filters, and the totals from the last fetch.
type SearchBrowser struct {
	client *Client

	Page     int
	Size     int
	Symbol   string
	Status   string
	DateFrom string
	DateTo   string

	content       []SearchRecord
	totalElements int64
	totalPages    int
}

// NewSearchBrowser returns a browser on page 0 with the default page size.
func NewSearchBrowser(client *Client) *SearchBrowser {
	return &SearchBrowser{client: client, Size: 20}
}

// Load fetches the current page under the current filters.
func (b *SearchBrowser) Load() error {
	page, err := b.client.ListSearches(ListQuery{
		Page:     b.Page,
		Size:     b.Size,
		Symbol:   b.Symbol,
		Status:   b.Status,
		DateFrom: b.DateFrom,
		DateTo:   b.DateTo,
	})
	if err != nil {
		return err
	}
	b.content = page.Content
	b.totalElements = page.TotalElements
	b.totalPages = page.TotalPages
	return nil
}

// Filter installs new filters and reloads. The page index resets to 0:
// the old position is meaningless under a different filter.
func (b *SearchBrowser) Filter(symbol, status, dateFrom, dateTo string) error {
	b.Symbol, b.Status, b.DateFrom, b.DateTo = symbol, status, dateFrom, dateTo
	b.Page = 0
	return b.Load()
}

// Go moves to the given page and reloads.
func (b *SearchBrowser) Go(page int) error {
	b.Page = page
	return b.Load()
}

// Rerun re-executes a past search, reloads the listing, and returns the
// navigation target for the newly created record.
func (b *SearchBrowser) Rerun(id string) (NavTarget, error) {
	rec, err := b.client.RerunSearch(id)
	if err != nil {
		return NavTarget{}, err
	}
	if err := b.Load(); err != nil {
		return NavTarget{}, err
	}
	return NavTarget{Symbol: rec.Symbol, SearchID: rec.ID}, nil
}

// View returns the navigation target for an existing record, without
// re-running anything.
func (b *SearchBrowser) View(rec SearchRecord) NavTarget {
	return NavTarget{Symbol: rec.Symbol, SearchID: rec.ID}
}

// Records returns the current page's records.
func (b *SearchBrowser) Records() []SearchRecord { return b.content }

// TotalElements returns the total match count from the last fetch.
func (b *SearchBrowser) TotalElements() int64 { return b.totalElements }

// TotalPages returns the page count from the last fetch.
func (b *SearchBrowser) TotalPages() int { return b.totalPages }
