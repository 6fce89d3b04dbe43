package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/xmyqyl4x/aitrader"
	"github.com/xmyqyl4x/aitrader/renderer"
)

type searchesCmd struct {
	page   int
	size   int
	symbol string
	status string
	from   string
	to     string
}

func (*searchesCmd) Name() string     { return "searches" }
func (*searchesCmd) Synopsis() string { return "browse the persisted search history" }
func (*searchesCmd) Usage() string {
	return `searches [-page 1] [-symbol AAPL] [-status SUCCESS] [-from 2025-01-01] [-to 2025-06-30]

  Lists the persisted searches, newest first, twenty per page.
`
}

func (c *searchesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.page, "page", 1, "page to display, starting at 1")
	f.IntVar(&c.size, "size", 20, "searches per page")
	f.StringVar(&c.symbol, "symbol", "", "only searches for this symbol")
	f.StringVar(&c.status, "status", "", "only searches with this outcome: SUCCESS or FAILED")
	f.StringVar(&c.from, "from", "", "only searches on or after this date (YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "", "only searches on or before this date (YYYY-MM-DD)")
}

func (c *searchesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.page < 1 {
		fmt.Fprintln(os.Stderr, "page starts at 1")
		return subcommands.ExitUsageError
	}

	browser := aitrader.NewSearchBrowser(StockClient())
	browser.Size = c.size
	if err := browser.Filter(strings.ToUpper(c.symbol), c.status, c.from, c.to); err != nil {
		fmt.Fprintln(os.Stderr, aitrader.UserMessage(err))
		return subcommands.ExitFailure
	}
	if c.page > 1 {
		if err := browser.Go(c.page - 1); err != nil {
			fmt.Fprintln(os.Stderr, aitrader.UserMessage(err))
			return subcommands.ExitFailure
		}
	}

	filtered := c.symbol != "" || c.status != "" || c.from != "" || c.to != ""
	listing := renderer.NewSearchListing(browser.Records(), browser.Page, browser.TotalPages(), browser.TotalElements(), filtered)
	printMarkdown(renderer.RenderSearches(listing))
	return subcommands.ExitSuccess
}

type viewCmd struct {
	id string
}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "show one persisted search in full" }
func (*viewCmd) Usage() string {
	return `view -id <search>

  Shows one persisted search, including its review.
`
}

func (c *viewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "search id")
}

func (c *viewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "-id is required")
		return subcommands.ExitUsageError
	}

	rec, err := StockClient().GetSearch(c.id)
	if err != nil {
		fmt.Fprintln(os.Stderr, aitrader.UserMessage(err))
		return subcommands.ExitFailure
	}

	listing := renderer.NewSearchListing([]aitrader.SearchRecord{rec}, 0, 1, 1, false)
	printMarkdown(renderer.RenderSearches(listing))
	if rec.ReviewNote != nil {
		fmt.Printf("Review note: %s\n", *rec.ReviewNote)
	}
	if rec.ErrorMessage != nil {
		fmt.Printf("Error: %s\n", *rec.ErrorMessage)
	}
	return subcommands.ExitSuccess
}

type rerunCmd struct {
	id string
}

func (*rerunCmd) Name() string     { return "rerun" }
func (*rerunCmd) Synopsis() string { return "repeat a past search as a fresh record" }
func (*rerunCmd) Usage() string {
	return `rerun -id <search>

  Re-executes a past search. The service creates a new NOT_REVIEWED
  record; the old one and its review are untouched.
`
}

func (c *rerunCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "search id to rerun")
}

func (c *rerunCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "-id is required")
		return subcommands.ExitUsageError
	}

	browser := aitrader.NewSearchBrowser(StockClient())
	target, err := browser.Rerun(c.id)
	if err != nil {
		fmt.Fprintln(os.Stderr, aitrader.UserMessage(err))
		return subcommands.ExitFailure
	}

	rec, err := StockClient().GetSearch(target.SearchID)
	if err != nil {
		fmt.Fprintln(os.Stderr, aitrader.UserMessage(err))
		return subcommands.ExitFailure
	}
	fmt.Printf("Search rerun as %s\n", target.SearchID)
	listing := renderer.NewSearchListing([]aitrader.SearchRecord{rec}, 0, 1, 1, false)
	printMarkdown(renderer.RenderSearches(listing))
	return subcommands.ExitSuccess
}
