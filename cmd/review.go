package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/xmyqyl4x/aitrader"
	"github.com/xmyqyl4x/aitrader/renderer"
)

type reviewCmd struct {
	id     string
	status string
	note   string
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "record the review verdict on a persisted search" }
func (*reviewCmd) Usage() string {
	return `review [-id <search>] -status REVIEWED [-note <text>]

  Marks a persisted search as reviewed (or back to not reviewed), with
  an optional note. Without -id, the most recent search is reviewed.
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "search id, the most recent search when empty")
	f.StringVar(&c.status, "status", string(aitrader.Reviewed), "REVIEWED or NOT_REVIEWED")
	f.StringVar(&c.note, "note", "", "optional review note")
}

func (c *reviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	status, err := aitrader.ParseReviewStatus(c.status)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	id := c.id
	if id == "" {
		id = aitrader.LastSearchID()
	}
	if id == "" {
		fmt.Fprintln(os.Stderr, aitrader.ErrNoSearch)
		return subcommands.ExitUsageError
	}

	var note *string
	if c.note != "" {
		note = &c.note
	}

	rec, err := StockClient().UpdateReview(id, status, note)
	if err != nil {
		fmt.Fprintln(os.Stderr, aitrader.UserMessage(err))
		return subcommands.ExitFailure
	}

	fmt.Println("Review saved successfully")
	listing := renderer.NewSearchListing([]aitrader.SearchRecord{rec}, 0, 1, 1, false)
	printMarkdown(renderer.RenderSearches(listing))
	return subcommands.ExitSuccess
}
