package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/xmyqyl4x/aitrader"
	"github.com/xmyqyl4x/aitrader/renderer"
)

type searchCmd struct {
	window string
	source string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search a quote and persist it for review" }
func (*searchCmd) Usage() string {
	return `search <symbol> [-range 1M]

  Runs the full workflow: fetches the quote, then the history, then
  persists the search so it can be reviewed later. If persisting fails
  the quote is still shown, with a warning.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.window, "range", "1M", "history window: 1D, 5D, 1M, 3M or 1Y")
	f.StringVar(&c.source, "source", "", "quote provider, service default when empty")
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, ok := symbolArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	r, err := aitrader.ParseRange(c.window)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	session := aitrader.NewReviewSession(StockClient())
	result, err := session.Run(symbol, r, c.source)
	if err != nil && !errors.Is(err, aitrader.ErrSuperseded) && result.State != aitrader.StateFailed {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderQuote(renderer.NewQuoteReport(result)))
	if result.State == aitrader.StateFailed {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
