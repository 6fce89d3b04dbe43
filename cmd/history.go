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

type historyCmd struct {
	window string
	source string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "fetch the price history for a symbol" }
func (*historyCmd) Usage() string {
	return `history <symbol> [-range 1M]

  Fetches the price history for the selected range without persisting
  a search. Ranges: 1D, 5D, 1M, 3M, 1Y.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.window, "range", "1M", "history window: 1D, 5D, 1M, 3M or 1Y")
	f.StringVar(&c.source, "source", "", "quote provider, service default when empty")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, ok := symbolArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	r, err := aitrader.ParseRange(c.window)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	history, err := StockClient().History(symbol, r, c.source)
	if err != nil {
		fmt.Fprintln(os.Stderr, aitrader.UserMessage(err))
		return subcommands.ExitFailure
	}

	report := renderer.NewQuoteReport(aitrader.ReviewResult{
		Symbol:  symbol,
		Range:   r,
		History: history,
	})
	printMarkdown(renderer.RenderQuote(report))
	return subcommands.ExitSuccess
}
