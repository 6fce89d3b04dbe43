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

type quoteCmd struct {
	source string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "fetch the latest quote for a symbol" }
func (*quoteCmd) Usage() string {
	return `quote <symbol>

  Fetches the latest quote without persisting a search. Quotes are
  cached for 60 seconds per symbol and source.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "", "quote provider, service default when empty")
}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, ok := symbolArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}

	quote, err := StockClient().Quote(symbol, c.source)
	if err != nil {
		fmt.Fprintln(os.Stderr, aitrader.UserMessage(err))
		return subcommands.ExitFailure
	}

	report := renderer.NewQuoteReport(aitrader.ReviewResult{
		Symbol: quote.Symbol,
		Range:  aitrader.Range1D,
		Quote:  &quote,
	})
	printMarkdown(renderer.RenderQuote(report))
	return subcommands.ExitSuccess
}

// symbolArg reads the symbol from the positional arguments, falling
// back on the most recently searched one.
func symbolArg(f *flag.FlagSet) (string, bool) {
	symbol := strings.TrimSpace(f.Arg(0))
	if symbol == "" {
		symbol = aitrader.LastSymbol()
	}
	if err := aitrader.ValidateSymbol(strings.ToUpper(symbol)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return "", false
	}
	return strings.ToUpper(symbol), true
}
