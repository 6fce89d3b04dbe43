// Package cmd implements the CLI application to search and review
// stock quotes against an aitradex service.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/xmyqyl4x/aitrader"
	"github.com/xmyqyl4x/aitrader/etrade"
)

// Commands lists every subcommand. A main package registers them on a
// commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&loginCmd{},
	&logoutCmd{},
	&quoteCmd{},
	&historyCmd{},
	&searchCmd{},
	&reviewCmd{},
	&searchesCmd{},
	&viewCmd{},
	&rerunCmd{},
	&accountsCmd{},
	&accountCmd{},
	&linkCmd{},
	&oauthCmd{},
	&balanceCmd{},
	&portfolioCmd{},
	&ordersCmd{},
	&assistCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var apiURL = flag.String("api-url", defaultAPIURL(), "Base URL of the aitradex service")
var userID = flag.String("user", "", "User id to scope searches and accounts")

func defaultAPIURL() string {
	if u := os.Getenv("AITRADER_API_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

// quoteCache is shared by every command of the process so repeated
// lookups within the TTL stay local.
var quoteCache = aitrader.NewQuoteCache()

// StockClient returns the client for the quote and search endpoints.
func StockClient() *aitrader.Client {
	c := aitrader.NewClient(*apiURL, quoteCache)
	c.SetUserID(*userID)
	return c
}

// EtradeClient returns the client for the account-linking endpoints.
func EtradeClient() *etrade.Client {
	c := etrade.NewClient(*apiURL)
	c.SetUserID(*userID)
	return c
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
