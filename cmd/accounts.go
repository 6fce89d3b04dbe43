package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/xmyqyl4x/aitrader/etrade"
	"github.com/xmyqyl4x/aitrader/renderer"
)

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "show the E*TRADE connection and linked accounts" }
func (*accountsCmd) Usage() string {
	return `accounts

  Shows the connection state and the linked E*TRADE accounts. An empty
  list means nothing is linked yet.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	controller := etrade.NewLinkingController(EtradeClient())
	loadErr := controller.Init()

	listing := renderer.NewAccountListing(controller.Banner(), controller.Accounts(), loadErr)
	printMarkdown(renderer.RenderAccounts(listing))
	if loadErr != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type accountCmd struct {
	key string
}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "show one linked account" }
func (*accountCmd) Usage() string {
	return `account -key <accountIdKey>

  Shows one linked account by its broker key or id.
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.key, "key", "", "broker accountIdKey or account id")
}

func (c *accountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.key == "" {
		fmt.Fprintln(os.Stderr, "-key is required")
		return subcommands.ExitUsageError
	}

	account, err := EtradeClient().AccountByKey(c.key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading account: %v\n", err)
		return subcommands.ExitFailure
	}

	listing := renderer.NewAccountListing(etrade.Banner{}, []etrade.Account{account}, nil)
	printMarkdown(renderer.RenderAccounts(listing))
	return subcommands.ExitSuccess
}

type linkCmd struct {
	account string
}

func (*linkCmd) Name() string     { return "link" }
func (*linkCmd) Synopsis() string { return "connect an E*TRADE account" }
func (*linkCmd) Usage() string {
	return `link -account <id>

  Syncs the account through the stored OAuth token. When the token is
  expired or invalid, prints the E*TRADE authorization URL instead:
  open it in a browser, approve the access, and link again.
`
}

func (c *linkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "account id to connect")
}

func (c *linkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "-account is required")
		return subcommands.ExitUsageError
	}

	controller := etrade.NewLinkingController(EtradeClient())
	result, err := controller.Connect(c.account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting account: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println(result.Message)
	if result.AuthorizeURL != "" {
		fmt.Printf("\n  %s\n\n", result.AuthorizeURL)
		return subcommands.ExitSuccess
	}

	listing := renderer.NewAccountListing(controller.Banner(), result.Accounts, nil)
	printMarkdown(renderer.RenderAccounts(listing))
	return subcommands.ExitSuccess
}
