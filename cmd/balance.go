package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/xmyqyl4x/aitrader/renderer"
)

type balanceCmd struct {
	account string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "show the cash position of an account" }
func (*balanceCmd) Usage() string {
	return `balance -account <id>

  Shows the cash position of a linked account.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "account id")
}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "-account is required")
		return subcommands.ExitUsageError
	}

	balance, err := EtradeClient().Balance(c.account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading balance: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderBalance(renderer.NewBalanceReport(balance)))
	return subcommands.ExitSuccess
}

type portfolioCmd struct {
	account string
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "show the positions of an account" }
func (*portfolioCmd) Usage() string {
	return `portfolio -account <id>

  Shows the positions of a linked account.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "account id")
}

func (c *portfolioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "-account is required")
		return subcommands.ExitUsageError
	}

	portfolio, err := EtradeClient().PortfolioOf(c.account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderPortfolio(renderer.NewPortfolioReport(portfolio)))
	return subcommands.ExitSuccess
}

type ordersCmd struct {
	account string
}

func (*ordersCmd) Name() string     { return "orders" }
func (*ordersCmd) Synopsis() string { return "list the orders of an account" }
func (*ordersCmd) Usage() string {
	return `orders -account <id>

  Lists the orders of a linked account.
`
}

func (c *ordersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "account id")
}

func (c *ordersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "-account is required")
		return subcommands.ExitUsageError
	}

	orders, err := EtradeClient().Orders(c.account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading orders: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderOrders(renderer.NewOrderListing(c.account, orders)))
	return subcommands.ExitSuccess
}
