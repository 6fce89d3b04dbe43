package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/xmyqyl4x/aitrader/etrade"
)

// oauthCmd is a container for the token upkeep subcommands.
type oauthCmd struct{}

func (*oauthCmd) Name() string     { return "oauth" }
func (*oauthCmd) Synopsis() string { return "E*TRADE token upkeep commands" }
func (*oauthCmd) Usage() string {
	return `oauth <subcommand> [args]

Commands:
  status    - Show the connection and token state.
  authorize - Print the E*TRADE authorization URL.
  renew     - Renew the access token for an account.
  revoke    - Revoke the access token for an account.
`
}

func (c *oauthCmd) SetFlags(f *flag.FlagSet) {}
func (c *oauthCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "oauth")
	commander.Register(&oauthStatusCmd{}, "")
	commander.Register(&oauthAuthorizeCmd{}, "")
	commander.Register(&oauthRenewCmd{}, "")
	commander.Register(&oauthRevokeCmd{}, "")
	return commander.Execute(ctx, args...)
}

type oauthStatusCmd struct{}

func (*oauthStatusCmd) Name() string     { return "status" }
func (*oauthStatusCmd) Synopsis() string { return "show the connection and token state" }
func (*oauthStatusCmd) Usage() string {
	return `oauth status
`
}
func (c *oauthStatusCmd) SetFlags(f *flag.FlagSet) {}

func (c *oauthStatusCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	status, err := EtradeClient().OAuthStatus()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading status: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Connected: %v\n", status.Connected)
	fmt.Printf("Accounts:  %d\n", status.AccountCount)
	if status.TokenStatus != "" {
		fmt.Printf("Token:     %s\n", status.TokenStatus)
	}
	if status.TokenExpiresAt != nil {
		fmt.Printf("Expires:   %s\n", status.TokenExpiresAt.Format("2006-01-02 15:04"))
	}
	return subcommands.ExitSuccess
}

type oauthAuthorizeCmd struct {
	correlation string
}

func (*oauthAuthorizeCmd) Name() string     { return "authorize" }
func (*oauthAuthorizeCmd) Synopsis() string { return "print the E*TRADE authorization URL" }
func (*oauthAuthorizeCmd) Usage() string {
	return `oauth authorize

  Prints the URL where the user approves access on E*TRADE. The flow
  continues in the browser, outside this client.
`
}

func (c *oauthAuthorizeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.correlation, "correlation", "", "optional correlation id for the attempt")
}

func (c *oauthAuthorizeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	auth, err := EtradeClient().Authorize(c.correlation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching authorization: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(auth.URL)
	return subcommands.ExitSuccess
}

type oauthRenewCmd struct {
	account string
}

func (*oauthRenewCmd) Name() string     { return "renew" }
func (*oauthRenewCmd) Synopsis() string { return "renew the access token for an account" }
func (*oauthRenewCmd) Usage() string {
	return `oauth renew -account <id>
`
}

func (c *oauthRenewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "account id")
}

func (c *oauthRenewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runTokenAction(c.account, EtradeClient().RenewToken)
}

type oauthRevokeCmd struct {
	account string
}

func (*oauthRevokeCmd) Name() string     { return "revoke" }
func (*oauthRevokeCmd) Synopsis() string { return "revoke the access token for an account" }
func (*oauthRevokeCmd) Usage() string {
	return `oauth revoke -account <id>
`
}

func (c *oauthRevokeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "account id")
}

func (c *oauthRevokeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runTokenAction(c.account, EtradeClient().RevokeToken)
}

func runTokenAction(account string, action func(string) (etrade.TokenAction, error)) subcommands.ExitStatus {
	if account == "" {
		fmt.Fprintln(os.Stderr, "-account is required")
		return subcommands.ExitUsageError
	}
	result, err := action(account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(result.Message)
	if !result.Success {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
