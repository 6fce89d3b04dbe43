package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/xmyqyl4x/aitrader"
)

type loginCmd struct{}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "store the session token for subsequent commands" }
func (*loginCmd) Usage() string {
	return `login <token>

  Stores the bearer token. Every subsequent command authenticates with it.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {}

func (c *loginCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one argument, the token")
		return subcommands.ExitUsageError
	}
	if err := aitrader.SaveToken(f.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error storing session: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Session stored.")
	return subcommands.ExitSuccess
}

type logoutCmd struct{}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "forget the stored session token" }
func (*logoutCmd) Usage() string {
	return `logout

  Forgets the stored session token.
`
}

func (c *logoutCmd) SetFlags(f *flag.FlagSet) {}

func (c *logoutCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := aitrader.ClearToken(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing session: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Session cleared.")
	return subcommands.ExitSuccess
}
