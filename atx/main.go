package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/xmyqyl4x/aitrader/cmd"
)

func main() {
	// Shell completion runs only when the shell asks for it (COMP_LINE
	// set); otherwise Complete returns immediately.
	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{Args: predict.Something}
	}
	complete.Complete("atx", &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"api-url": predict.Something,
			"user":    predict.Something,
		},
	})

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
