package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/willibrandon/gocordova/cmd/gocordova/cli"
	"github.com/willibrandon/gocordova/cmd/gocordova/commands"
)

// Version information (set via ldflags during build)
var (
	version = "0.0.0-dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date
	cli.BuiltBy = builtBy
	cli.SetupVersion()

	env := cli.Env
	cli.AddCommand(commands.NewVersionCommand(env))
	cli.AddCommand(commands.NewShowCommand(env))
	cli.AddCommand(commands.NewGetCommand(env))
	cli.AddCommand(commands.NewSetCommand(env))
	cli.AddCommand(commands.NewPluginCommand(env))
	cli.AddCommand(commands.NewPreferenceCommand(env))
	cli.AddCommand(commands.NewPlatformCommand(env))
	cli.AddCommand(commands.NewEngineCommand(env))
	cli.AddCommand(commands.NewMigrateCommand(env))
	cli.AddCommand(commands.NewFormatCommand(env))
	cli.AddCommand(commands.NewQueryCommand(env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		if strings.HasPrefix(err.Error(), "unknown command") {
			err = commands.VerbFirstError(os.Args[1:], err)
		}
		env.Console.Error("%v", err)
		stop()
		os.Exit(1)
	}
}
