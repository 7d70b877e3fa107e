package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/cli"
	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/commands"
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

	env := cli.Environment
	cli.AddCommand(commands.NewVersionCommand(cli.Console))
	cli.AddCommand(commands.NewFormatCommand(env))
	cli.AddCommand(commands.NewPropertyCommand(env))
	cli.AddCommand(commands.NewPackageCommand(env))
	cli.AddCommand(commands.NewSolutionCommand(env))
	cli.AddCommand(commands.NewCPMCommand(env))
	cli.AddCommand(commands.NewFrameworkCommand(env))
	commands.SetupCustomErrorHandler(cli.RootCommand())

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		os.Exit(130) // 128 + SIGINT
	}()

	if err := cli.Execute(); err != nil {
		// SilenceErrors is set on the root command, so report here
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
