package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fractal/internal/cli"
	ferrors "github.com/matzehuels/fractal/pkg/errors"
)

// Exit codes.
const (
	exitFailure     = 1   // anything not caused by rejected input
	exitRejected    = 2   // the tree, path or flag given was rejected
	exitInterrupted = 130 // shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	if err := run(ctx, c, os.Args[1:]); err != nil {
		code := exitCode(err)
		if code != exitInterrupted {
			reportError(c.Logger, err)
		}
		cancel()
		os.Exit(code)
	}
}

// run executes the command line args. The -v flag takes effect before the
// config file is read, so config loading is logged at debug level.
func run(ctx context.Context, c *cli.CLI, args []string) error {
	var verbose bool

	root := c.RootCommand()
	root.SilenceErrors = true
	root.SetArgs(args)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if loadConfig == nil {
			return nil
		}
		return loadConfig(cmd, args)
	}

	return root.ExecuteContext(ctx)
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case ferrors.IsUserError(err):
		return exitRejected
	default:
		return exitFailure
	}
}

// reportError logs err with its code, if it has one.
func reportError(logger *log.Logger, err error) {
	if code := ferrors.GetCode(err); code != "" {
		logger.Error(ferrors.UserMessage(err), "code", code)
		return
	}
	logger.Error(err.Error())
}
