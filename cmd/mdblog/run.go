package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alecthomas/chroma/v2/styles"
	flag "github.com/spf13/pflag"

	mdblog "github.com/alnah/go-mdblog"
	"github.com/alnah/go-mdblog/internal/config"
	"github.com/alnah/go-mdblog/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("invalid usage")
	ErrWriteOutput    = errors.New("failed to write output")
)

// runMain dispatches the command in args[1] and returns the exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "ids":
		err = runIDs(ctx, rest, env)
	case "list":
		err = runList(ctx, rest, env)
	case "show":
		err = runShow(ctx, rest, env)
	case "build":
		err = runBuild(ctx, rest, env)
	case "watch":
		err = runWatch(ctx, rest, env)
	case "styles":
		runStyles(env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "mdblog %s\n", Version)
	case "help", "-h", "--help":
		err = runHelp(rest, env)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		if errors.Is(err, ErrUnknownCommand) {
			printUsage(env.Stderr)
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// hintFor returns an actionable hint for well-known errors.
// Content directory and config lookup hints are attached where the
// failing path is known (see session).
func hintFor(err error) string {
	switch {
	case errors.Is(err, mdblog.ErrNotFound):
		return hints.ForPostNotFound()
	case errors.Is(err, mdblog.ErrInvalidPage):
		return hints.ForInvalidPage()
	case errors.Is(err, mdblog.ErrMalformedFrontMatter):
		return hints.ForFrontMatter()
	case errors.Is(err, config.ErrUnknownStyle):
		return hints.ForStyleNotFound(styles.Names())
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// requireNoArgs rejects unexpected positional arguments.
func requireNoArgs(cmd string, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: %s takes no arguments, got %q", ErrUsage, cmd, args)
	}
	return nil
}
