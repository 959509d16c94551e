package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	dir     string
	lenient bool
	quiet   bool
	verbose bool
}

// listFlags holds flags for the list command.
type listFlags struct {
	common  commonFlags
	page    int
	perPage int
	query   string
	json    bool
	yaml    bool
}

// showFlags holds flags for the show command.
type showFlags struct {
	common      commonFlags
	noLinkIcons bool
	markdown    bool
}

// buildFlags holds flags for the build command.
type buildFlags struct {
	common  commonFlags
	output  string
	css     bool
	workers int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.dir, "dir", "d", "", "content directory")
	fs.BoolVar(&f.lenient, "lenient", false, "accept posts with blank title, date or description")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// newFlagSet returns a FlagSet that reports errors instead of exiting and
// prints usage to w on --help.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(w) }
	return fs
}

// parse runs fs.Parse and tags parse failures as usage errors.
// flag.ErrHelp (usage already printed by pflag) is returned unwrapped so
// callers can exit successfully.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseCommonFlags parses commands that only take common flags
// (ids, watch) and returns positional args.
func parseCommonFlags(name string, args []string, w io.Writer, usage func(io.Writer)) (*commonFlags, []string, error) {
	fs := newFlagSet(name, w, usage)
	f := &commonFlags{}
	addCommonFlags(fs, f)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseListFlags parses list command flags and returns positional args.
func parseListFlags(args []string, w io.Writer) (*listFlags, []string, error) {
	fs := newFlagSet("list", w, printListUsage)
	f := &listFlags{}

	fs.IntVarP(&f.page, "page", "p", 1, "page number (starts at 1)")
	fs.IntVarP(&f.perPage, "per-page", "n", 0, "posts per page (0 = config value)")
	fs.StringVar(&f.query, "query", "", "case-insensitive title/description filter")
	fs.BoolVar(&f.json, "json", false, "print the page as JSON")
	fs.BoolVar(&f.yaml, "yaml", false, "print the page as YAML")
	addCommonFlags(fs, &f.common)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	if f.json && f.yaml {
		return nil, nil, fmt.Errorf("%w: --json and --yaml are mutually exclusive", ErrUsage)
	}
	return f, fs.Args(), nil
}

// parseShowFlags parses show command flags and returns positional args.
func parseShowFlags(args []string, w io.Writer) (*showFlags, []string, error) {
	fs := newFlagSet("show", w, printShowUsage)
	f := &showFlags{}

	fs.BoolVar(&f.noLinkIcons, "no-link-icons", false, "do not decorate external links")
	fs.BoolVar(&f.markdown, "markdown", false, "print the Markdown body instead of HTML")
	addCommonFlags(fs, &f.common)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, w io.Writer) (*buildFlags, []string, error) {
	fs := newFlagSet("build", w, printBuildUsage)
	f := &buildFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory (required)")
	fs.BoolVar(&f.css, "css", false, "write chroma.css and highlight with classes")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renders (0 = config value)")
	addCommonFlags(fs, &f.common)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
