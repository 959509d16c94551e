package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdblog <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  ids        List post ids")
	fmt.Fprintln(w, "  list       Show a page of posts, newest first")
	fmt.Fprintln(w, "  show       Render one post")
	fmt.Fprintln(w, "  build      Render all posts into a directory")
	fmt.Fprintln(w, "  watch      Reload posts when files change")
	fmt.Fprintln(w, "  styles     List highlight styles")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdblog help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every content command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -d, --dir <path>          Content directory (default: posts)")
	fmt.Fprintln(w, "      --lenient             Accept blank title, date or description")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDBLOG_CONFIG, MDBLOG_CONTENT_DIR, MDBLOG_PATTERN, MDBLOG_HIGHLIGHT_STYLE,")
	fmt.Fprintln(w, "  MDBLOG_DATE_FORMAT, MDBLOG_PER_PAGE, MDBLOG_WORKERS, MDBLOG_LENIENT")
	fmt.Fprintln(w, "  Values may also come from a .env file in the working directory.")
}

// printIDsUsage prints usage for the ids command.
func printIDsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdblog ids [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print every post id, one per line, in file order.")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printListUsage prints usage for the list command.
func printListUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdblog list [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show a page of posts sorted by date, newest first.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Listing:")
	fmt.Fprintln(w, "  -p, --page <n>            Page number (default: 1)")
	fmt.Fprintln(w, "  -n, --per-page <n>        Posts per page (default: pagination.perPage)")
	fmt.Fprintln(w, "      --query <s>           Filter on title and description, ignoring case")
	fmt.Fprintln(w, "      --json                Print the page as JSON")
	fmt.Fprintln(w, "      --yaml                Print the page as YAML")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printShowUsage prints usage for the show command.
func printShowUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdblog show <id> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one post to HTML on stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --no-link-icons       Do not decorate external links")
	fmt.Fprintln(w, "      --markdown            Print the Markdown body instead")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdblog build --output <dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write <id>.html for every post and index.json with their metadata.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (required)")
	fmt.Fprintln(w, "      --css                 Write chroma.css and highlight with classes")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel renders (default: workers)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdblog watch [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch the content directory and reload posts on change. Stop with Ctrl+C.")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "ids":
		printIDsUsage(env.Stdout)
	case "list":
		printListUsage(env.Stdout)
	case "show":
		printShowUsage(env.Stdout)
	case "build":
		printBuildUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "styles":
		fmt.Fprintln(env.Stdout, "Usage: mdblog styles")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List highlight styles for markdown.highlightStyle.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdblog version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdblog help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
