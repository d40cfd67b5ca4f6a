package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/quotevault/internal/cli"
	"github.com/mrlokans/quotevault/internal/config"
	"github.com/mrlokans/quotevault/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	var cmd cli.Command
	switch command {
	case "add-book":
		cmd = cli.NewAddBookCommand()
	case "add-quote":
		cmd = cli.NewAddQuoteCommand()
	case "list":
		cmd = cli.NewListCommand()
	case "delete-book":
		cmd = cli.NewDeleteBookCommand()
	case "favourite":
		cmd = cli.NewFavouriteCommand()
	case "share":
		cmd = cli.NewShareCommand()
	case "daily":
		cmd = cli.NewDailyCommand()
	case "export":
		cmd = cli.NewExportCommand()
	case "kindle-import":
		cmd = cli.NewKindleImportCommand()
	case "applebooks-import":
		cmd = cli.NewAppleBooksImportCommand()

	case "version":
		fmt.Printf("quotevault %s (%s)\n", Version, Commit)
		return

	case "-h", "--help", "help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	run(cmd, args)
}

func run(cmd cli.Command, args []string) {
	if err := cmd.ParseFlags(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve           Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  add-book        Add a book, optionally with a cover file or URL\n")
	fmt.Fprintf(os.Stderr, "  add-quote       Add a quote to a book\n")
	fmt.Fprintf(os.Stderr, "  list            List books, or quotes with -quotes\n")
	fmt.Fprintf(os.Stderr, "  delete-book     Delete a book and all of its quotes\n")
	fmt.Fprintf(os.Stderr, "  favourite       Toggle a quote's favourite flag\n")
	fmt.Fprintf(os.Stderr, "  share           Print a quote's share text\n")
	fmt.Fprintf(os.Stderr, "  daily           Print a random quote, favourites first\n")
	fmt.Fprintf(os.Stderr, "  export          Export the library as markdown and YAML\n")
	fmt.Fprintf(os.Stderr, "  kindle-import   Import highlights from Kindle 'My Clippings.txt'\n")
	fmt.Fprintf(os.Stderr, "  applebooks-import  Import highlights from Apple Books (macOS)\n")
	fmt.Fprintf(os.Stderr, "  version         Print the version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
