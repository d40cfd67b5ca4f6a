package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/quotevault/internal/library"
)

// FavouriteCommand toggles the favourite flag of a quote.
type FavouriteCommand struct {
	QuoteID string

	store storeFlags
	out   io.Writer
}

func NewFavouriteCommand() *FavouriteCommand {
	return &FavouriteCommand{out: os.Stdout}
}

func (cmd *FavouriteCommand) ParseFlags(args []string) error {
	fs := quoteIDFlags("favourite", &cmd.QuoteID, &cmd.store)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.QuoteID == "" {
		return fmt.Errorf("required flag -id not provided")
	}
	return nil
}

func (cmd *FavouriteCommand) Run() error {
	store, closeDB, err := cmd.store.open()
	if err != nil {
		return err
	}
	defer closeDB()

	quote, err := store.ToggleFavorite(cmd.QuoteID)
	if err != nil {
		return fmt.Errorf("failed to toggle favourite: %w", err)
	}

	if quote.IsFavorite {
		fmt.Fprintf(cmd.out, "Quote %s marked as favourite\n", quote.ID)
	} else {
		fmt.Fprintf(cmd.out, "Quote %s is no longer a favourite\n", quote.ID)
	}
	return nil
}

// ShareCommand prints the share text of a quote.
type ShareCommand struct {
	QuoteID string

	store storeFlags
	out   io.Writer
}

func NewShareCommand() *ShareCommand {
	return &ShareCommand{out: os.Stdout}
}

func (cmd *ShareCommand) ParseFlags(args []string) error {
	fs := quoteIDFlags("share", &cmd.QuoteID, &cmd.store)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.QuoteID == "" {
		return fmt.Errorf("required flag -id not provided")
	}
	return nil
}

func (cmd *ShareCommand) Run() error {
	store, closeDB, err := cmd.store.open()
	if err != nil {
		return err
	}
	defer closeDB()

	text, err := store.ShareQuote(cmd.QuoteID)
	if err != nil {
		return fmt.Errorf("failed to share quote: %w", err)
	}
	fmt.Fprintln(cmd.out, text)
	return nil
}

// DailyCommand prints a random quote, favourites first.
type DailyCommand struct {
	store  storeFlags
	out    io.Writer
	picker library.Picker
}

func NewDailyCommand() *DailyCommand {
	return &DailyCommand{out: os.Stdout}
}

func (cmd *DailyCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("daily", flag.ContinueOnError)
	cmd.store.register(fs)
	return fs.Parse(args)
}

func (cmd *DailyCommand) Run() error {
	store, closeDB, err := cmd.store.open()
	if err != nil {
		return err
	}
	defer closeDB()

	quote, book, err := store.DailyQuote(cmd.picker)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.out, library.ShareText(*quote, *book))
	return nil
}

func quoteIDFlags(name string, id *string, store *storeFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(id, "id", "", "Quote ID (required)")
	store.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s %s -id <quote id> [options]\n\n", os.Args[0], name)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	return fs
}
