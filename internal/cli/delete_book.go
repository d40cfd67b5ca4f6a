package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// DeleteBookCommand deletes a book and all of its quotes.
type DeleteBookCommand struct {
	BookID string

	store storeFlags
	out   io.Writer
}

func NewDeleteBookCommand() *DeleteBookCommand {
	return &DeleteBookCommand{out: os.Stdout}
}

func (cmd *DeleteBookCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("delete-book", flag.ContinueOnError)

	fs.StringVar(&cmd.BookID, "id", "", "ID of the book to delete (required)")
	cmd.store.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s delete-book -id <book id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Deletes the book together with all of its quotes.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.BookID == "" {
		return fmt.Errorf("required flag -id not provided")
	}
	return nil
}

func (cmd *DeleteBookCommand) Run() error {
	store, closeDB, err := cmd.store.open()
	if err != nil {
		return err
	}
	defer closeDB()

	removed, err := store.DeleteBook(cmd.BookID)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	fmt.Fprintf(cmd.out, "Deleted book %s and %d quotes\n", cmd.BookID, removed)
	return nil
}
