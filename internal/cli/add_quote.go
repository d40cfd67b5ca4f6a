package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/quotevault/internal/library"
)

// AddQuoteCommand adds a quote to an existing book.
type AddQuoteCommand struct {
	BookID  string
	Content string
	Page    int
	Chapter string
	Notes   string
	Tags    string

	store storeFlags
	out   io.Writer
}

func NewAddQuoteCommand() *AddQuoteCommand {
	return &AddQuoteCommand{out: os.Stdout}
}

func (cmd *AddQuoteCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add-quote", flag.ContinueOnError)

	fs.StringVar(&cmd.BookID, "book", "", "ID of the book the quote belongs to (required)")
	fs.StringVar(&cmd.Content, "content", "", "Quote text (required)")
	fs.IntVar(&cmd.Page, "page", -1, "Page number (omit for none)")
	fs.StringVar(&cmd.Chapter, "chapter", "", "Chapter")
	fs.StringVar(&cmd.Notes, "notes", "", "Personal notes")
	fs.StringVar(&cmd.Tags, "tags", "", "Comma-separated tags")
	cmd.store.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add-quote -book <id> -content <text> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.BookID == "" || cmd.Content == "" {
		return fmt.Errorf("required flags -book and -content not provided")
	}
	return nil
}

func (cmd *AddQuoteCommand) Run() error {
	store, closeDB, err := cmd.store.open()
	if err != nil {
		return err
	}
	defer closeDB()

	input := library.QuoteInput{
		Content: cmd.Content,
		BookID:  cmd.BookID,
		Chapter: cmd.Chapter,
		Notes:   cmd.Notes,
		Tags:    splitTags(cmd.Tags),
	}
	if cmd.Page >= 0 {
		page := cmd.Page
		input.Page = &page
	}

	quote, err := store.AddQuote(input)
	if err != nil {
		return fmt.Errorf("failed to add quote: %w", err)
	}

	fmt.Fprintf(cmd.out, "Added quote %s\n", quote.ID)
	return nil
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
