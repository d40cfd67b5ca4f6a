package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/quotevault/internal/entities"
	"github.com/mrlokans/quotevault/internal/library"
)

// ListCommand prints books, or quotes when -quotes is given.
type ListCommand struct {
	Query         string
	Quotes        bool
	BookID        string
	FavoritesOnly bool
	Tag           string

	store storeFlags
	out   io.Writer
}

func NewListCommand() *ListCommand {
	return &ListCommand{out: os.Stdout}
}

func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)

	fs.StringVar(&cmd.Query, "q", "", "Case-insensitive search text")
	fs.BoolVar(&cmd.Quotes, "quotes", false, "List quotes instead of books")
	fs.StringVar(&cmd.BookID, "book", "", "Only quotes of this book (implies -quotes)")
	fs.BoolVar(&cmd.FavoritesOnly, "favorites", false, "Only favourite quotes (implies -quotes)")
	fs.StringVar(&cmd.Tag, "tag", "", "Tag glob, e.g. 'philo*' (implies -quotes)")
	cmd.store.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.BookID != "" || cmd.FavoritesOnly || cmd.Tag != "" {
		cmd.Quotes = true
	}
	return nil
}

func (cmd *ListCommand) Run() error {
	store, closeDB, err := cmd.store.open()
	if err != nil {
		return err
	}
	defer closeDB()

	if cmd.Quotes {
		return cmd.listQuotes(store)
	}

	books := store.SearchBooks(cmd.Query)
	if len(books) == 0 {
		fmt.Fprintln(cmd.out, "No books found")
		return nil
	}
	for _, b := range books {
		fmt.Fprintf(cmd.out, "%s  %s (%d quotes)\n", b.ID, describeBook(b.Title, b.Author), len(store.GetQuotes(b.ID)))
	}
	return nil
}

func (cmd *ListCommand) listQuotes(store *library.Store) error {
	quotes, err := store.FindQuotes(library.QuoteFilter{
		Query:         cmd.Query,
		BookID:        cmd.BookID,
		FavoritesOnly: cmd.FavoritesOnly,
		TagPattern:    cmd.Tag,
	})
	if err != nil {
		return err
	}
	if len(quotes) == 0 {
		fmt.Fprintln(cmd.out, "No quotes found")
		return nil
	}
	for _, q := range quotes {
		fmt.Fprintln(cmd.out, formatQuoteLine(q))
	}
	return nil
}

func formatQuoteLine(q entities.Quote) string {
	var b strings.Builder
	b.WriteString(q.ID)
	if q.IsFavorite {
		b.WriteString(" ★")
	}
	fmt.Fprintf(&b, "  %q", q.Content)
	if q.Page != nil {
		fmt.Fprintf(&b, " p.%d", *q.Page)
	}
	if len(q.Tags) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(q.Tags, ", "))
	}
	return b.String()
}
