package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mrlokans/quotevault/internal/covers"
)

// AddBookCommand adds a book, optionally with a cover read from a file or URL.
type AddBookCommand struct {
	Title  string
	Author string
	Cover  string

	// FindCover looks the cover up on OpenLibrary when Cover is empty.
	FindCover bool

	store storeFlags
	out   io.Writer
}

func NewAddBookCommand() *AddBookCommand {
	return &AddBookCommand{out: os.Stdout}
}

func (cmd *AddBookCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add-book", flag.ContinueOnError)

	fs.StringVar(&cmd.Title, "title", "", "Book title (required)")
	fs.StringVar(&cmd.Author, "author", "", "Book author (required)")
	fs.StringVar(&cmd.Cover, "cover", "", "Cover image: a file path or an http(s) URL")
	fs.BoolVar(&cmd.FindCover, "find-cover", false, "Look the cover up on OpenLibrary when -cover is not given")
	cmd.store.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add-book -title <title> -author <author> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Title == "" || cmd.Author == "" {
		return fmt.Errorf("required flags -title and -author not provided")
	}
	return nil
}

func (cmd *AddBookCommand) Run() error {
	source := cmd.Cover
	if source == "" && cmd.FindCover {
		source = cmd.findCover()
	}

	var cover []byte
	if source != "" {
		var err error
		cover, err = loadCover(source)
		if err != nil {
			return err
		}
	}

	store, closeDB, err := cmd.store.open()
	if err != nil {
		return err
	}
	defer closeDB()

	book, err := store.AddBook(cmd.Title, cmd.Author, cover)
	if err != nil {
		return fmt.Errorf("failed to add book: %w", err)
	}

	fmt.Fprintf(cmd.out, "Added book %s: %s\n", book.ID, describeBook(book.Title, book.Author))
	if book.HasCover() {
		fmt.Fprintf(cmd.out, "Cover: %d bytes (%s)\n", len(book.CoverImage), covers.ContentType(book.CoverImage))
	}
	return nil
}

// findCover returns an OpenLibrary cover URL, or "" when none is found.
func (cmd *AddBookCommand) findCover() string {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	coverURL, err := covers.NewFinder().FindCoverURL(ctx, cmd.Title, cmd.Author)
	if err != nil {
		fmt.Fprintf(cmd.out, "No cover found: %v\n", err)
		return ""
	}
	fmt.Fprintf(cmd.out, "Found cover: %s\n", coverURL)
	return coverURL
}

func loadCover(source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		data, err := covers.NewFetcher().Fetch(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("failed to download cover: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read cover: %w", err)
	}
	return data, nil
}
