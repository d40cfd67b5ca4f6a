package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/quotevault/internal/applebooks"
)

// AppleBooksImportCommand imports highlights and notes from the Apple Books
// databases on macOS.
type AppleBooksImportCommand struct {
	AnnotationDB string
	BookDB       string
	DryRun       bool

	store storeFlags
	out   io.Writer
}

func NewAppleBooksImportCommand() *AppleBooksImportCommand {
	return &AppleBooksImportCommand{out: os.Stdout}
}

func (cmd *AppleBooksImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("applebooks-import", flag.ContinueOnError)

	fs.StringVar(&cmd.AnnotationDB, "annotations", "", "Path to the AEAnnotation .sqlite file (default: macOS location)")
	fs.StringVar(&cmd.BookDB, "books", "", "Path to the BKLibrary .sqlite file (default: macOS location)")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be imported without making changes")
	cmd.store.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s applebooks-import [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import highlights from Apple Books as quotes.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *AppleBooksImportCommand) Run() error {
	reader, err := applebooks.NewReader(cmd.AnnotationDB, cmd.BookDB)
	if err != nil {
		return err
	}

	books, err := reader.Books()
	if err != nil {
		return fmt.Errorf("failed to read Apple Books: %w", err)
	}
	if len(books) == 0 {
		fmt.Fprintln(cmd.out, "No books with highlights found in Apple Books")
		return nil
	}

	for i, book := range books {
		fmt.Fprintf(cmd.out, "%d. %s (%d highlights)\n", i+1, describeBook(book.Title, book.Author), len(book.Highlights))
	}

	if cmd.DryRun {
		fmt.Fprintln(cmd.out, "Dry run complete. Use without -dry-run to import.")
		return nil
	}

	store, closeDB, err := cmd.store.open()
	if err != nil {
		return err
	}
	defer closeDB()

	result := applebooks.ImportBooks(store, books)
	fmt.Fprintf(cmd.out, "Books imported: %d/%d\n", result.BooksImported, result.BooksFound)
	fmt.Fprintf(cmd.out, "New quotes: %d (of %d)\n", result.QuotesAdded, result.QuotesFound)
	for _, msg := range result.Errors {
		fmt.Fprintf(cmd.out, "  [ERROR] %s\n", msg)
	}
	return nil
}
