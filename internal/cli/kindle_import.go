package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrlokans/quotevault/internal/exporters"
	"github.com/mrlokans/quotevault/internal/kindle"
)

// KindleImportCommand imports highlights from Kindle My Clippings.txt as quotes.
type KindleImportCommand struct {
	ClippingsPath string
	OutputDir     string
	Verbose       bool
	DryRun        bool

	store storeFlags
	out   io.Writer
}

func NewKindleImportCommand() *KindleImportCommand {
	return &KindleImportCommand{out: os.Stdout}
}

func (cmd *KindleImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("kindle-import", flag.ContinueOnError)

	fs.StringVar(&cmd.ClippingsPath, "file", "", "Path to Kindle 'My Clippings.txt' file (required)")
	fs.StringVar(&cmd.OutputDir, "output", "", "Also export the library to this directory after importing")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be imported without making changes")
	cmd.store.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s kindle-import -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import highlights from Kindle 'My Clippings.txt' as quotes.\n\n")
		fmt.Fprintf(os.Stderr, "The clippings file is typically found at:\n")
		fmt.Fprintf(os.Stderr, "  /Volumes/Kindle/documents/My Clippings.txt\n\n")
		fmt.Fprintf(os.Stderr, "Importing the same file twice adds no duplicate quotes.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s kindle-import -file \"/Volumes/Kindle/documents/My Clippings.txt\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s kindle-import -file \"My Clippings.txt\" -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.ClippingsPath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	return nil
}

func (cmd *KindleImportCommand) Run() error {
	fmt.Fprintln(cmd.out, "Kindle Import")
	fmt.Fprintln(cmd.out, "=============")

	if cmd.DryRun {
		fmt.Fprintln(cmd.out, "DRY RUN MODE - No changes will be made")
	}

	file, err := os.Open(cmd.ClippingsPath)
	if err != nil {
		return fmt.Errorf("failed to open clippings file: %w", err)
	}
	defer file.Close()

	books, err := kindle.NewParser().Parse(file)
	if err != nil {
		return fmt.Errorf("failed to parse clippings: %w", err)
	}
	if len(books) == 0 {
		fmt.Fprintln(cmd.out, "No books with highlights found in clippings file")
		return nil
	}

	totalHighlights := 0
	for _, book := range books {
		totalHighlights += len(book.Highlights)
	}
	fmt.Fprintf(cmd.out, "Found %d books with %d total highlights\n", len(books), totalHighlights)

	if cmd.Verbose {
		for i, book := range books {
			author := book.Author
			if author == "" {
				author = kindle.UnknownAuthor
			}
			fmt.Fprintf(cmd.out, "%d. %s (%d highlights)\n", i+1, describeBook(book.Title, author), len(book.Highlights))
		}
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

	result := kindle.NewImporter(store).ImportBooks(books)

	fmt.Fprintf(cmd.out, "Books imported: %d/%d\n", result.BooksImported, result.BooksFound)
	fmt.Fprintf(cmd.out, "New quotes: %d (of %d)\n", result.QuotesAdded, result.QuotesFound)
	for _, msg := range result.Errors {
		fmt.Fprintf(cmd.out, "  [ERROR] %s\n", msg)
	}

	if cmd.OutputDir != "" {
		absOutputDir, err := filepath.Abs(cmd.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to get absolute path for output: %w", err)
		}
		exported, err := exporters.NewLibraryExport(store, absOutputDir).Run()
		if err != nil {
			return fmt.Errorf("failed to export library: %w", err)
		}
		fmt.Fprintf(cmd.out, "Exported %d books to %s\n", exported.BooksProcessed, absOutputDir)
	}

	return nil
}
