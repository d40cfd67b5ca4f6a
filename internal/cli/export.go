package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrlokans/quotevault/internal/config"
	"github.com/mrlokans/quotevault/internal/exporters"
)

// ExportCommand writes the library as markdown files and library.yaml.
type ExportCommand struct {
	OutputDir string

	store storeFlags
	out   io.Writer
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{out: os.Stdout}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)

	fs.StringVar(&cmd.OutputDir, "output", config.NewConfig().Export.Dir, "Export directory")
	cmd.store.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Writes one markdown file per book plus %s.\n\n", exporters.LibraryFileName)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ExportCommand) Run() error {
	absOutputDir, err := filepath.Abs(cmd.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for output: %w", err)
	}

	store, closeDB, err := cmd.store.open()
	if err != nil {
		return err
	}
	defer closeDB()

	result, err := exporters.NewLibraryExport(store, absOutputDir).Run()
	if err != nil {
		return fmt.Errorf("failed to export library: %w", err)
	}

	fmt.Fprintf(cmd.out, "Exported %d books and %d quotes to %s\n", result.BooksProcessed, result.QuotesProcessed, absOutputDir)
	if result.BooksFailed > 0 {
		fmt.Fprintf(cmd.out, "%d books failed to export\n", result.BooksFailed)
	}
	return nil
}
