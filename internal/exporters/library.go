package exporters

import (
	"fmt"
	"log"
	"sync"
)

// LibraryExport runs every configured exporter against one snapshot of the
// library. Runs are serialised so the scheduler and queued tasks never write
// the same directory at once.
type LibraryExport struct {
	mu        sync.Mutex
	source    LibrarySource
	exporters []LibraryExporter

	// OnFinish, when set, is called after each run with its error.
	OnFinish func(error)
}

// NewLibraryExport exports markdown and YAML into dir.
func NewLibraryExport(source LibrarySource, dir string) *LibraryExport {
	return &LibraryExport{
		source:    source,
		exporters: []LibraryExporter{NewMarkdownExporter(dir), NewYAMLExporter(dir)},
	}
}

func (e *LibraryExport) Run() (ExportResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	books, quotes := e.source.Snapshot()

	var total ExportResult
	var err error
	for i, exporter := range e.exporters {
		result, exportErr := exporter.Export(books, quotes)
		if exportErr != nil {
			err = fmt.Errorf("exporter %d: %w", i, exportErr)
			break
		}
		// Every exporter covers the same books, so only the first counts them.
		if i == 0 {
			total.add(result)
		} else {
			total.BooksFailed += result.BooksFailed
		}
	}

	if err != nil {
		log.Printf("Library export failed: %v", err)
	} else {
		log.Printf("Library export completed: %d books, %d quotes, %d covers, %d books failed",
			total.BooksProcessed, total.QuotesProcessed, total.CoversWritten, total.BooksFailed)
	}
	if e.OnFinish != nil {
		e.OnFinish(err)
	}
	return total, err
}
