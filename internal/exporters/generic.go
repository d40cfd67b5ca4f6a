package exporters

import "github.com/mrlokans/quotevault/internal/entities"

// LibrarySource is the read side of the library an export works from.
type LibrarySource interface {
	Snapshot() ([]entities.Book, []entities.Quote)
}

type LibraryExporter interface {
	Export(books []entities.Book, quotes []entities.Quote) (ExportResult, error)
}

type ExportResult struct {
	BooksProcessed  int `json:"books_processed"`
	QuotesProcessed int `json:"quotes_processed"`
	CoversWritten   int `json:"covers_written"`
	BooksFailed     int `json:"books_failed"`
}

func (r *ExportResult) add(other ExportResult) {
	r.BooksProcessed += other.BooksProcessed
	r.QuotesProcessed += other.QuotesProcessed
	r.CoversWritten += other.CoversWritten
	r.BooksFailed += other.BooksFailed
}

// groupQuotes indexes quotes by book, keeping stored order.
func groupQuotes(quotes []entities.Quote) map[string][]entities.Quote {
	byBook := make(map[string][]entities.Quote)
	for _, q := range quotes {
		byBook[q.BookID] = append(byBook[q.BookID], q)
	}
	return byBook
}
