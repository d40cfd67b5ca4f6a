package kindle

import (
	"fmt"
	"io"
	"log"

	"github.com/mrlokans/quotevault/internal/entities"
	"github.com/mrlokans/quotevault/internal/library"
)

// UnknownAuthor is used for clippings whose title line carries no author.
const UnknownAuthor = "Unknown"

// Tags attached to imported quotes
const (
	TagKindle = "kindle"
	TagNote   = "note"
)

// BookImporter merges quotes into a book identified by title and author.
type BookImporter interface {
	ImportBook(title, author string, quotes []library.QuoteInput) (*entities.Book, int, error)
}

type ImportResult struct {
	BooksFound    int      `json:"books_found"`
	BooksImported int      `json:"books_imported"`
	QuotesFound   int      `json:"quotes_found"`
	QuotesAdded   int      `json:"quotes_added"`
	Errors        []string `json:"errors,omitempty"`
}

type Importer struct {
	store  BookImporter
	parser *Parser
}

func NewImporter(store BookImporter) *Importer {
	return &Importer{store: store, parser: NewParser()}
}

// Import parses clippings from r and imports every book. A book that fails
// to import is recorded in the result and the rest continue. Quotes already
// present for a book are skipped, so importing the same file twice is safe.
func (i *Importer) Import(r io.Reader) (ImportResult, error) {
	books, err := i.parser.Parse(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to parse clippings: %w", err)
	}
	return i.ImportBooks(books), nil
}

func (i *Importer) ImportBooks(books []Book) ImportResult {
	result := ImportResult{BooksFound: len(books)}

	for _, b := range books {
		inputs := QuoteInputs(b)
		result.QuotesFound += len(inputs)

		author := b.Author
		if author == "" {
			author = UnknownAuthor
		}

		_, added, err := i.store.ImportBook(b.Title, author, inputs)
		if err != nil {
			msg := fmt.Sprintf("%q by %s: %v", b.Title, author, err)
			log.Printf("Kindle import failed for %s", msg)
			result.Errors = append(result.Errors, msg)
			continue
		}
		result.BooksImported++
		result.QuotesAdded += added
	}

	log.Printf("Kindle import: %d/%d books, %d new quotes out of %d",
		result.BooksImported, result.BooksFound, result.QuotesAdded, result.QuotesFound)
	return result
}

// QuoteInputs converts a book's highlights into quote inputs.
func QuoteInputs(b Book) []library.QuoteInput {
	inputs := make([]library.QuoteInput, 0, len(b.Highlights))
	for _, h := range b.Highlights {
		tags := []string{TagKindle}
		if h.NoteOnly {
			tags = append(tags, TagNote)
		}
		inputs = append(inputs, library.QuoteInput{
			Content: h.Text,
			Page:    h.Page,
			Notes:   h.Note,
			Tags:    tags,
		})
	}
	return inputs
}
