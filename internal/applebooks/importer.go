package applebooks

import (
	"fmt"
	"log"
	"strings"

	"github.com/mrlokans/quotevault/internal/entities"
	"github.com/mrlokans/quotevault/internal/library"
)

// TagAppleBooks marks every imported quote.
const TagAppleBooks = "apple-books"

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

// ImportBooks imports every book. Failures are collected and the rest go on.
func ImportBooks(store BookImporter, books []Book) ImportResult {
	result := ImportResult{BooksFound: len(books)}

	for _, b := range books {
		inputs := QuoteInputs(b)
		result.QuotesFound += len(inputs)

		_, added, err := store.ImportBook(b.Title, b.Author, inputs)
		if err != nil {
			msg := fmt.Sprintf("%q by %s: %v", b.Title, b.Author, err)
			log.Printf("Apple Books import failed for %s", msg)
			result.Errors = append(result.Errors, msg)
			continue
		}
		result.BooksImported++
		result.QuotesAdded += added
	}

	log.Printf("Apple Books import: %d/%d books, %d new quotes out of %d",
		result.BooksImported, result.BooksFound, result.QuotesAdded, result.QuotesFound)
	return result
}

// QuoteInputs converts highlights to quote inputs. A note without highlighted
// text becomes the quote content itself.
func QuoteInputs(b Book) []library.QuoteInput {
	inputs := make([]library.QuoteInput, 0, len(b.Highlights))
	for _, h := range b.Highlights {
		in := library.QuoteInput{
			Content: h.Text,
			Chapter: strings.TrimSpace(h.Chapter),
			Notes:   h.Note,
			Tags:    []string{TagAppleBooks, h.Style.Tag()},
		}
		if in.Content == "" {
			in.Content = h.Note
			in.Notes = ""
		}
		inputs = append(inputs, in)
	}
	return inputs
}
