package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/quotevault/internal/entities"
)

// LibraryFileName is the name of the YAML snapshot inside the export directory.
const LibraryFileName = "library.yaml"

// YAMLExporter writes the whole library as a single YAML document.
// Cover images are not included.
type YAMLExporter struct {
	Dir string
	Now func() time.Time
}

func NewYAMLExporter(dir string) *YAMLExporter {
	return &YAMLExporter{Dir: dir, Now: time.Now}
}

type LibraryDocument struct {
	ExportedAt time.Time      `yaml:"exported_at"`
	Books      []BookDocument `yaml:"books"`
}

type BookDocument struct {
	entities.Book `yaml:",inline"`
	HasCover      bool             `yaml:"has_cover"`
	Quotes        []entities.Quote `yaml:"quotes"`
}

func (exporter *YAMLExporter) Export(books []entities.Book, quotes []entities.Quote) (ExportResult, error) {
	now := time.Now
	if exporter.Now != nil {
		now = exporter.Now
	}

	doc := BuildLibraryDocument(books, quotes, now().UTC())

	data, err := yaml.Marshal(doc)
	if err != nil {
		return ExportResult{}, fmt.Errorf("encode library: %w", err)
	}
	if err := os.MkdirAll(exporter.Dir, 0755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(exporter.Dir, LibraryFileName), data, 0644); err != nil {
		return ExportResult{}, err
	}

	result := ExportResult{BooksProcessed: len(doc.Books)}
	for _, b := range doc.Books {
		result.QuotesProcessed += len(b.Quotes)
	}
	return result, nil
}

// BuildLibraryDocument nests quotes under their books in stored order.
func BuildLibraryDocument(books []entities.Book, quotes []entities.Quote, exportedAt time.Time) LibraryDocument {
	byBook := groupQuotes(quotes)
	doc := LibraryDocument{ExportedAt: exportedAt, Books: make([]BookDocument, 0, len(books))}
	for _, b := range books {
		bookQuotes := byBook[b.ID]
		if bookQuotes == nil {
			bookQuotes = []entities.Quote{}
		}
		doc.Books = append(doc.Books, BookDocument{Book: b, HasCover: b.HasCover(), Quotes: bookQuotes})
	}
	return doc
}
