package exporters

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/quotevault/internal/covers"
	"github.com/mrlokans/quotevault/internal/entities"
	"github.com/mrlokans/quotevault/internal/utils"
)

// MarkdownExporter writes one markdown file per book into Dir/books, with the
// cover image saved alongside in Dir/books/covers.
type MarkdownExporter struct {
	Dir string
	Now func() time.Time
}

func NewMarkdownExporter(dir string) *MarkdownExporter {
	return &MarkdownExporter{Dir: dir, Now: time.Now}
}

type frontMatter struct {
	Title       string   `yaml:"title"`
	Author      string   `yaml:"author"`
	ContentType string   `yaml:"content_type"`
	AddedAt     string   `yaml:"added_at"`
	ExportedAt  string   `yaml:"exported_at"`
	Quotes      int      `yaml:"quotes"`
	Favourites  int      `yaml:"favourites"`
	Cover       string   `yaml:"cover,omitempty"`
	Tags        []string `yaml:"tags"`
}

func (exporter *MarkdownExporter) Export(books []entities.Book, quotes []entities.Quote) (ExportResult, error) {
	result := ExportResult{}

	bookDir := filepath.Join(exporter.Dir, "books")
	if err := os.MkdirAll(bookDir, 0755); err != nil {
		return result, fmt.Errorf("failed to create export directory: %w", err)
	}
	coverStore, err := covers.NewStore(filepath.Join(bookDir, "covers"))
	if err != nil {
		return result, err
	}

	byBook := groupQuotes(quotes)
	taken := make(map[string]bool)

	for _, book := range books {
		stem := strings.TrimSuffix(utils.UniqueFilename(utils.SanitizeFilename(book.Title), ".md", taken), ".md")

		coverName := ""
		if book.HasCover() {
			name, err := coverStore.Write(stem, book.CoverImage)
			if err != nil {
				log.Printf("Failed to write cover for '%s': %v", book.Title, err)
			} else {
				coverName = name
				result.CoversWritten++
			}
		}

		bookQuotes := byBook[book.ID]
		content, err := GenerateMarkdown(book, bookQuotes, coverName, exporter.now())
		if err == nil {
			err = os.WriteFile(filepath.Join(bookDir, stem+".md"), []byte(content), 0644)
		}
		if err != nil {
			log.Printf("Failed to export '%s' by %s: %v", book.Title, book.Author, err)
			result.BooksFailed++
			continue
		}

		result.BooksProcessed++
		result.QuotesProcessed += len(bookQuotes)
	}

	return result, nil
}

func (exporter *MarkdownExporter) now() time.Time {
	if exporter.Now == nil {
		return time.Now()
	}
	return exporter.Now()
}

// GenerateMarkdown renders a book and its quotes. coverName, when set, is
// linked relative to the markdown file.
func GenerateMarkdown(book entities.Book, quotes []entities.Quote, coverName string, exportedAt time.Time) (string, error) {
	favourites := 0
	for _, q := range quotes {
		if q.IsFavorite {
			favourites++
		}
	}

	fm := frontMatter{
		Title:       book.Title,
		Author:      book.Author,
		ContentType: "book_quotes",
		AddedAt:     book.CreatedAt.Format("2006-01-02"),
		ExportedAt:  exportedAt.Format("2006-01-02"),
		Quotes:      len(quotes),
		Favourites:  favourites,
		Tags:        []string{"quotes", "books"},
	}
	if coverName != "" {
		fm.Cover = "covers/" + coverName
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}
	buf.WriteString("---\n\n")

	fmt.Fprintf(&buf, "# %s\n\n", book.Title)
	fmt.Fprintf(&buf, "*%s*\n\n", book.Author)
	if fm.Cover != "" {
		fmt.Fprintf(&buf, "![cover](%s)\n\n", fm.Cover)
	}
	buf.WriteString("## Quotes\n\n")

	for _, q := range quotes {
		heading := q.CreatedAt.Format("2006-01-02 15:04")
		if q.IsFavorite {
			heading += " ★"
		}
		fmt.Fprintf(&buf, "### %s\n\n", heading)
		fmt.Fprintf(&buf, "> %s\n\n", strings.ReplaceAll(q.Content, "\n", "\n> "))

		var location []string
		if q.Page != nil {
			location = append(location, fmt.Sprintf("Page %d", *q.Page))
		}
		if q.Chapter != "" {
			location = append(location, "Chapter: "+q.Chapter)
		}
		if len(location) > 0 {
			fmt.Fprintf(&buf, "%s\n\n", strings.Join(location, " · "))
		}
		if q.Notes != "" {
			fmt.Fprintf(&buf, "**Note:** %s\n\n", q.Notes)
		}
		if len(q.Tags) > 0 {
			tags := make([]string, 0, len(q.Tags))
			for _, t := range q.Tags {
				tags = append(tags, "#"+strings.ReplaceAll(t, " ", "-"))
			}
			fmt.Fprintf(&buf, "%s\n\n", strings.Join(tags, " "))
		}
	}

	return buf.String(), nil
}
