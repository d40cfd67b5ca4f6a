package applebooks

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Apple Books uses Core Data timestamp format: seconds since 2001-01-01 00:00:00 UTC
var coreDataEpoch = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

type AnnotationStyle int

const (
	AnnotationStyleUnderline AnnotationStyle = 1
	AnnotationStyleGreen     AnnotationStyle = 2
	AnnotationStyleBlue      AnnotationStyle = 3
	AnnotationStyleYellow    AnnotationStyle = 4
	AnnotationStylePink      AnnotationStyle = 5
	AnnotationStylePurple    AnnotationStyle = 6
)

// Tag returns the quote tag for a highlight style, e.g. "yellow" or "underline".
func (s AnnotationStyle) Tag() string {
	switch s {
	case AnnotationStyleUnderline:
		return "underline"
	case AnnotationStyleGreen:
		return "green"
	case AnnotationStyleBlue:
		return "blue"
	case AnnotationStylePink:
		return "pink"
	case AnnotationStylePurple:
		return "purple"
	default:
		return "yellow"
	}
}

// Annotation is one row of the Apple Books annotation database joined with
// its book.
type Annotation struct {
	AssetID       string
	Title         string
	Author        string
	SelectedText  string
	Note          string
	RepresentText string
	Chapter       string
	Style         AnnotationStyle
	ModifiedDate  float64
	LocationStart int
}

// Highlight is an annotation reduced to what becomes a quote.
type Highlight struct {
	Text          string
	Note          string
	Chapter       string
	Style         AnnotationStyle
	Position      int
	HighlightedAt time.Time
}

// Book groups the highlights of one Apple Books asset.
type Book struct {
	AssetID    string
	Title      string
	Author     string
	Highlights []Highlight
}

type Reader struct {
	annotationDBPath string
	bookDBPath       string
}

func containerDir(parts ...string) (string, error) {
	if runtime.GOOS != "darwin" {
		return "", fmt.Errorf("Apple Books is only available on macOS")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	base := []string{homeDir, "Library", "Containers", "com.apple.iBooksX", "Data", "Documents"}
	return filepath.Join(append(base, parts...)...), nil
}

// findSQLite returns the first .sqlite file in dir.
func findSQLite(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".sqlite" {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("no .sqlite file found in %s", dir)
}

func DefaultAnnotationDBPath() (string, error) {
	dir, err := containerDir("AEAnnotation")
	if err != nil {
		return "", err
	}
	return findSQLite(dir)
}

func DefaultBookDBPath() (string, error) {
	dir, err := containerDir("BKLibrary")
	if err != nil {
		return "", err
	}
	return findSQLite(dir)
}

// NewReader opens nothing yet; it only resolves and checks the paths.
// Empty paths use the default macOS locations.
func NewReader(annotationDBPath, bookDBPath string) (*Reader, error) {
	var err error

	if annotationDBPath == "" {
		annotationDBPath, err = DefaultAnnotationDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to find annotation database: %w", err)
		}
	}

	if bookDBPath == "" {
		bookDBPath, err = DefaultBookDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to find book database: %w", err)
		}
	}

	if _, err := os.Stat(annotationDBPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("annotation database not found: %s", annotationDBPath)
	}
	if _, err := os.Stat(bookDBPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("book database not found: %s", bookDBPath)
	}

	return &Reader{
		annotationDBPath: annotationDBPath,
		bookDBPath:       bookDBPath,
	}, nil
}

func (r *Reader) AnnotationDBPath() string {
	return r.annotationDBPath
}

func (r *Reader) BookDBPath() string {
	return r.bookDBPath
}

// Annotations reads every live annotation that has a book with title and
// author and either text or a note.
func (r *Reader) Annotations() ([]Annotation, error) {
	annotationDB, err := sql.Open("sqlite3", r.annotationDBPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation database: %w", err)
	}
	defer annotationDB.Close()

	// ATTACH is per connection; keep the pool at one.
	annotationDB.SetMaxOpenConns(1)

	if _, err := annotationDB.Exec("ATTACH DATABASE ? AS books", r.bookDBPath); err != nil {
		return nil, fmt.Errorf("failed to attach book database: %w", err)
	}

	query := `
		SELECT
			ZANNOTATIONASSETID as asset_id,
			books.ZBKLIBRARYASSET.ZTITLE as title,
			books.ZBKLIBRARYASSET.ZAUTHOR as author,
			ZANNOTATIONSELECTEDTEXT as selected_text,
			ZANNOTATIONNOTE as note,
			ZANNOTATIONREPRESENTATIVETEXT as represent_text,
			ZFUTUREPROOFING5 as chapter,
			ZANNOTATIONSTYLE as style,
			ZANNOTATIONMODIFICATIONDATE as modified_date,
			ZPLLOCATIONRANGESTART as location_start
		FROM ZAEANNOTATION
		LEFT JOIN books.ZBKLIBRARYASSET
			ON ZAEANNOTATION.ZANNOTATIONASSETID = books.ZBKLIBRARYASSET.ZASSETID
		WHERE ZANNOTATIONDELETED = 0
			AND (title NOT NULL AND author NOT NULL)
			AND ((selected_text != '' AND selected_text NOT NULL) OR note NOT NULL)
		ORDER BY ZANNOTATIONASSETID, ZPLLOCATIONRANGESTART
	`

	rows, err := annotationDB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query highlights: %w", err)
	}
	defer rows.Close()

	var annotations []Annotation

	for rows.Next() {
		var a Annotation
		var selectedText, note, representText, chapter sql.NullString
		var style sql.NullInt64
		var modifiedDate sql.NullFloat64
		var locationStart sql.NullInt64

		err := rows.Scan(
			&a.AssetID,
			&a.Title,
			&a.Author,
			&selectedText,
			&note,
			&representText,
			&chapter,
			&style,
			&modifiedDate,
			&locationStart,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		a.SelectedText = selectedText.String
		a.Note = note.String
		a.RepresentText = representText.String
		a.Chapter = chapter.String
		a.Style = AnnotationStyle(style.Int64)
		a.ModifiedDate = modifiedDate.Float64
		a.LocationStart = int(locationStart.Int64)

		annotations = append(annotations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return annotations, nil
}

// Books groups annotations by asset, keeping the order they were read in.
func (r *Reader) Books() ([]Book, error) {
	annotations, err := r.Annotations()
	if err != nil {
		return nil, err
	}
	return groupBooks(annotations), nil
}

func groupBooks(annotations []Annotation) []Book {
	bookMap := make(map[string]*Book)
	var bookOrder []string

	for _, a := range annotations {
		// Prefer selected text, fall back to the representative text
		text := a.SelectedText
		if text == "" {
			text = a.RepresentText
		}
		if text == "" && a.Note == "" {
			continue
		}

		book, exists := bookMap[a.AssetID]
		if !exists {
			book = &Book{AssetID: a.AssetID, Title: a.Title, Author: a.Author}
			bookMap[a.AssetID] = book
			bookOrder = append(bookOrder, a.AssetID)
		}

		var highlightedAt time.Time
		if a.ModifiedDate != 0 {
			highlightedAt = coreDataEpoch.Add(time.Duration(a.ModifiedDate * float64(time.Second)))
		}

		book.Highlights = append(book.Highlights, Highlight{
			Text:          text,
			Note:          a.Note,
			Chapter:       a.Chapter,
			Style:         a.Style,
			Position:      a.LocationStart,
			HighlightedAt: highlightedAt,
		})
	}

	books := make([]Book, 0, len(bookOrder))
	for _, key := range bookOrder {
		books = append(books, *bookMap[key])
	}
	return books
}
