// Package kindle reads the "My Clippings.txt" file a Kindle keeps for
// highlights, notes and bookmarks, and imports it into the library.
package kindle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type EntryType string

const (
	EntryTypeHighlight EntryType = "highlight"
	EntryTypeNote      EntryType = "note"
	EntryTypeBookmark  EntryType = "bookmark"
)

// ClippingEntry is one block between separator lines.
type ClippingEntry struct {
	Title       string
	Author      string
	Type        EntryType
	Page        int // 0 when the device reported none
	Location    int
	LocationEnd int
	AddedAt     time.Time
	Text        string
}

// Highlight is a highlighted passage with the note written at its end, if any.
// A note with no matching highlight becomes a Highlight with NoteOnly set and
// the note as Text.
type Highlight struct {
	Text     string
	Note     string
	Page     *int
	Location int
	AddedAt  time.Time
	NoteOnly bool
}

// Book groups the highlights of one title/author pair in file order.
type Book struct {
	Title      string
	Author     string
	Highlights []Highlight
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

const entrySeparator = "=========="

var (
	// "- Your Highlight on page 8 | Location 64-64 | Added on Tuesday, April 15, 2025 10:16:21 PM"
	// "- Your Bookmark at location 346 | Added on Saturday, 26 March 2016 15:46:21"
	metadataPattern = regexp.MustCompile(`(?i)^- Your (Highlight|Note|Bookmark)`)
	pagePattern     = regexp.MustCompile(`(?i)\bpage (\d+)`)
	locationPattern = regexp.MustCompile(`(?i)\blocation (\d+)(?:-(\d+))?`)

	dateLayouts = []string{
		"Monday, January 2, 2006 3:04:05 PM",
		"Monday, January 2, 2006 15:04:05",
		"Monday, 2 January 2006 3:04:05 PM",
		"Monday, 2 January 2006 15:04:05",
	}

	// "Book Title (Author Name)"; the last parenthesised group is the author
	titleAuthorPattern = regexp.MustCompile(`^(.+?)\s*\(([^()]+)\)\s*$`)
)

// Parse reads clippings and groups highlights and notes into books.
func (p *Parser) Parse(r io.Reader) ([]Book, error) {
	entries, err := p.ParseEntries(r)
	if err != nil {
		return nil, err
	}
	return groupIntoBooks(entries), nil
}

// ParseEntries returns every highlight and note entry. Bookmarks, empty
// entries and blocks that don't look like clippings are skipped.
func (p *Parser) ParseEntries(r io.Reader) ([]ClippingEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var entries []ClippingEntry
	var block []string

	flush := func() {
		if entry, ok := parseEntry(block); ok {
			entries = append(entries, entry)
		}
		block = nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == entrySeparator {
			flush()
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading clippings: %w", err)
	}
	flush()

	return entries, nil
}

func parseEntry(lines []string) (ClippingEntry, bool) {
	// Leading blank lines show up between some entries
	for len(lines) > 0 && strings.TrimSpace(stripBOM(lines[0])) == "" {
		lines = lines[1:]
	}
	if len(lines) < 2 {
		return ClippingEntry{}, false
	}

	meta := strings.TrimSpace(lines[1])
	m := metadataPattern.FindStringSubmatch(meta)
	if m == nil {
		return ClippingEntry{}, false
	}
	entryType := EntryType(strings.ToLower(m[1]))
	if entryType == EntryTypeBookmark {
		return ClippingEntry{}, false
	}

	text := strings.TrimSpace(strings.Join(lines[2:], "\n"))
	if text == "" {
		return ClippingEntry{}, false
	}

	title, author := ParseTitleAuthor(lines[0])
	location, locationEnd := parseLocation(meta)

	return ClippingEntry{
		Title:       title,
		Author:      author,
		Type:        entryType,
		Page:        parsePage(meta),
		Location:    location,
		LocationEnd: locationEnd,
		AddedAt:     parseDate(meta),
		Text:        text,
	}, true
}

// ParseTitleAuthor splits "Title (Author)". Without a trailing parenthesised
// author the whole line is the title.
func ParseTitleAuthor(line string) (title, author string) {
	line = strings.TrimSpace(stripBOM(line))
	if m := titleAuthorPattern.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return line, ""
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}

func parsePage(meta string) int {
	if m := pagePattern.FindStringSubmatch(meta); m != nil {
		page, _ := strconv.Atoi(m[1])
		return page
	}
	return 0
}

func parseLocation(meta string) (start, end int) {
	m := locationPattern.FindStringSubmatch(meta)
	if m == nil {
		return 0, 0
	}
	start, _ = strconv.Atoi(m[1])
	end = start
	if m[2] != "" {
		end, _ = strconv.Atoi(m[2])
	}
	return start, end
}

func parseDate(meta string) time.Time {
	idx := strings.Index(strings.ToLower(meta), "added on ")
	if idx < 0 {
		return time.Time{}
	}
	value := strings.TrimSpace(meta[idx+len("added on "):])
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func groupIntoBooks(entries []ClippingEntry) []Book {
	var books []*Book
	index := make(map[string]*Book)
	// Where each highlight ends, per book, so a note can find it
	ends := make(map[*Book]map[int]int)

	bookFor := func(e ClippingEntry) *Book {
		key := strings.ToLower(e.Title) + "|" + strings.ToLower(e.Author)
		if b, ok := index[key]; ok {
			return b
		}
		b := &Book{Title: e.Title, Author: e.Author}
		index[key] = b
		books = append(books, b)
		ends[b] = make(map[int]int)
		return b
	}

	for _, e := range entries {
		book := bookFor(e)

		if e.Type == EntryTypeNote {
			a := anchor(e.Location, e.Page)
			if i, ok := ends[book][a]; ok && a != 0 {
				h := &book.Highlights[i]
				if h.Note == "" {
					h.Note = e.Text
				} else {
					h.Note += "\n\n" + e.Text
				}
				continue
			}
			book.Highlights = append(book.Highlights, Highlight{
				Text:     e.Text,
				Page:     pagePtr(e.Page),
				Location: e.Location,
				AddedAt:  e.AddedAt,
				NoteOnly: true,
			})
			continue
		}

		book.Highlights = append(book.Highlights, Highlight{
			Text:     e.Text,
			Page:     pagePtr(e.Page),
			Location: e.Location,
			AddedAt:  e.AddedAt,
		})
		if a := anchor(e.LocationEnd, e.Page); a != 0 {
			ends[book][a] = len(book.Highlights) - 1
		}
	}

	out := make([]Book, 0, len(books))
	for _, b := range books {
		out = append(out, *b)
	}
	return out
}

// anchor prefers the location; page numbers are negated so they never
// collide with locations.
func anchor(location, page int) int {
	if location > 0 {
		return location
	}
	if page > 0 {
		return -page
	}
	return 0
}

func pagePtr(page int) *int {
	if page <= 0 {
		return nil
	}
	return &page
}
