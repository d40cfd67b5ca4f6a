package library

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mrlokans/quotevault/internal/entities"
)

// QuoteFilter narrows FindQuotes. Zero values match everything.
type QuoteFilter struct {
	// Query matches quote content or the owning book's title or author, ignoring
	// case. Within one book (BookID set) it matches content only.
	Query string
	// BookID restricts results to one book.
	BookID string
	// FavoritesOnly keeps favourite quotes only.
	FavoritesOnly bool
	// TagPattern is a glob such as "philo*" matched against each tag.
	TagPattern string
}

// Stats summarises the library.
type Stats struct {
	Books      int `json:"books"`
	Quotes     int `json:"quotes"`
	Favourites int `json:"favourites"`
}

// Picker chooses an index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	Intn(n int) int
}

// Books returns every book in stored order.
func (s *Store) Books() []entities.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, *cloneBook(b))
	}
	return out
}

// Quotes returns every quote in stored order.
func (s *Store) Quotes() []entities.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		out = append(out, *cloneQuote(q))
	}
	return out
}

// Snapshot returns every book and quote, read under one lock so each quote's
// book is present.
func (s *Store) Snapshot() ([]entities.Book, []entities.Quote) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]entities.Book, 0, len(s.books))
	for _, b := range s.books {
		books = append(books, *cloneBook(b))
	}
	quotes := make([]entities.Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		quotes = append(quotes, *cloneQuote(q))
	}
	return books, quotes
}

// SearchBooks returns books whose title or author contains query, ignoring
// case, in stored order. An empty query returns all books.
func (s *Store) SearchBooks(query string) []entities.Book {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.Books()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []entities.Book{}
	for _, b := range s.books {
		if bookMatches(b, query) {
			out = append(out, *cloneBook(b))
		}
	}
	return out
}

// FindQuotes returns the quotes matching filter, most recent first. Quotes
// created at the same instant keep their stored order.
func (s *Store) FindQuotes(filter QuoteFilter) ([]entities.Quote, error) {
	var tagGlob glob.Glob
	if pattern := strings.TrimSpace(filter.TagPattern); pattern != "" {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidTagPattern, pattern, err)
		}
		tagGlob = g
	}
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	s.mu.RLock()
	books := make(map[string]entities.Book, len(s.books))
	for _, b := range s.books {
		books[b.ID] = b
	}

	out := []entities.Quote{}
	for _, q := range s.quotes {
		if filter.BookID != "" && q.BookID != filter.BookID {
			continue
		}
		if filter.FavoritesOnly && !q.IsFavorite {
			continue
		}
		if tagGlob != nil && !anyTagMatches(q.Tags, tagGlob) {
			continue
		}
		if query != "" && !quoteMatches(q, books[q.BookID], query, filter.BookID == "") {
			continue
		}
		out = append(out, *cloneQuote(q))
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// DailyQuote picks a random quote, preferring favourites when there are any,
// and returns it with its book. A nil picker uses the global random source.
func (s *Store) DailyQuote(p Picker) (*entities.Quote, *entities.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.quotes) == 0 {
		return nil, nil, ErrNoQuotes
	}

	pool := make([]entities.Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		if q.IsFavorite {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		pool = s.quotes
	}

	var i int
	if p != nil {
		i = p.Intn(len(pool))
	} else {
		i = rand.Intn(len(pool))
	}
	quote := pool[i]

	bi := s.bookIndex(quote.BookID)
	if bi < 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrBookNotFound, quote.BookID)
	}
	return cloneQuote(quote), cloneBook(s.books[bi]), nil
}

// ShareQuote renders the share text of a quote.
func (s *Store) ShareQuote(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	qi := s.quoteIndex(id)
	if qi < 0 {
		return "", fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}
	quote := s.quotes[qi]

	bi := s.bookIndex(quote.BookID)
	if bi < 0 {
		return "", fmt.Errorf("%w: %s", ErrBookNotFound, quote.BookID)
	}
	return ShareText(quote, s.books[bi]), nil
}

// Stats counts books, quotes and favourite quotes.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Books: len(s.books), Quotes: len(s.quotes)}
	for _, q := range s.quotes {
		if q.IsFavorite {
			stats.Favourites++
		}
	}
	return stats
}

// quoteMatches expects a lowercased query.
func quoteMatches(q entities.Quote, b entities.Book, query string, includeBook bool) bool {
	if strings.Contains(strings.ToLower(q.Content), query) {
		return true
	}
	return includeBook && bookMatches(b, query)
}

// bookMatches expects a lowercased query.
func bookMatches(b entities.Book, query string) bool {
	return strings.Contains(strings.ToLower(b.Title), query) ||
		strings.Contains(strings.ToLower(b.Author), query)
}

func anyTagMatches(tags []string, g glob.Glob) bool {
	for _, t := range tags {
		if g.Match(t) {
			return true
		}
	}
	return false
}
