// Package library holds the in-memory book and quote collections.
//
// The Store is the single source of truth for reads and writes. It keeps both
// collections in insertion order, enforces that every quote references a book
// it holds, and writes the affected collection(s) through a KeyValueStore
// after each mutation before returning.
//
// # Usage
//
//	store := library.NewStore(db.Blobs(), library.DefaultConfig())
//	book, err := store.AddBook("Dune", "Frank Herbert", nil)
//	quote, err := store.AddQuote(library.QuoteInput{Content: "Fear is the mind-killer.", BookID: book.ID})
//	removed, err := store.DeleteBook(book.ID) // cascades to the book's quotes
//
// # Persistence failures
//
// Loading never fails: an unreadable blob starts the collection empty.
// Saving is best effort by default: failures are logged and the in-memory
// change stands. With Config.StrictPersistence the change still stands but
// the mutation also returns an error wrapping ErrPersistence.
package library

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mrlokans/quotevault/internal/entities"
)

// Config holds the store's collaborators and policies.
type Config struct {
	// IDs generates identifiers for new books and quotes. Default: UUIDGenerator.
	IDs IDGenerator

	// Now stamps CreatedAt. Default: time.Now.
	Now func() time.Time

	// Namespace prefixes storage keys. Default: "quotevault".
	Namespace string

	// StrictPersistence surfaces save failures to callers. Default: false.
	StrictPersistence bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		IDs:       UUIDGenerator{},
		Now:       time.Now,
		Namespace: DefaultNamespace,
	}
}

// QuoteInput carries the fields of a new quote. Page, Chapter and Notes are optional.
type QuoteInput struct {
	Content string
	BookID  string
	Page    *int
	Chapter string
	Notes   string
	Tags    []string
}

// QuoteEdit changes selected fields of an existing quote. Nil fields are left
// alone; ClearPage removes the page.
type QuoteEdit struct {
	Content   *string
	Page      *int
	ClearPage bool
	Chapter   *string
	Notes     *string
}

type Store struct {
	mu     sync.RWMutex
	books  []entities.Book
	quotes []entities.Quote

	collections *Collections
	ids         IDGenerator
	now         func() time.Time
	strict      bool

	events broadcaster
}

// NewStore loads both collections from kv and returns a ready store.
// Quotes whose book did not load are dropped from memory.
func NewStore(kv KeyValueStore, cfg Config) *Store {
	defaults := DefaultConfig()
	if cfg.IDs == nil {
		cfg.IDs = defaults.IDs
	}
	if cfg.Now == nil {
		cfg.Now = defaults.Now
	}

	s := &Store{
		collections: NewCollections(kv, cfg.Namespace),
		ids:         cfg.IDs,
		now:         cfg.Now,
		strict:      cfg.StrictPersistence,
	}

	s.books = s.collections.LoadBooks()
	quotes := s.collections.LoadQuotes()
	s.quotes = s.withoutOrphans(quotes)
	if dropped := len(quotes) - len(s.quotes); dropped > 0 {
		log.Printf("Dropped %d quotes referencing missing books", dropped)
	}

	log.Printf("Library loaded: %d books, %d quotes", len(s.books), len(s.quotes))
	return s
}

// Subscribe registers l for every committed change. The returned function
// unsubscribes; calling it more than once is harmless.
func (s *Store) Subscribe(l Listener) func() {
	return s.events.subscribe(l)
}

// Ping checks the persistence backend.
func (s *Store) Ping() error {
	return s.collections.kv.Ping()
}

// --- Books ---

// AddBook creates a book. Title and author are trimmed and must not be empty.
// With StrictPersistence a save failure returns the created book together
// with an ErrPersistence error.
func (s *Store) AddBook(title, author string, cover []byte) (*entities.Book, error) {
	fields := bookFields{Title: strings.TrimSpace(title), Author: strings.TrimSpace(author)}
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	s.mu.Lock()
	book := s.newBook(fields.Title, fields.Author, cover)
	s.books = append(s.books, book)
	err := s.commit(true, false)
	s.mu.Unlock()

	s.events.publish(Change{Kind: ChangeBookAdded, BookIDs: []string{book.ID}})
	return cloneBook(book), err
}

// GetBook returns the book with the given id.
func (s *Store) GetBook(id string) (*entities.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.bookIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrBookNotFound, id)
	}
	return cloneBook(s.books[i]), nil
}

// DeleteBook removes a book and every quote referencing it in one step.
// It returns how many quotes were removed with the book.
func (s *Store) DeleteBook(id string) (int, error) {
	s.mu.Lock()
	i := s.bookIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return 0, fmt.Errorf("%w: %s", ErrBookNotFound, id)
	}
	change, err := s.removeBookAt(i)
	s.mu.Unlock()

	s.events.publish(change)
	return len(change.QuoteIDs), err
}

// DeleteBookAt removes the book at the given stored position, cascading like DeleteBook.
func (s *Store) DeleteBookAt(index int) (int, error) {
	s.mu.Lock()
	if index < 0 || index >= len(s.books) {
		s.mu.Unlock()
		return 0, fmt.Errorf("%w: position %d", ErrBookNotFound, index)
	}
	change, err := s.removeBookAt(index)
	s.mu.Unlock()

	s.events.publish(change)
	return len(change.QuoteIDs), err
}

// ImportBook adds quotes to the book matching title and author exactly,
// creating the book first if needed. Quotes whose content already exists for
// that book are skipped. All inputs are validated before anything changes.
// It returns the book and the number of quotes added.
func (s *Store) ImportBook(title, author string, inputs []QuoteInput) (*entities.Book, int, error) {
	fields := bookFields{Title: strings.TrimSpace(title), Author: strings.TrimSpace(author)}
	if err := validateFields(fields); err != nil {
		return nil, 0, err
	}

	prepared := make([]QuoteInput, 0, len(inputs))
	for i, in := range inputs {
		in = normalizeQuoteInput(in)
		if err := validateFields(quoteFields{Content: in.Content, Page: in.Page}); err != nil {
			return nil, 0, fmt.Errorf("quote %d: %w", i, err)
		}
		prepared = append(prepared, in)
	}

	s.mu.Lock()

	created := false
	i := s.bookIndexByTitleAuthor(fields.Title, fields.Author)
	if i < 0 {
		s.books = append(s.books, s.newBook(fields.Title, fields.Author, nil))
		i = len(s.books) - 1
		created = true
	}
	book := s.books[i]

	seen := make(map[string]bool)
	for _, q := range s.quotes {
		if q.BookID == book.ID {
			seen[q.Content] = true
		}
	}

	var added []string
	for _, in := range prepared {
		if seen[in.Content] {
			continue
		}
		seen[in.Content] = true
		in.BookID = book.ID
		q := s.newQuote(in)
		s.quotes = append(s.quotes, q)
		added = append(added, q.ID)
	}

	var err error
	if created || len(added) > 0 {
		err = s.commit(created, len(added) > 0)
	}
	s.mu.Unlock()

	if created || len(added) > 0 {
		s.events.publish(Change{Kind: ChangeBookImported, BookIDs: []string{book.ID}, QuoteIDs: added})
	}
	return cloneBook(book), len(added), err
}

// --- Quotes ---

// AddQuote creates a quote for an existing book. Content is trimmed and must
// not be empty; a page, when given, must not be negative. An unknown BookID
// fails with ErrUnknownBook.
func (s *Store) AddQuote(input QuoteInput) (*entities.Quote, error) {
	input = normalizeQuoteInput(input)
	if err := validateFields(quoteFields{Content: input.Content, Page: input.Page}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.bookIndex(input.BookID) < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownBook, input.BookID)
	}
	quote := s.newQuote(input)
	s.quotes = append(s.quotes, quote)
	err := s.commit(false, true)
	s.mu.Unlock()

	s.events.publish(Change{Kind: ChangeQuoteAdded, BookIDs: []string{quote.BookID}, QuoteIDs: []string{quote.ID}})
	return cloneQuote(quote), err
}

// GetQuote returns the quote with the given id.
func (s *Store) GetQuote(id string) (*entities.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.quoteIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}
	return cloneQuote(s.quotes[i]), nil
}

// GetQuotes returns the quotes of a book in stored order. The result is
// empty, never nil, when the book has no quotes or does not exist.
func (s *Store) GetQuotes(bookID string) []entities.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []entities.Quote{}
	for _, q := range s.quotes {
		if q.BookID == bookID {
			out = append(out, *cloneQuote(q))
		}
	}
	return out
}

// DeleteQuote removes a quote.
func (s *Store) DeleteQuote(id string) error {
	s.mu.Lock()
	i := s.quoteIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}
	change, err := s.removeQuoteAt(i)
	s.mu.Unlock()

	s.events.publish(change)
	return err
}

// DeleteQuoteAt removes the quote at the given stored position.
func (s *Store) DeleteQuoteAt(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.quotes) {
		s.mu.Unlock()
		return fmt.Errorf("%w: position %d", ErrQuoteNotFound, index)
	}
	change, err := s.removeQuoteAt(index)
	s.mu.Unlock()

	s.events.publish(change)
	return err
}

// ToggleFavorite flips the favourite flag of a quote and returns the updated quote.
func (s *Store) ToggleFavorite(id string) (*entities.Quote, error) {
	s.mu.Lock()
	i := s.quoteIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}
	s.quotes[i].IsFavorite = !s.quotes[i].IsFavorite
	quote := s.quotes[i]
	err := s.commit(false, true)
	s.mu.Unlock()

	s.events.publish(Change{Kind: ChangeFavoriteToggled, BookIDs: []string{quote.BookID}, QuoteIDs: []string{quote.ID}})
	return cloneQuote(quote), err
}

// UpdateQuote applies edit to a quote. The result is validated like a new quote.
func (s *Store) UpdateQuote(id string, edit QuoteEdit) (*entities.Quote, error) {
	s.mu.Lock()
	i := s.quoteIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}

	updated := *cloneQuote(s.quotes[i])
	if edit.Content != nil {
		updated.Content = strings.TrimSpace(*edit.Content)
	}
	if edit.ClearPage {
		updated.Page = nil
	} else if edit.Page != nil {
		page := *edit.Page
		updated.Page = &page
	}
	if edit.Chapter != nil {
		updated.Chapter = strings.TrimSpace(*edit.Chapter)
	}
	if edit.Notes != nil {
		updated.Notes = strings.TrimSpace(*edit.Notes)
	}

	if err := validateFields(quoteFields{Content: updated.Content, Page: updated.Page}); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	s.quotes[i] = updated
	err := s.commit(false, true)
	s.mu.Unlock()

	s.events.publish(Change{Kind: ChangeQuoteUpdated, BookIDs: []string{updated.BookID}, QuoteIDs: []string{updated.ID}})
	return cloneQuote(updated), err
}

// SetTags replaces the tags of a quote. Tags are trimmed and empty ones dropped.
func (s *Store) SetTags(id string, tags []string) (*entities.Quote, error) {
	s.mu.Lock()
	i := s.quoteIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}
	s.quotes[i].Tags = normalizeTags(tags)
	quote := s.quotes[i]
	err := s.commit(false, true)
	s.mu.Unlock()

	s.events.publish(Change{Kind: ChangeQuoteUpdated, BookIDs: []string{quote.BookID}, QuoteIDs: []string{quote.ID}})
	return cloneQuote(quote), err
}

// --- internals; callers hold s.mu ---

func (s *Store) newBook(title, author string, cover []byte) entities.Book {
	id := s.ids.Next()
	for s.bookIndex(id) >= 0 {
		id = s.ids.Next()
	}

	var coverImage []byte
	if len(cover) > 0 {
		coverImage = slices.Clone(cover)
	}

	return entities.Book{
		ID:         id,
		Title:      title,
		Author:     author,
		CoverImage: coverImage,
		CreatedAt:  s.now().UTC(),
	}
}

func (s *Store) newQuote(in QuoteInput) entities.Quote {
	id := s.ids.Next()
	for s.quoteIndex(id) >= 0 {
		id = s.ids.Next()
	}

	var page *int
	if in.Page != nil {
		p := *in.Page
		page = &p
	}

	return entities.Quote{
		ID:        id,
		Content:   in.Content,
		BookID:    in.BookID,
		Page:      page,
		Chapter:   in.Chapter,
		Notes:     in.Notes,
		CreatedAt: s.now().UTC(),
		Tags:      normalizeTags(in.Tags),
	}
}

func (s *Store) removeBookAt(i int) (Change, error) {
	book := s.books[i]
	s.books = slices.Delete(s.books, i, i+1)

	remaining := make(map[string]bool, len(s.books))
	for _, b := range s.books {
		remaining[b.ID] = true
	}

	var removed []string
	kept := make([]entities.Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		if remaining[q.BookID] {
			kept = append(kept, q)
		} else {
			removed = append(removed, q.ID)
		}
	}
	s.quotes = kept

	err := s.commit(true, len(removed) > 0)
	return Change{Kind: ChangeBookDeleted, BookIDs: []string{book.ID}, QuoteIDs: removed}, err
}

func (s *Store) removeQuoteAt(i int) (Change, error) {
	quote := s.quotes[i]
	s.quotes = slices.Delete(s.quotes, i, i+1)
	err := s.commit(false, true)
	return Change{Kind: ChangeQuoteDeleted, BookIDs: []string{quote.BookID}, QuoteIDs: []string{quote.ID}}, err
}

// commit writes the requested collections. Failures are logged; they are
// returned only in strict mode.
func (s *Store) commit(books, quotes bool) error {
	var errs []error
	if books {
		if err := s.collections.SaveBooks(s.books); err != nil {
			errs = append(errs, err)
		}
	}
	if quotes {
		if err := s.collections.SaveQuotes(s.quotes); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}

	err := errors.Join(errs...)
	log.Printf("Failed to persist library: %v", err)
	if s.strict {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func (s *Store) withoutOrphans(quotes []entities.Quote) []entities.Quote {
	known := make(map[string]bool, len(s.books))
	for _, b := range s.books {
		known[b.ID] = true
	}
	kept := make([]entities.Quote, 0, len(quotes))
	for _, q := range quotes {
		if known[q.BookID] {
			kept = append(kept, q)
		}
	}
	return kept
}

func (s *Store) bookIndex(id string) int {
	for i, b := range s.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) bookIndexByTitleAuthor(title, author string) int {
	for i, b := range s.books {
		if b.Title == title && b.Author == author {
			return i
		}
	}
	return -1
}

func (s *Store) quoteIndex(id string) int {
	for i, q := range s.quotes {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func normalizeQuoteInput(in QuoteInput) QuoteInput {
	in.Content = strings.TrimSpace(in.Content)
	in.Chapter = strings.TrimSpace(in.Chapter)
	in.Notes = strings.TrimSpace(in.Notes)
	return in
}

func cloneBook(b entities.Book) *entities.Book {
	if b.CoverImage != nil {
		b.CoverImage = slices.Clone(b.CoverImage)
	}
	return &b
}

func cloneQuote(q entities.Quote) *entities.Quote {
	if q.Page != nil {
		p := *q.Page
		q.Page = &p
	}
	if q.Tags != nil {
		q.Tags = slices.Clone(q.Tags)
	}
	return &q
}
