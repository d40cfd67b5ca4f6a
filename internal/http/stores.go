package http

import (
	"github.com/mrlokans/quotevault/internal/entities"
	"github.com/mrlokans/quotevault/internal/library"
)

// Each controller takes the narrowest interface it needs; *library.Store
// satisfies all of them.

type BookStore interface {
	Books() []entities.Book
	SearchBooks(query string) []entities.Book
	GetBook(id string) (*entities.Book, error)
	AddBook(title, author string, cover []byte) (*entities.Book, error)
	DeleteBook(id string) (int, error)
	GetQuotes(bookID string) []entities.Quote
}

type QuoteStore interface {
	GetBook(id string) (*entities.Book, error)
	AddQuote(input library.QuoteInput) (*entities.Quote, error)
	GetQuote(id string) (*entities.Quote, error)
	FindQuotes(filter library.QuoteFilter) ([]entities.Quote, error)
	UpdateQuote(id string, edit library.QuoteEdit) (*entities.Quote, error)
	DeleteQuote(id string) error
	ToggleFavorite(id string) (*entities.Quote, error)
	SetTags(id string, tags []string) (*entities.Quote, error)
	ShareQuote(id string) (string, error)
	DailyQuote(p library.Picker) (*entities.Quote, *entities.Book, error)
}

type StatsReader interface {
	Stats() library.Stats
}

// Pinger checks that a backend is reachable.
type Pinger interface {
	Ping() error
}

// LibraryStore combines all store interfaces.
type LibraryStore interface {
	BookStore
	QuoteStore
	StatsReader
	Pinger
}
