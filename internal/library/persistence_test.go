package library

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotevault/internal/database/blobs"
	"github.com/mrlokans/quotevault/internal/entities"
)

type failingKV struct {
	err error
}

func (f failingKV) Get(string) ([]byte, error) { return nil, f.err }
func (f failingKV) Put(string, []byte) error   { return f.err }
func (f failingKV) Ping() error                 { return f.err }

func TestCollections_Key(t *testing.T) {
	c := NewCollections(blobs.NewMemory(), "")
	assert.Equal(t, "quotevault.saved_books", c.Key(CollectionBooks))
	assert.Equal(t, "quotevault.saved_quotes", c.Key(CollectionQuotes))

	c = NewCollections(blobs.NewMemory(), "journal")
	assert.Equal(t, "journal.saved_books", c.Key(CollectionBooks))
}

func TestCollections_RoundTrip(t *testing.T) {
	c := NewCollections(blobs.NewMemory(), "test")
	created := time.Date(2025, 7, 9, 10, 30, 0, 123456789, time.UTC)
	page := 42

	books := []entities.Book{
		{ID: "b1", Title: "Dune", Author: "Herbert", CoverImage: []byte{0xFF, 0xD8, 0x00}, CreatedAt: created},
		{ID: "b2", Title: "Emma", Author: "Austen", CreatedAt: created.Add(time.Hour)},
	}
	quotes := []entities.Quote{
		{ID: "q1", Content: "Fear", BookID: "b1", Page: &page, Chapter: "1", Notes: "n", CreatedAt: created, IsFavorite: true, Tags: []string{"a", "b"}},
		{ID: "q2", Content: "Vanity", BookID: "b2", CreatedAt: created, Tags: []string{}},
	}

	require.NoError(t, c.SaveBooks(books))
	require.NoError(t, c.SaveQuotes(quotes))

	assert.Equal(t, books, c.LoadBooks())
	assert.Equal(t, quotes, c.LoadQuotes())
}

func TestCollections_SaveOverwrites(t *testing.T) {
	c := NewCollections(blobs.NewMemory(), "test")

	require.NoError(t, c.SaveBooks([]entities.Book{{ID: "b1", Title: "A", Author: "x"}}))
	require.NoError(t, c.SaveBooks(nil))

	loaded := c.LoadBooks()
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestCollections_LoadFallsBackToEmpty(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"garbage", "definitely not json"},
		{"null", "null"},
		{"object instead of array", `{"id":"b1"}`},
		{"missing required field", `[{"id":"q1","book_id":"b1","created_at":"2025-07-09T10:00:00Z"}]`},
		{"negative page", `[{"id":"q1","content":"c","book_id":"b1","page":-3,"created_at":"2025-07-09T10:00:00Z"}]`},
		{"bad timestamp", `[{"id":"q1","content":"c","book_id":"b1","created_at":"yesterday"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := blobs.NewMemory()
			c := NewCollections(kv, "test")
			require.NoError(t, kv.Put(c.Key(CollectionQuotes), []byte(tt.blob)))

			loaded := c.LoadQuotes()
			assert.NotNil(t, loaded)
			assert.Empty(t, loaded)
		})
	}
}

func TestCollections_MissingKey(t *testing.T) {
	c := NewCollections(blobs.NewMemory(), "test")
	assert.Empty(t, c.LoadBooks())
	assert.Empty(t, c.LoadQuotes())
}

func TestCollections_StorageErrors(t *testing.T) {
	c := NewCollections(failingKV{err: errors.New("io error")}, "test")

	assert.Empty(t, c.LoadBooks())

	err := c.SaveQuotes([]entities.Quote{{ID: "q1"}})
	assert.ErrorContains(t, err, "store quotes")
	assert.ErrorContains(t, err, "io error")
}

func TestNewStore_UnreadableStorage(t *testing.T) {
	s := NewStore(failingKV{err: errors.New("io error")}, testConfig())

	assert.Empty(t, s.Books())
	assert.Empty(t, s.Quotes())
	assert.Error(t, s.Ping())

	// In-session consistency holds even though nothing is durable.
	book, err := s.AddBook("Dune", "Herbert", nil)
	require.NoError(t, err)
	assert.Len(t, s.GetQuotes(book.ID), 0)
}
