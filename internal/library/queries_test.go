package library

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotevault/internal/entities"
)

type fixedPicker int

func (p fixedPicker) Intn(n int) int {
	return int(p) % n
}

func contents(quotes []entities.Quote) []string {
	out := make([]string, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, q.Content)
	}
	return out
}

func TestStore_SearchBooks(t *testing.T) {
	s, _ := setupTestStore(t)
	mustAddBook(t, s, "Dune", "Frank Herbert")
	mustAddBook(t, s, "Emma", "Jane Austen")
	mustAddBook(t, s, "Children of Dune", "Frank Herbert")

	assert.Len(t, s.SearchBooks(""), 3)
	assert.Len(t, s.SearchBooks("dune"), 2)
	assert.Len(t, s.SearchBooks("AUSTEN"), 1)
	assert.Len(t, s.SearchBooks("frank"), 2)

	none := s.SearchBooks("tolstoy")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestStore_FindQuotes(t *testing.T) {
	s, _ := setupTestStore(t)
	dune := mustAddBook(t, s, "Dune", "Herbert")
	emma := mustAddBook(t, s, "Emma", "Austen")

	fear := mustAddQuote(t, s, dune.ID, "Fear is the mind-killer")
	_, err := s.SetTags(fear.ID, []string{"philosophy", "fear"})
	require.NoError(t, err)
	mustAddQuote(t, s, emma.ID, "Vanity working on a weak head")
	spice := mustAddQuote(t, s, dune.ID, "The spice must flow")
	_, err = s.ToggleFavorite(spice.ID)
	require.NoError(t, err)

	t.Run("most recent first without filters", func(t *testing.T) {
		quotes, err := s.FindQuotes(QuoteFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"The spice must flow", "Vanity working on a weak head", "Fear is the mind-killer"}, contents(quotes))

		// Stored order is untouched.
		assert.Equal(t, "Fear is the mind-killer", s.Quotes()[0].Content)
	})

	t.Run("query matches content", func(t *testing.T) {
		quotes, err := s.FindQuotes(QuoteFilter{Query: "SPICE"})
		require.NoError(t, err)
		assert.Equal(t, []string{"The spice must flow"}, contents(quotes))
	})

	t.Run("query matches book title and author", func(t *testing.T) {
		quotes, err := s.FindQuotes(QuoteFilter{Query: "austen"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Vanity working on a weak head"}, contents(quotes))

		quotes, err = s.FindQuotes(QuoteFilter{Query: "dune"})
		require.NoError(t, err)
		assert.Len(t, quotes, 2)
	})

	t.Run("favourites only", func(t *testing.T) {
		quotes, err := s.FindQuotes(QuoteFilter{FavoritesOnly: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"The spice must flow"}, contents(quotes))
	})

	t.Run("by book", func(t *testing.T) {
		quotes, err := s.FindQuotes(QuoteFilter{BookID: emma.ID})
		require.NoError(t, err)
		assert.Len(t, quotes, 1)
	})

	t.Run("query within a book matches content only", func(t *testing.T) {
		quotes, err := s.FindQuotes(QuoteFilter{BookID: dune.ID, Query: "herbert"})
		require.NoError(t, err)
		assert.Empty(t, quotes)

		quotes, err = s.FindQuotes(QuoteFilter{BookID: dune.ID, Query: "fear"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Fear is the mind-killer"}, contents(quotes))
	})

	t.Run("tag glob", func(t *testing.T) {
		quotes, err := s.FindQuotes(QuoteFilter{TagPattern: "philo*"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Fear is the mind-killer"}, contents(quotes))

		quotes, err = s.FindQuotes(QuoteFilter{TagPattern: "{fear,hope}"})
		require.NoError(t, err)
		assert.Len(t, quotes, 1)

		quotes, err = s.FindQuotes(QuoteFilter{TagPattern: "nothing*"})
		require.NoError(t, err)
		assert.Empty(t, quotes)
	})

	t.Run("invalid tag glob", func(t *testing.T) {
		_, err := s.FindQuotes(QuoteFilter{TagPattern: "[unclosed"})
		assert.ErrorIs(t, err, ErrInvalidTagPattern)
	})
}

func TestStore_Snapshot(t *testing.T) {
	s, _ := setupTestStore(t)
	dune := mustAddBook(t, s, "Dune", "Herbert")
	mustAddQuote(t, s, dune.ID, "Fear is the mind-killer")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			book, err := s.AddBook(fmt.Sprintf("Book %d", i), "Author", nil)
			if err != nil {
				return
			}
			if _, err := s.AddQuote(QuoteInput{Content: "quote", BookID: book.ID}); err != nil {
				return
			}
		}
	}()

	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}

		books, quotes := s.Snapshot()
		ids := make(map[string]bool, len(books))
		for _, b := range books {
			ids[b.ID] = true
		}
		for _, q := range quotes {
			require.True(t, ids[q.BookID], "quote %s has no book in the snapshot", q.ID)
		}
	}

	books, quotes := s.Snapshot()
	assert.Len(t, books, 51)
	assert.Len(t, quotes, 51)
}

func TestStore_DailyQuote(t *testing.T) {
	t.Run("empty library", func(t *testing.T) {
		s, _ := setupTestStore(t)
		_, _, err := s.DailyQuote(fixedPicker(0))
		assert.ErrorIs(t, err, ErrNoQuotes)
	})

	t.Run("falls back to all quotes", func(t *testing.T) {
		s, _ := setupTestStore(t)
		book := mustAddBook(t, s, "Dune", "Herbert")
		mustAddQuote(t, s, book.ID, "one")
		mustAddQuote(t, s, book.ID, "two")

		quote, b, err := s.DailyQuote(fixedPicker(1))
		require.NoError(t, err)
		assert.Equal(t, "two", quote.Content)
		assert.Equal(t, book.ID, b.ID)
	})

	t.Run("prefers favourites", func(t *testing.T) {
		s, _ := setupTestStore(t)
		book := mustAddBook(t, s, "Dune", "Herbert")
		mustAddQuote(t, s, book.ID, "one")
		fav := mustAddQuote(t, s, book.ID, "two")
		mustAddQuote(t, s, book.ID, "three")
		_, err := s.ToggleFavorite(fav.ID)
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			quote, _, err := s.DailyQuote(fixedPicker(i))
			require.NoError(t, err)
			assert.Equal(t, fav.ID, quote.ID)
		}
	})

	t.Run("nil picker uses global source", func(t *testing.T) {
		s, _ := setupTestStore(t)
		book := mustAddBook(t, s, "Dune", "Herbert")
		mustAddQuote(t, s, book.ID, "only")

		quote, _, err := s.DailyQuote(nil)
		require.NoError(t, err)
		assert.Equal(t, "only", quote.Content)
	})
}

func TestStore_ShareQuote(t *testing.T) {
	s, _ := setupTestStore(t)
	book := mustAddBook(t, s, "Dune", "Herbert")
	quote, err := s.AddQuote(QuoteInput{Content: "Fear is the mind-killer", BookID: book.ID, Page: intPtr(1)})
	require.NoError(t, err)

	text, err := s.ShareQuote(quote.ID)
	require.NoError(t, err)
	assert.Equal(t, "\"Fear is the mind-killer\"\n\n— Herbert, Dune (Page 1)", text)

	_, err = s.ShareQuote("missing")
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestStore_Stats(t *testing.T) {
	s, _ := setupTestStore(t)
	book := mustAddBook(t, s, "Dune", "Herbert")
	q := mustAddQuote(t, s, book.ID, "one")
	mustAddQuote(t, s, book.ID, "two")
	_, err := s.ToggleFavorite(q.ID)
	require.NoError(t, err)

	assert.Equal(t, Stats{Books: 1, Quotes: 2, Favourites: 1}, s.Stats())
}
