package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotevault/internal/database/blobs"
	"github.com/mrlokans/quotevault/internal/library"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_ObservesStoreChanges(t *testing.T) {
	store := library.NewStore(blobs.NewMemory(), library.Config{IDs: library.NewSequenceGenerator("id")})
	m := New(store)
	store.Subscribe(m.Observe)

	book, err := store.AddBook("Dune", "Herbert", nil)
	require.NoError(t, err)
	q1, err := store.AddQuote(library.QuoteInput{Content: "one", BookID: book.ID})
	require.NoError(t, err)
	_, err = store.AddQuote(library.QuoteInput{Content: "two", BookID: book.ID})
	require.NoError(t, err)
	_, err = store.ToggleFavorite(q1.ID)
	require.NoError(t, err)

	body := scrape(t, m)
	assert.Contains(t, body, `quotevault_library_changes_total{kind="book_added"} 1`)
	assert.Contains(t, body, `quotevault_library_changes_total{kind="quote_added"} 2`)
	assert.Contains(t, body, `quotevault_books 1`)
	assert.Contains(t, body, `quotevault_quotes 2`)
	assert.Contains(t, body, `quotevault_favourite_quotes 1`)

	_, err = store.DeleteBook(book.ID)
	require.NoError(t, err)

	body = scrape(t, m)
	assert.Contains(t, body, `quotevault_library_changes_total{kind="book_deleted"} 1`)
	assert.Contains(t, body, `quotevault_quotes_changed_total{kind="book_deleted"} 2`)
	assert.Contains(t, body, `quotevault_quotes 0`)
}

func TestMetrics_ExportFinished(t *testing.T) {
	m := New(nil)
	m.ExportFinished(nil)
	m.ExportFinished(errors.New("disk full"))
	m.ExportFinished(nil)

	body := scrape(t, m)
	assert.Contains(t, body, `quotevault_exports_total{outcome="success"} 2`)
	assert.Contains(t, body, `quotevault_exports_total{outcome="failure"} 1`)
}
