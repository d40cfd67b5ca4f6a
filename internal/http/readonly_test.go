package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotevault/internal/database/blobs"
	"github.com/mrlokans/quotevault/internal/library"
)

func TestReadOnlyMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := library.NewStore(blobs.NewMemory(), library.Config{IDs: library.NewSequenceGenerator("id")})
	book, err := store.AddBook("Dune", "Frank Herbert", nil)
	require.NoError(t, err)

	exporter := &fakeExporter{}
	router := NewRouter(RouterConfig{Store: store, Exporter: exporter, ReadOnly: true})

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		wantCode int
	}{
		{"list books", "GET", "/api/books", nil, http.StatusOK},
		{"get book", "GET", "/api/books/" + book.ID, nil, http.StatusOK},
		{"add book", "POST", "/api/books", gin.H{"title": "Emma", "author": "Jane Austen"}, http.StatusForbidden},
		{"delete book", "DELETE", "/api/books/" + book.ID, nil, http.StatusForbidden},
		{"add quote", "POST", "/api/quotes", gin.H{"content": "x", "book_id": book.ID}, http.StatusForbidden},
		{"export", "POST", "/api/export", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusForbidden {
				assert.Equal(t, CodeReadOnly, decode[ErrorResponse](t, w).Code)
			}
		})
	}

	assert.Len(t, store.Books(), 1)
	assert.Equal(t, 1, exporter.runs)
}
