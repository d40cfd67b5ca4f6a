package covers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	pngHeader  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
)

func TestNewStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "covers")

	store, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore_Write(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Write("Dune", jpegHeader)
	require.NoError(t, err)
	assert.Equal(t, "Dune.jpg", name)

	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, jpegHeader, data)

	name, err = store.Write("Emma", nil)
	require.NoError(t, err)
	assert.Empty(t, name)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".jpg", Extension(jpegHeader))
	assert.Equal(t, ".png", Extension(pngHeader))
	assert.Equal(t, ".bin", Extension([]byte("plain text")))
}

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngHeader)
	}))
	defer server.Close()

	f := NewFetcher()

	data, err := f.Fetch(context.Background(), server.URL+"/cover.png")
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	_, err = f.Fetch(context.Background(), server.URL+"/missing")
	assert.ErrorContains(t, err, "status 404")
}
