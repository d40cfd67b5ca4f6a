package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := NewDatabase(dbPath, Options{})
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Ping())
	assert.True(t, db.DB.Migrator().HasTable("blobs"))
	assert.True(t, db.DB.Migrator().HasTable("audit_events"))
}

func TestDatabase_Blobs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := NewDatabase(dbPath, Options{})
	require.NoError(t, err)

	require.NoError(t, db.Blobs().Put("quotevault.saved_quotes", []byte("[]")))
	require.NoError(t, db.Close())

	// Values survive reopening the file
	reopened, err := NewDatabase(dbPath, Options{})
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Blobs().Get("quotevault.saved_quotes")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(value))
}
