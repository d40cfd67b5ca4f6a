package entrypoint

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotevault/internal/config"
	"github.com/mrlokans/quotevault/internal/database/blobs"
)

func TestOpenStorage(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		cfg := &config.Config{Storage: config.Storage{Backend: config.StorageMemory}}

		kv, db, err := openStorage(cfg)
		require.NoError(t, err)

		assert.IsType(t, &blobs.Memory{}, kv)
		assert.Nil(t, db)
		assert.Nil(t, setupAudit(config.Audit{Enabled: true}, db))
	})

	t.Run("sqlite", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "library.db")
		cfg := &config.Config{
			Storage:  config.Storage{Backend: config.StorageSQLite},
			Database: config.Database{Path: dbPath},
		}

		kv, db, err := openStorage(cfg)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		require.NoError(t, kv.Put("k", []byte("v")))
		assert.NoError(t, kv.Ping())
		assert.FileExists(t, dbPath)

		assert.NotNil(t, setupAudit(config.Audit{Enabled: true, RetentionDays: 30}, db))
		assert.Nil(t, setupAudit(config.Audit{Enabled: false}, db))
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := &config.Config{Storage: config.Storage{Backend: "redis"}}

		_, _, err := openStorage(cfg)
		assert.Error(t, err)
	})
}
