package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.False(t, cfg.HTTP.ReadOnly)
	assert.Equal(t, 2, cfg.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.False(t, cfg.LogSQL)

	assert.Equal(t, StorageSQLite, cfg.Storage.Backend)
	assert.Equal(t, "quotevault", cfg.Storage.Namespace)
	assert.False(t, cfg.StrictPersistence)

	assert.Equal(t, DefaultExportDir, cfg.Export.Dir)
	assert.False(t, cfg.Export.Enabled)
	assert.Equal(t, "0 3 * * *", cfg.Export.Schedule)

	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, time.Minute, cfg.Tasks.RetryDelay)
	assert.Equal(t, 24*time.Hour, cfg.Tasks.RetentionDuration)

	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, 90, cfg.Audit.RetentionDays)

	assert.Empty(t, cfg.Logging.File)
	assert.Equal(t, 10, cfg.Logging.MaxSizeMB)
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("READ_ONLY", "true")
	t.Setenv("DATABASE_PATH", "/data/journal.db")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("STORAGE_NAMESPACE", "journal")
	t.Setenv("STRICT_PERSISTENCE", "true")
	t.Setenv("EXPORT_ENABLED", "true")
	t.Setenv("EXPORT_SCHEDULE", "*/5 * * * *")
	t.Setenv("TASK_TIMEOUT", "30s")
	t.Setenv("LOG_FILE", "/var/log/quotevault.log")
	t.Setenv("LOG_MAX_BACKUPS", "7")
	t.Setenv("AUDIT_RETENTION_DAYS", "0")

	cfg := NewConfig()

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.True(t, cfg.HTTP.ReadOnly)
	assert.Equal(t, "/data/journal.db", cfg.Database.Path)
	assert.Equal(t, StorageMemory, cfg.Storage.Backend)
	assert.Equal(t, "journal", cfg.Storage.Namespace)
	assert.True(t, cfg.StrictPersistence)
	assert.True(t, cfg.Export.Enabled)
	assert.Equal(t, "*/5 * * * *", cfg.Export.Schedule)
	assert.Equal(t, 30*time.Second, cfg.Tasks.TaskTimeout)
	assert.Equal(t, "/var/log/quotevault.log", cfg.Logging.File)
	assert.Equal(t, 7, cfg.Logging.MaxBackups)
	assert.Equal(t, 0, cfg.Audit.RetentionDays)
}
