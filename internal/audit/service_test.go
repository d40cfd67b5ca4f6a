package audit

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auditRepo "github.com/mrlokans/quotevault/internal/database/audit"
	"github.com/mrlokans/quotevault/internal/database/blobs"
	"github.com/mrlokans/quotevault/internal/entities"
	"github.com/mrlokans/quotevault/internal/library"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection keeps every goroutine on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	return NewService(auditRepo.NewRepository(db)), db
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventChange,
		Action:      "test_action",
		Description: "Test event",
		Status:      entities.AuditStatusSuccess,
	}
	require.NoError(t, svc.Log(event))

	var saved entities.AuditEvent
	require.NoError(t, db.First(&saved, event.ID).Error)
	assert.Equal(t, "test_action", saved.Action)
}

func TestService_Observe(t *testing.T) {
	svc, _ := setupTestService(t)
	store := library.NewStore(blobs.NewMemory(), library.Config{IDs: library.NewSequenceGenerator("id")})
	store.Subscribe(svc.Observe)

	book, err := store.AddBook("Dune", "Frank Herbert", nil)
	require.NoError(t, err)
	for _, content := range []string{"one", "two"} {
		_, err := store.AddQuote(library.QuoteInput{Content: content, BookID: book.ID})
		require.NoError(t, err)
	}
	_, err = store.DeleteBook(book.ID)
	require.NoError(t, err)

	svc.Flush()

	events, total, err := svc.GetEvents("", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	deleted, _, err := svc.GetEvents(string(library.ChangeBookDeleted), 0, 0)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, book.ID, deleted[0].BookIDs)
	assert.Equal(t, 2, deleted[0].QuoteCount)
	assert.Equal(t, "Deleted a book and 2 quotes", deleted[0].Description)

	for _, e := range events {
		assert.Equal(t, entities.AuditEventChange, e.EventType)
	}
}

func TestService_LogExport(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("success", func(t *testing.T) {
		svc.LogExport(nil)
		svc.Flush()

		var event entities.AuditEvent
		require.NoError(t, db.Where("status = ?", entities.AuditStatusSuccess).First(&event).Error)
		assert.Equal(t, entities.AuditEventExport, event.EventType)
		assert.Empty(t, event.ErrorMsg)
	})

	t.Run("failure", func(t *testing.T) {
		svc.LogExport(errors.New(strings.Repeat("x", 600)))
		svc.Flush()

		var event entities.AuditEvent
		require.NoError(t, db.Where("status = ?", entities.AuditStatusFailed).First(&event).Error)
		assert.Len(t, event.ErrorMsg, 500)
		assert.True(t, strings.HasSuffix(event.ErrorMsg, "..."))
	})
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, _ := setupTestService(t)

	require.NoError(t, svc.Log(&entities.AuditEvent{Action: "old", CreatedAt: time.Now().Add(-40 * 24 * time.Hour)}))
	require.NoError(t, svc.Log(&entities.AuditEvent{Action: "recent"}))

	deleted, err := svc.DeleteOldEvents(30 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
