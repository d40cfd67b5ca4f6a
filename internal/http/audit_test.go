package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotevault/internal/entities"
)

type stubAuditReader struct {
	events    []entities.AuditEvent
	err       error
	gotAction string
	gotLimit  int
	gotOffset int
}

func (s *stubAuditReader) GetEvents(action string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	s.gotAction, s.gotLimit, s.gotOffset = action, limit, offset
	return s.events, int64(len(s.events)), s.err
}

func newAuditRouter(reader AuditReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/audit", NewAuditController(reader).List)
	return router
}

func TestAuditController_List(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		reader := &stubAuditReader{events: []entities.AuditEvent{{ID: 1, Action: "book_deleted"}}}
		router := newAuditRouter(reader)

		w := doJSON(t, router, "GET", "/api/audit?action=book_deleted&limit=10&offset=5", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"action":"book_deleted"`)
		assert.Contains(t, w.Body.String(), `"total":1`)
		assert.Equal(t, "book_deleted", reader.gotAction)
		assert.Equal(t, 10, reader.gotLimit)
		assert.Equal(t, 5, reader.gotOffset)
	})

	t.Run("defaults", func(t *testing.T) {
		reader := &stubAuditReader{}
		w := doJSON(t, newAuditRouter(reader), "GET", "/api/audit", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 50, reader.gotLimit)
		assert.Equal(t, 0, reader.gotOffset)
	})

	t.Run("bad limit", func(t *testing.T) {
		w := doJSON(t, newAuditRouter(&stubAuditReader{}), "GET", "/api/audit?limit=ten", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("storage error", func(t *testing.T) {
		w := doJSON(t, newAuditRouter(&stubAuditReader{err: errors.New("locked")}), "GET", "/api/audit", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("not routed without a reader", func(t *testing.T) {
		router, _ := setupTestRouter(t)
		w := doJSON(t, router, "GET", "/api/audit", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
