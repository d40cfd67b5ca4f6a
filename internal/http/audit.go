package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotevault/internal/entities"
)

// AuditReader lists recorded library activity.
type AuditReader interface {
	GetEvents(action string, limit, offset int) ([]entities.AuditEvent, int64, error)
}

type AuditController struct {
	reader AuditReader
}

func NewAuditController(reader AuditReader) *AuditController {
	return &AuditController{reader: reader}
}

// List handles GET /api/audit?action=&limit=&offset=
func (ac *AuditController) List(c *gin.Context) {
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		respondBadRequest(c, "limit must be a number")
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		respondBadRequest(c, "offset must be a number")
		return
	}

	events, total, err := ac.reader.GetEvents(c.Query("action"), limit, offset)
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
