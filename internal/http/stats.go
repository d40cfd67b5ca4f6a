package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	store StatsReader
}

func NewStatsController(store StatsReader) *StatsController {
	return &StatsController{store: store}
}

// Get handles GET /api/stats
func (sc *StatsController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, sc.store.Stats())
}
