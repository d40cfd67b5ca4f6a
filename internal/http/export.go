package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotevault/internal/exporters"
	"github.com/mrlokans/quotevault/internal/tasks"
)

// TaskQueue is the subset of *tasks.Client the export endpoints use.
type TaskQueue interface {
	EnqueueExport(requestedBy string) (string, error)
	ExportStatus(ctx context.Context, taskID string) (string, error)
}

type LibraryExporter interface {
	Run() (exporters.ExportResult, error)
}

// ExportController queues library exports, or runs them in the request when
// no task queue is configured.
type ExportController struct {
	queue    TaskQueue
	exporter LibraryExporter
}

func NewExportController(queue TaskQueue, exporter LibraryExporter) *ExportController {
	return &ExportController{queue: queue, exporter: exporter}
}

// Run handles POST /api/export
func (ec *ExportController) Run(c *gin.Context) {
	if ec.queue != nil {
		id, err := ec.queue.EnqueueExport("api")
		if err != nil {
			respondInternalError(c, err, "enqueue export")
			return
		}
		respondAccepted(c, "export queued", gin.H{"task_id": id})
		return
	}

	if ec.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "export is not configured"})
		return
	}

	result, err := ec.exporter.Run()
	if err != nil {
		respondInternalError(c, err, "export library")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "export completed", Data: result})
}

// Status handles GET /api/export/:id
func (ec *ExportController) Status(c *gin.Context) {
	if ec.queue == nil {
		respondNotFound(c, "task queue")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := ec.queue.ExportStatus(ctx, id)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == tasks.StatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}
