package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/quotevault/internal/exporters"
)

// LibraryExporter writes the library to the export directory.
type LibraryExporter interface {
	Run() (exporters.ExportResult, error)
}

// ExportLibraryTask exports the whole library as markdown and YAML.
type ExportLibraryTask struct {
	// RequestedBy names the trigger ("api", "cli") for the logs.
	RequestedBy string `json:"requested_by"`
}

// ExportQueueName is the backlite queue export tasks are added to.
const ExportQueueName = "export_library"

// Config routes the task to the export queue. Retry, timeout and retention
// come from the queue registered with NewExportLibraryQueue.
func (t ExportLibraryTask) Config() backlite.QueueConfig {
	return exportQueueConfig(DefaultConfig())
}

func exportQueueConfig(cfg Config) backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        ExportQueueName,
		MaxAttempts: cfg.MaxRetries,
		Backoff:     cfg.RetryDelay,
		Timeout:     cfg.TaskTimeout,
		Retention: &backlite.Retention{
			Duration:   cfg.RetentionDuration,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ExportLibraryProcessor creates a processor function for ExportLibraryTask.
func ExportLibraryProcessor(exporter LibraryExporter) backlite.QueueProcessor[ExportLibraryTask] {
	return func(ctx context.Context, task ExportLibraryTask) error {
		if exporter == nil {
			return fmt.Errorf("library exporter not configured")
		}

		result, err := exporter.Run()
		if err != nil {
			return fmt.Errorf("export library: %w", err)
		}

		log.Printf("[TASK] Exported %d books and %d quotes (requested by %s)",
			result.BooksProcessed, result.QuotesProcessed, task.RequestedBy)
		return nil
	}
}

// exportQueue is a backlite.Queue that carries its own settings.
type exportQueue struct {
	config  backlite.QueueConfig
	process backlite.QueueProcessor[ExportLibraryTask]
}

func (q *exportQueue) Config() *backlite.QueueConfig {
	return &q.config
}

func (q *exportQueue) Process(ctx context.Context, payload []byte) error {
	var task ExportLibraryTask
	if err := json.Unmarshal(payload, &task); err != nil {
		return fmt.Errorf("decode export task: %w", err)
	}
	return q.process(ctx, task)
}

// NewExportLibraryQueue creates a backlite queue for export tasks using the
// retry, timeout and retention settings of cfg.
func NewExportLibraryQueue(exporter LibraryExporter, cfg Config) backlite.Queue {
	return &exportQueue{
		config:  exportQueueConfig(cfg),
		process: ExportLibraryProcessor(exporter),
	}
}
