package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// Status names reported for queued exports.
const (
	StatusPending  = "pending"
	StatusRunning  = "running"
	StatusSuccess  = "success"
	StatusFailure  = "failure"
	StatusNotFound = "not_found"
)

// Client runs background library work on a backlite queue.
type Client struct {
	queue  *backlite.Client
	db     *sql.DB
	config Config

	mu      sync.RWMutex
	running bool
}

// DBPath returns the task database path for a library database:
// "library.db" becomes "library-tasks.db" in the same directory.
func DBPath(libraryDBPath string) string {
	ext := filepath.Ext(libraryDBPath)
	return strings.TrimSuffix(libraryDBPath, ext) + "-tasks" + ext
}

// NewClient opens the task database next to the library database, so queue
// writes never contend with library blobs.
func NewClient(libraryDBPath string, cfg Config) (*Client, error) {
	db, err := sql.Open("sqlite3", DBPath(libraryDBPath)+"?_journal=WAL&_timeout=5000&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Workers + 5)
	db.SetMaxIdleConns(cfg.Workers + 2)
	db.SetConnMaxLifetime(time.Hour)

	queue, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          queueLogger{},
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create task queue: %w", err)
	}

	if err := queue.Install(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to install task queue schema: %w", err)
	}

	return &Client{queue: queue, db: db, config: cfg}, nil
}

// Register adds queues. Call it before Start.
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.queue.Register(q)
	}
}

// Start blocks until ctx is done, so run it in a goroutine.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()

	log.Printf("Task queue started with %d workers", c.config.Workers)
	c.queue.Start(ctx)
}

// Stop waits for running tasks. It reports false when ctx expired first.
func (c *Client) Stop(ctx context.Context) bool {
	if !c.Running() {
		return true
	}

	log.Println("Stopping task queue...")
	if !c.queue.Stop(ctx) {
		log.Println("Task queue stopped with timeout (some tasks may not have completed)")
		return false
	}
	log.Println("Task queue stopped gracefully")
	return true
}

// Close releases the task database. Call it after Stop.
func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Client) Running() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}

// Add enqueues arbitrary tasks.
func (c *Client) Add(tasks ...backlite.Task) *backlite.TaskAddOp {
	return c.queue.Add(tasks...)
}

// EnqueueExport queues a library export and returns its task id.
func (c *Client) EnqueueExport(requestedBy string) (string, error) {
	ids, err := c.queue.Add(ExportLibraryTask{RequestedBy: requestedBy}).Save()
	if err != nil {
		return "", fmt.Errorf("failed to enqueue export: %w", err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("failed to enqueue export: no task id returned")
	}
	log.Printf("[TASK] Export %s queued (requested by %s)", ids[0], requestedBy)
	return ids[0], nil
}

// ExportStatus returns one of the Status* names for a task id.
func (c *Client) ExportStatus(ctx context.Context, taskID string) (string, error) {
	status, err := c.queue.Status(ctx, taskID)
	if err != nil {
		return "", fmt.Errorf("failed to read task status: %w", err)
	}
	return StatusName(status), nil
}

func StatusName(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return StatusPending
	case backlite.TaskStatusRunning:
		return StatusRunning
	case backlite.TaskStatusSuccess:
		return StatusSuccess
	case backlite.TaskStatusFailure:
		return StatusFailure
	case backlite.TaskStatusNotFound:
		return StatusNotFound
	default:
		return "unknown"
	}
}

// queueLogger sends backlite logs to the standard logger.
type queueLogger struct{}

func (queueLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (queueLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
