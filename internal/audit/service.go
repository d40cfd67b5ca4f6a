package audit

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/mrlokans/quotevault/internal/entities"
	"github.com/mrlokans/quotevault/internal/library"
)

// EventStore persists and lists audit events. *database/audit.Repository
// implements it.
type EventStore interface {
	LogEvent(event *entities.AuditEvent) error
	GetEvents(action string, limit, offset int) ([]entities.AuditEvent, int64, error)
	DeleteOldEvents(olderThan time.Time) (int64, error)
}

// Service records library changes and exports as audit events.
type Service struct {
	repo    EventStore
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo EventStore) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Flush waits for background writes started by LogAsync.
func (s *Service) Flush() {
	s.pending.Wait()
}

// Observe records a committed library change. Pass it to Store.Subscribe.
func (s *Service) Observe(c library.Change) {
	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventChange,
		Action:      string(c.Kind),
		Description: describeChange(c),
		BookIDs:     strings.Join(c.BookIDs, ","),
		QuoteCount:  len(c.QuoteIDs),
		Status:      entities.AuditStatusSuccess,
	})
}

// LogExport records the outcome of a library export.
func (s *Service) LogExport(err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventExport,
		Action:      "library_export",
		Description: "Exported library",
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.Description = "Library export failed"
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(action string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(action, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

func describeChange(c library.Change) string {
	quotes := len(c.QuoteIDs)
	switch c.Kind {
	case library.ChangeBookAdded:
		return "Added a book"
	case library.ChangeBookDeleted:
		return fmt.Sprintf("Deleted a book and %d quotes", quotes)
	case library.ChangeBookImported:
		return fmt.Sprintf("Imported %d quotes", quotes)
	case library.ChangeQuoteAdded:
		return "Added a quote"
	case library.ChangeQuoteUpdated:
		return "Updated a quote"
	case library.ChangeQuoteDeleted:
		return "Deleted a quote"
	case library.ChangeFavoriteToggled:
		return "Toggled a favourite"
	default:
		return string(c.Kind)
	}
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
