package entities

import "time"

type AuditEventType string

const (
	AuditEventChange AuditEventType = "change"
	AuditEventExport AuditEventType = "export"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent is one entry of the library activity log. Unlike books and
// quotes it is a regular gorm table.
type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"index;size:100" json:"action"` // e.g. "book_deleted", "library_export"
	Description string         `gorm:"size:500" json:"description"`
	BookIDs     string         `gorm:"type:text" json:"book_ids,omitempty"` // comma-separated
	QuoteCount  int            `json:"quote_count"`
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
