package interfaces

// Compile-time interface implementation checks. They catch a concrete type
// drifting away from the interface it is wired through.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/quotevault/internal/applebooks"
	"github.com/mrlokans/quotevault/internal/audit"
	auditRepo "github.com/mrlokans/quotevault/internal/database/audit"
	"github.com/mrlokans/quotevault/internal/database/blobs"
	"github.com/mrlokans/quotevault/internal/exporters"
	"github.com/mrlokans/quotevault/internal/http"
	"github.com/mrlokans/quotevault/internal/kindle"
	"github.com/mrlokans/quotevault/internal/library"
	"github.com/mrlokans/quotevault/internal/metrics"
	"github.com/mrlokans/quotevault/internal/scheduler"
	"github.com/mrlokans/quotevault/internal/tasks"
)

// =============================================================================
// Persistence
// =============================================================================

var _ library.KeyValueStore = (*blobs.Repository)(nil)
var _ library.KeyValueStore = (*blobs.Memory)(nil)

// =============================================================================
// Library Store consumers
// =============================================================================

var _ http.LibraryStore = (*library.Store)(nil)
var _ kindle.BookImporter = (*library.Store)(nil)
var _ applebooks.BookImporter = (*library.Store)(nil)
var _ exporters.LibrarySource = (*library.Store)(nil)
var _ metrics.StatsSource = (*library.Store)(nil)

// =============================================================================
// Exports
// =============================================================================

var _ exporters.LibraryExporter = (*exporters.MarkdownExporter)(nil)
var _ exporters.LibraryExporter = (*exporters.YAMLExporter)(nil)
var _ http.LibraryExporter = (*exporters.LibraryExport)(nil)
var _ tasks.LibraryExporter = (*exporters.LibraryExport)(nil)
var _ scheduler.LibraryExporter = (*exporters.LibraryExport)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)

// =============================================================================
// Activity log
// =============================================================================

var _ audit.EventStore = (*auditRepo.Repository)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
