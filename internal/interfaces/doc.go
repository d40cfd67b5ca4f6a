// Package interfaces documents the abstractions that connect the packages.
//
// # Interface Map
//
//   - library.KeyValueStore: blob persistence under the library
//     (database/blobs.Repository on SQLite, blobs.Memory for tests and
//     STORAGE_BACKEND=memory)
//   - http.BookStore, http.QuoteStore, http.StatsReader, http.Pinger: the
//     slices of *library.Store each controller uses
//   - kindle.BookImporter, applebooks.BookImporter: merge imported
//     highlights into the library
//   - exporters.LibrarySource / exporters.LibraryExporter: snapshot reader and
//     per-format writers
//   - tasks.LibraryExporter, scheduler.LibraryExporter, http.LibraryExporter:
//     callers of *exporters.LibraryExport
//   - metrics.StatsSource: gauges read from the store
//   - http.TaskQueue: export queueing on *tasks.Client
//   - audit.EventStore, http.AuditReader: activity log storage and listing
//
// # Adding a New Export Format
//
//  1. Implement exporters.LibraryExporter in internal/exporters/
//
//     type JSONExporter struct{ Dir string }
//
//     func (e *JSONExporter) Export(books []entities.Book, quotes []entities.Quote) (ExportResult, error)
//
//  2. Append it in exporters.NewLibraryExport
//
//  3. Add a compile-time check to checks.go
//
// # Adding a New Import Source
//
// Importers parse their input into titles, authors and library.QuoteInput
// values and hand them to library.Store.ImportBook, which deduplicates by
// content. See internal/kindle and internal/applebooks for the pattern.
//
// # Compile-Time Interface Checks
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
