package http

import "net/http"

type RouterConfig struct {
	Store LibraryStore

	// Storage is pinged by /health. Defaults to Store.
	Storage Pinger

	// Metrics serves /metrics when set.
	Metrics http.Handler

	// Tasks queues exports; when nil POST /api/export runs the export inline.
	Tasks    TaskQueue
	Exporter LibraryExporter

	// Audit serves /api/audit when set.
	Audit AuditReader

	// ReadOnly rejects every request that would change the library.
	ReadOnly bool

	Version string
}
