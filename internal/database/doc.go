// Package database provides the storage layer the library persists into.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── audit/           # Activity log repository
//	└── blobs/           # Key-value blob repository (SQLite) and in-memory twin
//
// The library store keeps books and quotes in memory and writes each
// collection as one encoded blob. The database layer therefore knows nothing
// about books or quotes; it only stores opaque values under string keys.
//
// # Usage
//
//	db, err := database.NewDatabase("./quotevault.db", database.Options{})
//	kv := db.Blobs()
//	store := library.NewStore(kv, library.DefaultConfig())
//
// # Interface Implementations
//
//   - blobs.Repository: implements library.KeyValueStore
//   - blobs.Memory: implements library.KeyValueStore
//   - audit.Repository: implements the audit service's EventStore
package database
