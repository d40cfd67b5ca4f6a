package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the library database
	DefaultDatabasePath = "./quotevault.db"

	// DefaultExportDir is where markdown and YAML exports are written
	DefaultExportDir = "./export"
)

// Storage backends
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)
