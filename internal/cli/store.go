package cli

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/mrlokans/quotevault/internal/config"
	"github.com/mrlokans/quotevault/internal/database"
	"github.com/mrlokans/quotevault/internal/library"
)

// Command is implemented by every subcommand.
type Command interface {
	ParseFlags(args []string) error
	Run() error
}

// storeFlags are shared by every command that opens the library.
type storeFlags struct {
	DatabasePath      string
	Namespace         string
	StrictPersistence bool
}

func (f *storeFlags) register(fs *flag.FlagSet) {
	cfg := config.NewConfig()
	fs.StringVar(&f.DatabasePath, "db", cfg.Database.Path, "Path to the library database")
	fs.StringVar(&f.Namespace, "namespace", cfg.Storage.Namespace, "Storage key namespace")
	fs.BoolVar(&f.StrictPersistence, "strict", cfg.Storage.StrictPersistence, "Fail when changes cannot be saved")
}

// open loads the library from the SQLite database. The returned function
// closes the database.
func (f *storeFlags) open() (*library.Store, func(), error) {
	absDBPath, err := filepath.Abs(f.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabase(absDBPath, database.Options{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	cfg := library.DefaultConfig()
	cfg.Namespace = f.Namespace
	cfg.StrictPersistence = f.StrictPersistence
	store := library.NewStore(db.Blobs(), cfg)

	return store, func() { db.Close() }, nil
}

func describeBook(title, author string) string {
	return fmt.Sprintf("%q by %s", title, author)
}
