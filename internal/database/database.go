package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/quotevault/internal/database/audit"
	"github.com/mrlokans/quotevault/internal/database/blobs"
	"github.com/mrlokans/quotevault/internal/entities"
)

// Options tweak how the connection is opened.
type Options struct {
	// LogSQL enables gorm statement logging.
	LogSQL bool
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string, opts Options) (*Database, error) {
	logLevel := logger.Warn
	if opts.LogSQL {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&entities.Blob{}, &entities.AuditEvent{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

// Blobs returns the key-value repository backed by this connection.
func (d *Database) Blobs() *blobs.Repository {
	return blobs.NewRepository(d.DB)
}

// Audit returns the activity log repository backed by this connection.
func (d *Database) Audit() *audit.Repository {
	return audit.NewRepository(d.DB)
}

// Ping checks that the underlying connection is alive.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
