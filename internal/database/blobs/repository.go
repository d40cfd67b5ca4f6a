// Package blobs provides key-value storage of opaque byte values.
//
// This package implements the KeyValueStore interface defined in
// internal/library/persistence.go.
//
// # Interface Implementation
//
//	var _ library.KeyValueStore = (*Repository)(nil)
//	var _ library.KeyValueStore = (*Memory)(nil)
//
// # Usage
//
//	repo := blobs.NewRepository(db)
//	err := repo.Put("quotevault.saved_books", data)
//	data, err := repo.Get("quotevault.saved_books")
package blobs

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/quotevault/internal/entities"
)

// Repository handles blob reads and writes on SQLite.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new blobs repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the value stored under key. A missing key yields nil, nil.
func (r *Repository) Get(key string) ([]byte, error) {
	var blob entities.Blob
	err := r.db.Where("key = ?", key).First(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blob.Value, nil
}

// Put creates or overwrites the value stored under key.
func (r *Repository) Put(key string, value []byte) error {
	blob := entities.Blob{Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
}

// Delete removes the value stored under key. Deleting a missing key is not an error.
func (r *Repository) Delete(key string) error {
	return r.db.Where("key = ?", key).Delete(&entities.Blob{}).Error
}

// Keys lists every stored key in lexical order.
func (r *Repository) Keys() ([]string, error) {
	var keys []string
	err := r.db.Model(&entities.Blob{}).Order("key ASC").Pluck("key", &keys).Error
	return keys, err
}

// Ping checks database connectivity.
func (r *Repository) Ping() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
