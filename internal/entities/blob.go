package entities

import (
	"time"
)

// Blob is a single key-value record used by the persistence adapter.
// The library stores one blob per collection.
type Blob struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:255" json:"key"`
	Value     []byte    `gorm:"type:blob" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Blob) TableName() string {
	return "blobs"
}
