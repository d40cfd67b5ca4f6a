package entities

import (
	"time"
)

// Book and Quote are not gorm models: the library keeps them in memory and
// persists each collection as a single encoded blob (see Blob).

type Book struct {
	ID         string    `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Author     string    `json:"author" yaml:"author"`
	CoverImage []byte    `json:"cover_image,omitempty" yaml:"-"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// HasCover reports whether the book carries cover image bytes.
func (b Book) HasCover() bool {
	return len(b.CoverImage) > 0
}

type Quote struct {
	ID         string    `json:"id" yaml:"id"`
	Content    string    `json:"content" yaml:"content"`
	BookID     string    `json:"book_id" yaml:"book_id"`
	Page       *int      `json:"page,omitempty" yaml:"page,omitempty"`
	Chapter    string    `json:"chapter,omitempty" yaml:"chapter,omitempty"`
	Notes      string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	IsFavorite bool      `json:"is_favorite" yaml:"is_favorite"`
	Tags       []string  `json:"tags" yaml:"tags,omitempty"`
}

// HasTag reports whether the quote is tagged with name (exact match).
func (q Quote) HasTag(name string) bool {
	for _, t := range q.Tags {
		if t == name {
			return true
		}
	}
	return false
}
