package library

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceGenerator(t *testing.T) {
	g := NewSequenceGenerator("book")
	assert.Equal(t, "book-1", g.Next())
	assert.Equal(t, "book-2", g.Next())
}

func TestUUIDGenerator(t *testing.T) {
	var g IDGenerator = UUIDGenerator{}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := g.Next()
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		seen[id] = true
	}
	assert.Len(t, seen, 100)
}
