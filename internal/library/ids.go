package library

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out identifiers for new books and quotes.
type IDGenerator interface {
	Next() string
}

// UUIDGenerator produces random (v4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) Next() string {
	return uuid.NewString()
}

// SequenceGenerator produces "<prefix>-1", "<prefix>-2", ... and is meant for
// tests and demo data where stable identifiers matter.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

func (g *SequenceGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
