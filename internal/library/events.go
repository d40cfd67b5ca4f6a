package library

import "sync"

type ChangeKind string

const (
	ChangeBookAdded       ChangeKind = "book_added"
	ChangeBookDeleted     ChangeKind = "book_deleted"
	ChangeBookImported    ChangeKind = "book_imported"
	ChangeQuoteAdded      ChangeKind = "quote_added"
	ChangeQuoteUpdated    ChangeKind = "quote_updated"
	ChangeQuoteDeleted    ChangeKind = "quote_deleted"
	ChangeFavoriteToggled ChangeKind = "favorite_toggled"
)

// Change describes one committed mutation. A book deletion carries the book
// and every quote removed with it in a single Change.
type Change struct {
	Kind     ChangeKind
	BookIDs  []string
	QuoteIDs []string
}

// Listener receives changes after they are committed. Listeners run on the
// goroutine that performed the mutation, outside the store lock, so they may
// read from the store.
type Listener func(Change)

type subscription struct {
	id       int
	listener Listener
}

type broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

func (b *broadcaster) subscribe(l Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, listener: l})

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(id) })
	}
}

func (b *broadcaster) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

func (b *broadcaster) publish(c Change) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.listener(c)
	}
}
