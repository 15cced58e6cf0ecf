package accounts

import (
	"sync"
	"time"
)

// EventKind labels a session state change.
type EventKind string

const (
	SignedIn  EventKind = "signed_in"
	SignedOut EventKind = "signed_out"
	Refreshed EventKind = "refreshed"
)

// Event is one session state change. Listeners receive events in publish
// order per broadcaster, but must treat them as last-write-wins state
// replacement, not deltas.
type Event struct {
	Kind  EventKind
	Email string
	At    time.Time
}

// Broadcaster fans session events out to registered listeners. Listeners
// are invoked synchronously on the publishing goroutine.
type Broadcaster struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]func(Event)
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{listeners: make(map[int]func(Event))}
}

// Subscribe registers a listener and returns an unsubscribe func. Callers
// register once at startup and unsubscribe on shutdown.
func (b *Broadcaster) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

// Publish delivers the event to every current listener.
func (b *Broadcaster) Publish(kind EventKind, email string) {
	event := Event{Kind: kind, Email: email, At: time.Now().UTC()}

	b.mu.RLock()
	listeners := make([]func(Event), 0, len(b.listeners))
	for _, fn := range b.listeners {
		listeners = append(listeners, fn)
	}
	b.mu.RUnlock()

	for _, fn := range listeners {
		fn(event)
	}
}
