package library

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventLibraryUpdated is published after an item is appended to the library.
const EventLibraryUpdated = "library-updated"

// Event sources.
const (
	SourceLocal = "local" // published by this process's Store
	SourceWatch = "watch" // published after observing another process's write
)

// Event is a change notification.
type Event struct {
	ID     string
	Name   string
	Source string
	At     time.Time
}

// NewEvent returns an event with a fresh UUID v7 identifier.
func NewEvent(name, source string) Event {
	return Event{
		ID:     newEventID(),
		Name:   name,
		Source: source,
		At:     time.Now(),
	}
}

func newEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Bus fans events out to subscribers. Handlers run synchronously on the
// publishing goroutine, in subscription order.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]func(Event)
	order    []int
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]func(Event))}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = fn
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers e to every current subscriber.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	fns := make([]func(Event), 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}
