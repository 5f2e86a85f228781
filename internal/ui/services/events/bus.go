package events

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// PointerPressed is published by the host for every mouse press, before any
// component handles the message
type PointerPressed struct {
	Msg tea.MouseMsg
}

// SelectOpened is published when a select panel opens
type SelectOpened struct {
	ID string
}

// SelectClosed is published when a select panel closes
type SelectClosed struct {
	ID string
}

type listener struct {
	id      uint64
	handler func(interface{})
}

// Bus is a synchronous event bus for UI components.
// Handlers run on the publishing goroutine, which for the UI is the
// Bubble Tea update loop.
type Bus struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners map[string][]listener
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]listener),
	}
}

// Subscribe registers a listener for an event type and returns the function
// that removes it. The returned function may be called any number of times.
func (b *Bus) Subscribe(eventType string, handler func(interface{})) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners[eventType] = append(b.listeners[eventType], listener{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			ls := b.listeners[eventType]
			for i, l := range ls {
				if l.id == id {
					b.listeners[eventType] = append(ls[:i:i], ls[i+1:]...)
					break
				}
			}
			if len(b.listeners[eventType]) == 0 {
				delete(b.listeners, eventType)
			}
		})
	}
}

// Publish sends an event to all listeners of its type.
// Listeners may unsubscribe themselves while being called.
func (b *Bus) Publish(event interface{}) {
	eventType := TypeOf(event)

	b.mu.RLock()
	ls := make([]listener, len(b.listeners[eventType]))
	copy(ls, b.listeners[eventType])
	b.mu.RUnlock()

	for _, l := range ls {
		l.handler(event)
	}
}

// Listeners returns the number of listeners registered for an event type
func (b *Bus) Listeners(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[eventType])
}

// TypeOf returns the event type name used for routing
func TypeOf(event interface{}) string {
	return fmt.Sprintf("%T", event)
}

// SubscribeTo registers a typed handler for events of type T
func SubscribeTo[T any](bus EventBus, handler func(T)) func() {
	var zero T
	return bus.Subscribe(TypeOf(zero), func(e interface{}) {
		if typed, ok := e.(T); ok {
			handler(typed)
		}
	})
}
