package events

import (
	"fmt"
	"log"
	"sort"
	"sync"
)

// EventListener processes events
type EventListener interface {
	HandleEvent(event Event) error
	Priority() int
	ID() string
}

// ListenerFunc adapts a function to EventListener
type ListenerFunc struct {
	ListenerID       string
	ListenerPriority int
	Handler          func(Event) error
}

func (l *ListenerFunc) HandleEvent(event Event) error { return l.Handler(event) }
func (l *ListenerFunc) Priority() int                 { return l.ListenerPriority }
func (l *ListenerFunc) ID() string                    { return l.ListenerID }

// Bus delivers events synchronously to listeners in ascending priority order
type Bus struct {
	listeners map[EventType][]EventListener
	mu        sync.RWMutex
	verbose   bool
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[EventType][]EventListener),
	}
}

// SetVerbose toggles per-event logging
func (b *Bus) SetVerbose(verbose bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.verbose = verbose
}

// Subscribe adds a listener for an event type
func (b *Bus) Subscribe(eventType EventType, listener EventListener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], listener)

	// stable so equal priorities keep subscription order
	sort.SliceStable(b.listeners[eventType], func(i, j int) bool {
		return b.listeners[eventType][i].Priority() < b.listeners[eventType][j].Priority()
	})

	if b.verbose {
		log.Printf("EventBus: Subscribed listener %s to event %s with priority %d",
			listener.ID(), eventType, listener.Priority())
	}
}

// Unsubscribe removes a listener by ID
func (b *Bus) Unsubscribe(eventType EventType, listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	listeners := b.listeners[eventType]
	for i, l := range listeners {
		if l.ID() != listenerID {
			continue
		}
		b.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)

		if b.verbose {
			log.Printf("EventBus: Unsubscribed listener %s from event %s", listenerID, eventType)
		}
		return
	}
}

// Emit sends an event to all registered listeners.
// Propagation stops when a listener cancels the event or returns an error.
func (b *Bus) Emit(event Event) error {
	b.mu.RLock()
	listeners := make([]EventListener, len(b.listeners[event.GetType()]))
	copy(listeners, b.listeners[event.GetType()])
	verbose := b.verbose
	b.mu.RUnlock()

	if verbose {
		log.Printf("EventBus: Emitting event %s with %d listeners", event.GetType(), len(listeners))
	}

	for _, listener := range listeners {
		if event.IsCancelled() {
			if verbose {
				log.Printf("EventBus: Event %s cancelled, stopping propagation", event.GetType())
			}
			break
		}

		if err := listener.HandleEvent(event); err != nil {
			return fmt.Errorf("listener %s failed: %w", listener.ID(), err)
		}
	}

	return nil
}

// ListenerCount returns how many listeners are subscribed to eventType
func (b *Bus) ListenerCount(eventType EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[eventType])
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[EventType][]EventListener)
	if b.verbose {
		log.Printf("EventBus: Cleared all listeners")
	}
}
