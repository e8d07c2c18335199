package events

import (
	"github.com/KirkDiggler/stat-engine/internal/stats"
)

// EventType names a lifecycle event
type EventType string

const (
	// EventTypeContributorApplying fires before a contributor's modifiers are attached.
	// Cancelling it vetoes the application.
	EventTypeContributorApplying EventType = "contributor.applying"
	EventTypeContributorApplied  EventType = "contributor.applied"
	EventTypeContributorRemoved  EventType = "contributor.removed"
	EventTypeContributorExpired  EventType = "contributor.expired"
	EventTypeStatCommitted       EventType = "stat.committed"
)

// Event is the base interface for all events on the bus
type Event interface {
	GetType() EventType
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type      EventType
	Cancelled bool
}

func (e *BaseEvent) GetType() EventType { return e.Type }
func (e *BaseEvent) IsCancelled() bool  { return e.Cancelled }
func (e *BaseEvent) Cancel()            { e.Cancelled = true }

// ContributorEvent describes a contributor attaching or retracting its modifiers
type ContributorEvent struct {
	BaseEvent
	ContributorID   string
	ContributorName string
	Kind            string
	Stats           []*stats.Stat
}

// StatCommittedEvent is emitted after a stat's modifiers were folded into its base value
type StatCommittedEvent struct {
	BaseEvent
	Stat          *stats.Stat
	PreviousBase  float64
	CommittedBase float64
	Dropped       int
}

// NewContributorEvent builds a ContributorEvent of the given type
func NewContributorEvent(eventType EventType, id, name, kind string, touched []*stats.Stat) *ContributorEvent {
	return &ContributorEvent{
		BaseEvent:       BaseEvent{Type: eventType},
		ContributorID:   id,
		ContributorName: name,
		Kind:            kind,
		Stats:           touched,
	}
}
