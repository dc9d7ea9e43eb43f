package watcher

import "time"

// EventType represents the kind of change observed on a watched file.
type EventType int

const (
	// EventChanged is emitted once a created or rewritten file has settled.
	EventChanged EventType = iota
	// EventRemoved is emitted when a watched file is gone after settling.
	EventRemoved
)

// String returns the string representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventChanged:
		return "changed"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event describes a settled change to a watched file.
type Event struct {
	Type    EventType
	Path    string
	Size    int64
	ModTime time.Time
}
