// Package gallery is the photo lightbox state machine.
//
// A State is either closed or open on an index in [0, N-1]. Navigation past
// either end is a no-op and there is no wraparound. A gallery with no photos
// never opens.
package gallery

import (
	"encoding/json"
	"fmt"
)

// Keys understood by HandleKey.
const (
	KeyEscape     = "Escape"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// Action is a navigation request by wire name.
type Action string

// Navigation actions.
const (
	ActionOpen  Action = "open"
	ActionPrev  Action = "prev"
	ActionNext  Action = "next"
	ActionClose Action = "close"
)

// State is an immutable lightbox state over N photos.
type State struct {
	count  int
	active int
	open   bool
}

// New returns a closed gallery over count photos.
func New(count int) State {
	return State{count: max(count, 0)}
}

// At returns a gallery over count photos open on index, or closed when index is out of range.
func At(count, index int) State {
	return New(count).Open(index)
}

// Len returns the number of photos.
func (s State) Len() int {
	return s.count
}

// Renderable reports whether there is anything to show at all.
func (s State) Renderable() bool {
	return s.count > 0
}

// Active returns the open index.
func (s State) Active() (int, bool) {
	return s.active, s.open
}

// IsOpen reports whether the lightbox is showing a photo.
func (s State) IsOpen() bool {
	return s.open
}

// Open shows photo i. Out-of-range indexes leave the state unchanged.
func (s State) Open(i int) State {
	if i < 0 || i >= s.count {
		return s
	}
	s.active, s.open = i, true
	return s
}

// Close hides the lightbox.
func (s State) Close() State {
	return State{count: s.count}
}

// CanPrev reports whether Prev would move.
func (s State) CanPrev() bool {
	return s.open && s.active > 0
}

// CanNext reports whether Next would move.
func (s State) CanNext() bool {
	return s.open && s.active < s.count-1
}

// Prev moves one photo back unless already at the first one.
func (s State) Prev() State {
	if s.CanPrev() {
		s.active--
	}
	return s
}

// Next moves one photo forward unless already at the last one.
func (s State) Next() State {
	if s.CanNext() {
		s.active++
	}
	return s
}

// HandleKey applies a keyboard key. Unknown keys and keys pressed while closed do nothing.
func (s State) HandleKey(key string) State {
	if !s.open {
		return s
	}
	switch key {
	case KeyEscape:
		return s.Close()
	case KeyArrowLeft:
		return s.Prev()
	case KeyArrowRight:
		return s.Next()
	default:
		return s
	}
}

// Apply performs action. For ActionOpen, index selects the photo.
func (s State) Apply(action Action, index int) (State, error) {
	switch action {
	case ActionOpen:
		return s.Open(index), nil
	case ActionPrev:
		return s.Prev(), nil
	case ActionNext:
		return s.Next(), nil
	case ActionClose:
		return s.Close(), nil
	default:
		return s, fmt.Errorf("unknown gallery action %q", action)
	}
}

// Counter is the "3 / 7" position label, empty while closed.
func (s State) Counter() string {
	if !s.open {
		return ""
	}
	return fmt.Sprintf("%d / %d", s.active+1, s.count)
}

type stateJSON struct {
	Count   int    `json:"count"`
	Open    bool   `json:"open"`
	Active  *int   `json:"active"`
	Counter string `json:"counter,omitempty"`
	HasPrev bool   `json:"has_prev"`
	HasNext bool   `json:"has_next"`
}

// MarshalJSON encodes the state with a null active index while closed.
func (s State) MarshalJSON() ([]byte, error) {
	out := stateJSON{
		Count:   s.count,
		Open:    s.open,
		Counter: s.Counter(),
		HasPrev: s.CanPrev(),
		HasNext: s.CanNext(),
	}
	if s.open {
		active := s.active
		out.Active = &active
	}
	return json.Marshal(out)
}
