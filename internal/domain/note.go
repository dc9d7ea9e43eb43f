package domain

import (
	"iter"
	"strings"
)

// NoteKind tags how a note entry was exported.
type NoteKind uint8

const (
	// NotePlain is a bare note name.
	NotePlain NoteKind = iota
	// NoteIllustrated carries an image next to the name.
	NoteIllustrated
)

// String returns the wire name of the kind.
func (k NoteKind) String() string {
	if k == NoteIllustrated {
		return "illustrated"
	}
	return "plain"
}

// MarshalText implements encoding.TextMarshaler.
func (k NoteKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Note is a single scent ingredient.
type Note struct {
	Kind     NoteKind `json:"kind"`
	Name     string   `json:"name"`
	ImageURL string   `json:"image_url,omitempty"`
}

// PlainNote builds a note without an image.
func PlainNote(name string) Note {
	return Note{Kind: NotePlain, Name: name}
}

// IllustratedNote builds a note with an image. An empty image URL yields a plain note.
func IllustratedNote(name, imageURL string) Note {
	if imageURL == "" {
		return PlainNote(name)
	}
	return Note{Kind: NoteIllustrated, Name: name, ImageURL: imageURL}
}

// Key is the matching key used for similarity: trimmed and lower-cased.
func (n Note) Key() string {
	return strings.ToLower(strings.TrimSpace(n.Name))
}

// NoteGroups holds the three pyramid levels in perception order.
type NoteGroups struct {
	Top    []Note `json:"top"`
	Middle []Note `json:"middle"`
	Base   []Note `json:"base"`
}

// All yields top, then middle, then base notes.
func (g NoteGroups) All() iter.Seq[Note] {
	return func(yield func(Note) bool) {
		for _, group := range [][]Note{g.Top, g.Middle, g.Base} {
			for _, n := range group {
				if !yield(n) {
					return
				}
			}
		}
	}
}

// Len is the total number of note entries across groups.
func (g NoteGroups) Len() int {
	return len(g.Top) + len(g.Middle) + len(g.Base)
}

// Names returns the note names of one group.
func Names(notes []Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Name
	}
	return out
}
