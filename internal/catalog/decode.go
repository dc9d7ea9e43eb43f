package catalog

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/scentdex/scentdex-server/internal/domain"
)

// rawRecord mirrors one element of the fragrance export.
// Every field type here decodes leniently; a wrong shape becomes a zero value.
type rawRecord struct {
	Name        flexString      `json:"Name"`
	Brand       flexString      `json:"Brand"`
	Gender      flexString      `json:"Gender"`
	Year        flexNumber      `json:"Year"`
	Popularity  flexString      `json:"Popularity"`
	Rating      flexNumber      `json:"rating"`
	MainAccords json.RawMessage `json:"Main Accords"`
	Notes       json.RawMessage `json:"Notes"`
	Seasons     json.RawMessage `json:"Season Ranking"`
	Occasions   json.RawMessage `json:"Occasion Ranking"`
	ImageURL    flexString      `json:"Image URL"`
	PurchaseURL flexString      `json:"Purchase URL"`
	Longevity   flexString      `json:"Longevity"`
	Sillage     flexString      `json:"Sillage"`
	Gallery     json.RawMessage `json:"Gallery"`
}

func (r *rawRecord) toDomain(id int) domain.Fragrance {
	return domain.Fragrance{
		ID:          id,
		Name:        string(r.Name),
		Brand:       string(r.Brand),
		Gender:      string(r.Gender),
		Year:        int(r.Year.Value),
		YearText:    r.Year.Text,
		Popularity:  domain.Popularity(strings.TrimSpace(string(r.Popularity))),
		Rating:      r.Rating.Value,
		MainAccords: decodeStrings(r.MainAccords),
		Notes:       decodeNoteGroups(r.Notes),
		Seasons:     decodeRankings(r.Seasons),
		Occasions:   decodeRankings(r.Occasions),
		ImageURL:    strings.TrimSpace(string(r.ImageURL)),
		PurchaseURL: strings.TrimSpace(string(r.PurchaseURL)),
		Longevity:   string(r.Longevity),
		Sillage:     string(r.Sillage),
		Gallery:     decodeGallery(r.Gallery),
	}
}

// flexString accepts strings and numbers. Anything else decodes to "".
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err == nil {
			*s = flexString(v)
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*s = flexString(data)
	}
	return nil
}

// flexNumber accepts numbers and numeric strings. Non-numeric input coerces to 0.
// Text keeps the exported form for display.
type flexNumber struct {
	Value float64
	Text  string
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	var s flexString
	_ = s.UnmarshalJSON(data)
	n.Text = strings.TrimSpace(string(s))
	n.Value = parseNumber(n.Text)
	return nil
}

// parseNumber parses a decimal. Anything non-numeric, NaN or infinite is 0.
func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func decodeStrings(data json.RawMessage) []string {
	var items []flexString
	if json.Unmarshal(data, &items) != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := strings.TrimSpace(string(item)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

type rawNoteGroups struct {
	Top    json.RawMessage `json:"Top"`
	Middle json.RawMessage `json:"Middle"`
	Base   json.RawMessage `json:"Base"`
}

func decodeNoteGroups(data json.RawMessage) domain.NoteGroups {
	var groups rawNoteGroups
	if json.Unmarshal(data, &groups) != nil {
		return domain.NoteGroups{}
	}
	return domain.NoteGroups{
		Top:    decodeNotes(groups.Top),
		Middle: decodeNotes(groups.Middle),
		Base:   decodeNotes(groups.Base),
	}
}

type rawNote struct {
	Name     flexString `json:"name"`
	ImageURL flexString `json:"imageUrl"`
}

// decodeNotes resolves each entry into the tagged note variant.
// Entries that are neither a name nor a named object are dropped.
func decodeNotes(data json.RawMessage) []domain.Note {
	var items []json.RawMessage
	if json.Unmarshal(data, &items) != nil {
		return nil
	}

	notes := make([]domain.Note, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 {
			continue
		}
		switch item[0] {
		case '"':
			var name string
			if json.Unmarshal(item, &name) == nil && strings.TrimSpace(name) != "" {
				notes = append(notes, domain.PlainNote(name))
			}
		case '{':
			var n rawNote
			if json.Unmarshal(item, &n) == nil && strings.TrimSpace(string(n.Name)) != "" {
				notes = append(notes, domain.IllustratedNote(string(n.Name), strings.TrimSpace(string(n.ImageURL))))
			}
		}
	}
	return notes
}

type rawRanking struct {
	Name  flexString `json:"name"`
	Score flexNumber `json:"score"`
}

func decodeRankings(data json.RawMessage) []domain.Ranking {
	var items []json.RawMessage
	if json.Unmarshal(data, &items) != nil {
		return nil
	}

	out := make([]domain.Ranking, 0, len(items))
	for _, item := range items {
		var r rawRanking
		if json.Unmarshal(item, &r) != nil || r.Name == "" {
			continue
		}
		out = append(out, domain.Ranking{Name: string(r.Name), Score: r.Score.Value})
	}
	return out
}

type rawPhoto struct {
	URL    flexString `json:"url"`
	Author flexString `json:"author"`
}

func decodeGallery(data json.RawMessage) []domain.Photo {
	var items []json.RawMessage
	if json.Unmarshal(data, &items) != nil {
		return nil
	}

	out := make([]domain.Photo, 0, len(items))
	for _, item := range items {
		var p rawPhoto
		if json.Unmarshal(item, &p) != nil {
			continue
		}
		url := strings.TrimSpace(string(p.URL))
		if url == "" {
			continue
		}
		out = append(out, domain.Photo{URL: url, Author: string(p.Author)})
	}
	return out
}
