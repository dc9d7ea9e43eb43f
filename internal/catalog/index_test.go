package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scentdex/scentdex-server/internal/domain"
)

func record(brand string, notes ...string) domain.Fragrance {
	f := domain.Fragrance{Brand: brand}
	for _, n := range notes {
		f.Notes.Top = append(f.Notes.Top, domain.PlainNote(n))
	}
	return f
}

func TestBuildIndex_OrderByCountThenFirstSeen(t *testing.T) {
	records := []domain.Fragrance{
		record("Zeta", "rose", "musk"),
		record("Alpha", "musk"),
		record("Zeta", "iris"),
		record("Beta", "Rose"),
		record("Alpha"),
		record(""),
	}

	idx := BuildIndex(records)

	assert.Equal(t, []Count{
		{Name: "Zeta", Count: 2},
		{Name: "Alpha", Count: 2},
		{Name: "Beta", Count: 1},
	}, idx.Designers)

	assert.Equal(t, []Count{
		{Name: "musk", Count: 2},
		{Name: "rose", Count: 1},
		{Name: "iris", Count: 1},
		{Name: "Rose", Count: 1},
	}, idx.Notes)
}

func TestBuildIndex_AllGroups(t *testing.T) {
	f := domain.Fragrance{Brand: "A", Notes: domain.NoteGroups{
		Top:    []domain.Note{domain.PlainNote("bergamot")},
		Middle: []domain.Note{domain.IllustratedNote("rose", "/rose.png")},
		Base:   []domain.Note{domain.PlainNote("rose")},
	}}

	idx := BuildIndex([]domain.Fragrance{f})
	assert.Equal(t, []Count{{Name: "rose", Count: 2}, {Name: "bergamot", Count: 1}}, idx.Notes)
}

func TestBuildIndex_Empty(t *testing.T) {
	idx := BuildIndex(nil)
	assert.Empty(t, idx.Designers)
	assert.Empty(t, idx.Notes)
}

func TestFilterCounts(t *testing.T) {
	counts := []Count{
		{Name: "Rose", Count: 9},
		{Name: "Musk", Count: 8},
		{Name: "Damask Rose", Count: 3},
		{Name: "rosewood", Count: 2},
	}

	assert.Equal(t, counts, FilterCounts(counts, "", 0))
	assert.Equal(t, []Count{counts[0], counts[2], counts[3]}, FilterCounts(counts, " ROSE", 0))
	assert.Equal(t, []Count{counts[0], counts[2]}, FilterCounts(counts, "rose", 2))
	assert.Empty(t, FilterCounts(counts, "oud", 5))
}
