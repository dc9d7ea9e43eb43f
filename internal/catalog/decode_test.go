package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentdex/scentdex-server/internal/domain"
	"github.com/scentdex/scentdex-server/internal/errors"
)

const sampleExport = `[
  {
    "Name": "Rose X",
    "Brand": "A",
    "Gender": "women",
    "Year": "2024",
    "Popularity": "Very high",
    "rating": 4.2,
    "Main Accords": ["rose", "musky"],
    "Notes": {
      "Top": ["rose", {"name": "Bergamot", "imageUrl": "/notes/bergamot.png"}],
      "Middle": [],
      "Base": ["musk", null, 7, {"imageUrl": "/orphan.png"}]
    },
    "Season Ranking": [{"name": "summer", "score": "1.5"}, {"name": "winter", "score": 0.2}],
    "Occasion Ranking": [{"name": "day", "score": 2}],
    "Image URL": " https://img.test/rose-x.jpg ",
    "Purchase URL": "https://shop.test/rose-x",
    "Longevity": 4,
    "Sillage": "moderate",
    "Gallery": [{"url": "https://img.test/1.jpg", "author": "ann"}, {"author": "nobody"}]
  },
  {
    "Name": "Broken",
    "Brand": "B",
    "Year": "unknown",
    "rating": "n/a",
    "Main Accords": "woody",
    "Notes": "none",
    "Season Ranking": {"name": "summer"}
  },
  42
]`

func TestDecode_FullRecord(t *testing.T) {
	c, err := Decode(strings.NewReader(sampleExport))
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	f := c.Records[0]
	assert.Equal(t, 0, f.ID)
	assert.Equal(t, "Rose X", f.Name)
	assert.Equal(t, 2024, f.Year)
	assert.Equal(t, "2024", f.YearText)
	assert.Equal(t, 5, f.Popularity.Rank())
	assert.InDelta(t, 4.2, f.Rating, 1e-9)
	assert.Equal(t, []string{"rose", "musky"}, f.MainAccords)
	assert.Equal(t, "https://img.test/rose-x.jpg", f.ImageURL)
	assert.Equal(t, "4", f.Longevity)
	assert.Equal(t, "moderate", f.Sillage)

	require.Len(t, f.Notes.Top, 2)
	assert.Equal(t, domain.PlainNote("rose"), f.Notes.Top[0])
	assert.Equal(t, domain.IllustratedNote("Bergamot", "/notes/bergamot.png"), f.Notes.Top[1])
	assert.Empty(t, f.Notes.Middle)
	assert.Equal(t, []domain.Note{domain.PlainNote("musk")}, f.Notes.Base)

	require.Len(t, f.Seasons, 2)
	assert.InDelta(t, 1.5, f.Seasons[0].Score, 1e-9)
	assert.Equal(t, []domain.Photo{{URL: "https://img.test/1.jpg", Author: "ann"}}, f.Gallery)
}

func TestDecode_MalformedFieldsBecomeEmpty(t *testing.T) {
	c, err := Decode(strings.NewReader(sampleExport))
	require.NoError(t, err)

	f := c.Records[1]
	assert.Equal(t, 1, f.ID)
	assert.Zero(t, f.Year)
	assert.Equal(t, "unknown", f.YearText)
	assert.Zero(t, f.Rating)
	assert.Empty(t, f.MainAccords)
	assert.Zero(t, f.Notes.Len())
	assert.Empty(t, f.Seasons)
}

func TestDecode_NonObjectKeepsSlot(t *testing.T) {
	c, err := Decode(strings.NewReader(sampleExport))
	require.NoError(t, err)

	assert.Equal(t, 1, c.Skipped)
	assert.Equal(t, 2, c.Records[2].ID)
	assert.Empty(t, c.Records[2].Name)

	for i, f := range c.Records {
		assert.Equal(t, i, f.ID)
	}
}

func TestDecode_TopLevelMustBeArray(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"Name": "x"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestDecode_VersionPerLoad(t *testing.T) {
	a, err := Decode(strings.NewReader(`[]`))
	require.NoError(t, err)
	b, err := Decode(strings.NewReader(`[]`))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a.Version, "cat-"))
	assert.NotEqual(t, a.Version, b.Version)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"3", 3},
		{"-1.5", -1.5},
		{"abc", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"2019 edition", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseNumber(tt.in))
		})
	}
}

func TestCatalog_Get(t *testing.T) {
	c, err := Decode(strings.NewReader(sampleExport))
	require.NoError(t, err)

	f, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Broken", f.Name)

	for _, id := range []int{-1, 3, 1000} {
		_, err := c.Get(id)
		assert.True(t, errors.Is(err, errors.ErrNotFound), "id %d", id)
	}
}
