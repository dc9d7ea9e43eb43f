package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentdex/scentdex-server/internal/catalog"
	"github.com/scentdex/scentdex-server/internal/color"
	"github.com/scentdex/scentdex-server/internal/query"
)

const testCatalog = `[
{"Name":"Sauvage","Brand":"Dior","Gender":"men","Year":2015,"Popularity":"Very high","rating":4.2,
 "Main Accords":["citrus"],
 "Notes":{"Top":["Bergamot"],"Middle":["Pepper"],"Base":["Ambroxan"]},
 "Season Ranking":[{"name":"summer","score":2.5},{"name":"winter","score":0.5}],
 "Gallery":[{"url":"/g/0a.jpg","author":"ana"},{"url":"/g/0b.jpg"},{"url":"/g/0c.jpg"}]},
{"Name":"Bleu de Chanel","Brand":"Chanel","Gender":"men","Year":2010,"Popularity":"High","rating":4.3,
 "Notes":{"Top":["Bergamot","Grapefruit"],"Middle":["Ginger"],"Base":["Cedar"]},
 "Season Ranking":[{"name":"fall","score":2.0}]},
{"Name":"Coco Mademoiselle","Brand":"Chanel","Gender":"women","Year":2001,"Popularity":"Very high","rating":4.1,
 "Notes":{"Top":["Orange","Bergamot"],"Middle":["Rose"],"Base":["Patchouli"]}},
{"Name":"Oud Wood","Brand":"Tom Ford","Gender":"unisex","Year":2007,"Popularity":"Medium","rating":4.4,
 "Notes":{"Top":["Cardamom"],"Middle":["Oud"],"Base":["Vanilla"]},
 "Season Ranking":[{"name":"winter","score":2.8}]},
{"Name":"Sauvage Elixir","Brand":"Dior","Gender":"men","Year":2025,"Popularity":"Low","rating":3.9,
 "Notes":{"Top":["bergamot "],"Middle":["PEPPER"],"Base":["Ambroxan"]}}
]`

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) Model {
	t.Helper()

	c, err := catalog.Decode(strings.NewReader(testCatalog))
	require.NoError(t, err)

	palette := color.NewPalette(map[string]string{"citrus": "#f9ff52"})
	return New(c, palette, Options{
		Now:    func() time.Time { return testNow },
		Width:  100,
		Height: 40,
	})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// press feeds keys to m one by one. Multi-rune strings are typed as single runes.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, string(r))
	}
	return m
}

func visibleIDs(m Model) []int {
	var ids []int
	for _, f := range m.visible() {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestModel_InitialList(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, query.NewState(), m.State())
	assert.Equal(t, []int{0, 2, 1, 3, 4}, visibleIDs(m))

	view := m.View()
	assert.Contains(t, view, "5 fragrances found")
	assert.Contains(t, view, "Sauvage")
	assert.Contains(t, view, "Showing 5 of 5")
	assert.NotContains(t, view, "show more")
}

func TestModel_CycleGender(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "g")
	assert.Equal(t, "men", m.State().Gender)
	assert.Equal(t, []int{0, 1, 4}, visibleIDs(m))

	m = press(t, m, "g")
	assert.Equal(t, "women", m.State().Gender)

	m = press(t, m, "g", "g")
	assert.Empty(t, m.State().Gender)
	assert.Len(t, visibleIDs(m), 5)
}

func TestModel_SeasonAndSort(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "s")
	assert.Equal(t, "fall", m.State().Season)
	assert.Equal(t, []int{1}, visibleIDs(m))

	m = press(t, m, "c", "o")
	assert.Empty(t, m.State().Season)
	assert.Equal(t, query.SortRated, m.State().Sort)
	assert.Equal(t, []int{3, 1, 0, 2, 4}, visibleIDs(m))
	assert.Contains(t, m.View(), "Highest rated")
}

func TestModel_Search(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "/")
	require.Equal(t, modeSearch, m.mode)

	m = typeText(t, m, "chanel")
	assert.Equal(t, "chanel", m.State().Search)
	assert.Equal(t, []int{2, 1}, visibleIDs(m))

	m = press(t, m, "enter")
	assert.Equal(t, modeList, m.mode)

	// Letters are filter keys again once the search box is closed.
	m = press(t, m, "g")
	assert.Equal(t, "men", m.State().Gender)
	assert.Equal(t, []int{1}, visibleIDs(m))
}

func TestModel_NoMatches(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "/")
	m = typeText(t, m, "zzz")
	m = press(t, m, "esc")

	assert.Empty(t, visibleIDs(m))
	assert.Contains(t, m.View(), "No fragrances match")

	// Enter on an empty list stays on the list.
	m = press(t, m, "enter")
	assert.Equal(t, modeList, m.mode)
}

func TestModel_DesignerPicker(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "D")
	require.Equal(t, modePicker, m.mode)
	assert.Contains(t, m.View(), "Dior (2)")

	m = press(t, m, "down", "enter")
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "Chanel", m.State().Designer)
	assert.Equal(t, []int{2, 1}, visibleIDs(m))

	// Choosing the active designer again clears it.
	m = press(t, m, "D", "down", "enter")
	assert.Empty(t, m.State().Designer)
}

func TestModel_NotePicker(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "N")
	m = typeText(t, m, "berg")

	require.NotNil(t, m.picker)
	require.Len(t, m.picker.items, 2)
	assert.Equal(t, "Bergamot", m.picker.items[0].Name)
	assert.Equal(t, "bergamot ", m.picker.items[1].Name)

	m = press(t, m, "enter")
	assert.Equal(t, "Bergamot", m.State().Note)
	assert.Equal(t, []int{0, 2, 1}, visibleIDs(m))
}

func TestModel_PickerEscapeKeepsState(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "N", "esc")
	assert.Equal(t, modeList, m.mode)
	assert.Nil(t, m.picker)
	assert.Equal(t, query.NewState(), m.State())
}

func TestModel_DetailNavigation(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "enter")
	require.Equal(t, modeDetail, m.mode)
	require.NotNil(t, m.detail)
	assert.Equal(t, 0, m.detail.view.Fragrance.ID)

	view := m.View()
	assert.Contains(t, view, "Sauvage")
	assert.Contains(t, m.detail.body.View(), "Main accords")

	// Similar and same-brand both point at Sauvage Elixir.
	require.Len(t, m.detail.links, 2)
	assert.Equal(t, 4, m.detail.links[0].ID)

	m = press(t, m, "enter")
	assert.Equal(t, 4, m.detail.view.Fragrance.ID)
	assert.Contains(t, m.detail.body.View(), "NEW")

	m = press(t, m, "esc")
	require.Equal(t, modeDetail, m.mode)
	assert.Equal(t, 0, m.detail.view.Fragrance.ID)

	m = press(t, m, "esc")
	assert.Equal(t, modeList, m.mode)
	assert.Nil(t, m.detail)
}

func TestModel_DetailFollowsCursor(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "down", "enter")
	require.Equal(t, modeDetail, m.mode)
	assert.Equal(t, 2, m.detail.view.Fragrance.ID)
}

func TestModel_Gallery(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "enter", "p")
	g := m.detail.view.Gallery
	require.True(t, g.IsOpen())
	assert.Equal(t, "1 / 3", g.Counter())
	assert.Contains(t, m.View(), "by ana")

	m = press(t, m, "left")
	assert.Equal(t, "1 / 3", m.detail.view.Gallery.Counter())

	m = press(t, m, "right", "right", "right")
	assert.Equal(t, "3 / 3", m.detail.view.Gallery.Counter())
	assert.Contains(t, m.View(), "/g/0c.jpg")

	m = press(t, m, "esc")
	assert.False(t, m.detail.view.Gallery.IsOpen())
	assert.Equal(t, modeDetail, m.mode)
}

func TestModel_GalleryWithoutPhotos(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "down", "down", "enter", "p")
	require.Equal(t, 1, m.detail.view.Fragrance.ID)
	assert.False(t, m.detail.view.Gallery.IsOpen())
	assert.NotContains(t, m.View(), "p photos")
}

func TestModel_ShowMore(t *testing.T) {
	var b strings.Builder
	b.WriteString("[")
	for i := range 45 {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"Name":"N","Brand":"B","Gender":"men"}`)
	}
	b.WriteString("]")

	c, err := catalog.Decode(strings.NewReader(b.String()))
	require.NoError(t, err)
	m := New(c, nil, Options{Now: func() time.Time { return testNow }})

	assert.Len(t, m.visible(), 20)
	assert.Contains(t, m.View(), "show more")

	m = press(t, m, "m", "m")
	assert.Len(t, m.visible(), 45)
	assert.NotContains(t, m.View(), "show more")

	m = press(t, m, "m")
	assert.Equal(t, 60, m.State().Reveal)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)

	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(key(k))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_Resize(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "enter")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Model)

	assert.Equal(t, 60, m.width)
	assert.Equal(t, 60, m.detail.body.Width)
	assert.Equal(t, 17, m.detail.body.Height)
}
