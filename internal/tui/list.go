package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scentdex/scentdex-server/internal/detail"
	"github.com/scentdex/scentdex-server/internal/query"
)

// listChrome is the number of lines around the list: header, filters, search, footer, help.
const listChrome = 8

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, max(len(m.visible())-1, 0))
	case "/":
		m.mode = modeSearch
		m.search.SetValue(m.state.Search)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case "g":
		m.setState(cycleGender(m.state))
	case "s":
		m.setState(cycleSeason(m.state))
	case "o":
		m.setState(m.state.SetSort(nextSort(m.state.Sort)))
	case "D":
		m.openPicker(pickDesigner)
	case "N":
		m.openPicker(pickNote)
	case "m":
		if m.result.HasMore(m.state.Reveal) {
			m.setState(m.state.ShowMore())
		}
	case "c":
		m.setState(m.state.Clear())
	case "enter":
		if items := m.visible(); len(items) > 0 {
			m.openDetail(items[m.cursor].ID)
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = modeList
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.setState(m.state.SetSearch(m.search.Value()))
	return m, cmd
}

// cycleGender steps through no filter, then each known gender in turn.
func cycleGender(s query.State) query.State {
	next := query.Cycle(query.Genders, s.Gender)
	if next == "" {
		return s.ToggleGender(s.Gender)
	}
	return s.ToggleGender(next)
}

func cycleSeason(s query.State) query.State {
	next := query.Cycle(query.Seasons, s.Season)
	if next == "" {
		return s.ToggleSeason(s.Season)
	}
	return s.ToggleSeason(next)
}

func nextSort(current query.Sort) query.Sort {
	for i, s := range query.Sorts {
		if s == current {
			return query.Sorts[(i+1)%len(query.Sorts)]
		}
	}
	return query.SortPopular
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("ScentDex"))
	b.WriteString("  ")
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%d fragrances found", m.result.Total)))
	b.WriteString("\n")
	b.WriteString(m.viewFilters())
	b.WriteString("\n")

	if m.mode == modeSearch {
		b.WriteString(m.search.View())
	} else if m.state.Search != "" {
		b.WriteString(m.styles.Muted.Render("/ " + m.state.Search))
	}
	b.WriteString("\n\n")

	items := m.visible()
	if len(items) == 0 {
		b.WriteString(m.styles.Muted.Render("No fragrances match the current filters."))
		b.WriteString("\n")
	}

	rows := max(m.height-listChrome, 3)
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(items))

	for i := start; i < end; i++ {
		f := items[i]
		line := fmt.Sprintf("%s · %s", f.Name, f.Brand)
		if f.Year != 0 {
			line += fmt.Sprintf(" (%d)", f.Year)
		}
		line += fmt.Sprintf("  ★ %.1f  for %s", f.Rating, detail.GenderLabel(f.Gender))
		if detail.IsNew(f, m.now()) {
			line += " " + m.styles.Badge.Render("NEW")
		}

		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := fmt.Sprintf("Showing %d of %d", len(items), m.result.Total)
	if m.result.HasMore(m.state.Reveal) {
		footer += " · m: show more"
	}
	b.WriteString(m.styles.Muted.Render(footer))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("/ search · g gender · s season · o sort · D designer · N note · c clear · enter details · q quit"))

	return b.String()
}

func (m Model) viewFilters() string {
	label := func(name, value string) string {
		if value == "" {
			return m.styles.Muted.Render(name + ": any")
		}
		return m.styles.Filter.Render(name + ": " + value)
	}

	parts := []string{
		label("Gender", query.Label(m.state.Gender)),
		label("Season", query.Label(m.state.Season)),
		label("Designer", m.state.Designer),
		label("Note", m.state.Note),
		m.styles.Filter.Render("Sort: " + m.state.Sort.Label()),
	}
	return strings.Join(parts, "  ")
}
