package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scentdex/scentdex-server/internal/catalog"
)

type pickerKind int

const (
	pickDesigner pickerKind = iota
	pickNote
)

// picker is a searchable facet list for choosing a designer or note.
type picker struct {
	kind   pickerKind
	input  textinput.Model
	items  []catalog.Count
	cursor int
}

func (m *Model) openPicker(kind pickerKind) {
	input := textinput.New()
	input.Prompt = "filter: "
	input.CharLimit = 100
	input.Focus()

	m.picker = &picker{kind: kind, input: input}
	m.filterPicker()
	m.mode = modePicker
}

func (m *Model) filterPicker() {
	p := m.picker
	if p.kind == pickDesigner {
		p.items = catalog.FilterCounts(m.catalog.Index.Designers, p.input.Value(), 0)
	} else {
		p.items = catalog.FilterCounts(m.catalog.Index.Notes, p.input.Value(), catalog.NoteFacetLimit)
	}
	p.cursor = min(p.cursor, max(len(p.items)-1, 0))
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.picker

	switch msg.String() {
	case "esc":
		m.closePicker()
		return m, nil
	case "up":
		p.cursor = max(p.cursor-1, 0)
		return m, nil
	case "down":
		p.cursor = min(p.cursor+1, max(len(p.items)-1, 0))
		return m, nil
	case "enter":
		if len(p.items) > 0 {
			name := p.items[p.cursor].Name
			if p.kind == pickDesigner {
				m.setState(m.state.ToggleDesigner(name))
			} else {
				m.setState(m.state.ToggleNote(name))
			}
		}
		m.closePicker()
		return m, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	m.filterPicker()
	return m, cmd
}

func (m *Model) closePicker() {
	m.picker = nil
	m.mode = modeList
}

func (m Model) viewPicker() string {
	p := m.picker

	var b strings.Builder
	title, active := "Designers", m.state.Designer
	if p.kind == pickNote {
		title, active = "Notes", m.state.Note
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	if len(p.items) == 0 {
		b.WriteString(m.styles.Muted.Render("Nothing matches."))
		b.WriteString("\n")
	}

	rows := max(m.height-listChrome, 3)
	start := 0
	if p.cursor >= rows {
		start = p.cursor - rows + 1
	}
	for i := start; i < min(start+rows, len(p.items)); i++ {
		c := p.items[i]
		line := fmt.Sprintf("%s (%d)", c.Name, c.Count)
		if c.Name == active {
			line += " ✓"
		}
		if i == p.cursor {
			b.WriteString(m.styles.Selected.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("type to filter · enter select (again to clear) · esc cancel"))
	return b.String()
}
