// Package tui is the terminal catalog browser.
//
// All browsing state lives in query.State and gallery.State values; key
// presses are translated into their reducers and the views only render.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/scentdex/scentdex-server/internal/catalog"
	"github.com/scentdex/scentdex-server/internal/color"
	"github.com/scentdex/scentdex-server/internal/domain"
	"github.com/scentdex/scentdex-server/internal/query"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modePicker
	modeDetail
)

// Options tunes a Model. The zero value is usable.
type Options struct {
	// Now is the clock used for "new release" checks. Defaults to time.Now.
	Now func() time.Time
	// Width and Height seed the layout until the first resize message.
	Width  int
	Height int
}

// Model is the bubbletea model of the browser.
type Model struct {
	catalog  *catalog.Catalog
	palette  *color.Palette
	now      func() time.Time
	styles   Styles
	renderer *glamour.TermRenderer

	mode   mode
	state  query.State
	result query.Result
	cursor int

	search textinput.Model
	picker *picker
	detail *detailPage

	width  int
	height int
}

// New creates a browser over c.
func New(c *catalog.Catalog, palette *color.Palette, opts Options) Model {
	if palette == nil {
		palette = color.NewPalette(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Width <= 0 {
		opts.Width = 100
	}
	if opts.Height <= 0 {
		opts.Height = 30
	}

	search := textinput.New()
	search.Placeholder = "brand or name"
	search.Prompt = "/ "
	search.CharLimit = 200

	m := Model{
		catalog: c,
		palette: palette,
		now:     opts.Now,
		styles:  DefaultStyles(),
		state:   query.NewState(),
		search:  search,
		width:   opts.Width,
		height:  opts.Height,
	}
	m.renderer = newRenderer(m.width)
	m.refresh()
	return m
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return nil
	}
	return r
}

// State returns the current filter selection.
func (m Model) State() query.State {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.renderer = newRenderer(m.width)
		if m.detail != nil {
			m.detail.resize(m.width, m.height)
			m.detail.render(m)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modePicker:
			return m.updatePicker(msg)
		case modeDetail:
			return m.updateDetail(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.mode {
	case modePicker:
		return m.styles.Frame.Render(m.viewPicker())
	case modeDetail:
		return m.styles.Frame.Render(m.viewDetail())
	default:
		return m.styles.Frame.Render(m.viewList())
	}
}

// setState applies a new selection and recomputes the result.
func (m *Model) setState(s query.State) {
	m.state = s
	m.refresh()
}

func (m *Model) refresh() {
	m.result = query.Apply(m.catalog.Records, m.state)
	visible := len(m.result.Visible(m.state.Reveal))
	m.cursor = min(m.cursor, max(visible-1, 0))
}

func (m Model) visible() []*domain.Fragrance {
	return m.result.Visible(m.state.Reveal)
}
