package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scentdex/scentdex-server/internal/detail"
	"github.com/scentdex/scentdex-server/internal/domain"
	"github.com/scentdex/scentdex-server/internal/gallery"
)

// detailChrome is the number of lines reserved below the scrolling body.
const detailChrome = 3

// detailPage is one open record. Related records opened from it push a new
// page on top, and esc pops back.
type detailPage struct {
	view   detail.View
	links  []*domain.Fragrance
	cursor int
	body   viewport.Model
	parent *detailPage
}

func (m *Model) openDetail(id int) {
	f, err := m.catalog.Get(id)
	if err != nil {
		return
	}

	page := &detailPage{
		view:   detail.Build(f, m.catalog.Records, m.palette, m.now()),
		parent: m.detail,
		body:   viewport.New(m.width, max(m.height-detailChrome, 5)),
	}
	page.links = append(append(page.links, page.view.Similar...), page.view.SameBrand...)
	page.render(*m)

	m.detail = page
	m.mode = modeDetail
}

func (p *detailPage) resize(width, height int) {
	p.body.Width = width
	p.body.Height = max(height-detailChrome, 5)
}

func (p *detailPage) render(m Model) {
	p.body.SetContent(m.renderDetail(p))
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.detail

	if p.view.Gallery.IsOpen() {
		switch msg.String() {
		case "esc":
			p.view.Gallery = p.view.Gallery.HandleKey(gallery.KeyEscape)
		case "left", "h":
			p.view.Gallery = p.view.Gallery.HandleKey(gallery.KeyArrowLeft)
		case "right", "l":
			p.view.Gallery = p.view.Gallery.HandleKey(gallery.KeyArrowRight)
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.detail = p.parent
		if m.detail == nil {
			m.mode = modeList
		}
		return m, nil
	case "tab", "right", "l":
		if len(p.links) > 0 {
			p.cursor = (p.cursor + 1) % len(p.links)
			p.render(m)
		}
		return m, nil
	case "shift+tab", "left", "h":
		if len(p.links) > 0 {
			p.cursor = (p.cursor - 1 + len(p.links)) % len(p.links)
			p.render(m)
		}
		return m, nil
	case "enter":
		if len(p.links) > 0 {
			m.openDetail(p.links[p.cursor].ID)
		}
		return m, nil
	case "p":
		p.view.Gallery = p.view.Gallery.Open(0)
		return m, nil
	}

	var cmd tea.Cmd
	p.body, cmd = p.body.Update(msg)
	return m, cmd
}

func (m Model) viewDetail() string {
	p := m.detail
	if p.view.Gallery.IsOpen() {
		return m.viewGallery(p)
	}

	var b strings.Builder
	b.WriteString(p.body.View())
	b.WriteString("\n")
	help := "↑/↓ scroll · ←/→ related · enter open · esc back · q quit"
	if p.view.Gallery.Renderable() {
		help = "p photos · " + help
	}
	b.WriteString(m.styles.Help.Render(help))
	return b.String()
}

func (m Model) renderDetail(p *detailPage) string {
	v := p.view
	f := v.Fragrance

	var b strings.Builder

	title := m.styles.Title.Render(f.Name)
	if v.IsNew {
		title += " " + m.styles.Badge.Render("NEW")
	}
	b.WriteString(title + "\n")
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%s · for %s · ★ %.2f", f.Brand, v.GenderLabel, f.Rating)))
	b.WriteString("\n\n")

	b.WriteString(m.renderMarkdown(detail.DescribePlain(f, m.now())))
	b.WriteString("\n")

	if len(v.Accords) > 0 {
		b.WriteString(m.styles.Section.Render("Main accords") + "\n")
		pills := make([]string, len(v.Accords))
		for i, sw := range v.Accords {
			pills[i] = Pill(sw)
		}
		b.WriteString(strings.Join(pills, " ") + "\n\n")
	}

	groups := []struct {
		label string
		notes []detail.NoteView
	}{
		{"Top notes", v.Notes.Top},
		{"Middle notes", v.Notes.Middle},
		{"Base notes", v.Notes.Base},
	}
	for _, g := range groups {
		if len(g.notes) == 0 {
			continue
		}
		names := make([]string, len(g.notes))
		for i, n := range g.notes {
			names[i] = n.Name
		}
		b.WriteString(m.styles.Section.Render(g.label) + "\n")
		b.WriteString(strings.Join(names, ", ") + "\n\n")
	}

	m.writeBars(&b, "Seasons", v.Seasons)
	m.writeBars(&b, "Occasions", v.Occasions)

	if f.Longevity != "" || f.Sillage != "" {
		b.WriteString(m.styles.Section.Render("Performance") + "\n")
		if f.Longevity != "" {
			b.WriteString("Longevity: " + f.Longevity + "\n")
		}
		if f.Sillage != "" {
			b.WriteString("Sillage: " + f.Sillage + "\n")
		}
		b.WriteString("\n")
	}

	if f.PurchaseURL != "" {
		b.WriteString(m.styles.Muted.Render("Buy: "+f.PurchaseURL) + "\n\n")
	}

	index := 0
	m.writeLinks(&b, "Similar fragrances", v.Similar, p.cursor, &index)
	m.writeLinks(&b, "More from "+f.Brand, v.SameBrand, p.cursor, &index)

	return b.String()
}

func (m Model) renderMarkdown(text string) string {
	if m.renderer == nil {
		return text + "\n"
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}

func (m Model) writeBars(b *strings.Builder, label string, bars []detail.Bar) {
	if len(bars) == 0 {
		return
	}
	width := 0
	for _, bar := range bars {
		width = max(width, len(bar.Name))
	}
	b.WriteString(m.styles.Section.Render(label) + "\n")
	for _, bar := range bars {
		fmt.Fprintf(b, "%-*s %s %3.0f%%\n", width, bar.Name, Bar(bar.Percent, bar.Color), bar.Percent)
	}
	b.WriteString("\n")
}

// writeLinks lists related records. index numbers links across sections so
// the cursor can move through all of them in one cycle.
func (m Model) writeLinks(b *strings.Builder, label string, items []*domain.Fragrance, cursor int, index *int) {
	if len(items) == 0 {
		return
	}
	b.WriteString(m.styles.Section.Render(label) + "\n")
	for _, f := range items {
		line := fmt.Sprintf("%s · %s", f.Name, f.Brand)
		if *index == cursor {
			b.WriteString(m.styles.Selected.Render("› "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
		*index++
	}
	b.WriteString("\n")
}

func (m Model) viewGallery(p *detailPage) string {
	i, _ := p.view.Gallery.Active()
	photo := p.view.Fragrance.Gallery[i]

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(p.view.Fragrance.Name+" photos") + "  ")
	b.WriteString(m.styles.Subtitle.Render(p.view.Gallery.Counter()))
	b.WriteString("\n\n")
	b.WriteString(photo.URL + "\n")
	if photo.Author != "" {
		b.WriteString(m.styles.Muted.Render("by "+photo.Author) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("←/→ navigate · esc close"))
	return b.String()
}
