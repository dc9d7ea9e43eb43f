package detail

import (
	"html"
	"strconv"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/scentdex/scentdex-server/internal/domain"
)

// IsNew reports whether the release year is at most one year before now.
// Records without a parseable year are never new.
func IsNew(f *domain.Fragrance, now time.Time) bool {
	if f.Year == 0 {
		return false
	}
	return now.Year()-f.Year <= 1
}

// Describe builds the HTML description paragraph for f.
func Describe(f *domain.Fragrance, now time.Time) string {
	accord := "fragrance"
	if len(f.MainAccords) > 0 {
		accord = f.MainAccords[0]
	}

	name := html.EscapeString(f.Name)

	var b strings.Builder
	b.WriteString("<strong>" + name + "</strong> by <strong>" + html.EscapeString(f.Brand) + "</strong>")
	b.WriteString(" is a " + html.EscapeString(accord) + " fragrance. ")

	if IsNew(f, now) {
		b.WriteString("This is a new fragrance. ")
	}

	b.WriteString(name + " was launched in " + html.EscapeString(yearText(f)) + ". ")

	if len(f.Notes.Top) > 0 {
		b.WriteString("Top notes are " + joinNotes(f.Notes.Top) + "; ")
	}
	if len(f.Notes.Middle) > 0 {
		b.WriteString("middle notes are " + joinNotes(f.Notes.Middle) + "; ")
	}
	if len(f.Notes.Base) > 0 {
		b.WriteString("base notes are " + joinNotes(f.Notes.Base) + ".")
	}

	return strings.TrimSpace(b.String())
}

// DescribePlain renders the description as Markdown for terminals.
// If conversion fails the HTML is returned unchanged.
func DescribePlain(f *domain.Fragrance, now time.Time) string {
	desc := Describe(f, now)

	markdown, err := htmltomarkdown.ConvertString(desc)
	if err != nil {
		return desc
	}
	return strings.TrimSpace(markdown)
}

func yearText(f *domain.Fragrance) string {
	if f.YearText != "" {
		return f.YearText
	}
	if f.Year != 0 {
		return strconv.Itoa(f.Year)
	}
	return "an unknown year"
}

func joinNotes(notes []domain.Note) string {
	return html.EscapeString(strings.Join(domain.Names(notes), ", "))
}
