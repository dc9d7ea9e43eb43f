package detail

import (
	"time"

	"github.com/scentdex/scentdex-server/internal/color"
	"github.com/scentdex/scentdex-server/internal/domain"
	"github.com/scentdex/scentdex-server/internal/gallery"
)

// NoteView is a note with its resolved image.
type NoteView struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// NotePyramid is the three note groups ready for display.
type NotePyramid struct {
	Top    []NoteView `json:"top"`
	Middle []NoteView `json:"middle"`
	Base   []NoteView `json:"base"`
}

// View is the complete detail page model for one record.
type View struct {
	Fragrance   *domain.Fragrance   `json:"fragrance"`
	GenderLabel string              `json:"gender_label"`
	IsNew       bool                `json:"is_new"`
	Description string              `json:"description"`
	Accords     []color.Swatch      `json:"accords"`
	Notes       NotePyramid         `json:"notes"`
	Seasons     []Bar               `json:"seasons"`
	Occasions   []Bar               `json:"occasions"`
	Similar     []*domain.Fragrance `json:"similar"`
	SameBrand   []*domain.Fragrance `json:"same_brand"`
	Gallery     gallery.State       `json:"gallery"`
}

// Build assembles the detail view of f against the full record list.
func Build(f *domain.Fragrance, all []domain.Fragrance, palette *color.Palette, now time.Time) View {
	return View{
		Fragrance:   f,
		GenderLabel: GenderLabel(f.Gender),
		IsNew:       IsNew(f, now),
		Description: Describe(f, now),
		Accords:     palette.Swatches(f.MainAccords),
		Notes: NotePyramid{
			Top:    noteViews(f.Notes.Top),
			Middle: noteViews(f.Notes.Middle),
			Base:   noteViews(f.Notes.Base),
		},
		Seasons:   Bars(f.Seasons),
		Occasions: Bars(f.Occasions),
		Similar:   Similar(f, all),
		SameBrand: SameBrand(f, all),
		Gallery:   gallery.New(len(f.Gallery)),
	}
}

func noteViews(notes []domain.Note) []NoteView {
	out := make([]NoteView, len(notes))
	for i, n := range notes {
		out[i] = NoteView{Name: n.Name, Image: NoteImage(n)}
	}
	return out
}
