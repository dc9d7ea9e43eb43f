package detail

import (
	"strings"

	"github.com/scentdex/scentdex-server/internal/domain"
)

// UnknownNoteImage is shown for notes without their own picture.
const UnknownNoteImage = "/unknown.png"

// GenderLabel phrases the gender for "for men", "for women" or "for men & women".
func GenderLabel(gender string) string {
	switch strings.ToLower(gender) {
	case "men":
		return "men"
	case "women":
		return "women"
	default:
		return "men & women"
	}
}

// RankingPercent scales a 0-3 suitability score to a percentage.
func RankingPercent(score float64) float64 {
	return score / domain.MaxRankingScore * 100
}

// BarColor picks the ranking bar colour for a percentage.
func BarColor(percent float64) string {
	switch {
	case percent < 25:
		return "#ff4d4f"
	case percent < 40:
		return "#fa8c16"
	case percent < 60:
		return "#fadb14"
	case percent < 85:
		return "#52c41a"
	default:
		return "#1890ff"
	}
}

// Bar is one season or occasion ranking ready for display.
type Bar struct {
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

// Bars converts rankings to bars, keeping their order.
func Bars(rankings []domain.Ranking) []Bar {
	out := make([]Bar, len(rankings))
	for i, r := range rankings {
		pct := RankingPercent(r.Score)
		out[i] = Bar{Name: r.Name, Score: r.Score, Percent: pct, Color: BarColor(pct)}
	}
	return out
}

// NoteImage returns the note's picture or UnknownNoteImage.
func NoteImage(n domain.Note) string {
	if n.Kind == domain.NoteIllustrated {
		return n.ImageURL
	}
	return UnknownNoteImage
}
