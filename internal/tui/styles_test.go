package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scentdex/scentdex-server/internal/color"
)

func TestBar_FillsProportionally(t *testing.T) {
	tests := []struct {
		percent float64
		filled  int
	}{
		{0, 0},
		{50, 10},
		{83.33, 17},
		{100, 20},
		{140, 20},
		{-5, 0},
	}

	for _, tt := range tests {
		bar := Bar(tt.percent, "#1890ff")
		assert.Equal(t, tt.filled, strings.Count(bar, "█"), "percent %v", tt.percent)
		assert.Equal(t, barWidth-tt.filled, strings.Count(bar, "░"), "percent %v", tt.percent)
	}
}

func TestPill_ShowsAccord(t *testing.T) {
	pill := Pill(color.Swatch{Accord: "citrus", Background: "#f9ff52", Text: color.TextDark})
	assert.Contains(t, pill, "citrus")
}
