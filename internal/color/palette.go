// Package color maps accords to display colours and picks readable text on top of them.
package color

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Fallback is the neutral colour used for unknown accords.
const Fallback = "#cccccc"

// Text colours returned by TextColor.
const (
	TextDark  = "black"
	TextLight = "white"
)

// luminanceThreshold splits dark from light text on the 0-255 weighted RGB scale.
const luminanceThreshold = 150

// Palette is a read-only accord -> hex table.
type Palette struct {
	colors map[string]string
}

// Swatch is an accord rendered with its colours.
type Swatch struct {
	Accord     string `json:"accord"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// NewPalette builds a palette from accord -> hex pairs. Keys are lower-cased and
// values normalized to #rrggbb; unparseable values are dropped.
func NewPalette(colors map[string]string) *Palette {
	p := &Palette{colors: make(map[string]string, len(colors))}
	for accord, hex := range colors {
		c, err := colorful.Hex(strings.TrimSpace(hex))
		if err != nil {
			continue
		}
		p.colors[strings.ToLower(strings.TrimSpace(accord))] = c.Hex()
	}
	return p
}

// ParsePalette decodes a JSON object of accord -> hex.
func ParsePalette(r io.Reader) (*Palette, error) {
	var colors map[string]string
	if err := json.NewDecoder(r).Decode(&colors); err != nil {
		return nil, fmt.Errorf("decode accord palette: %w", err)
	}
	return NewPalette(colors), nil
}

// LoadPalette reads the palette at path. An empty path yields an empty palette.
func LoadPalette(path string) (*Palette, error) {
	if path == "" {
		return NewPalette(nil), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open accord palette: %w", err)
	}
	defer f.Close()

	return ParsePalette(f)
}

// Len returns the number of known accords.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Lookup returns the accord's hex colour and whether the accord is known.
func (p *Palette) Lookup(accord string) (string, bool) {
	hex, ok := p.colors[strings.ToLower(strings.TrimSpace(accord))]
	return hex, ok
}

// Color returns the accord's hex colour, or Fallback when unknown.
func (p *Palette) Color(accord string) string {
	if hex, ok := p.Lookup(accord); ok {
		return hex
	}
	return Fallback
}

// Swatch pairs the accord's background with a readable text colour.
func (p *Palette) Swatch(accord string) Swatch {
	bg := p.Color(accord)
	return Swatch{Accord: accord, Background: bg, Text: TextColor(bg)}
}

// Swatches renders every accord in order.
func (p *Palette) Swatches(accords []string) []Swatch {
	out := make([]Swatch, len(accords))
	for i, a := range accords {
		out[i] = p.Swatch(a)
	}
	return out
}

// TextColor picks black text on light backgrounds and white on dark ones.
// Unparseable input is treated as Fallback.
func TextColor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(Fallback)
	}
	r, g, b := c.RGB255()
	luminance := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if luminance > luminanceThreshold {
		return TextDark
	}
	return TextLight
}
