package domain

import (
	"unicode/utf16"

	"github.com/lucasb-eyer/go-colorful"
)

// Fixed colors for the synthetic bucket and the empty-chart disc
const (
	UnlabeledColor   = "#d9d9d9"
	PlaceholderColor = "#f0f0f0"
	BorderColor      = "#ffffff"
)

// Generated label colors share saturation and lightness; only hue varies
const (
	generatedSaturation = 0.65
	generatedLightness  = 0.55
)

// ColorTable maps a label name to its display color.
// Entries are never rewritten once present.
type ColorTable map[string]string

// Clone returns an independent copy of the table
func (t ColorTable) Clone() ColorTable {
	out := make(ColorTable, len(t))
	for name, color := range t {
		out[name] = color
	}
	return out
}

// Merge copies seed entries into the table, skipping names that already
// have a color.
func (t ColorTable) Merge(seed ColorTable) {
	for name, color := range seed {
		if color == "" {
			continue
		}
		if _, ok := t[name]; !ok {
			t[name] = color
		}
	}
}

// ColorFor returns the color for name, generating and memoizing one in table
// on first sight. A nil table yields the generated color without memoizing.
func ColorFor(name string, table ColorTable) string {
	if color, ok := table[name]; ok {
		return color
	}
	color := GeneratedColor(name)
	if table != nil {
		table[name] = color
	}
	return color
}

// GeneratedColor derives the hash color for name as a #rrggbb string
func GeneratedColor(name string) string {
	return colorful.Hsl(float64(HashHue(name)), generatedSaturation, generatedLightness).Hex()
}

// HashHue folds the UTF-16 code units of name into a hue in [0,360).
// The accumulator wraps at 2^32.
func HashHue(name string) int {
	var h uint32
	for _, unit := range utf16.Encode([]rune(name)) {
		h = h*31 + uint32(unit)
	}
	return int(h % 360)
}
