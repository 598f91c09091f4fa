package render

import (
	"fmt"
	"maps"
	"slices"
)

// Palette is an ordered list of fill colors; color class i uses entry
// i mod len(palette).
type Palette []string

// Built-in palette names.
const (
	PaletteDefault = "default"
	PalettePastel  = "pastel"
	PaletteMono    = "mono"
)

// Palettes maps palette names to their colors.
var Palettes = map[string]Palette{
	PaletteDefault: {
		"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231", "#911eb4",
		"#46f0f0", "#f032e6", "#bcf60c", "#fabebe", "#008080", "#e6beff",
	},
	PalettePastel: {
		"#fbb4ae", "#b3cde3", "#ccebc5", "#decbe4", "#fed9a6", "#ffffcc",
		"#e5d8bd", "#fddaec", "#f2f2f2",
	},
	PaletteMono: {
		"#f7f7f7", "#d9d9d9", "#bdbdbd", "#969696", "#737373", "#525252",
	},
}

// PaletteNames returns the built-in palette names in sorted order.
func PaletteNames() []string {
	return slices.Sorted(maps.Keys(Palettes))
}

// LookupPalette returns the named palette; the empty name selects
// [PaletteDefault].
func LookupPalette(name string) (Palette, error) {
	if name == "" {
		name = PaletteDefault
	}
	p, ok := Palettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q (available: %v)", name, PaletteNames())
	}
	return p, nil
}

// Color returns the fill color for color class c.
func (p Palette) Color(c int) string {
	if len(p) == 0 || c < 0 {
		return "white"
	}
	return p[c%len(p)]
}
