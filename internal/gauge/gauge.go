package gauge

import (
	"math"
	"strings"
	"sync"
	"unicode/utf8"
)

// Default glyphs used when a Glyphs field is left empty.
const (
	DefaultFiller      = "·"
	DefaultMarker      = "¦"
	DefaultBelowMarker = "«"
	DefaultAboveMarker = "»"
)

// seedGlyphs is the size of the filler run BuildTemplate starts doubling from.
const seedGlyphs = 8

// Glyphs selects the characters used to draw a bar.
type Glyphs struct {
	Filler string
	Marker string
	Below  string
	Above  string
}

// DefaultGlyphs returns the stock glyph set.
func DefaultGlyphs() Glyphs {
	return Glyphs{
		Filler: DefaultFiller,
		Marker: DefaultMarker,
		Below:  DefaultBelowMarker,
		Above:  DefaultAboveMarker,
	}
}

func (g Glyphs) withDefaults() Glyphs {
	if g.Filler == "" {
		g.Filler = DefaultFiller
	}
	if g.Marker == "" {
		g.Marker = DefaultMarker
	}
	if g.Below == "" {
		g.Below = DefaultBelowMarker
	}
	if g.Above == "" {
		g.Above = DefaultAboveMarker
	}
	return g
}

// Range is an inclusive integer interval displayed by a bar.
type Range struct {
	Min int
	Max int
}

// Width returns the number of glyphs in a template for the range.
func (r Range) Width() int {
	if r.Max < r.Min {
		return 0
	}
	return r.Max - r.Min + 1
}

// Contains reports whether the rounded value falls inside the range.
func (r Range) Contains(value float64) bool {
	rounded := Round(value)
	return rounded >= float64(r.Min) && rounded <= float64(r.Max)
}

// Round rounds half up, matching the rounding the bars were calibrated with.
// -2.5 rounds to -2, 2.5 rounds to 3.
func Round(value float64) float64 {
	return math.Floor(value + 0.5)
}

// BuildTemplate returns max-min+1 copies of the first rune of filler. The run
// is grown by doubling and then cut to length.
func BuildTemplate(filler string, min, max int) string {
	width := Range{Min: min, Max: max}.Width()
	if width == 0 {
		return ""
	}
	glyph, _ := utf8.DecodeRuneInString(filler)
	if glyph == utf8.RuneError {
		glyph, _ = utf8.DecodeRuneInString(DefaultFiller)
	}

	bar := strings.Repeat(string(glyph), seedGlyphs)
	count := seedGlyphs
	for count < width {
		bar += bar
		count *= 2
	}
	return truncateRunes(bar, width)
}

func truncateRunes(value string, n int) string {
	seen := 0
	for i := range value {
		if seen == n {
			return value[:i]
		}
		seen++
	}
	return value
}

// Render draws value on template using the default glyphs.
func Render(value float64, min, max int, template string) string {
	return DefaultGlyphs().Render(value, min, max, template)
}

// Render draws value on a template built for [min, max].
//
// A value rounding below min gets the below marker prepended and one rounding
// above max gets the above marker appended; the template is left untouched in
// both cases. In range, the marker is written at index offset-1 (offset being
// rounded-min, index 0 when offset is 0) and the glyph at offset is dropped,
// so the result is one glyph shorter than the template for offset >= 1.
// Displays are calibrated to that placement; keep it.
func (g Glyphs) Render(value float64, min, max int, template string) string {
	g = g.withDefaults()
	rounded := Round(value)
	switch {
	case rounded < float64(min):
		return g.Below + template
	case rounded > float64(max):
		return template + g.Above
	case math.IsNaN(rounded):
		// NaN fails both bounds checks and lands at the start.
		return g.Marker + template
	}

	runes := []rune(template)
	offset := int(rounded) - min
	end := clamp(offset-1, 0, len(runes))
	start := clamp(offset+1, 0, len(runes))
	return string(runes[:end]) + g.Marker + string(runes[start:])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Renderer draws bars and memoizes one template per range.
type Renderer struct {
	glyphs Glyphs

	mu        sync.Mutex
	templates map[Range]string
	builds    int
}

// NewRenderer constructs a Renderer. Empty glyph fields fall back to defaults.
func NewRenderer(glyphs Glyphs) *Renderer {
	return &Renderer{
		glyphs:    glyphs.withDefaults(),
		templates: make(map[Range]string),
	}
}

// Glyphs returns the glyph set the renderer draws with.
func (r *Renderer) Glyphs() Glyphs {
	return r.glyphs
}

// Template returns the cached template for rng, building it on first use.
func (r *Renderer) Template(rng Range) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.templates[rng]; ok {
		return tpl
	}
	tpl := BuildTemplate(r.glyphs.Filler, rng.Min, rng.Max)
	r.templates[rng] = tpl
	r.builds++
	return tpl
}

// Render draws value against the cached template for rng.
func (r *Renderer) Render(value float64, rng Range) string {
	return r.glyphs.Render(value, rng.Min, rng.Max, r.Template(rng))
}

// Builds reports how many templates have been constructed so far.
func (r *Renderer) Builds() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.builds
}
