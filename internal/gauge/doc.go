// Package gauge renders a numeric value as a fixed-width ASCII bar.
//
// A template bar holds one filler glyph per integer step of a [min, max]
// range. Render replaces one glyph with a marker to show where the value
// sits, or prepends/appends an out-of-range marker when it falls outside.
// Renderer memoizes templates per range and is safe for concurrent use.
package gauge
