// Package rating classifies reading speeds into qualitative bands.
package rating

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Classifier maps a reading speed (characters per second) to a label.
type Classifier interface {
	Rate(readingSpeed float64) string
}

// Band is one entry of a Scale. Speeds strictly below Below belong to the
// band; the last band of a scale takes everything that is left.
type Band struct {
	Below float64
	Label string
	Color uint32
}

// Scale is an ordered list of bands with ascending bounds.
type Scale []Band

const (
	LabelTooSlow = "TOO SLOW!"
	LabelTooFast = "TOO FAST!"
)

// DefaultScale returns the stock reading-speed bands. Colors are 0xRRGGBB.
func DefaultScale() Scale {
	return Scale{
		{Below: 5, Label: LabelTooSlow, Color: 0x9999FF},
		{Below: 10, Label: "Slow, acceptable.", Color: 0x99CCFF},
		{Below: 13, Label: "A bit slow.", Color: 0x99FFFF},
		{Below: 15, Label: "Good.", Color: 0x99FFCC},
		{Below: 23, Label: "Perfect.", Color: 0x99FF99},
		{Below: 27, Label: "Good.", Color: 0xCCFF99},
		{Below: 31, Label: "A bit fast.", Color: 0xFFFF99},
		{Below: 35, Label: "Fast, acceptable.", Color: 0xFFCC99},
		{Below: math.Inf(1), Label: LabelTooFast, Color: 0xFF9999},
	}
}

// Band returns the band the speed falls into. NaN lands in the last band.
func (s Scale) Band(readingSpeed float64) Band {
	if len(s) == 0 {
		return Band{}
	}
	for _, b := range s[:len(s)-1] {
		if readingSpeed < b.Below {
			return b
		}
	}
	return s[len(s)-1]
}

// Rate implements Classifier.
func (s Scale) Rate(readingSpeed float64) string {
	return s.Band(readingSpeed).Label
}

// Color returns the background color for the speed.
func (s Scale) Color(readingSpeed float64) uint32 {
	return s.Band(readingSpeed).Color
}

// IsFirst reports whether the speed falls in the slowest band.
func (s Scale) IsFirst(readingSpeed float64) bool {
	return len(s) > 0 && readingSpeed < s[0].Below
}

// IsLast reports whether the speed falls in the fastest band.
func (s Scale) IsLast(readingSpeed float64) bool {
	if len(s) < 2 {
		return len(s) == 1
	}
	return !(readingSpeed < s[len(s)-2].Below)
}

// Validate checks that the scale is usable.
func (s Scale) Validate() error {
	if len(s) == 0 {
		return errors.New("rating scale must contain at least one band")
	}
	for i, b := range s {
		if strings.TrimSpace(b.Label) == "" {
			return fmt.Errorf("rating band %d: label must be set", i)
		}
		if b.Color > 0xFFFFFF {
			return fmt.Errorf("rating band %d: color %#x exceeds 0xFFFFFF", i, b.Color)
		}
		if math.IsNaN(b.Below) {
			return fmt.Errorf("rating band %d: bound must be a number", i)
		}
		if i > 0 && b.Below <= s[i-1].Below {
			return fmt.Errorf("rating band %d: bound %v must be greater than %v", i, b.Below, s[i-1].Below)
		}
	}
	return nil
}

// Func adapts a plain function to Classifier.
type Func func(readingSpeed float64) string

// Rate implements Classifier.
func (f Func) Rate(readingSpeed float64) string { return f(readingSpeed) }

// HexColor formats a 0xRRGGBB color as "#RRGGBB".
func HexColor(color uint32) string {
	return fmt.Sprintf("#%06X", color&0xFFFFFF)
}

// ParseHexColor parses "#RRGGBB", "RRGGBB" or "0xRRGGBB".
func ParseHexColor(value string) (uint32, error) {
	trimmed := strings.TrimSpace(value)
	trimmed = strings.TrimPrefix(trimmed, "#")
	trimmed = strings.TrimPrefix(strings.TrimPrefix(trimmed, "0x"), "0X")
	if len(trimmed) != 6 {
		return 0, fmt.Errorf("color %q: want 6 hex digits", value)
	}
	color, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: invalid hex digits: %w", value, err)
	}
	return uint32(color), nil
}
