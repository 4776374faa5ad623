package metrics

import (
	"fmt"
	"math"
	"strconv"

	"subgauge/internal/gauge"
	"subgauge/internal/rating"
	"subgauge/internal/textutil"
)

const (
	defaultDisplayMin       = 4
	defaultDisplayMax       = 22
	defaultReadingMin       = 5
	defaultReadingMax       = 35
	defaultReadingOffsetMs  = 500
	defaultIdealCPS         = 20
	defaultIdealBaseSeconds = 0.5
)

// statusSeparator joins the status line sections.
const statusSeparator = "  |  "

// Cue is the narrow view of a subtitle line the calculator needs. Text must
// already be stripped of markup and line breaks.
type Cue struct {
	Text    string
	StartMs int64
	StopMs  int64
}

// DurationMs returns StopMs - StartMs.
func (c Cue) DurationMs() int64 {
	return c.StopMs - c.StartMs
}

// Settings holds the tunable constants of the calculation.
type Settings struct {
	DisplayRange     gauge.Range
	ReadingRange     gauge.Range
	ReadingOffsetMs  int64
	IdealCPS         float64
	IdealBaseSeconds float64
}

// DefaultSettings returns the stock ranges and pacing constants.
func DefaultSettings() Settings {
	return Settings{
		DisplayRange:     gauge.Range{Min: defaultDisplayMin, Max: defaultDisplayMax},
		ReadingRange:     gauge.Range{Min: defaultReadingMin, Max: defaultReadingMax},
		ReadingOffsetMs:  defaultReadingOffsetMs,
		IdealCPS:         defaultIdealCPS,
		IdealBaseSeconds: defaultIdealBaseSeconds,
	}
}

// Metrics is the result of one computation. Speeds are exact; use the
// Rounded accessors for display.
type Metrics struct {
	Length          int     `json:"length" yaml:"length"`
	DurationMs      int64   `json:"duration_ms" yaml:"duration_ms"`
	DurationSeconds float64 `json:"duration_seconds" yaml:"duration_seconds"`
	DisplaySpeed    float64 `json:"display_speed" yaml:"display_speed"`
	ReadingSpeed    float64 `json:"reading_speed" yaml:"reading_speed"`
	IdealDuration   float64 `json:"ideal_duration_seconds" yaml:"ideal_duration_seconds"`
	Rating          string  `json:"rating" yaml:"rating"`
	DisplayBar      string  `json:"display_bar" yaml:"display_bar"`
	ReadingBar      string  `json:"reading_bar" yaml:"reading_bar"`
}

// DisplaySpeedRounded returns the display speed rounded to one decimal.
func (m Metrics) DisplaySpeedRounded() float64 {
	return Round1(m.DisplaySpeed)
}

// ReadingSpeedRounded returns the reading speed rounded to one decimal.
func (m Metrics) ReadingSpeedRounded() float64 {
	return Round1(m.ReadingSpeed)
}

// StatusLine formats the metrics as a single status bar line.
func (m Metrics) StatusLine() string {
	return "DS: " + FormatNumber(m.DisplaySpeedRounded()) + " " + m.DisplayBar +
		statusSeparator + "RS: " + FormatNumber(m.ReadingSpeedRounded()) + " " + m.ReadingBar +
		statusSeparator + fmt.Sprintf("Duration: %s (ideal: %s)", FormatNumber(m.DurationSeconds), FormatNumber(m.IdealDuration)) +
		statusSeparator + m.Rating
}

// Calculator computes Metrics for cues.
type Calculator struct {
	settings   Settings
	renderer   *gauge.Renderer
	classifier rating.Classifier
}

// Option customizes a Calculator.
type Option func(*Calculator)

// WithSettings overrides the default ranges and constants.
func WithSettings(s Settings) Option {
	return func(c *Calculator) { c.settings = s }
}

// WithRenderer shares a bar renderer (and its template cache).
func WithRenderer(r *gauge.Renderer) Option {
	return func(c *Calculator) {
		if r != nil {
			c.renderer = r
		}
	}
}

// WithClassifier injects the reading speed classifier.
func WithClassifier(cl rating.Classifier) Option {
	return func(c *Calculator) {
		if cl != nil {
			c.classifier = cl
		}
	}
}

// NewCalculator returns a calculator using default settings, default glyphs
// and the default rating scale unless overridden.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		settings:   DefaultSettings(),
		classifier: rating.DefaultScale(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.renderer == nil {
		c.renderer = gauge.NewRenderer(gauge.DefaultGlyphs())
	}
	return c
}

// Settings returns the calculator settings.
func (c *Calculator) Settings() Settings {
	return c.settings
}

// Classifier returns the classifier used for ratings.
func (c *Calculator) Classifier() rating.Classifier {
	return c.classifier
}

// DisplaySpeed returns characters per second of screen time.
func (c *Calculator) DisplaySpeed(cue Cue) float64 {
	return float64(textutil.CharCount(cue.Text)) * 1000 / float64(cue.DurationMs())
}

// ReadingSpeed returns characters per second once the reading offset is
// subtracted. Durations under the offset are raised to it first, so the
// divisor is never negative but may be zero.
func (c *Calculator) ReadingSpeed(cue Cue) float64 {
	durationMs := max(cue.DurationMs(), c.settings.ReadingOffsetMs)
	return float64(textutil.CharCount(cue.Text)) * 1000 / float64(durationMs-c.settings.ReadingOffsetMs)
}

// IdealDuration returns the heuristic target duration in seconds, rounded to
// one decimal.
func (c *Calculator) IdealDuration(length int) float64 {
	return Round1(c.settings.IdealBaseSeconds + float64(length)/c.settings.IdealCPS)
}

// Compute derives all metrics for the cue.
func (c *Calculator) Compute(cue Cue) Metrics {
	length := textutil.CharCount(cue.Text)
	durationMs := cue.DurationMs()
	ds := c.DisplaySpeed(cue)
	rs := c.ReadingSpeed(cue)

	return Metrics{
		Length:          length,
		DurationMs:      durationMs,
		DurationSeconds: Round1(float64(durationMs) / 1000),
		DisplaySpeed:    ds,
		ReadingSpeed:    rs,
		IdealDuration:   c.IdealDuration(length),
		Rating:          c.classifier.Rate(Round1(rs)),
		DisplayBar:      c.renderer.Render(ds, c.settings.DisplayRange),
		ReadingBar:      c.renderer.Render(rs, c.settings.ReadingRange),
	}
}

// StatusLine computes the metrics for cue and formats them.
func (c *Calculator) StatusLine(cue Cue) string {
	return c.Compute(cue).StatusLine()
}

// Round1 rounds half up to one decimal place.
func Round1(value float64) float64 {
	return gauge.Round(float64(value*10)) / 10
}

// FormatNumber prints the shortest decimal form of value ("2", "5.5") and
// Infinity, -Infinity or NaN for non-finite values.
func FormatNumber(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	case value == 0:
		return "0"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
