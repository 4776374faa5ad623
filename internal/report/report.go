package report

import (
	"math"
	"strconv"

	"subgauge/internal/metrics"
	"subgauge/internal/rating"
	"subgauge/internal/srt"
	"subgauge/internal/textutil"
)

// Report is the analysis of one subtitle file.
type Report struct {
	Path    string  `json:"path" yaml:"path"`
	Rows    []Row   `json:"rows" yaml:"rows"`
	Summary Summary `json:"summary" yaml:"summary"`
}

// Row is one analyzed cue.
type Row struct {
	Index           int     `json:"index" yaml:"index"`
	Start           string  `json:"start" yaml:"start"`
	Stop            string  `json:"stop" yaml:"stop"`
	Text            string  `json:"text" yaml:"text"`
	Length          int     `json:"length" yaml:"length"`
	DurationSeconds float64 `json:"duration_seconds" yaml:"duration_seconds"`
	IdealDuration   float64 `json:"ideal_duration_seconds" yaml:"ideal_duration_seconds"`
	DisplaySpeed    Speed   `json:"display_speed" yaml:"display_speed"`
	ReadingSpeed    Speed   `json:"reading_speed" yaml:"reading_speed"`
	Rating          string  `json:"rating" yaml:"rating"`
	Color           string  `json:"color,omitempty" yaml:"color,omitempty"`
	DisplayBar      string  `json:"display_bar" yaml:"display_bar"`
	ReadingBar      string  `json:"reading_bar" yaml:"reading_bar"`

	Metrics metrics.Metrics `json:"-" yaml:"-"`
}

// LabelCount is the number of cues that received a rating label.
type LabelCount struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Summary aggregates a report. Mean and max only consider finite reading
// speeds and are zero when there are none.
type Summary struct {
	Cues             int          `json:"cues" yaml:"cues"`
	MeanReadingSpeed float64      `json:"mean_reading_speed" yaml:"mean_reading_speed"`
	MaxReadingSpeed  float64      `json:"max_reading_speed" yaml:"max_reading_speed"`
	Ratings          []LabelCount `json:"ratings" yaml:"ratings"`
	TooFast          int          `json:"too_fast" yaml:"too_fast"`
	TooSlow          int          `json:"too_slow" yaml:"too_slow"`
}

// Speed is a rounded characters-per-second value that serializes non-finite
// values as strings.
type Speed float64

// String formats the speed like the status line does.
func (s Speed) String() string {
	return metrics.FormatNumber(float64(s))
}

// Finite reports whether the speed is neither infinite nor NaN.
func (s Speed) Finite() bool {
	v := float64(s)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (s Speed) MarshalJSON() ([]byte, error) {
	if s.Finite() {
		return []byte(s.String()), nil
	}
	return []byte(strconv.Quote(s.String())), nil
}

func (s Speed) MarshalYAML() (any, error) {
	if s.Finite() {
		return float64(s), nil
	}
	return s.String(), nil
}

// Build computes metrics for every cue. The classifier of calc decides the
// rating; when it is a rating.Scale the row color and the too fast / too slow
// counts come from the first and last bands, otherwise from the stock labels.
func Build(path string, cues []srt.Cue, calc *metrics.Calculator) Report {
	if calc == nil {
		calc = metrics.NewCalculator()
	}
	scale, hasScale := calc.Classifier().(rating.Scale)

	rep := Report{Path: path, Rows: make([]Row, 0, len(cues))}
	counts := map[string]int{}
	var order []string
	var sum float64
	var finite int
	peak := math.Inf(-1)

	for _, cue := range cues {
		text := textutil.StripLines(cue.Lines)
		m := calc.Compute(metrics.Cue{Text: text, StartMs: cue.StartMs, StopMs: cue.StopMs})
		rs := m.ReadingSpeedRounded()

		row := Row{
			Index:           cue.Index,
			Start:           srt.FormatTimestamp(cue.StartMs),
			Stop:            srt.FormatTimestamp(cue.StopMs),
			Text:            text,
			Length:          m.Length,
			DurationSeconds: m.DurationSeconds,
			IdealDuration:   m.IdealDuration,
			DisplaySpeed:    Speed(m.DisplaySpeedRounded()),
			ReadingSpeed:    Speed(rs),
			Rating:          m.Rating,
			DisplayBar:      m.DisplayBar,
			ReadingBar:      m.ReadingBar,
			Metrics:         m,
		}

		if hasScale {
			row.Color = rating.HexColor(scale.Color(rs))
			if scale.IsFirst(rs) {
				rep.Summary.TooSlow++
			}
			if scale.IsLast(rs) {
				rep.Summary.TooFast++
			}
		} else {
			switch m.Rating {
			case rating.LabelTooSlow:
				rep.Summary.TooSlow++
			case rating.LabelTooFast:
				rep.Summary.TooFast++
			}
		}

		if _, seen := counts[m.Rating]; !seen {
			order = append(order, m.Rating)
		}
		counts[m.Rating]++

		if row.ReadingSpeed.Finite() {
			sum += rs
			finite++
			if rs > peak {
				peak = rs
			}
		}
		rep.Rows = append(rep.Rows, row)
	}

	rep.Summary.Cues = len(rep.Rows)
	if finite > 0 {
		rep.Summary.MeanReadingSpeed = metrics.Round1(sum / float64(finite))
		rep.Summary.MaxReadingSpeed = peak
	}
	rep.Summary.Ratings = labelCounts(scale, order, counts)
	return rep
}

// labelCounts orders labels by scale position when a scale is known, then by
// first appearance.
func labelCounts(scale rating.Scale, order []string, counts map[string]int) []LabelCount {
	out := make([]LabelCount, 0, len(counts))
	emitted := make(map[string]bool, len(counts))
	for _, band := range scale {
		if n, ok := counts[band.Label]; ok && !emitted[band.Label] {
			out = append(out, LabelCount{Label: band.Label, Count: n})
			emitted[band.Label] = true
		}
	}
	for _, label := range order {
		if !emitted[label] {
			out = append(out, LabelCount{Label: label, Count: counts[label]})
			emitted[label] = true
		}
	}
	return out
}
