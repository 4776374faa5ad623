package plugin

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"subgauge/internal/logging"
	"subgauge/internal/metrics"
	"subgauge/internal/rating"
)

// Hook names a callback the host invokes.
type Hook int

const (
	// HookSubtitleModification fires when the time or text of a subtitle changes.
	HookSubtitleModification Hook = iota
	// HookSelectedSubtitle fires when the selection moves to another subtitle.
	HookSelectedSubtitle
	// HookDblClickWAVStart fires on a double click at the start of the waveform selection.
	HookDblClickWAVStart
	// HookDblClickWAVStop fires on a double click at the end of the waveform selection.
	HookDblClickWAVStop
)

var hookNames = map[Hook]string{
	HookSubtitleModification: "OnSubtitleModification",
	HookSelectedSubtitle:     "OnSelectedSubtitle",
	HookDblClickWAVStart:     "OnDblClickWAVStart",
	HookDblClickWAVStop:      "OnDblClickWAVStop",
}

// Hooks lists every hook in declaration order.
func Hooks() []Hook {
	return []Hook{HookSubtitleModification, HookSelectedSubtitle, HookDblClickWAVStart, HookDblClickWAVStop}
}

func (h Hook) String() string {
	if name, ok := hookNames[h]; ok {
		return name
	}
	return fmt.Sprintf("Hook(%d)", int(h))
}

// ErrUnknownHook is returned for hook values or names outside Hooks().
var ErrUnknownHook = errors.New("unknown hook")

// ParseHook resolves a host callback name, case-insensitively.
func ParseHook(name string) (Hook, error) {
	trimmed := strings.TrimSpace(name)
	for _, h := range Hooks() {
		if strings.EqualFold(h.String(), trimmed) {
			return h, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownHook, name)
}

// Host is the part of the editor API the plugin writes to.
type Host interface {
	SetStatusBarText(text string)
}

// Core grid columns owned by the host.
const (
	IndexColumn = iota
	StartColumn
	StopColumn
	StyleColumn
	TextColumn

	LastCoreColumn = TextColumn
)

// ReadingSpeedColumn is the extra column showing the reading speed.
const ReadingSpeedColumn = LastCoreColumn + 1

const (
	readingSpeedTitle = "RS"
	readingSpeedSize  = 40
	defaultBGColor    = 0xFFFFFF
)

// Plugin answers host callbacks.
type Plugin struct {
	host   Host
	calc   *metrics.Calculator
	scale  rating.Scale
	logger *slog.Logger
}

// New wires a plugin. A nil calc uses metrics defaults. An empty scale is
// taken from the calculator classifier so column colors agree with the status
// line rating, or rating.DefaultScale when calc is nil.
func New(host Host, calc *metrics.Calculator, scale rating.Scale, logger *slog.Logger) (*Plugin, error) {
	if host == nil {
		return nil, errors.New("plugin requires a host")
	}
	if len(scale) == 0 {
		switch {
		case calc == nil:
			scale = rating.DefaultScale()
		default:
			s, ok := calc.Classifier().(rating.Scale)
			if !ok {
				return nil, errors.New("plugin requires a rating scale when the calculator classifier is not one")
			}
			scale = s
		}
	}
	if err := scale.Validate(); err != nil {
		return nil, fmt.Errorf("rating scale: %w", err)
	}
	if calc == nil {
		calc = metrics.NewCalculator(metrics.WithClassifier(scale))
	}
	return &Plugin{
		host:   host,
		calc:   calc,
		scale:  scale,
		logger: logging.NewComponentLogger(logger, "plugin"),
	}, nil
}

// Dispatch runs hook for the current subtitle. previous and next are part of
// the host contract and may be nil.
func (p *Plugin) Dispatch(hook Hook, current, previous, next *metrics.Cue) error {
	switch hook {
	case HookSubtitleModification, HookSelectedSubtitle:
		if current == nil {
			return fmt.Errorf("%s: current subtitle is required", hook)
		}
		line := p.calc.StatusLine(*current)
		p.host.SetStatusBarText(line)
		p.logger.Debug("status bar updated",
			logging.String("hook", hook.String()),
			logging.Int64("start_ms", current.StartMs),
			logging.Int64("stop_ms", current.StopMs),
		)
		return nil
	case HookDblClickWAVStart, HookDblClickWAVStop:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownHook, int(hook))
	}
}

// OnSubtitleModification is called when the time or text of a subtitle changes.
func (p *Plugin) OnSubtitleModification(current, previous, next *metrics.Cue) error {
	return p.Dispatch(HookSubtitleModification, current, previous, next)
}

// OnSelectedSubtitle is called when the selected subtitle changes.
func (p *Plugin) OnSelectedSubtitle(current, previous, next *metrics.Cue) error {
	return p.Dispatch(HookSelectedSubtitle, current, previous, next)
}

// ExtraColumnCount returns the number of columns the plugin adds.
func (p *Plugin) ExtraColumnCount() int {
	return 1
}

// ColumnTitle returns the header of an extra column.
func (p *Plugin) ColumnTitle(index int) string {
	if index == ReadingSpeedColumn {
		return readingSpeedTitle
	}
	return ""
}

// ColumnSize returns the width in pixels of an extra column.
func (p *Plugin) ColumnSize(index int) int {
	if index == ReadingSpeedColumn {
		return readingSpeedSize
	}
	return 0
}

// IsColumnBGColorized reports whether the host should ask for cell colors.
func (p *Plugin) IsColumnBGColorized(index int) bool {
	return index == ReadingSpeedColumn
}

// HasColumnCustomText reports whether the host should ask for cell text.
func (p *Plugin) HasColumnCustomText(index int) bool {
	return index == ReadingSpeedColumn
}

// ColumnBGColor returns the 0xRRGGBB background of a cell.
func (p *Plugin) ColumnBGColor(index int, current metrics.Cue) uint32 {
	if index != ReadingSpeedColumn {
		return defaultBGColor
	}
	return p.scale.Color(metrics.Round1(p.calc.ReadingSpeed(current)))
}

// ColumnText returns the text of a cell.
func (p *Plugin) ColumnText(index int, current metrics.Cue) string {
	if index != ReadingSpeedColumn {
		return ""
	}
	return metrics.FormatNumber(metrics.Round1(p.calc.ReadingSpeed(current)))
}
