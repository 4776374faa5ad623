package plugin

import (
	"errors"
	"strings"
	"testing"

	"subgauge/internal/logging"
	"subgauge/internal/metrics"
	"subgauge/internal/rating"
)

type recordingHost struct {
	lines []string
}

func (h *recordingHost) SetStatusBarText(text string) {
	h.lines = append(h.lines, text)
}

func newTestPlugin(t *testing.T) (*Plugin, *recordingHost) {
	t.Helper()
	host := &recordingHost{}
	p, err := New(host, nil, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p, host
}

func TestStatusHooksPushStatusLine(t *testing.T) {
	p, host := newTestPlugin(t)
	cue := &metrics.Cue{Text: "Hello there", StartMs: 1000, StopMs: 3000}

	if err := p.OnSelectedSubtitle(cue, nil, nil); err != nil {
		t.Fatalf("OnSelectedSubtitle: %v", err)
	}
	if err := p.OnSubtitleModification(cue, nil, nil); err != nil {
		t.Fatalf("OnSubtitleModification: %v", err)
	}
	if len(host.lines) != 2 {
		t.Fatalf("expected 2 status updates, got %d", len(host.lines))
	}
	want := metrics.NewCalculator().StatusLine(*cue)
	for _, line := range host.lines {
		if line != want {
			t.Fatalf("status line mismatch\n got: %q\nwant: %q", line, want)
		}
	}
}

func TestDoubleClickHooksAreNoops(t *testing.T) {
	p, host := newTestPlugin(t)
	cue := &metrics.Cue{Text: "x", StartMs: 0, StopMs: 1000}
	for _, hook := range []Hook{HookDblClickWAVStart, HookDblClickWAVStop} {
		if err := p.Dispatch(hook, cue, nil, nil); err != nil {
			t.Fatalf("%s: %v", hook, err)
		}
	}
	if len(host.lines) != 0 {
		t.Fatalf("expected no status updates, got %v", host.lines)
	}
}

func TestDispatchErrors(t *testing.T) {
	p, _ := newTestPlugin(t)
	if err := p.Dispatch(HookSelectedSubtitle, nil, nil, nil); err == nil {
		t.Fatal("expected error for missing current subtitle")
	}
	if err := p.Dispatch(Hook(42), &metrics.Cue{}, nil, nil); !errors.Is(err, ErrUnknownHook) {
		t.Fatalf("expected ErrUnknownHook, got %v", err)
	}
}

func TestParseHook(t *testing.T) {
	for _, h := range Hooks() {
		got, err := ParseHook(strings.ToLower(h.String()))
		if err != nil {
			t.Fatalf("ParseHook(%q): %v", h, err)
		}
		if got != h {
			t.Fatalf("ParseHook(%q) = %v", h, got)
		}
	}
	if _, err := ParseHook("OnSomethingElse"); !errors.Is(err, ErrUnknownHook) {
		t.Fatalf("expected ErrUnknownHook, got %v", err)
	}
	if got := Hook(9).String(); got != "Hook(9)" {
		t.Fatalf("unexpected String for unknown hook: %q", got)
	}
}

func TestReadingSpeedColumn(t *testing.T) {
	p, _ := newTestPlugin(t)
	if p.ExtraColumnCount() != 1 {
		t.Fatalf("extra columns = %d", p.ExtraColumnCount())
	}
	if ReadingSpeedColumn != 5 {
		t.Fatalf("reading speed column index = %d, want 5", ReadingSpeedColumn)
	}
	if p.ColumnTitle(ReadingSpeedColumn) != "RS" || p.ColumnSize(ReadingSpeedColumn) != 40 {
		t.Fatal("unexpected reading speed column title or size")
	}
	if !p.IsColumnBGColorized(ReadingSpeedColumn) || !p.HasColumnCustomText(ReadingSpeedColumn) {
		t.Fatal("expected reading speed column to be colorized with custom text")
	}

	cue := metrics.Cue{Text: "Hello there", StartMs: 1000, StopMs: 3000}
	if got := p.ColumnText(ReadingSpeedColumn, cue); got != "7.3" {
		t.Fatalf("column text = %q, want 7.3", got)
	}
	if got := p.ColumnBGColor(ReadingSpeedColumn, cue); got != 0x99CCFF {
		t.Fatalf("column color = %#x, want 0x99ccff", got)
	}
}

func TestCoreColumnsUntouched(t *testing.T) {
	p, _ := newTestPlugin(t)
	cue := metrics.Cue{Text: "abc", StartMs: 0, StopMs: 1000}
	for _, idx := range []int{IndexColumn, StartColumn, StopColumn, StyleColumn, TextColumn} {
		if p.ColumnTitle(idx) != "" || p.ColumnSize(idx) != 0 {
			t.Fatalf("column %d: unexpected title or size", idx)
		}
		if p.IsColumnBGColorized(idx) || p.HasColumnCustomText(idx) {
			t.Fatalf("column %d: unexpected flags", idx)
		}
		if p.ColumnBGColor(idx, cue) != 0xFFFFFF {
			t.Fatalf("column %d: expected white background", idx)
		}
		if p.ColumnText(idx, cue) != "" {
			t.Fatalf("column %d: expected empty text", idx)
		}
	}
}

func TestNewValidatesInputs(t *testing.T) {
	if _, err := New(nil, nil, nil, nil); err == nil {
		t.Fatal("expected error for nil host")
	}
	bad := rating.Scale{{Below: 10, Label: ""}}
	if _, err := New(&recordingHost{}, nil, bad, nil); err == nil {
		t.Fatal("expected error for invalid scale")
	}
}

func TestNewTakesScaleFromCalculator(t *testing.T) {
	scale := rating.Scale{
		{Below: 100, Label: "Fine.", Color: 0x00FF00},
		{Below: 1000, Label: "Hot", Color: 0xFF0000},
	}
	calc := metrics.NewCalculator(metrics.WithClassifier(scale))
	host := &recordingHost{}
	p, err := New(host, calc, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// 500ms duration gives an infinite reading speed, the last band.
	cue := metrics.Cue{Text: "Run!", StartMs: 0, StopMs: 500}
	if err := p.OnSelectedSubtitle(&cue, nil, nil); err != nil {
		t.Fatalf("OnSelectedSubtitle: %v", err)
	}
	if !strings.HasSuffix(host.lines[0], "Hot") {
		t.Fatalf("expected status to end with the calculator rating, got %q", host.lines[0])
	}
	if got := p.ColumnBGColor(ReadingSpeedColumn, cue); got != 0xFF0000 {
		t.Fatalf("column color = %#x, want 0xff0000", got)
	}

	slow := metrics.Cue{Text: "Hello there", StartMs: 1000, StopMs: 3000}
	if got := p.ColumnBGColor(ReadingSpeedColumn, slow); got != 0x00FF00 {
		t.Fatalf("column color = %#x, want 0x00ff00", got)
	}
}

func TestNewRejectsCalculatorWithoutScale(t *testing.T) {
	calc := metrics.NewCalculator(metrics.WithClassifier(rating.Func(func(float64) string { return "ok" })))
	if _, err := New(&recordingHost{}, calc, nil, nil); err == nil {
		t.Fatal("expected error when no scale can back the column colors")
	}
}
