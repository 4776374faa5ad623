package srt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = "\ufeff1\r\n00:00:01,000 --> 00:00:03,000\r\nHello there\r\n\r\n" +
	"2\n00:00:04,500 --> 00:00:06.250 X1:10 X2:20\n<i>Second</i>\nline  \n\n\n" +
	"3\n00:01:00,000 --> 00:01:02,000\n\n"

func TestParseBytes(t *testing.T) {
	cues, err := ParseBytes([]byte(sample))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(cues))
	}
	first := cues[0]
	if first.Index != 1 || first.StartMs != 1000 || first.StopMs != 3000 {
		t.Fatalf("unexpected first cue: %+v", first)
	}
	if first.Text() != "Hello there" {
		t.Fatalf("first text = %q", first.Text())
	}
	second := cues[1]
	if second.StartMs != 4500 || second.StopMs != 6250 {
		t.Fatalf("unexpected second timing: %+v", second)
	}
	if second.Text() != "<i>Second</i>\nline" {
		t.Fatalf("second text = %q", second.Text())
	}
	if second.DurationMs() != 1750 {
		t.Fatalf("duration = %d", second.DurationMs())
	}
	if len(cues[2].Lines) != 0 {
		t.Fatalf("expected empty third cue, got %q", cues[2].Lines)
	}
}

func TestParseSkipsBlocksWithoutTiming(t *testing.T) {
	cues, err := Parse(strings.NewReader("garbage\n\n00:00:01,000 --> 00:00:02,000\nNo index\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Index != 1 {
		t.Fatalf("expected synthesized index 1, got %d", cues[0].Index)
	}
}

func TestParseWhitespaceSeparatorLines(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\nHi\n \n" +
		"2\n00:00:03,000 --> 00:00:04,000\nThere\n\t\n" +
		"3\n00:00:05,000 --> 00:00:06,000\nAgain\n"
	cues, err := ParseBytes([]byte(input))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d: %+v", len(cues), cues)
	}
	for i, want := range []string{"Hi", "There", "Again"} {
		if cues[i].Text() != want {
			t.Fatalf("cue %d text = %q, want %q", i+1, cues[i].Text(), want)
		}
		if cues[i].Index != i+1 {
			t.Fatalf("cue %d index = %d", i+1, cues[i].Index)
		}
	}
	if cues[1].StartMs != 3000 {
		t.Fatalf("second cue start = %d, want 3000", cues[1].StartMs)
	}
}

func TestParseEmpty(t *testing.T) {
	cues, err := ParseBytes([]byte("  \n\n "))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if len(cues) != 0 {
		t.Fatalf("expected no cues, got %d", len(cues))
	}
}

func TestParseInvalidTiming(t *testing.T) {
	_, err := ParseBytes([]byte("1\n00:00:01 --> 00:00:02,000\nText\n"))
	if !errors.Is(err, ErrInvalidTimestamp) {
		t.Fatalf("expected ErrInvalidTimestamp, got %v", err)
	}
	if !strings.Contains(err.Error(), "block 1") {
		t.Fatalf("expected block number in error, got %v", err)
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"00:00:01,000", 1000, false},
		{"01:02:03,004", 3723004, false},
		{"00:00:01.500", 1500, false},
		{"", 0, true},
		{"00:61:00,000", 0, true},
		{"00:00:00,1000", 0, true},
		{"aa:00:00,000", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseTimestamp(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseTimestamp(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseTimestamp(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(3723004); got != "01:02:03,004" {
		t.Fatalf("FormatTimestamp = %q", got)
	}
	if got := FormatTimestamp(-1500); got != "-00:00:01,500" {
		t.Fatalf("FormatTimestamp negative = %q", got)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.srt")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cues, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(cues))
	}
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.srt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
