package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"subgauge/internal/srt"
	"subgauge/internal/testsupport"
)

const sampleSRT = "1\r\n00:00:01,000 --> 00:00:03,000\r\nHello there\r\n\r\n" +
	"2\r\n00:00:04,000 --> 00:00:04,500\r\n<i>Run!</i>\r\n"

const helloLine = "DS: 5.5 ·¦················  |  RS: 7.3 ·¦····························  |  Duration: 2 (ideal: 1.1)  |  Slow, acceptable."

func TestLineCommandPrintsStatusLine(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, _, err := runCLI(t, []string{"line", "--text", "Hello there", "--start", "1000", "--stop", "3000"}, env.configPath)
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	if got := strings.TrimRight(out, "\n"); got != helloLine {
		t.Fatalf("status line mismatch\n got: %q\nwant: %q", got, helloLine)
	}
}

func TestLineCommandAcceptsTimestamps(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, _, err := runCLI(t, []string{"line", "-t", "Hello there", "--start", "00:00:01,000", "--stop", "00:00:03.000"}, env.configPath)
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	requireContains(t, out, "RS: 7.3")
}

func TestLineCommandCopiesToClipboard(t *testing.T) {
	env := setupCLITestEnv(t, "")

	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { copyToClipboard = orig })

	if _, _, err := runCLI(t, []string{"line", "--text", "Hello there", "--start", "1000", "--stop", "3000", "--copy"}, env.configPath); err != nil {
		t.Fatalf("line --copy: %v", err)
	}
	if copied != helloLine {
		t.Fatalf("clipboard = %q", copied)
	}

	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	_, _, err := runCLI(t, []string{"line", "--text", "x", "--start", "0", "--stop", "1000", "--copy"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "copy to clipboard") {
		t.Fatalf("expected clipboard error, got %v", err)
	}
}

func TestLineCommandRejectsBadTime(t *testing.T) {
	env := setupCLITestEnv(t, "")

	if _, _, err := runCLI(t, []string{"line", "--text", "x", "--start", "soon", "--stop", "1000"}, env.configPath); err == nil {
		t.Fatal("expected error for invalid start time")
	}
	if _, _, err := runCLI(t, []string{"line", "--text", "x", "--stop", "1000"}, env.configPath); err == nil {
		t.Fatal("expected error for missing --start")
	}
}

func TestLineCommandUsesConfiguredGlyphs(t *testing.T) {
	env := setupCLITestEnv(t, "\n[gauge]\nfiller = \"-\"\nmarker = \"|\"\n")

	out, _, err := runCLI(t, []string{"line", "--text", "Hello there", "--start", "1000", "--stop", "3000"}, env.configPath)
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	requireContains(t, out, "DS: 5.5 -|----------------  |")
}

func TestAnalyzeTableAndRecord(t *testing.T) {
	env := setupCLITestEnv(t, "")
	path := writeSRT(t, env.baseDir, "movie.srt", sampleSRT)

	out, stderr, err := runCLI(t, []string{"analyze", path, "--record"}, env.configPath)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	requireContains(t, out, "Hello there")
	requireContains(t, out, "Infinity")
	requireContains(t, out, "Too fast: 1")
	requireContains(t, stderr, "Recorded run ")

	out, _, err = runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var runs []struct {
		Path    string `json:"path"`
		Cues    int    `json:"cues"`
		TooFast int    `json:"too_fast"`
	}
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode history json: %v (%q)", err, out)
	}
	if len(runs) != 1 || runs[0].Path != path || runs[0].Cues != 2 || runs[0].TooFast != 1 {
		t.Fatalf("unexpected history: %#v", runs)
	}

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history table: %v", err)
	}
	requireContains(t, out, "Mean RS")
	requireContains(t, out, "movie.srt")
}

func TestHistoryEmpty(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No recorded runs")

	out, _, err = runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history --json: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected empty json array, got %q", out)
	}
}

func TestAnalyzeAutoRecordsWhenEnabled(t *testing.T) {
	env := setupCLITestEnv(t, "\n[history]\nenabled = true\n")
	path := filepath.Join(env.baseDir, "auto.srt")
	testsupport.WriteSRT(t, path, []srt.Cue{
		{StartMs: 0, StopMs: 2500, Lines: []string{"First line", "second line"}},
		{StartMs: 3000, StopMs: 3400, Lines: []string{"Quick!"}},
	})

	if _, _, err := runCLI(t, []string{"analyze", path, "--format", "json"}, env.configPath); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	out, _, err := runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "auto.srt")
}

func TestAnalyzeJSONAndYAML(t *testing.T) {
	env := setupCLITestEnv(t, "")
	path := writeSRT(t, env.baseDir, "movie.srt", sampleSRT)

	out, _, err := runCLI(t, []string{"analyze", path, "--format", "json"}, env.configPath)
	if err != nil {
		t.Fatalf("analyze json: %v", err)
	}
	var decoded struct {
		Rows []struct {
			Rating string `json:"rating"`
		} `json:"rows"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Rows) != 2 || decoded.Rows[1].Rating != "TOO FAST!" {
		t.Fatalf("unexpected rows: %#v", decoded.Rows)
	}

	out, _, err = runCLI(t, []string{"analyze", path, "-f", "yaml"}, env.configPath)
	if err != nil {
		t.Fatalf("analyze yaml: %v", err)
	}
	requireContains(t, out, "reading_speed: Infinity")
}

func TestAnalyzeErrors(t *testing.T) {
	env := setupCLITestEnv(t, "")

	if _, _, err := runCLI(t, []string{"analyze", "missing.srt"}, env.configPath); err == nil {
		t.Fatal("expected error for missing file")
	}
	path := writeSRT(t, env.baseDir, "movie.srt", sampleSRT)
	if _, _, err := runCLI(t, []string{"analyze", path, "--format", "csv"}, env.configPath); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	bad := writeSRT(t, env.baseDir, "bad.srt", "1\n00:00:01,000 --> 00:xx:03,000\nHi\n")
	if _, _, err := runCLI(t, []string{"analyze", bad}, env.configPath); err == nil {
		t.Fatal("expected error for malformed timestamp")
	}
}

func TestParseTimeArg(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1500", 1500, false},
		{" 0 ", 0, false},
		{"00:01:02,345", 62345, false},
		{"", 0, true},
		{"later", 0, true},
	}
	for _, tt := range tests {
		got, err := parseTimeArg(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseTimeArg(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("parseTimeArg(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
