package testsupport

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"subgauge/internal/srt"
)

// WriteSRT renders cues as an SRT document at path. Cue indexes of zero are
// numbered by position.
func WriteSRT(t testing.TB, path string, cues []srt.Cue) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(FormatSRT(cues)), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// FormatSRT renders cues in SRT syntax with CRLF line endings.
func FormatSRT(cues []srt.Cue) string {
	var b strings.Builder
	for i, cue := range cues {
		index := cue.Index
		if index == 0 {
			index = i + 1
		}
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(strconv.Itoa(index))
		b.WriteString("\r\n")
		b.WriteString(srt.FormatTimestamp(cue.StartMs))
		b.WriteString(" --> ")
		b.WriteString(srt.FormatTimestamp(cue.StopMs))
		b.WriteString("\r\n")
		for _, line := range cue.Lines {
			b.WriteString(line)
			b.WriteString("\r\n")
		}
	}
	return b.String()
}
