// Package srt reads SubRip subtitle files into timed cues.
package srt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidTimestamp reports a timing value that is not HH:MM:SS,mmm.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// Cue is a single subtitle block.
type Cue struct {
	Index   int
	StartMs int64
	StopMs  int64
	Lines   []string
}

// Text returns the cue lines joined with newlines.
func (c Cue) Text() string {
	return strings.Join(c.Lines, "\n")
}

// DurationMs returns StopMs - StartMs.
func (c Cue) DurationMs() int64 {
	return c.StopMs - c.StartMs
}

// ParseFile reads and parses the SRT file at path.
func ParseFile(path string) ([]Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	return ParseBytes(data)
}

// Parse reads all of r and parses it as SRT.
func Parse(r io.Reader) ([]Cue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses SRT content. Blocks without a timing line are skipped;
// a timing line that cannot be parsed is an error.
func ParseBytes(data []byte) ([]Cue, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = trimLineEnds(content)
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	blocks := strings.Split(content, "\n\n")
	cues := make([]Cue, 0, len(blocks))
	for i, block := range blocks {
		block = strings.Trim(block, "\n")
		if strings.TrimSpace(block) == "" {
			continue
		}
		cue, ok, err := parseBlock(block)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		if !ok {
			continue
		}
		if cue.Index == 0 {
			cue.Index = len(cues) + 1
		}
		cues = append(cues, cue)
	}
	return cues, nil
}

// trimLineEnds strips trailing spaces and tabs from every line so separator
// lines holding only whitespace become empty.
func trimLineEnds(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

func parseBlock(block string) (Cue, bool, error) {
	lines := strings.Split(block, "\n")
	var cue Cue
	pos := 0
	if idx, err := strconv.Atoi(strings.TrimSpace(lines[0])); err == nil {
		cue.Index = idx
		pos++
	}
	if pos >= len(lines) || !strings.Contains(lines[pos], "-->") {
		return Cue{}, false, nil
	}

	start, stop, err := parseTiming(lines[pos])
	if err != nil {
		return Cue{}, false, err
	}
	cue.StartMs = start
	cue.StopMs = stop
	for _, line := range lines[pos+1:] {
		cue.Lines = append(cue.Lines, strings.TrimRight(line, " \t"))
	}
	return cue, true, nil
}

func parseTiming(line string) (int64, int64, error) {
	parts := strings.SplitN(line, "-->", 2)
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return 0, 0, err
	}
	// Positional settings (X1:... Y2:...) may follow the end time.
	endFields := strings.Fields(parts[1])
	if len(endFields) == 0 {
		return 0, 0, fmt.Errorf("%w: missing end time in %q", ErrInvalidTimestamp, line)
	}
	stop, err := ParseTimestamp(endFields[0])
	if err != nil {
		return 0, 0, err
	}
	return start, stop, nil
}

// ParseTimestamp converts HH:MM:SS,mmm (or with a period) to milliseconds.
func ParseTimestamp(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidTimestamp)
	}
	normalized := strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(normalized, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 || millis < 0 || millis > 999 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidTimestamp, value)
	}
	return int64(hours*3600+minutes*60+seconds)*1000 + int64(millis), nil
}

// FormatTimestamp renders milliseconds as HH:MM:SS,mmm.
func FormatTimestamp(ms int64) string {
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	hours := ms / 3_600_000
	ms -= hours * 3_600_000
	minutes := ms / 60_000
	ms -= minutes * 60_000
	seconds := ms / 1000
	ms -= seconds * 1000
	return fmt.Sprintf("%s%02d:%02d:%02d,%03d", sign, hours, minutes, seconds, ms)
}
