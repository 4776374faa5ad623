package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"subgauge/internal/metrics"
)

// Format selects a report renderer.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatYAML}
}

// ParseFormat resolves a user-supplied format name. An empty value selects
// the table.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want table, json, or yaml)", value)
	}
}

// TableOptions controls table rendering.
type TableOptions struct {
	// Color paints the RS cell with the rating background color.
	Color bool
	// TextWidth caps the text column; zero means 40.
	TextWidth int
}

const defaultTextWidth = 40

// Write renders rep in the requested format.
func Write(w io.Writer, rep Report, format Format, opts TableOptions) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, rep)
	case FormatYAML:
		return WriteYAML(w, rep)
	case FormatTable, "":
		return WriteTable(w, rep, opts)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// WriteJSON encodes rep as indented JSON.
func WriteJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	return nil
}

// WriteYAML encodes rep as YAML.
func WriteYAML(w io.Writer, rep Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush yaml report: %w", err)
	}
	return nil
}

// WriteTable renders the rows as a rounded table followed by the summary.
func WriteTable(w io.Writer, rep Report, opts TableOptions) error {
	width := opts.TextWidth
	if width <= 0 {
		width = defaultTextWidth
	}

	var cellStyle func(row Row) lipgloss.Style
	if opts.Color {
		renderer := lipgloss.NewRenderer(w)
		renderer.SetColorProfile(termenv.TrueColor)
		base := renderer.NewStyle().Foreground(lipgloss.Color("#000000")).Padding(0, 1)
		cellStyle = func(row Row) lipgloss.Style {
			if row.Color == "" {
				return base
			}
			return base.Background(lipgloss.Color(row.Color))
		}
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Start", "Stop", "Dur", "Ideal", "Chars", "DS", "RS", "Rating", "Text"})
	for _, row := range rep.Rows {
		rs := row.ReadingSpeed.String()
		if cellStyle != nil {
			rs = cellStyle(row).Render(rs)
		}
		tw.AppendRow(table.Row{
			row.Index,
			row.Start,
			row.Stop,
			metrics.FormatNumber(row.DurationSeconds),
			metrics.FormatNumber(row.IdealDuration),
			row.Length,
			row.DisplaySpeed.String(),
			rs,
			row.Rating,
			row.Text,
		})
	}

	right := []int{1, 4, 5, 6, 7, 8}
	configs := make([]table.ColumnConfig, 0, 10)
	for _, n := range right {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	configs = append(configs, table.ColumnConfig{Number: 10, WidthMax: width, WidthMaxEnforcer: text.Trim})
	tw.SetColumnConfigs(configs)

	if _, err := io.WriteString(w, tw.Render()+"\n"); err != nil {
		return err
	}
	_, err := io.WriteString(w, summaryText(rep))
	return err
}

func summaryText(rep Report) string {
	var b strings.Builder
	if rep.Path != "" {
		fmt.Fprintf(&b, "File: %s\n", rep.Path)
	}
	s := rep.Summary
	fmt.Fprintf(&b, "Cues: %d  |  Mean RS: %s  |  Max RS: %s  |  Too fast: %d  |  Too slow: %d\n",
		s.Cues,
		metrics.FormatNumber(s.MeanReadingSpeed),
		metrics.FormatNumber(s.MaxReadingSpeed),
		s.TooFast,
		s.TooSlow,
	)
	if len(s.Ratings) > 0 {
		parts := make([]string, 0, len(s.Ratings))
		for _, lc := range s.Ratings {
			parts = append(parts, lc.Label+" "+strconv.Itoa(lc.Count))
		}
		fmt.Fprintf(&b, "Ratings: %s\n", strings.Join(parts, ", "))
	}
	return b.String()
}
