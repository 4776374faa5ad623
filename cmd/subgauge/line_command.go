package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"subgauge/internal/logging"
	"subgauge/internal/metrics"
	"subgauge/internal/srt"
	"subgauge/internal/textutil"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

func newLineCommand(ctx *commandContext) *cobra.Command {
	var (
		text    string
		start   string
		stop    string
		copyOut bool
	)

	cmd := &cobra.Command{
		Use:   "line",
		Short: "Print the status line for a single subtitle",
		Long: "Print the display speed, reading speed, duration and rating of one subtitle.\n" +
			"Times are milliseconds or SRT timestamps (00:00:01,000).",
		Example: `  subgauge line --text "Hello there" --start 1000 --stop 3000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startMs, err := parseTimeArg(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			stopMs, err := parseTimeArg(stop)
			if err != nil {
				return fmt.Errorf("--stop: %w", err)
			}
			calc, err := ctx.calculator()
			if err != nil {
				return err
			}

			cue := metrics.Cue{Text: textutil.Strip(text), StartMs: startMs, StopMs: stopMs}
			line := calc.StatusLine(cue)
			fmt.Fprintln(cmd.OutOrStdout(), line)

			logger := ctx.loggerFor("line")
			logger.Debug("status line computed",
				logging.Int64("duration_ms", cue.DurationMs()),
				logging.Int("length", textutil.CharCount(cue.Text)),
			)

			if copyOut {
				if err := copyToClipboard(line); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				logger.Debug("status line copied to clipboard")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "Subtitle text (\\N marks a line break)")
	cmd.Flags().StringVar(&start, "start", "", "Start time")
	cmd.Flags().StringVar(&stop, "stop", "", "Stop time")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Also copy the status line to the clipboard")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("stop")
	return cmd
}

// parseTimeArg accepts integer milliseconds or an SRT timestamp.
func parseTimeArg(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, errors.New("time is required")
	}
	if ms, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return ms, nil
	}
	return srt.ParseTimestamp(trimmed)
}
