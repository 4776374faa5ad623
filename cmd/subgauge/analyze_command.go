package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"subgauge/internal/config"
	"subgauge/internal/history"
	"subgauge/internal/logging"
	"subgauge/internal/report"
	"subgauge/internal/srt"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		formatFlag string
		record     bool
		noColor    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Report reading speeds for every cue of an SRT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			calc, err := cfg.NewCalculator()
			if err != nil {
				return err
			}

			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			runCtx := logging.WithPath(cmd.Context(), path)
			logger := logging.WithContext(runCtx, ctx.loggerFor("analyze"))

			started := time.Now()
			cues, err := srt.ParseFile(path)
			if err != nil {
				logging.ErrorWithContext(logger, "subtitle file rejected", "srt_parse_failed",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check the timing lines of the reported block"),
				)
				return err
			}

			rep := report.Build(path, cues, calc)
			logger.Info("subtitle file analyzed",
				logging.Int("cues", rep.Summary.Cues),
				logging.Float64("mean_reading_speed", rep.Summary.MeanReadingSpeed),
				logging.Int("too_fast", rep.Summary.TooFast),
				logging.Bool("record", record || cfg.History.Enabled),
				logging.Duration("elapsed", time.Since(started)),
			)

			out := cmd.OutOrStdout()
			opts := report.TableOptions{Color: !noColor && shouldColorize(out)}
			if err := report.Write(out, rep, format, opts); err != nil {
				return err
			}

			if !record && !cfg.History.Enabled {
				return nil
			}
			run, err := recordRun(runCtx, cfg, rep)
			if err != nil {
				logging.WarnWithContext(logger, "analysis not recorded", "history_record_failed",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check history.path and state_dir permissions"),
				)
				if record {
					return err
				}
				return nil
			}
			logging.WithContext(logging.WithRunID(runCtx, run.ID), logger).Info("analysis recorded")
			fmt.Fprintf(cmd.ErrOrStderr(), "Recorded run %s\n", run.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "Output format: table, json, or yaml")
	cmd.Flags().BoolVar(&record, "record", false, "Store a summary of this run in the history database")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable the colored RS column")
	return cmd
}

func recordRun(ctx context.Context, cfg *config.Config, rep report.Report) (history.Run, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := history.Open(ctx, cfg)
	if err != nil {
		return history.Run{}, fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	return store.Record(ctx, history.Run{
		Path:             rep.Path,
		Cues:             rep.Summary.Cues,
		MeanReadingSpeed: rep.Summary.MeanReadingSpeed,
		MaxReadingSpeed:  rep.Summary.MaxReadingSpeed,
		TooFast:          rep.Summary.TooFast,
		TooSlow:          rep.Summary.TooSlow,
	})
}
