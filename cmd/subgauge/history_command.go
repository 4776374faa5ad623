package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subgauge/internal/history"
	"subgauge/internal/metrics"
)

const historyTimeLayout = "2006-01-02 15:04"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analysis runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				if runs == nil {
					runs = []history.Run{}
				}
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No recorded runs")
				return nil
			}
			fmt.Fprintln(out, renderTable(historyHeaders(), historyRows(runs), historyAligns()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func historyHeaders() []string {
	return []string{"ID", "Analyzed", "Cues", "Mean RS", "Max RS", "Too fast", "Too slow", "Path"}
}

func historyAligns() []columnAlignment {
	return []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft}
}

func historyRows(runs []history.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		id := run.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows = append(rows, []string{
			id,
			run.AnalyzedAt.Local().Format(historyTimeLayout),
			strconv.Itoa(run.Cues),
			metrics.FormatNumber(run.MeanReadingSpeed),
			metrics.FormatNumber(run.MaxReadingSpeed),
			strconv.Itoa(run.TooFast),
			strconv.Itoa(run.TooSlow),
			run.Path,
		})
	}
	return rows
}
