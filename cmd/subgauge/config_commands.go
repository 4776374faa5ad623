package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subgauge/internal/config"
	"subgauge/internal/rating"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit [speed] and [[rating.bands]] to tune the gauge.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			scale, err := cfg.RatingScale()
			if err != nil {
				return fmt.Errorf("rating scale: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configExists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintln(out, renderStatusLine("Display range", statusOK,
				fmt.Sprintf("%d..%d cps", cfg.Speed.DisplayMin, cfg.Speed.DisplayMax), colorize))
			fmt.Fprintln(out, renderStatusLine("Reading range", statusOK,
				fmt.Sprintf("%d..%d cps, offset %dms", cfg.Speed.ReadingMin, cfg.Speed.ReadingMax, cfg.Speed.ReadingOffsetMs), colorize))
			fmt.Fprintln(out, renderStatusLine("Rating bands", statusOK, describeScale(scale), colorize))
			historyKind := statusInfo
			if cfg.History.Enabled {
				historyKind = statusOK
			}
			fmt.Fprintln(out, renderStatusLine("History", historyKind,
				fmt.Sprintf("auto-record %s (%s)", yesNo(cfg.History.Enabled), cfg.HistoryPath()), colorize))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func describeScale(scale rating.Scale) string {
	if len(scale) == 0 {
		return "none"
	}
	return fmt.Sprintf("%d bands, %s .. %s", len(scale), scale[0].Label, scale[len(scale)-1].Label)
}
