package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeGauge()
	c.normalizeRating()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.History.Path = strings.TrimSpace(c.History.Path)
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeGauge() {
	defaults := Default().Gauge
	c.Gauge.Filler = withDefault(c.Gauge.Filler, defaults.Filler)
	c.Gauge.Marker = withDefault(c.Gauge.Marker, defaults.Marker)
	c.Gauge.BelowMarker = withDefault(c.Gauge.BelowMarker, defaults.BelowMarker)
	c.Gauge.AboveMarker = withDefault(c.Gauge.AboveMarker, defaults.AboveMarker)
}

func (c *Config) normalizeRating() {
	if len(c.Rating.Bands) == 0 {
		c.Rating.Bands = defaultBands()
		return
	}
	for i := range c.Rating.Bands {
		c.Rating.Bands[i].Label = strings.TrimSpace(c.Rating.Bands[i].Label)
		c.Rating.Bands[i].Color = strings.TrimSpace(c.Rating.Bands[i].Color)
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if value, ok := os.LookupEnv("SUBGAUGE_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func withDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
