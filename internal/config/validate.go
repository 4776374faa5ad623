package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGauge(); err != nil {
		return err
	}
	if err := c.validateSpeed(); err != nil {
		return err
	}
	if err := c.validateRating(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateGauge() error {
	glyphs := []struct {
		key   string
		value string
	}{
		{"gauge.filler", c.Gauge.Filler},
		{"gauge.marker", c.Gauge.Marker},
		{"gauge.below_marker", c.Gauge.BelowMarker},
		{"gauge.above_marker", c.Gauge.AboveMarker},
	}
	for _, g := range glyphs {
		if utf8.RuneCountInString(g.value) != 1 {
			return fmt.Errorf("%s must be a single character, got %q", g.key, g.value)
		}
	}
	if c.Gauge.Marker == c.Gauge.Filler {
		return errors.New("gauge.marker must differ from gauge.filler")
	}
	return nil
}

func (c *Config) validateSpeed() error {
	if c.Speed.DisplayMax < c.Speed.DisplayMin {
		return errors.New("speed.display_max must be greater than or equal to speed.display_min")
	}
	if c.Speed.ReadingMax < c.Speed.ReadingMin {
		return errors.New("speed.reading_max must be greater than or equal to speed.reading_min")
	}
	if c.Speed.ReadingOffsetMs < 0 {
		return errors.New("speed.reading_offset_ms must be non-negative")
	}
	if c.Speed.IdealCPS <= 0 {
		return errors.New("speed.ideal_cps must be positive")
	}
	if c.Speed.IdealBaseSeconds < 0 {
		return errors.New("speed.ideal_base_seconds must be non-negative")
	}
	return nil
}

func (c *Config) validateRating() error {
	if len(c.Rating.Bands) == 0 {
		return errors.New("rating.bands must contain at least one band")
	}
	if _, err := c.RatingScale(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
