package config

import (
	"math"

	"subgauge/internal/gauge"
	"subgauge/internal/metrics"
	"subgauge/internal/rating"
)

const (
	defaultConfigPath  = "~/.config/subgauge/config.toml"
	defaultStateDir    = "~/.local/share/subgauge"
	defaultLogDir      = "~/.local/share/subgauge/logs"
	defaultHistoryFile = "history.db"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	settings := metrics.DefaultSettings()
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Gauge: Gauge{
			Filler:      gauge.DefaultFiller,
			Marker:      gauge.DefaultMarker,
			BelowMarker: gauge.DefaultBelowMarker,
			AboveMarker: gauge.DefaultAboveMarker,
		},
		Speed: Speed{
			DisplayMin:       settings.DisplayRange.Min,
			DisplayMax:       settings.DisplayRange.Max,
			ReadingMin:       settings.ReadingRange.Min,
			ReadingMax:       settings.ReadingRange.Max,
			ReadingOffsetMs:  settings.ReadingOffsetMs,
			IdealCPS:         settings.IdealCPS,
			IdealBaseSeconds: settings.IdealBaseSeconds,
		},
		Rating: Rating{
			Bands: defaultBands(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultBands() []RatingBand {
	scale := rating.DefaultScale()
	bands := make([]RatingBand, 0, len(scale))
	for _, b := range scale {
		below := b.Below
		if math.IsInf(below, 1) {
			below = 0
		}
		bands = append(bands, RatingBand{Below: below, Label: b.Label, Color: rating.HexColor(b.Color)})
	}
	return bands
}
