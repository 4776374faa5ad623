package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"subgauge/internal/fileutil"
	"subgauge/internal/gauge"
	"subgauge/internal/metrics"
	"subgauge/internal/rating"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Gauge selects the glyphs bars are drawn with. Each value must be a single
// character.
type Gauge struct {
	Filler      string `toml:"filler"`
	Marker      string `toml:"marker"`
	BelowMarker string `toml:"below_marker"`
	AboveMarker string `toml:"above_marker"`
}

// Speed contains the bar ranges and pacing constants of the calculation.
type Speed struct {
	DisplayMin       int     `toml:"display_min"`
	DisplayMax       int     `toml:"display_max"`
	ReadingMin       int     `toml:"reading_min"`
	ReadingMax       int     `toml:"reading_max"`
	ReadingOffsetMs  int64   `toml:"reading_offset_ms"`
	IdealCPS         float64 `toml:"ideal_cps"`
	IdealBaseSeconds float64 `toml:"ideal_base_seconds"`
}

// RatingBand is one reading speed band. Speeds strictly below Below get the
// label and color; the bound of the last band is ignored.
type RatingBand struct {
	Below float64 `toml:"below"`
	Label string  `toml:"label"`
	Color string  `toml:"color"`
}

// Rating contains the reading speed classification bands.
type Rating struct {
	Bands []RatingBand `toml:"bands"`
}

// History contains configuration for the analysis history store.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for subgauge.
//
// Configuration sections:
//   - Paths: state and log directories
//   - Gauge: bar glyphs
//   - Speed: display/reading ranges and ideal duration pacing
//   - Rating: reading speed bands (label + background color)
//   - History: SQLite history of analyzed files
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Gauge   Gauge   `toml:"gauge"`
	Speed   Speed   `toml:"speed"`
	Rating  Rating  `toml:"rating"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		// Bands from the file replace the defaults rather than merge with them.
		cfg.Rating.Bands = nil

		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("subgauge.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath returns the SQLite history file location.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(c.Paths.StateDir, defaultHistoryFile)
}

// Glyphs returns the configured bar glyphs.
func (c *Config) Glyphs() gauge.Glyphs {
	return gauge.Glyphs{
		Filler: c.Gauge.Filler,
		Marker: c.Gauge.Marker,
		Below:  c.Gauge.BelowMarker,
		Above:  c.Gauge.AboveMarker,
	}
}

// MetricsSettings returns the configured calculation settings.
func (c *Config) MetricsSettings() metrics.Settings {
	return metrics.Settings{
		DisplayRange:     gauge.Range{Min: c.Speed.DisplayMin, Max: c.Speed.DisplayMax},
		ReadingRange:     gauge.Range{Min: c.Speed.ReadingMin, Max: c.Speed.ReadingMax},
		ReadingOffsetMs:  c.Speed.ReadingOffsetMs,
		IdealCPS:         c.Speed.IdealCPS,
		IdealBaseSeconds: c.Speed.IdealBaseSeconds,
	}
}

// RatingScale converts the configured bands into a rating.Scale. The last
// band always catches every remaining speed.
func (c *Config) RatingScale() (rating.Scale, error) {
	scale := make(rating.Scale, 0, len(c.Rating.Bands))
	for i, band := range c.Rating.Bands {
		color, err := rating.ParseHexColor(band.Color)
		if err != nil {
			return nil, fmt.Errorf("rating.bands[%d].color: %w", i, err)
		}
		below := band.Below
		if i == len(c.Rating.Bands)-1 {
			below = math.Inf(1)
		}
		scale = append(scale, rating.Band{Below: below, Label: strings.TrimSpace(band.Label), Color: color})
	}
	if err := scale.Validate(); err != nil {
		return nil, err
	}
	return scale, nil
}

// NewCalculator builds a metrics calculator from the configuration.
func (c *Config) NewCalculator() (*metrics.Calculator, error) {
	scale, err := c.RatingScale()
	if err != nil {
		return nil, err
	}
	return metrics.NewCalculator(
		metrics.WithSettings(c.MetricsSettings()),
		metrics.WithRenderer(gauge.NewRenderer(c.Glyphs())),
		metrics.WithClassifier(scale),
	), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
