// Package config loads lazytimeline settings from YAML and resolves them into
// the layout parameters used by the timeline engine.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kpumuk/lazytimeline/internal/timeline"
)

// ErrInvalidValue marks a configuration value that is out of range.
var ErrInvalidValue = errors.New("invalid value")

// DefaultKeyPrefix namespaces every Redis key written by the store.
const DefaultKeyPrefix = "lazytimeline"

// Config represents the complete configuration file.
type Config struct {
	Layout LayoutConfig `yaml:"layout"`
	Zoom   ZoomConfig   `yaml:"zoom"`
	Bucket BucketConfig `yaml:"bucket"`
	Source SourceConfig `yaml:"source"`
}

// LayoutConfig controls entry geometry.
type LayoutConfig struct {
	LineHeight          float64 `yaml:"line_height"`           // Height of one stacking line in pixels
	ItemHeightRatio     float64 `yaml:"item_height_ratio"`     // Default entry height as a fraction of line_height
	StackItems          bool    `yaml:"stack_items"`           // Stack overlapping entries unless a group says otherwise
	CalculateExtraSpace bool    `yaml:"calculate_extra_space"` // Compute free space around entries
	ViewportWidth       float64 `yaml:"viewport_width"`        // Visible width in pixels for the layout command
}

// ZoomConfig bounds the visible window duration.
type ZoomConfig struct {
	Min Duration `yaml:"min"`
	Max Duration `yaml:"max"`
}

// BucketConfig tunes grid cells.
type BucketConfig struct {
	// Steps multiplies the cell length of a unit, keyed by unit name.
	Steps map[string]float64 `yaml:"steps"`
}

// SourceConfig selects where groups and entries come from.
type SourceConfig struct {
	Redis     string `yaml:"redis"`
	File      string `yaml:"file"`
	KeyPrefix string `yaml:"key_prefix"`
}

// Duration is a time.Duration that reads Go duration strings from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Millis returns the duration in milliseconds.
func (d Duration) Millis() int64 {
	return time.Duration(d).Milliseconds()
}

// Default returns the built-in configuration.
func Default() Config {
	layout := timeline.DefaultLayoutConfig()
	return Config{
		Layout: LayoutConfig{
			LineHeight:          layout.LineHeight,
			ItemHeightRatio:     layout.ItemHeightRatio,
			StackItems:          layout.StackItems,
			CalculateExtraSpace: layout.CalculateExtraSpace,
			ViewportWidth:       1000,
		},
		Zoom: ZoomConfig{
			Min: Duration(time.Duration(timeline.DefaultMinZoom) * time.Millisecond),
			Max: Duration(time.Duration(timeline.DefaultMaxZoom) * time.Millisecond),
		},
		Source: SourceConfig{
			KeyPrefix: DefaultKeyPrefix,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping values for missing keys, and validates
// the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate checks every value that the engine would otherwise reject later.
func (c Config) Validate() error {
	if c.Layout.LineHeight <= 0 {
		return fmt.Errorf("layout.line_height: %w", ErrInvalidValue)
	}
	if c.Layout.ItemHeightRatio <= 0 || c.Layout.ItemHeightRatio > 1 {
		return fmt.Errorf("layout.item_height_ratio: %w", ErrInvalidValue)
	}
	if c.Layout.ViewportWidth <= 0 {
		return fmt.Errorf("layout.viewport_width: %w", ErrInvalidValue)
	}
	if c.Zoom.Min.Millis() <= 0 {
		return fmt.Errorf("zoom.min: %w", ErrInvalidValue)
	}
	if c.Zoom.Max.Millis() < c.Zoom.Min.Millis() {
		return fmt.Errorf("zoom.max: %w", ErrInvalidValue)
	}
	if _, err := c.Steps(); err != nil {
		return err
	}
	return nil
}

// Resolve converts the layout section into engine parameters.
func (c Config) Resolve() timeline.LayoutConfig {
	return timeline.LayoutConfig{
		LineHeight:          c.Layout.LineHeight,
		ItemHeightRatio:     c.Layout.ItemHeightRatio,
		StackItems:          c.Layout.StackItems,
		CalculateExtraSpace: c.Layout.CalculateExtraSpace,
	}
}

// TerminalLayout is Resolve with one terminal row per line and entries
// filling their row.
func (c Config) TerminalLayout() timeline.LayoutConfig {
	layout := c.Resolve()
	layout.LineHeight = 1
	layout.ItemHeightRatio = 1
	return layout
}

// ZoomLimits returns the minimum and maximum visible duration in milliseconds.
func (c Config) ZoomLimits() (int64, int64) {
	return c.Zoom.Min.Millis(), c.Zoom.Max.Millis()
}

// Steps resolves bucket.steps into per-unit multipliers.
func (c Config) Steps() (timeline.StepMultipliers, error) {
	steps := timeline.DefaultSteps()
	for name, step := range c.Bucket.Steps {
		unit, err := timeline.ParseTimeUnit(name)
		if err != nil {
			return steps, fmt.Errorf("bucket.steps: %w", err)
		}
		if step <= 0 {
			return steps, fmt.Errorf("bucket.steps.%s: %w", name, ErrInvalidValue)
		}
		steps[unit] = step
	}
	return steps, nil
}
