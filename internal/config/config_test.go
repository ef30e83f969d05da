package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kpumuk/lazytimeline/internal/timeline"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	layout := cfg.Resolve()
	if layout != timeline.DefaultLayoutConfig() {
		t.Fatalf("Resolve() = %+v, want defaults", layout)
	}
	if cfg.Layout.ViewportWidth != 1000 {
		t.Fatalf("Layout.ViewportWidth = %v, want 1000", cfg.Layout.ViewportWidth)
	}
	minZoom, maxZoom := cfg.ZoomLimits()
	if minZoom != timeline.DefaultMinZoom || maxZoom != timeline.DefaultMaxZoom {
		t.Fatalf("ZoomLimits() = %d, %d", minZoom, maxZoom)
	}
	if cfg.Source.KeyPrefix != DefaultKeyPrefix {
		t.Fatalf("KeyPrefix = %q", cfg.Source.KeyPrefix)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lazytimeline.yml")
	content := `
layout:
  line_height: 40
  stack_items: false
zoom:
  min: 30m
  max: 720h
bucket:
  steps:
    minute: 15
source:
  redis: redis://localhost:6379/2
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	layout := cfg.Resolve()
	if layout.LineHeight != 40 || layout.StackItems || layout.ItemHeightRatio != 0.65 {
		t.Fatalf("Resolve() = %+v", layout)
	}
	minZoom, maxZoom := cfg.ZoomLimits()
	if minZoom != (30 * time.Minute).Milliseconds() || maxZoom != (720 * time.Hour).Milliseconds() {
		t.Fatalf("ZoomLimits() = %d, %d", minZoom, maxZoom)
	}
	steps, err := cfg.Steps()
	if err != nil {
		t.Fatalf("Steps error: %v", err)
	}
	if steps.Step(timeline.UnitMinute) != 15 || steps.Step(timeline.UnitHour) != 1 {
		t.Fatalf("Steps() = %v", steps)
	}
	if cfg.Source.Redis != "redis://localhost:6379/2" || cfg.Source.KeyPrefix != DefaultKeyPrefix {
		t.Fatalf("Source = %+v", cfg.Source)
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "negative line height", content: "layout:\n  line_height: -1\n", wantErr: ErrInvalidValue},
		{name: "ratio above one", content: "layout:\n  item_height_ratio: 1.5\n", wantErr: ErrInvalidValue},
		{name: "max below min", content: "zoom:\n  min: 2h\n  max: 1h\n", wantErr: ErrInvalidValue},
		{name: "unknown unit", content: "bucket:\n  steps:\n    fortnight: 2\n", wantErr: timeline.ErrUnknownTimeUnit},
		{name: "zero step", content: "bucket:\n  steps:\n    hour: 0\n", wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			if err := Parse([]byte(tt.content), &cfg); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_BadDuration(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if err := Parse([]byte("zoom:\n  min: soon\n"), &cfg); err == nil {
		t.Fatalf("Parse accepted an invalid duration")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestTerminalLayout(t *testing.T) {
	t.Parallel()

	layout := Default().TerminalLayout()
	if layout.LineHeight != 1 || layout.EntryHeight() != 1 {
		t.Fatalf("TerminalLayout() = %+v", layout)
	}
}
