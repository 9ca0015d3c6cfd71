package main

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "fitcam.yaml", `
camera:
  fit: false
  zoom: 2
log:
  level: debug
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Camera.Fit || cfg.Camera.Zoom != 2 {
		t.Errorf("camera section not applied: %+v", cfg.Camera)
	}
	if !cfg.Camera.Debug || cfg.Camera.InternalWidth != 1280 || cfg.Camera.UnitsPerMeter != 100 {
		t.Errorf("defaults lost: %+v", cfg.Camera)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Title != "fitcam" {
		t.Errorf("window defaults lost: %+v", cfg.Window)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: err = %v, want fs.ErrNotExist", err)
	}

	bad := writeFile(t, dir, "bad.yaml", "camera: [1, 2")
	if _, err := LoadConfig(bad); err == nil {
		t.Error("malformed YAML accepted")
	}

	nan := writeFile(t, dir, "nan.yaml", "camera:\n  zoom: .nan\n")
	if _, err := LoadConfig(nan); err == nil || !strings.Contains(err.Error(), "finite") {
		t.Errorf("NaN zoom: err = %v", err)
	}

	invalid := writeFile(t, dir, "invalid.yaml", "camera:\n  internal_width: 0\n")
	if _, err := LoadConfig(invalid); err == nil || !strings.Contains(err.Error(), "internal resolution") {
		t.Errorf("zero internal width: err = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"window", func(c *Config) { c.Window.Height = 0 }, "window size"},
		{"zoom", func(c *Config) { c.Camera.Zoom = 0 }, "zoom must be positive"},
		{"zoom limits", func(c *Config) { c.Camera.MinZoom, c.Camera.MaxZoom = 2, 1 }, "below min_zoom"},
		{"units per meter", func(c *Config) { c.Camera.UnitsPerMeter = -1 }, "units_per_meter"},
		{"script", func(c *Config) { c.Script.Enabled = true }, "without a path"},
		{"level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
		{"nan zoom", func(c *Config) { c.Camera.Zoom = math.NaN() }, "zoom must be finite"},
		{"infinite units per meter", func(c *Config) { c.Camera.UnitsPerMeter = math.Inf(1) }, "units_per_meter must be finite"},
		{"infinite position", func(c *Config) { c.Camera.X = math.Inf(-1) }, "x must be finite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}

	// Without a viewport the internal resolution is unused.
	cfg := DefaultConfig()
	cfg.Camera.Fit = false
	cfg.Camera.InternalWidth = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("extensive camera with no internal resolution: %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	logger := NewLogger(&buf, LogConfig{Level: "warn", Format: "json"}, level)

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info logged at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("JSON record missing: %s", out)
	}

	level.Set(slog.LevelDebug)
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("level change did not reach the handler")
	}
}
