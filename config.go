package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// --- Camera & View ---
	ZoomSpeed       = 0.1
	KeyPanSpeed     = 8.0
	ButtonZoomStep  = 1.25
	GridStep        = 100.0
	DefaultRigSteps = 100000

	// --- Scene ---
	CourtWidth   = 2000.0
	CourtHeight  = 1200.0
	WallSize     = 100.0
	PaddleWidth  = 30.0
	PaddleHeight = 200.0
	PaddleX      = 800.0
	BallSize     = 30.0
)

var (
	// --- Colors ---
	ColorBackground  = color.RGBA{30, 30, 35, 255}
	ColorLetterbox   = color.RGBA{0, 0, 0, 255}
	ColorGrid        = color.NRGBA{255, 255, 255, 20}
	ColorOriginCross = color.NRGBA{255, 100, 100, 150}
	ColorWall        = color.RGBA{90, 90, 100, 255}
	ColorPaddle      = color.RGBA{100, 149, 237, 255}
	ColorBall        = color.RGBA{255, 255, 255, 255}
	ColorDebugBody   = color.RGBA{50, 205, 50, 255}
	ColorDebugSensor = color.RGBA{255, 140, 0, 255}
)

// Config is the fitcam configuration file.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Script ScriptConfig `yaml:"script"`
	Log    LogConfig    `yaml:"log"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// CameraConfig selects the camera mode and its initial state. Fit letterboxes
// the view into the internal resolution; Debug attaches an effect so the
// physics overlay gets a projection and a meter-scaled view.
type CameraConfig struct {
	Fit            bool    `yaml:"fit"`
	Debug          bool    `yaml:"debug"`
	InternalWidth  int     `yaml:"internal_width"`
	InternalHeight int     `yaml:"internal_height"`
	X              float64 `yaml:"x"`
	Y              float64 `yaml:"y"`
	Zoom           float64 `yaml:"zoom"`
	MinZoom        float64 `yaml:"min_zoom"`
	MaxZoom        float64 `yaml:"max_zoom"`
	UnitsPerMeter  float64 `yaml:"units_per_meter"`
}

type ScriptConfig struct {
	Path     string `yaml:"path"`
	Enabled  bool   `yaml:"enabled"`
	MaxSteps uint64 `yaml:"max_steps"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "fitcam", Resizable: true},
		Camera: CameraConfig{
			Fit:            true,
			Debug:          true,
			InternalWidth:  1280,
			InternalHeight: 720,
			Zoom:           0.725,
			MinZoom:        0.1,
			MaxZoom:        10,
			UnitsPerMeter:  100,
		},
		Script: ScriptConfig{MaxSteps: DefaultRigSteps},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads path on top of DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Fit && (c.Camera.InternalWidth <= 0 || c.Camera.InternalHeight <= 0) {
		errs = append(errs, fmt.Errorf("internal resolution %dx%d must be positive", c.Camera.InternalWidth, c.Camera.InternalHeight))
	}
	for name, v := range map[string]float64{
		"x": c.Camera.X, "y": c.Camera.Y,
		"zoom": c.Camera.Zoom, "min_zoom": c.Camera.MinZoom, "max_zoom": c.Camera.MaxZoom,
		"units_per_meter": c.Camera.UnitsPerMeter,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("camera %s must be finite, got %v", name, v))
		}
	}
	if c.Camera.Zoom <= 0 {
		errs = append(errs, errors.New("camera zoom must be positive"))
	}
	if c.Camera.MaxZoom != 0 && c.Camera.MaxZoom < c.Camera.MinZoom {
		errs = append(errs, fmt.Errorf("max_zoom %v is below min_zoom %v", c.Camera.MaxZoom, c.Camera.MinZoom))
	}
	if c.Camera.UnitsPerMeter < 0 {
		errs = append(errs, errors.New("units_per_meter must not be negative"))
	}
	if c.Script.Enabled && c.Script.Path == "" {
		errs = append(errs, errors.New("script enabled without a path"))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// NewLogger builds the application logger. The level lives in level so a
// config reload can change it without rebuilding the handler.
func NewLogger(w io.Writer, cfg LogConfig, level *slog.LevelVar) *slog.Logger {
	l, _ := parseLevel(cfg.Level)
	level.Set(l)
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
