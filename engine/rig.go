package engine

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
)

// DefaultMaxSteps bounds a single rig evaluation.
const DefaultMaxSteps = 100000

// Pose is the camera state a rig script reads and may overwrite.
type Pose struct {
	X, Y          float64
	Zoom          float64
	UnitsPerMeter float64
	Angle         float64
}

// Rig drives a camera from a Starlark script that runs once per frame.
//
// The script sees t (seconds since the rig started), dt, the read-only struct
// cam with fields x, y, zoom, ppm and angle, and the math module. Any of the
// globals x, y, zoom, ppm and angle it assigns replace the current pose; the
// rest are left alone.
type Rig struct {
	Name     string
	Source   string
	MaxSteps uint64

	logger  *slog.Logger
	elapsed float64
}

// NewRig creates a rig from source. A nil logger discards script output.
func NewRig(name, source string, maxSteps uint64, logger *slog.Logger) *Rig {
	if maxSteps == 0 {
		maxSteps = DefaultMaxSteps
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Rig{Name: name, Source: source, MaxSteps: maxSteps, logger: logger}
}

// LoadRig reads a rig script from disk.
func LoadRig(path string, maxSteps uint64, logger *slog.Logger) (*Rig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load rig: %w", err)
	}
	return NewRig(filepath.Base(path), string(data), maxSteps, logger), nil
}

// Elapsed returns the script clock in seconds.
func (r *Rig) Elapsed() float64 {
	return r.elapsed
}

// Reset rewinds the script clock.
func (r *Rig) Reset() {
	r.elapsed = 0
}

// Step advances the clock by dt and evaluates the script against in. On error
// the clock still advances and in is returned unchanged.
func (r *Rig) Step(dt float64, in Pose) (Pose, error) {
	r.elapsed += dt
	inputs := map[string]interface{}{
		"t":  r.elapsed,
		"dt": dt,
		"cam": map[string]interface{}{
			"x":     in.X,
			"y":     in.Y,
			"zoom":  in.Zoom,
			"ppm":   in.UnitsPerMeter,
			"angle": in.Angle,
		},
	}

	outputs, err := ExecuteStarlark(r.Name, r.Source, inputs, r.MaxSteps, func(msg string) {
		r.logger.Debug("rig print", "rig", r.Name, "msg", msg)
	})
	if err != nil {
		return in, fmt.Errorf("rig %s: %w", r.Name, err)
	}

	out := in
	assign(outputs, "x", &out.X)
	assign(outputs, "y", &out.Y)
	assign(outputs, "zoom", &out.Zoom)
	assign(outputs, "ppm", &out.UnitsPerMeter)
	assign(outputs, "angle", &out.Angle)
	return out, nil
}

// assign copies a numeric output into dst. NaN and infinities are dropped so
// a script dividing by zero cannot poison the pose.
func assign(outputs map[string]interface{}, name string, dst *float64) {
	switch v := outputs[name].(type) {
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			*dst = v
		}
	case int:
		*dst = float64(v)
	}
}
