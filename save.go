package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"fitcam/canvas"
)

type CameraState struct {
	X             float64 `yaml:"x"`
	Y             float64 `yaml:"y"`
	Zoom          float64 `yaml:"zoom"`
	UnitsPerMeter float64 `yaml:"units_per_meter"`
	Angle         float64 `yaml:"angle"`
}

type AppState struct {
	Camera CameraState `yaml:"camera"`
	Rig    string      `yaml:"rig,omitempty"`
}

func captureCamera(cam *canvas.Camera) CameraState {
	return CameraState{
		X:             cam.Position.X(),
		Y:             cam.Position.Y(),
		Zoom:          cam.Zoom(),
		UnitsPerMeter: cam.UnitsPerMeter(),
		Angle:         cam.Angle,
	}
}

// restoreCamera applies s to cam. Zero zoom or units-per-meter leave the
// current values alone, as does any value that is not finite; the camera
// clamps the rest.
func restoreCamera(cam *canvas.Camera, s CameraState) {
	if finite(s.X) && finite(s.Y) {
		cam.Position = mgl64.Vec2{s.X, s.Y}
	}
	if finite(s.Angle) {
		cam.Angle = s.Angle
	}
	if s.Zoom != 0 {
		cam.SetZoom(s.Zoom)
	}
	if s.UnitsPerMeter != 0 {
		cam.SetUnitsPerMeter(s.UnitsPerMeter)
	}
	cam.Update()
}

func SaveState(state AppState, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&state); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return enc.Close()
}

func LoadState(filename string) (AppState, error) {
	var state AppState
	data, err := os.ReadFile(filename)
	if err != nil {
		return state, fmt.Errorf("load state: %w", err)
	}
	if err := yaml.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("load state %s: %w", filename, err)
	}
	return state, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
