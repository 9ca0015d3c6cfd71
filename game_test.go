package main

import (
	"image"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"fitcam/canvas"
)

func newTestGame(t *testing.T, cfg Config) (*Game, chan Config) {
	t.Helper()
	reloads := make(chan Config, 4)
	g, err := NewGame(cfg, slog.New(slog.DiscardHandler), nil, reloads)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g, reloads
}

func TestNewGameBuildsConfiguredMode(t *testing.T) {
	tests := []struct {
		fit, debug bool
		want       canvas.Mode
	}{
		{false, false, canvas.ModeExtensive},
		{true, false, canvas.ModeFit},
		{false, true, canvas.ModeDebug},
		{true, true, canvas.ModeFitDebug},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Camera.Fit, cfg.Camera.Debug = tt.fit, tt.debug
		g, _ := newTestGame(t, cfg)
		if g.camera.Mode() != tt.want {
			t.Errorf("fit=%v debug=%v: mode %v, want %v", tt.fit, tt.debug, g.camera.Mode(), tt.want)
		}
	}
}

func TestNewGameRejectsBadResolution(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Camera.InternalHeight = 0
	if _, err := NewGame(cfg, slog.New(slog.DiscardHandler), nil, nil); err == nil {
		t.Error("NewGame accepted a zero internal height")
	}
}

func TestLayoutRefitsViewport(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig())
	g.Layout(2000, 720)

	if got, want := g.canvasBounds(), image.Rect(360, 0, 1640, 720); got != want {
		t.Errorf("canvas bounds = %v, want %v", got, want)
	}
	if w, h := g.effect.BackBufferSize(); w != 2000 || h != 720 {
		t.Errorf("effect back buffer = %dx%d", w, h)
	}
	// The court center stays in the middle of the window.
	if s := g.camera.WorldToScreen(mgl64.Vec2{}); !approxVec2(s, mgl64.Vec2{1000, 360}) {
		t.Errorf("origin on screen at %v", s)
	}
}

func TestReloadRebuildsCameraOnlyWhenNeeded(t *testing.T) {
	g, reloads := newTestGame(t, DefaultConfig())
	g.ApplyPan(50, 0)
	cam := g.camera

	cfg := DefaultConfig()
	cfg.Log.Level = "debug"
	reloads <- cfg
	g.drainReloads()
	if g.camera != cam || g.camera.Position.X() != 50 {
		t.Error("logging change rebuilt the camera")
	}
	if g.level.Level() != slog.LevelDebug {
		t.Errorf("level = %v, want debug", g.level.Level())
	}

	cfg.Camera.Fit = false
	reloads <- cfg
	g.drainReloads()
	if g.camera.Mode() != canvas.ModeDebug {
		t.Errorf("mode after reload = %v, want debug", g.camera.Mode())
	}
	if g.canvasBounds() != image.Rect(0, 0, 1280, 720) {
		t.Errorf("canvas bounds = %v", g.canvasBounds())
	}
}

func TestPanZoomAndReset(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig())

	g.ApplyPan(10, -20)
	if g.camera.Position != (mgl64.Vec2{10, -20}) {
		t.Errorf("position after pan = %v", g.camera.Position)
	}

	wx, wy := g.ScreenToWorld(100, 100)
	g.ApplyZoom(2, 100, 100)
	if x, y := g.ScreenToWorld(100, 100); !approxVec2(mgl64.Vec2{x, y}, mgl64.Vec2{wx, wy}) {
		t.Errorf("zoom moved the cursor point from (%v, %v) to (%v, %v)", wx, wy, x, y)
	}

	g.zoomCenter(ButtonZoomStep)
	g.ResetCamera()
	if g.camera.Position != (mgl64.Vec2{}) || g.camera.Zoom() != DefaultConfig().Camera.Zoom {
		t.Errorf("reset camera: pos %v zoom %v", g.camera.Position, g.camera.Zoom())
	}
}

func TestGameSaveAndLoadState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	g, _ := newTestGame(t, DefaultConfig())
	g.ApplyPan(-300, 75)
	g.camera.SetZoom(1.25)
	if err := g.SaveState(path); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	g2, _ := newTestGame(t, DefaultConfig())
	if err := g2.LoadState(path); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if g2.camera.Position != (mgl64.Vec2{-300, 75}) || g2.camera.Zoom() != 1.25 {
		t.Errorf("loaded pos %v zoom %v", g2.camera.Position, g2.camera.Zoom())
	}
}

func TestRigDrivesCamera(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Script = ScriptConfig{
		Path:    writeFile(t, dir, "pan.star", "x = cam.x + 120 * dt\nppm = 50\n"),
		Enabled: true,
	}
	g, _ := newTestGame(t, cfg)
	if g.rig == nil || !g.rigEnabled {
		t.Fatal("rig not loaded")
	}

	g.stepRig(0.5)
	if g.camera.Position.X() != 60 || g.camera.UnitsPerMeter() != 50 {
		t.Errorf("after step: x %v ppm %v", g.camera.Position.X(), g.camera.UnitsPerMeter())
	}
	if g.camera.Zoom() != cfg.Camera.Zoom {
		t.Errorf("zoom changed to %v", g.camera.Zoom())
	}

	g.ToggleRig()
	if g.rigEnabled {
		t.Error("ToggleRig did not disable the rig")
	}
}

func TestRigErrorKeepsCamera(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Script = ScriptConfig{Path: writeFile(t, t.TempDir(), "bad.star", "x = nope\n"), Enabled: true}
	g, _ := newTestGame(t, cfg)

	g.stepRig(0.1)
	if g.rigErr == "" {
		t.Error("rig error not recorded")
	}
	if g.camera.Position != (mgl64.Vec2{}) {
		t.Errorf("camera moved to %v", g.camera.Position)
	}
}

func TestMissingRigIsNotFatal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Script = ScriptConfig{Path: filepath.Join(t.TempDir(), "none.star"), Enabled: true}
	g, _ := newTestGame(t, cfg)
	if g.rig != nil || g.rigEnabled {
		t.Error("missing rig left enabled")
	}
	g.ToggleRig()
	if g.rigEnabled {
		t.Error("ToggleRig enabled a missing rig")
	}
}

func approxVec2(a, b mgl64.Vec2) bool {
	return a.ApproxEqualThreshold(b, 1e-9)
}
