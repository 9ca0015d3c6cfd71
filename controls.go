package main

import (
	"github.com/go-gl/mathgl/mgl64"

	"fitcam/input"
)

var _ input.Host = (*Game)(nil)

func (g *Game) ScreenToWorld(sx, sy float64) (float64, float64) {
	w := g.camera.ScreenToWorld(mgl64.Vec2{sx, sy})
	return w.X(), w.Y()
}

func (g *Game) IsMouseOver(mx, my int) bool {
	return g.ui.IsMouseOver(mx, my)
}

func (g *Game) RequestScreenshot() {
	g.screenshotRequested = true
}

func (g *Game) SaveState(filename string) error {
	state := AppState{Camera: captureCamera(g.camera)}
	if g.rig != nil {
		state.Rig = g.cfg.Script.Path
	}
	if err := SaveState(state, filename); err != nil {
		g.logger.Error("save failed", "path", filename, "err", err)
		return err
	}
	g.logger.Info("state saved", "path", filename)
	return nil
}

// LoadState restores the camera pose saved in filename.
func (g *Game) LoadState(filename string) error {
	state, err := LoadState(filename)
	if err != nil {
		return err
	}
	restoreCamera(g.camera, state.Camera)
	return nil
}

// ApplyPan also recomputes the transforms so later conversions in the same
// tick see the new position.
func (g *Game) ApplyPan(dx, dy float64) {
	g.camera.Move(mgl64.Vec2{dx, dy})
	g.camera.Update()
}

func (g *Game) ApplyZoom(factor, sx, sy float64) {
	g.camera.ZoomAt(factor, mgl64.Vec2{sx, sy})
}

func (g *Game) zoomCenter(factor float64) {
	b := g.canvasBounds()
	g.ApplyZoom(factor, float64(b.Min.X+b.Max.X)*0.5, float64(b.Min.Y+b.Max.Y)*0.5)
}

func (g *Game) ToggleRig() {
	if g.rig == nil {
		g.logger.Info("no rig loaded")
		return
	}
	g.rigEnabled = !g.rigEnabled
	if g.rigEnabled {
		g.rig.Reset()
	}
	g.rigErr = ""
	g.logger.Info("rig toggled", "rig", g.rig.Name, "enabled", g.rigEnabled)
}

func (g *Game) ToggleOverlay() {
	g.showOverlay = !g.showOverlay
}

// ResetCamera returns to the configured pose.
func (g *Game) ResetCamera() {
	cc := g.cfg.Camera
	restoreCamera(g.camera, CameraState{X: cc.X, Y: cc.Y, Zoom: cc.Zoom, UnitsPerMeter: cc.UnitsPerMeter})
}
