package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"

	"fitcam/canvas"
	"fitcam/engine"
	"fitcam/input"
	"fitcam/render"
	"fitcam/ui"
)

type Game struct {
	cfg    Config
	logger *slog.Logger
	level  *slog.LevelVar

	viewport *canvas.Viewport
	effect   *canvas.BasicEffect
	camera   *canvas.Camera
	scene    *Scene

	rig         *engine.Rig
	rigEnabled  bool
	rigErr      string
	showOverlay bool

	input *input.InputSystem
	ui    *ui.UISystem
	face  font.Face

	reloads <-chan Config

	screenWidth  int
	screenHeight int

	screenshotRequested bool
}

// NewGame builds the camera described by cfg for a window of the configured
// size. reloads may be nil when hot reload is off.
func NewGame(cfg Config, logger *slog.Logger, level *slog.LevelVar, reloads <-chan Config) (*Game, error) {
	if level == nil {
		level = new(slog.LevelVar)
	}
	g := &Game{
		cfg:          cfg,
		logger:       logger,
		level:        level,
		scene:        NewScene(),
		showOverlay:  true,
		reloads:      reloads,
		screenWidth:  cfg.Window.Width,
		screenHeight: cfg.Window.Height,
	}
	if err := g.buildCamera(cfg.Camera); err != nil {
		return nil, err
	}
	if err := g.loadRig(cfg.Script); err != nil {
		logger.Warn("rig disabled", "err", err)
	}

	g.face = LoadUIFont("fonts/Roboto-Regular.ttf", 16, logger)
	g.input = input.NewInputSystem(g, ZoomSpeed, KeyPanSpeed)
	g.ui = ui.NewUISystem(
		func() font.Face { return g.face },
		g.canvasBounds,
		func() { g.zoomCenter(ButtonZoomStep) },
		func() { g.zoomCenter(1 / ButtonZoomStep) },
		DrawTextLines,
	)
	return g, nil
}

// buildCamera replaces the viewport, effect and camera with the ones cc
// selects for the current window size.
func (g *Game) buildCamera(cc CameraConfig) error {
	opts := canvas.Options{
		Position:      mgl64.Vec2{cc.X, cc.Y},
		Zoom:          cc.Zoom,
		MinZoom:       cc.MinZoom,
		MaxZoom:       cc.MaxZoom,
		UnitsPerMeter: cc.UnitsPerMeter,
	}
	var viewport *canvas.Viewport
	if cc.Fit {
		v, err := canvas.NewViewport(cc.InternalWidth, cc.InternalHeight)
		if err != nil {
			return fmt.Errorf("camera: %w", err)
		}
		v.OnChange = func(r canvas.Rect) {
			g.logger.Debug("viewport refit", "x", r.X, "y", r.Y, "w", r.Width, "h", r.Height, "scale", r.Scale)
		}
		viewport = v
		opts.Viewport = v
	}
	var effect *canvas.BasicEffect
	if cc.Debug {
		effect = canvas.NewBasicEffect(g.screenWidth, g.screenHeight)
		opts.Effect = effect
	}

	g.viewport = viewport
	g.effect = effect
	g.camera = canvas.NewCamera(g.screenWidth, g.screenHeight, opts)
	g.logger.Info("camera ready", "mode", g.camera.Mode(), "zoom", g.camera.Zoom(), "units_per_meter", g.camera.UnitsPerMeter())
	return nil
}

func (g *Game) loadRig(sc ScriptConfig) error {
	g.rig, g.rigEnabled, g.rigErr = nil, false, ""
	if sc.Path == "" {
		return nil
	}
	rig, err := engine.LoadRig(sc.Path, sc.MaxSteps, g.logger)
	if err != nil {
		return err
	}
	g.rig = rig
	g.rigEnabled = sc.Enabled
	return nil
}

// applyConfig takes over a reloaded config. The camera is rebuilt only when
// its section changed, so a reload that touches logging keeps the current
// pose.
func (g *Game) applyConfig(cfg Config) {
	old := g.cfg
	g.cfg = cfg

	if l, err := parseLevel(cfg.Log.Level); err == nil {
		g.level.Set(l)
	}
	if cfg.Window.Title != old.Window.Title {
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	if cfg.Window.Resizable != old.Window.Resizable {
		ebiten.SetWindowResizingMode(resizingMode(cfg.Window.Resizable))
	}
	if cfg.Camera != old.Camera {
		if err := g.buildCamera(cfg.Camera); err != nil {
			g.logger.Warn("camera config rejected", "err", err)
			g.cfg.Camera = old.Camera
		}
	}
	if cfg.Script != old.Script {
		if err := g.loadRig(cfg.Script); err != nil {
			g.logger.Warn("rig disabled", "err", err)
		}
	}
}

func (g *Game) drainReloads() {
	for {
		select {
		case cfg := <-g.reloads:
			g.applyConfig(cfg)
		default:
			return
		}
	}
}

func (g *Game) stepRig(dt float64) {
	in := engine.Pose{
		X:             g.camera.Position.X(),
		Y:             g.camera.Position.Y(),
		Zoom:          g.camera.Zoom(),
		UnitsPerMeter: g.camera.UnitsPerMeter(),
		Angle:         g.camera.Angle,
	}
	out, err := g.rig.Step(dt, in)
	if err != nil {
		if msg := err.Error(); msg != g.rigErr {
			g.rigErr = msg
			g.logger.Warn("rig step failed", "rig", g.rig.Name, "err", err)
		}
		return
	}
	g.rigErr = ""
	g.camera.Position = mgl64.Vec2{out.X, out.Y}
	g.camera.SetZoom(out.Zoom)
	g.camera.SetUnitsPerMeter(out.UnitsPerMeter)
	g.camera.SetAngle(out.Angle)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.drainReloads()

	if g.rigEnabled && g.rig != nil {
		g.stepRig(1 / float64(ebiten.TPS()))
	}

	g.input.Update()
	g.ui.Update()
	g.camera.Update()

	g.updateReadout()
	return nil
}

func (g *Game) updateReadout() {
	mx, my := ebiten.CursorPosition()
	w := g.camera.ScreenToWorld(mgl64.Vec2{float64(mx), float64(my)})
	rig := "off"
	if g.rig != nil && g.rigEnabled {
		rig = fmt.Sprintf("%s t=%.1fs", g.rig.Name, g.rig.Elapsed())
	}
	g.ui.Debug.SetLines(
		fmt.Sprintf("mode %s  zoom %.3f  units/m %.1f", g.camera.Mode(), g.camera.Zoom(), g.camera.UnitsPerMeter()),
		fmt.Sprintf("camera (%.1f, %.1f)", g.camera.Position.X(), g.camera.Position.Y()),
		fmt.Sprintf("view L%.0f T%.0f %.0fx%.0f", g.camera.Left(), g.camera.Top(), g.camera.Width(), g.camera.Height()),
		fmt.Sprintf("mouse world (%.1f, %.1f)", w.X(), w.Y()),
		"rig "+rig,
	)
	g.ui.Debug.SetError(g.rigErr)
}

// canvasBounds is the part of the window the camera draws into.
func (g *Game) canvasBounds() image.Rectangle {
	if g.camera.Mode().Fits() {
		return g.viewport.Bounds()
	}
	return image.Rect(0, 0, g.screenWidth, g.screenHeight)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorBackground)

	clip := g.canvasBounds()
	area := screen.SubImage(clip).(*ebiten.Image)

	render.DrawGrid(area, g.camera, clip, GridStep, ColorGrid, ColorOriginCross)
	g.scene.Draw(area, g.camera, g.face)

	if g.showOverlay {
		if meters, ok := render.DebugGeoM(g.camera); ok {
			render.DrawShapes(area, g.scene.DebugShapes(g.camera.InvUnitsPerMeter()), meters)
		}
	}

	if g.camera.Mode().Fits() {
		render.DrawLetterbox(screen, clip, ColorLetterbox)
	}
	g.ui.Draw(screen)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()), 4, 4)

	if g.screenshotRequested {
		g.screenshotRequested = false
		if err := saveScreenshot(screen, "screenshot.png"); err != nil {
			g.logger.Error("screenshot failed", "err", err)
		} else {
			g.logger.Info("screenshot saved", "path", "screenshot.png")
		}
	}
}

func saveScreenshot(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		return errors.Join(err, f.Close())
	}
	return f.Close()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.screenWidth || outsideHeight != g.screenHeight {
		g.screenWidth, g.screenHeight = outsideWidth, outsideHeight
		if g.effect != nil {
			g.effect.Resize(outsideWidth, outsideHeight)
		}
		g.camera.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func resizingMode(resizable bool) ebiten.WindowResizingModeType {
	if resizable {
		return ebiten.WindowResizingModeEnabled
	}
	return ebiten.WindowResizingModeDisabled
}
