package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// StateFile is the default file Ctrl+S writes the camera state to.
const StateFile = "state.yaml"

// Host defines the callbacks the input system needs from the main game.
type Host interface {
	ScreenToWorld(sx, sy float64) (float64, float64)
	IsMouseOver(mx, my int) bool
	RequestScreenshot()
	SaveState(filename string) error
	// ApplyPan moves the camera by a world-space offset.
	ApplyPan(dx, dy float64)
	// ApplyZoom scales the zoom by factor around a screen point.
	ApplyZoom(factor, sx, sy float64)
	ToggleRig()
	ToggleOverlay()
	ResetCamera()
}

type InputSystem struct {
	host Host

	// ZoomSpeed is the zoom change per wheel notch.
	ZoomSpeed float64
	// KeyPanSpeed is how many screen pixels the arrow keys pan per tick.
	KeyPanSpeed float64
	// StatePath is passed to Host.SaveState on Ctrl+S.
	StatePath string

	isPanning  bool
	lastMouseX int
	lastMouseY int
}

func NewInputSystem(h Host, zoomSpeed, keyPanSpeed float64) *InputSystem {
	return &InputSystem{host: h, ZoomSpeed: zoomSpeed, KeyPanSpeed: keyPanSpeed, StatePath: StateFile}
}

// IsPanning reports whether a mouse drag is moving the camera.
func (is *InputSystem) IsPanning() bool {
	return is.isPanning
}

func (is *InputSystem) Update() {
	mx, my := ebiten.CursorPosition()
	overUI := is.host.IsMouseOver(mx, my)

	is.handleControlKeys()
	is.handleZoom(mx, my, overUI)
	is.handleKeyPan()
	is.handlePanning(mx, my, overUI)
}

func (is *InputSystem) handleControlKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		is.host.RequestScreenshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		is.host.ToggleRig()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		is.host.ToggleOverlay()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		is.host.ResetCamera()
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		// The host logs failures.
		_ = is.host.SaveState(is.StatePath)
	}
}

func (is *InputSystem) handleZoom(mx, my int, overUI bool) {
	_, dy := ebiten.Wheel()
	if overUI {
		dy = 0
	}

	if ebiten.IsKeyPressed(ebiten.KeyEqual) || ebiten.IsKeyPressed(ebiten.KeyKPAdd) {
		dy += 0.1
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) || ebiten.IsKeyPressed(ebiten.KeyKPSubtract) {
		dy -= 0.1
	}

	if dy != 0 {
		is.host.ApplyZoom(ZoomFactor(dy, is.ZoomSpeed), float64(mx), float64(my))
	}
}

func (is *InputSystem) handleKeyPan() {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= is.KeyPanSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += is.KeyPanSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= is.KeyPanSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += is.KeyPanSpeed
	}
	if dx != 0 || dy != 0 {
		// Moving the view right means the world slides left under it.
		wx, wy := PanDelta(is.host, 0, 0, -dx, -dy)
		is.host.ApplyPan(wx, wy)
	}
}

func (is *InputSystem) handlePanning(mx, my int, overUI bool) {
	isPanButtonHeld := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) ||
		(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && !overUI)

	if !is.isPanning {
		if isPanButtonHeld {
			is.isPanning = true
			is.lastMouseX, is.lastMouseY = mx, my
		}
		return
	}

	if !isPanButtonHeld {
		is.isPanning = false
		return
	}
	if mx != is.lastMouseX || my != is.lastMouseY {
		wx, wy := PanDelta(is.host, float64(is.lastMouseX), float64(is.lastMouseY), float64(mx), float64(my))
		is.host.ApplyPan(wx, wy)
		is.lastMouseX, is.lastMouseY = mx, my
	}
}

// ZoomFactor turns wheel notches into a multiplicative zoom change.
func ZoomFactor(notches, speed float64) float64 {
	return math.Pow(1+speed, notches)
}

// PanDelta returns the world offset that keeps the point grabbed at screen
// (fromX, fromY) under the cursor after it moves to (toX, toY). Going through
// ScreenToWorld makes it correct for any zoom and viewport scale.
func PanDelta(h Host, fromX, fromY, toX, toY float64) (float64, float64) {
	ax, ay := h.ScreenToWorld(fromX, fromY)
	bx, by := h.ScreenToWorld(toX, toY)
	return ax - bx, ay - by
}
