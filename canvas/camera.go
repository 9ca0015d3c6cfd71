package canvas

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultMinZoom          = 0.1
	DefaultUnitsPerMeter    = 16.0
	DefaultMinUnitsPerMeter = 1.0
)

// Options selects the collaborators and initial state of a camera.
type Options struct {
	// Viewport letterboxes the view into a fixed internal resolution.
	Viewport *Viewport
	// Effect adds a projection and a meter-scaled debug view.
	Effect Effect

	Position mgl64.Vec2
	// Zoom defaults to 1.
	Zoom float64
	// MinZoom defaults to DefaultMinZoom. MaxZoom of 0 means unbounded.
	MinZoom, MaxZoom float64

	// UnitsPerMeter defaults to DefaultUnitsPerMeter.
	UnitsPerMeter    float64
	MinUnitsPerMeter float64
}

// Camera is an orthographic 2D camera. It produces a view for sprite
// rendering and, when an effect is attached, a projection plus a second view
// scaled to meters for a physics debug renderer.
//
// Position and Angle may be changed freely; call Update afterwards and before
// drawing.
type Camera struct {
	Position mgl64.Vec2 // World position of the center of the view
	Angle    float64    // Radians; stored but not composed yet

	zoom             float64
	minZoom, maxZoom float64
	ppm, invPpm      float64
	minPpm           float64

	windowWidth, windowHeight float64

	viewport *Viewport
	effect   Effect
	mode     Mode
	compose  composer

	out Transforms
}

// NewCamera creates a camera for a window of the given size and runs the
// first Update. Non-positive window sizes are treated as 1x1 until Resize.
func NewCamera(windowWidth, windowHeight int, opts Options) *Camera {
	mode := modeOf(opts.Viewport, opts.Effect)
	c := &Camera{
		Position:     opts.Position,
		minZoom:      opts.MinZoom,
		maxZoom:      opts.MaxZoom,
		minPpm:       opts.MinUnitsPerMeter,
		windowWidth:  math.Max(float64(windowWidth), 1),
		windowHeight: math.Max(float64(windowHeight), 1),
		viewport:     opts.Viewport,
		effect:       opts.Effect,
		mode:         mode,
		compose:      composers[mode],
		zoom:         1,
		ppm:          DefaultUnitsPerMeter,
		invPpm:       1 / DefaultUnitsPerMeter,
	}
	if c.minZoom <= 0 || !finite(c.minZoom) {
		c.minZoom = DefaultMinZoom
	}
	if c.maxZoom < 0 || !finite(c.maxZoom) {
		c.maxZoom = 0
	}
	if c.maxZoom != 0 && c.maxZoom < c.minZoom {
		c.maxZoom = c.minZoom
	}
	if c.minPpm <= 0 || !finite(c.minPpm) {
		c.minPpm = DefaultMinUnitsPerMeter
	}

	zoom := opts.Zoom
	if zoom == 0 || !finite(zoom) {
		zoom = 1
	}
	c.SetZoom(zoom)

	ppm := opts.UnitsPerMeter
	if ppm == 0 || !finite(ppm) {
		ppm = DefaultUnitsPerMeter
	}
	c.SetUnitsPerMeter(ppm)

	// The viewport is fitted to the same clamped size the camera keeps, so a
	// camera created for a minimized window still has a consistent origin.
	if mode.Fits() {
		c.viewport.Update(int(c.windowWidth), int(c.windowHeight))
	}
	c.Update()
	return c
}

// Mode returns the configuration chosen at construction.
func (c *Camera) Mode() Mode {
	return c.mode
}

// Viewport returns the attached viewport, or nil.
func (c *Camera) Viewport() *Viewport {
	return c.viewport
}

// Resize is called by the render loop when the window changes size. It refits
// the viewport and recomputes the transforms. Non-positive sizes are ignored,
// and so is a resize the viewport refuses (one made from its OnChange hook).
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if c.mode.Fits() && !c.viewport.Update(width, height) {
		return
	}
	c.windowWidth, c.windowHeight = float64(width), float64(height)
	c.Update()
}

// WindowSize returns the last valid window size.
func (c *Camera) WindowSize() (width, height int) {
	return int(c.windowWidth), int(c.windowHeight)
}

// Update recomputes every matrix from the current state.
func (c *Camera) Update() {
	c.out = c.compose(c)
}

// SetZoom sets the zoom, clamped to the camera's limits. NaN and infinite
// values are ignored.
func (c *Camera) SetZoom(zoom float64) {
	if !finite(zoom) {
		return
	}
	zoom = math.Max(zoom, c.minZoom)
	if c.maxZoom > 0 {
		zoom = math.Min(zoom, c.maxZoom)
	}
	c.zoom = zoom
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

// ZoomLimits returns the zoom clamp; a max of 0 means unbounded.
func (c *Camera) ZoomLimits() (lo, hi float64) {
	return c.minZoom, c.maxZoom
}

// SetUnitsPerMeter sets how many world pixels make one meter of the debug
// view, clamped to the minimum. NaN and infinite values are ignored.
func (c *Camera) SetUnitsPerMeter(ppm float64) {
	if !finite(ppm) {
		return
	}
	c.ppm = math.Max(ppm, c.minPpm)
	c.invPpm = 1 / c.ppm
}

func (c *Camera) UnitsPerMeter() float64 {
	return c.ppm
}

// InvUnitsPerMeter converts pixels to meters by multiplication.
func (c *Camera) InvUnitsPerMeter() float64 {
	return c.invPpm
}

// MetersToPixels converts a point authored in meters to world pixels.
func (c *Camera) MetersToPixels(m mgl64.Vec2) mgl64.Vec2 {
	return m.Mul(c.ppm)
}

// PixelsToMeters converts a point in world pixels to meters.
func (c *Camera) PixelsToMeters(p mgl64.Vec2) mgl64.Vec2 {
	return p.Mul(c.invPpm)
}

func (c *Camera) SetAngle(radians float64) {
	c.Angle = radians
}

// Move pans the camera by a world-space offset.
func (c *Camera) Move(delta mgl64.Vec2) {
	c.Position = c.Position.Add(delta)
}

// LookAt centers the camera on a world position.
func (c *Camera) LookAt(world mgl64.Vec2) {
	c.Position = world
}

// ZoomAt multiplies the zoom by factor while keeping the world point under
// the given screen position in place. It leaves the camera updated.
func (c *Camera) ZoomAt(factor float64, screen mgl64.Vec2) {
	before := c.ScreenToWorld(screen)
	c.SetZoom(c.zoom * factor)
	c.Update()
	after := c.ScreenToWorld(screen)
	c.Position = c.Position.Add(before.Sub(after))
	c.Update()
}

// Transforms returns the result of the last Update.
func (c *Camera) Transforms() Transforms {
	return c.out
}

// SpriteView is the view matrix for sprite rendering.
func (c *Camera) SpriteView() mgl64.Mat4 {
	return c.out.SpriteView
}

// Projection returns the orthographic projection, if the mode has one.
func (c *Camera) Projection() (mgl64.Mat4, bool) {
	return c.out.Projection, c.out.HasProjection
}

// DebugView returns the meter-scaled view, if the mode has one.
func (c *Camera) DebugView() (mgl64.Mat4, bool) {
	return c.out.DebugView, c.out.HasProjection
}

func (c *Camera) ScreenToNDC(screen mgl64.Vec2) mgl64.Vec2 {
	return c.out.ScreenToNDC(screen)
}

func (c *Camera) ClipToView(ndc mgl64.Vec2) mgl64.Vec2 {
	return c.out.ClipToView(ndc)
}

func (c *Camera) ScreenToWorld(screen mgl64.Vec2) mgl64.Vec2 {
	return c.out.ScreenToWorld(screen)
}

func (c *Camera) WorldToScreen(world mgl64.Vec2) mgl64.Vec2 {
	return c.out.WorldToScreen(world)
}

// ScreenTransform maps the space of view to window pixels.
func (c *Camera) ScreenTransform(view mgl64.Mat4) mgl64.Mat4 {
	return c.out.ScreenTransform(view)
}

func (c *Camera) topLeft() mgl64.Vec2 {
	r := c.out.Screen
	return c.ScreenToWorld(mgl64.Vec2{r.X, r.Y})
}

func (c *Camera) bottomRight() mgl64.Vec2 {
	r := c.out.Screen
	return c.ScreenToWorld(mgl64.Vec2{r.X + r.Width, r.Y + r.Height})
}

// Left, Right, Top and Bottom are the world-space edges of the visible area.
// They follow the last Update and are not cached.
func (c *Camera) Left() float64   { return c.topLeft().X() }
func (c *Camera) Top() float64    { return c.topLeft().Y() }
func (c *Camera) Right() float64  { return c.bottomRight().X() }
func (c *Camera) Bottom() float64 { return c.bottomRight().Y() }

func (c *Camera) Width() float64  { return c.Right() - c.Left() }
func (c *Camera) Height() float64 { return c.Bottom() - c.Top() }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
