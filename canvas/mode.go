package canvas

import "github.com/go-gl/mathgl/mgl64"

// Mode is the rendering configuration a camera was built for. It is fixed at
// construction by the collaborators passed in Options.
type Mode int

const (
	// ModeExtensive has no viewport and no effect: a bigger window shows
	// more of the world.
	ModeExtensive Mode = iota
	// ModeFit scales the internal resolution into a letterboxed viewport.
	ModeFit
	// ModeDebug adds a projection and a meter-scaled debug view over the
	// effect's back buffer.
	ModeDebug
	// ModeFitDebug combines ModeFit and ModeDebug.
	ModeFitDebug
)

func (m Mode) String() string {
	switch m {
	case ModeExtensive:
		return "extensive"
	case ModeFit:
		return "fit"
	case ModeDebug:
		return "debug"
	case ModeFitDebug:
		return "fit+debug"
	}
	return "unknown"
}

// Fits reports whether the mode renders through a FitViewport.
func (m Mode) Fits() bool {
	return m == ModeFit || m == ModeFitDebug
}

// Debugs reports whether the mode produces a projection and a debug view.
func (m Mode) Debugs() bool {
	return m == ModeDebug || m == ModeFitDebug
}

func modeOf(viewport *Viewport, effect Effect) Mode {
	switch {
	case viewport != nil && effect != nil:
		return ModeFitDebug
	case effect != nil:
		return ModeDebug
	case viewport != nil:
		return ModeFit
	}
	return ModeExtensive
}

type composer func(c *Camera) Transforms

var composers = [...]composer{
	ModeExtensive: composeExtensive,
	ModeFit:       composeFit,
	ModeDebug:     composeDebug,
	ModeFitDebug:  composeFitDebug,
}

// The matrices below are written right to left: mgl64 multiplies column
// vectors, so origin·fit·zoom·translation applies the translation first.

func composeExtensive(c *Camera) Transforms {
	return newTransforms(
		c.spriteView(mgl64.Ident4(), c.centerOrigin()),
		Rect{Width: c.windowWidth, Height: c.windowHeight, Scale: 1},
	)
}

func composeFit(c *Camera) Transforms {
	return newTransforms(
		c.spriteView(c.viewport.ScalingMatrix(), c.fitOrigin()),
		c.viewport.Rect(),
	)
}

func composeDebug(c *Camera) Transforms {
	w, h := c.backBufferSize()
	origin := c.centerOrigin()
	out := newTransforms(
		c.spriteView(mgl64.Ident4(), origin),
		Rect{Width: w, Height: h, Scale: 1},
	)
	out.setDebug(
		mgl64.Ortho(0, w, h, 0, 0, 1),
		c.debugView(mgl64.Ident4(), origin),
	)
	c.effect.SetTransforms(out.SpriteView, out.Projection)
	return out
}

func composeFitDebug(c *Camera) Transforms {
	rect := c.viewport.Rect()
	fit := c.viewport.ScalingMatrix()
	origin := c.fitOrigin()
	out := newTransforms(c.spriteView(fit, origin), rect)
	out.setDebug(
		mgl64.Ortho(0, rect.Width, rect.Height, 0, 0, 1),
		c.debugView(fit, origin),
	)
	c.effect.SetTransforms(out.SpriteView, out.Projection)
	return out
}

func (c *Camera) spriteView(fit, origin mgl64.Mat4) mgl64.Mat4 {
	translation := mgl64.Translate3D(-c.Position.X(), -c.Position.Y(), 0)
	zoom := mgl64.Scale3D(c.zoom, c.zoom, 1)
	return origin.Mul4(fit).Mul4(zoom).Mul4(translation)
}

// debugView maps meters instead of pixels: the camera position is converted
// with the inverse ppm and the zoom is scaled up by ppm.
func (c *Camera) debugView(fit, origin mgl64.Mat4) mgl64.Mat4 {
	translation := mgl64.Translate3D(-c.Position.X()*c.invPpm, -c.Position.Y()*c.invPpm, 0)
	s := c.zoom * c.ppm
	zoom := mgl64.Scale3D(s, s, 1)
	return origin.Mul4(fit).Mul4(zoom).Mul4(translation)
}

func (c *Camera) centerOrigin() mgl64.Mat4 {
	return mgl64.Translate3D(c.windowWidth*0.5, c.windowHeight*0.5, 0)
}

func (c *Camera) fitOrigin() mgl64.Mat4 {
	r := c.viewport.Rect()
	return mgl64.Translate3D(c.windowWidth*0.5-r.X, c.windowHeight*0.5-r.Y, 0)
}

// backBufferSize falls back to the window size while the effect reports an
// empty surface, so the projection never divides by zero.
func (c *Camera) backBufferSize() (float64, float64) {
	w, h := c.effect.BackBufferSize()
	if w <= 0 || h <= 0 {
		return c.windowWidth, c.windowHeight
	}
	return float64(w), float64(h)
}
