package canvas

import "github.com/go-gl/mathgl/mgl64"

// Transforms holds everything a camera update produces. The sprite view is
// always set; Projection and DebugView are only meaningful when HasProjection
// is true and are identity otherwise.
type Transforms struct {
	SpriteView mgl64.Mat4
	Projection mgl64.Mat4
	DebugView  mgl64.Mat4

	HasProjection bool

	// Screen is the window-space rectangle the views render into: the whole
	// window, the fitted viewport, or the effect's back buffer.
	Screen Rect

	invSpriteView mgl64.Mat4
	invProjection mgl64.Mat4
}

func newTransforms(spriteView mgl64.Mat4, screen Rect) Transforms {
	return Transforms{
		SpriteView:    spriteView,
		Projection:    mgl64.Ident4(),
		DebugView:     mgl64.Ident4(),
		Screen:        screen,
		invSpriteView: spriteView.Inv(),
		invProjection: mgl64.Ident4(),
	}
}

func (t *Transforms) setDebug(projection, debugView mgl64.Mat4) {
	t.HasProjection = true
	t.Projection = projection
	t.DebugView = debugView
	t.invProjection = projection.Inv()
}

// ScreenToNDC maps a window pixel into normalized device coordinates of the
// screen rectangle, Y up. Without a projection there is no device space and
// the zero vector is returned.
func (t Transforms) ScreenToNDC(screen mgl64.Vec2) mgl64.Vec2 {
	if !t.HasProjection {
		return mgl64.Vec2{}
	}
	r := t.Screen
	return mgl64.Vec2{
		2*(screen.X()-r.X)/r.Width - 1,
		1 - 2*(screen.Y()-r.Y)/r.Height,
	}
}

// ClipToView unprojects a point in NDC back into view space.
func (t Transforms) ClipToView(ndc mgl64.Vec2) mgl64.Vec2 {
	v := t.invProjection.Mul4x1(mgl64.Vec4{ndc.X(), ndc.Y(), 0, 1})
	if v[3] == 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{v[0] / v[3], v[1] / v[3]}
}

// ScreenToWorld maps a window pixel to world coordinates.
func (t Transforms) ScreenToWorld(screen mgl64.Vec2) mgl64.Vec2 {
	var view mgl64.Vec2
	if t.HasProjection {
		view = t.ClipToView(t.ScreenToNDC(screen))
	} else {
		view = mgl64.Vec2{screen.X() - t.Screen.X, screen.Y() - t.Screen.Y}
	}
	return apply(t.invSpriteView, view)
}

// ScreenTransform returns the full mapping from the space of view (the sprite
// view or the debug view) to window pixels.
func (t Transforms) ScreenTransform(view mgl64.Mat4) mgl64.Mat4 {
	r := t.Screen
	if !t.HasProjection {
		return mgl64.Translate3D(r.X, r.Y, 0).Mul4(view)
	}
	toWindow := mgl64.Translate3D(r.X+r.Width*0.5, r.Y+r.Height*0.5, 0).
		Mul4(mgl64.Scale3D(r.Width*0.5, -r.Height*0.5, 1))
	return toWindow.Mul4(t.Projection).Mul4(view)
}

// WorldToScreen maps a world point to window pixels.
func (t Transforms) WorldToScreen(world mgl64.Vec2) mgl64.Vec2 {
	return apply(t.ScreenTransform(t.SpriteView), world)
}

func apply(m mgl64.Mat4, p mgl64.Vec2) mgl64.Vec2 {
	v := m.Mul4x1(mgl64.Vec4{p.X(), p.Y(), 0, 1})
	return mgl64.Vec2{v[0], v[1]}
}
