package canvas

import "github.com/go-gl/mathgl/mgl64"

// Effect is a rendering effect that draws through its own projection, such as
// the debug renderer of a physics engine. Attaching one makes the camera
// produce a projection and a meter-scaled debug view.
type Effect interface {
	// BackBufferSize is the size of the surface the effect renders to.
	BackBufferSize() (width, height int)
	// SetTransforms receives the sprite view and projection after every
	// camera update.
	SetTransforms(view, projection mgl64.Mat4)
}

// BasicEffect is a minimal Effect that remembers the matrices it was given.
type BasicEffect struct {
	Width, Height int

	View       mgl64.Mat4
	Projection mgl64.Mat4
}

// NewBasicEffect creates an effect for a back buffer of the given size.
func NewBasicEffect(width, height int) *BasicEffect {
	return &BasicEffect{
		Width:      width,
		Height:     height,
		View:       mgl64.Ident4(),
		Projection: mgl64.Ident4(),
	}
}

func (e *BasicEffect) BackBufferSize() (int, int) {
	return e.Width, e.Height
}

func (e *BasicEffect) SetTransforms(view, projection mgl64.Mat4) {
	e.View = view
	e.Projection = projection
}

// Resize updates the back buffer size. Non-positive sizes are ignored.
func (e *BasicEffect) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.Width, e.Height = width, height
}
