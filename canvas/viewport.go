package canvas

import (
	"errors"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidResolution is returned when an internal resolution is not positive.
var ErrInvalidResolution = errors.New("canvas: internal resolution must be positive")

// Rect is the part of the window the internal resolution is fitted into.
type Rect struct {
	X, Y          float64
	Width, Height float64
	// Scale is the uniform factor between internal and window pixels.
	Scale float64
}

// Bounds truncates the rectangle to whole pixels for the graphics backend.
func (r Rect) Bounds() image.Rectangle {
	x, y := int(r.X), int(r.Y)
	return image.Rect(x, y, x+int(r.Width), y+int(r.Height))
}

// Viewport keeps the internal resolution's aspect ratio inside a window of any
// size, adding letter or pillar boxes as needed. It can be used without a
// camera; the current scale is exposed through ScalingMatrix.
type Viewport struct {
	width, height       float64
	invWidth, invHeight float64

	rect     Rect
	resizing bool

	// OnChange, if set, is called after every recompute. Resize calls made
	// from inside it are ignored.
	OnChange func(Rect)
}

// NewViewport creates a viewport for the given internal resolution. Until the
// first Update it covers exactly that resolution at scale 1.
func NewViewport(width, height int) (*Viewport, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidResolution
	}
	w, h := float64(width), float64(height)
	return &Viewport{
		width:     w,
		height:    h,
		invWidth:  1 / w,
		invHeight: 1 / h,
		rect:      Rect{Width: w, Height: h, Scale: 1},
	}, nil
}

// Update refits the viewport into a window of the given size. Non-positive
// sizes (a minimized window) and calls made while a refit is running are
// ignored. It reports whether the rectangle was recomputed.
func (v *Viewport) Update(windowWidth, windowHeight int) bool {
	if windowWidth <= 0 || windowHeight <= 0 || v.resizing {
		return false
	}
	v.resizing = true
	defer func() { v.resizing = false }()

	v.rect = v.fit(float64(windowWidth), float64(windowHeight))
	if v.OnChange != nil {
		v.OnChange(v.rect)
	}
	return true
}

func (v *Viewport) fit(clientWidth, clientHeight float64) Rect {
	horizontalAspect := clientWidth * v.invWidth
	verticalAspect := clientHeight * v.invHeight

	var width, height float64
	if horizontalAspect > verticalAspect {
		// Wider than the design: height binds, pillarbox.
		width = verticalAspect * v.width
		height = clientHeight
	} else {
		width = clientWidth
		height = horizontalAspect * v.height
	}

	return Rect{
		X:      clientWidth*0.5 - width*0.5,
		Y:      clientHeight*0.5 - height*0.5,
		Width:  width,
		Height: height,
		Scale:  math.Min(horizontalAspect, verticalAspect),
	}
}

// Rect returns the last fitted rectangle.
func (v *Viewport) Rect() Rect {
	return v.rect
}

// Bounds returns the fitted rectangle in whole pixels.
func (v *Viewport) Bounds() image.Rectangle {
	return v.rect.Bounds()
}

// Scale returns the uniform internal-to-window scale.
func (v *Viewport) Scale() float64 {
	return v.rect.Scale
}

// ScalingMatrix returns the uniform scale as a matrix for camera composition.
func (v *Viewport) ScalingMatrix() mgl64.Mat4 {
	s := v.rect.Scale
	return mgl64.Scale3D(s, s, 1)
}

// InternalResolution returns the design resolution the viewport was built with.
func (v *Viewport) InternalResolution() (width, height int) {
	return int(v.width), int(v.height)
}
