package render

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Bounded is a camera that can report its visible world area.
type Bounded interface {
	Left() float64
	Right() float64
	Top() float64
	Bottom() float64
	WorldToScreen(world mgl64.Vec2) mgl64.Vec2
}

// DrawGrid renders world grid lines every step pixels inside clip, plus a
// cross at the world origin.
func DrawGrid(screen *ebiten.Image, cam Bounded, clip image.Rectangle, step float64, gridColor, originCross color.Color) {
	if step <= 0 {
		return
	}
	left, right := cam.Left(), cam.Right()
	top, bottom := cam.Top(), cam.Bottom()
	x0, y0 := float32(clip.Min.X), float32(clip.Min.Y)
	x1, y1 := float32(clip.Max.X), float32(clip.Max.Y)

	for wx := math.Floor(left/step) * step; wx <= right; wx += step {
		s := cam.WorldToScreen(mgl64.Vec2{wx, 0})
		vector.StrokeLine(screen, float32(s.X()), y0, float32(s.X()), y1, 1, gridColor, false)
	}
	for wy := math.Floor(top/step) * step; wy <= bottom; wy += step {
		s := cam.WorldToScreen(mgl64.Vec2{0, wy})
		vector.StrokeLine(screen, x0, float32(s.Y()), x1, float32(s.Y()), 1, gridColor, false)
	}

	o := cam.WorldToScreen(mgl64.Vec2{})
	ox, oy := float32(o.X()), float32(o.Y())
	vector.StrokeLine(screen, ox-15, oy, ox+15, oy, 2, originCross, false)
	vector.StrokeLine(screen, ox, oy-15, ox, oy+15, 2, originCross, false)
}

// DrawLetterbox fills the parts of the window outside the viewport.
func DrawLetterbox(screen *ebiten.Image, viewport image.Rectangle, clr color.Color) {
	b := screen.Bounds()
	if viewport.Min.Y > b.Min.Y {
		fill(screen, image.Rect(b.Min.X, b.Min.Y, b.Max.X, viewport.Min.Y), clr)
	}
	if viewport.Max.Y < b.Max.Y {
		fill(screen, image.Rect(b.Min.X, viewport.Max.Y, b.Max.X, b.Max.Y), clr)
	}
	if viewport.Min.X > b.Min.X {
		fill(screen, image.Rect(b.Min.X, viewport.Min.Y, viewport.Min.X, viewport.Max.Y), clr)
	}
	if viewport.Max.X < b.Max.X {
		fill(screen, image.Rect(viewport.Max.X, viewport.Min.Y, b.Max.X, viewport.Max.Y), clr)
	}
}

func fill(screen *ebiten.Image, r image.Rectangle, clr color.Color) {
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)
}
