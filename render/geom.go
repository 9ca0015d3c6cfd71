package render

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// GeoM converts the 2D affine part of a camera matrix to an ebiten GeoM.
// The z row and column are dropped.
func GeoM(m mgl64.Mat4) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m.At(0, 0))
	g.SetElement(0, 1, m.At(0, 1))
	g.SetElement(0, 2, m.At(0, 3))
	g.SetElement(1, 0, m.At(1, 0))
	g.SetElement(1, 1, m.At(1, 1))
	g.SetElement(1, 2, m.At(1, 3))
	return g
}

// Viewer is the part of a camera the drawing helpers need.
type Viewer interface {
	SpriteView() mgl64.Mat4
	DebugView() (mgl64.Mat4, bool)
	ScreenTransform(view mgl64.Mat4) mgl64.Mat4
}

// SpriteGeoM maps world pixels to window pixels.
func SpriteGeoM(cam Viewer) ebiten.GeoM {
	return GeoM(cam.ScreenTransform(cam.SpriteView()))
}

// DebugGeoM maps meters to window pixels. ok is false when the camera has no
// debug view.
func DebugGeoM(cam Viewer) (g ebiten.GeoM, ok bool) {
	view, ok := cam.DebugView()
	if !ok {
		return g, false
	}
	return GeoM(cam.ScreenTransform(view)), true
}

// DrawSprite draws img with its top-left corner at a world position.
func DrawSprite(dst, img *ebiten.Image, x, y float64, view ebiten.GeoM) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(view)
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(img, op)
}
