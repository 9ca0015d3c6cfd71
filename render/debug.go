package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Shape is an outline authored in meters, the unit of a physics debug view.
type Shape struct {
	Center mgl64.Vec2
	// Vertices are relative to Center. A shape with no vertices is drawn as
	// a circle of Radius.
	Vertices []mgl64.Vec2
	Radius   float64
	Color    color.Color
}

// Box returns a rectangle shape of the given size in meters.
func Box(center mgl64.Vec2, width, height float64, clr color.Color) Shape {
	hw, hh := width*0.5, height*0.5
	return Shape{
		Center: center,
		Vertices: []mgl64.Vec2{
			{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh},
		},
		Color: clr,
	}
}

// Circle returns a circle shape in meters.
func Circle(center mgl64.Vec2, radius float64, clr color.Color) Shape {
	return Shape{Center: center, Radius: radius, Color: clr}
}

const circleSegments = 24

// Outline returns the closed polygon of the shape in meters.
func (s Shape) Outline() []mgl64.Vec2 {
	if len(s.Vertices) > 0 {
		pts := make([]mgl64.Vec2, len(s.Vertices))
		for i, v := range s.Vertices {
			pts[i] = s.Center.Add(v)
		}
		return pts
	}
	pts := make([]mgl64.Vec2, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = s.Center.Add(mgl64.Vec2{math.Cos(a), math.Sin(a)}.Mul(s.Radius))
	}
	return pts
}

// DrawShapes strokes shapes through a meters-to-window transform, normally
// the one returned by DebugGeoM.
func DrawShapes(screen *ebiten.Image, shapes []Shape, meters ebiten.GeoM) {
	for _, s := range shapes {
		pts := s.Outline()
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			ax, ay := meters.Apply(a.X(), a.Y())
			bx, by := meters.Apply(b.X(), b.Y())
			vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 1, s.Color, true)
		}
	}
}
