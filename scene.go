package main

import (
	"image/color"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"fitcam/canvas"
	"fitcam/render"
)

// Body is a scene object authored in world pixels. Its debug outline is the
// same rectangle expressed in meters.
type Body struct {
	Name          string
	Center        mgl64.Vec2
	Width, Height float64
	Color         color.Color
	Round         bool
	Sensor        bool

	img *ebiten.Image
}

func (b *Body) image() *ebiten.Image {
	if b.img == nil {
		b.img = ebiten.NewImage(int(b.Width), int(b.Height))
		b.img.Fill(b.Color)
	}
	return b.img
}

// Shape returns the body outline in meters for the given units per meter.
func (b *Body) Shape(invPpm float64) render.Shape {
	clr := color.Color(ColorDebugBody)
	if b.Sensor {
		clr = ColorDebugSensor
	}
	center := b.Center.Mul(invPpm)
	if b.Round {
		return render.Circle(center, b.Width*0.5*invPpm, clr)
	}
	return render.Box(center, b.Width*invPpm, b.Height*invPpm, clr)
}

// Scene is a pong court centered on the world origin.
type Scene struct {
	Bodies []*Body
	Score  [2]int

	divider *ebiten.Image
}

func NewScene() *Scene {
	hw, hh := CourtWidth*0.5, CourtHeight*0.5
	return &Scene{Bodies: []*Body{
		{Name: "top", Center: mgl64.Vec2{0, -hh + WallSize*0.5}, Width: CourtWidth, Height: WallSize, Color: ColorWall},
		{Name: "bottom", Center: mgl64.Vec2{0, hh - WallSize*0.5}, Width: CourtWidth, Height: WallSize, Color: ColorWall},
		{Name: "left", Center: mgl64.Vec2{-hw + WallSize*0.5, 0}, Width: WallSize, Height: CourtHeight, Color: ColorWall, Sensor: true},
		{Name: "right", Center: mgl64.Vec2{hw - WallSize*0.5, 0}, Width: WallSize, Height: CourtHeight, Color: ColorWall, Sensor: true},
		{Name: "player", Center: mgl64.Vec2{-PaddleX, 0}, Width: PaddleWidth, Height: PaddleHeight, Color: ColorPaddle},
		{Name: "cpu", Center: mgl64.Vec2{PaddleX, 0}, Width: PaddleWidth, Height: PaddleHeight, Color: ColorPaddle},
		{Name: "ball", Center: mgl64.Vec2{0, 0}, Width: BallSize, Height: BallSize, Color: ColorBall, Round: true},
	}}
}

// Body returns the body with the given name, or nil.
func (s *Scene) Body(name string) *Body {
	for _, b := range s.Bodies {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// DebugShapes returns every body outline in meters.
func (s *Scene) DebugShapes(invPpm float64) []render.Shape {
	shapes := make([]render.Shape, 0, len(s.Bodies))
	for _, b := range s.Bodies {
		shapes = append(shapes, b.Shape(invPpm))
	}
	return shapes
}

// Draw renders the sprites through the camera's sprite view. The divider and
// the score are placed relative to the visible top edge.
func (s *Scene) Draw(screen *ebiten.Image, cam *canvas.Camera, face font.Face) {
	view := render.SpriteGeoM(cam)

	const dash, gap = 30.0, 60.0
	if s.divider == nil {
		s.divider = ebiten.NewImage(4, int(dash))
		s.divider.Fill(color.White)
	}
	for y := cam.Top(); y < cam.Bottom(); y += dash + gap {
		render.DrawSprite(screen, s.divider, -2, y, view)
	}

	for _, b := range s.Bodies {
		render.DrawSprite(screen, b.image(), b.Center.X()-b.Width*0.5, b.Center.Y()-b.Height*0.5, view)
	}

	if face == nil {
		return
	}
	for i, x := range []float64{-80, 60} {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(3, 3)
		op.GeoM.Translate(x, cam.Top()+80)
		op.GeoM.Concat(view)
		text.DrawWithOptions(screen, strconv.Itoa(s.Score[i]), face, op)
	}
}

