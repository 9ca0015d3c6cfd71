package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var (
	buttonFill   = color.RGBA{60, 60, 70, 200}
	buttonHover  = color.RGBA{90, 90, 110, 230}
	buttonBorder = color.RGBA{150, 150, 170, 255}
)

// Button is a HUD control in screen pixels. Its position is owned by the
// UISystem, which re-anchors it to the canvas bounds every frame.
type Button struct {
	Label   string
	X, Y    float32
	W, H    float32
	OnClick func()

	// Hovered is set while the cursor is over the button.
	Hovered bool
}

// Rect is the button's screen area, Max exclusive.
func (b *Button) Rect() image.Rectangle {
	return image.Rect(int(b.X), int(b.Y), int(b.X+b.W), int(b.Y+b.H))
}

func (b *Button) IsMouseOver(mx, my int) bool {
	return image.Pt(mx, my).In(b.Rect())
}

// Draw fills the button, outlines it when hovered and centers the label.
func (b *Button) Draw(screen *ebiten.Image, getFace func() font.Face, drawText DrawTextFunc) {
	fill := buttonFill
	if b.Hovered {
		fill = buttonHover
	}
	vector.DrawFilledRect(screen, b.X, b.Y, b.W, b.H, fill, false)
	if b.Hovered {
		vector.StrokeRect(screen, b.X, b.Y, b.W, b.H, 1, buttonBorder, false)
	}
	if getFace == nil || drawText == nil {
		return
	}
	face := getFace()
	if face == nil {
		return
	}
	x, y := b.labelOrigin(face)
	drawText(screen, face, b.Label, x, y, color.White)
}

// labelOrigin is the top-left corner that centers the label in the button.
func (b *Button) labelOrigin(face font.Face) (int, int) {
	w := font.MeasureString(face, b.Label).Ceil()
	m := face.Metrics()
	h := (m.Ascent + m.Descent).Ceil()
	return int(b.X) + (int(b.W)-w)/2, int(b.Y) + (int(b.H)-h)/2
}
