package ui

import (
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// DebugPanel shows the camera read-out in the bottom-left corner of the
// viewport, and the last error above it.
type DebugPanel struct {
	Lines []string
	Error string
}

func (d *DebugPanel) SetLines(lines ...string) {
	d.Lines = lines
}

func (d *DebugPanel) SetError(msg string) {
	d.Error = msg
}

func (d *DebugPanel) Clear() {
	d.Lines = nil
	d.Error = ""
}

// Text returns what the panel will draw.
func (d *DebugPanel) Text() string {
	text := strings.Join(d.Lines, "\n")
	if d.Error != "" {
		if text != "" {
			text += "\n"
		}
		text += "error: " + d.Error
	}
	return text
}

func (d *DebugPanel) Draw(screen *ebiten.Image, bounds image.Rectangle, getFace func() font.Face, drawText DrawTextFunc) {
	if d == nil {
		return
	}
	text := d.Text()
	if text == "" || getFace == nil || drawText == nil {
		return
	}
	face := getFace()
	if face == nil {
		return
	}

	lines := strings.Count(text, "\n") + 1
	lineHeight := face.Metrics().Height.Ceil()
	pw, ph := 340, lines*lineHeight+16
	x := bounds.Min.X + 10
	y := bounds.Max.Y - ph - 10
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(pw), float32(ph), color.RGBA{40, 40, 40, 220}, false)

	clr := color.Color(color.RGBA{220, 220, 220, 255})
	if d.Error != "" {
		clr = color.RGBA{255, 200, 50, 255}
	}
	drawText(screen, face, text, x+8, y+8, clr)
}
