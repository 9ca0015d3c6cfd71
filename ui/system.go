package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
)

// DrawTextFunc draws multiline text with its top-left corner at (x, y).
type DrawTextFunc func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)

type UISystem struct {
	buttons     []*Button
	getFontFace func() font.Face
	getBounds   func() image.Rectangle
	drawText    DrawTextFunc
	Debug       *DebugPanel
}

// NewUISystem creates the HUD. getBounds returns the rectangle the HUD is
// anchored to, normally the fitted viewport, so the buttons stay inside the
// letterbox.
func NewUISystem(getFontFace func() font.Face, getBounds func() image.Rectangle, onZoomIn func(), onZoomOut func(), drawText DrawTextFunc) *UISystem {
	ui := &UISystem{
		getFontFace: getFontFace,
		getBounds:   getBounds,
		drawText:    drawText,
		Debug:       &DebugPanel{},
	}
	ui.buttons = []*Button{
		{Label: "+", W: 30, H: 30, OnClick: onZoomIn},
		{Label: "-", W: 30, H: 30, OnClick: onZoomOut},
	}
	ui.updateButtonPositions()
	return ui
}

// Buttons returns the HUD buttons, zoom-in first.
func (ui *UISystem) Buttons() []*Button {
	return ui.buttons
}

func (ui *UISystem) updateButtonPositions() {
	b := ui.getBounds()
	x := float32(b.Max.X) - 10
	for _, btn := range ui.buttons {
		x -= btn.W
		btn.X = x
		btn.Y = float32(b.Min.Y) + 10
		x -= 10
	}
}

func (ui *UISystem) IsMouseOver(mx, my int) bool {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			return true
		}
	}
	return false
}

// Hover marks the button under (mx, my) as hovered and clears the rest. It
// reports whether any button is under the cursor.
func (ui *UISystem) Hover(mx, my int) bool {
	ui.updateButtonPositions()
	over := false
	for _, b := range ui.buttons {
		b.Hovered = b.IsMouseOver(mx, my)
		over = over || b.Hovered
	}
	return over
}

// Click presses the button under (mx, my), if any.
func (ui *UISystem) Click(mx, my int) bool {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			if b.OnClick != nil {
				b.OnClick()
			}
			return true
		}
	}
	return false
}

func (ui *UISystem) Update() {
	mx, my := ebiten.CursorPosition()
	ui.Hover(mx, my)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		ui.Click(mx, my)
	}
}

func (ui *UISystem) Draw(screen *ebiten.Image) {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		b.Draw(screen, ui.getFontFace, ui.drawText)
	}
	if ui.Debug != nil {
		ui.Debug.Draw(screen, ui.getBounds(), ui.getFontFace, ui.drawText)
	}
}
