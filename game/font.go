package game

import (
	"bytes"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	regularFontSize = 16.0
	titleFontSize   = 28.0
)

var (
	regularFace *text.GoTextFace
	titleFace   *text.GoTextFace
)

func init() {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("Failed to load regular font: %v", err)
		return
	}
	regularFace = &text.GoTextFace{Source: regular, Size: regularFontSize}

	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		log.Printf("Failed to load bold font: %v", err)
		return
	}
	titleFace = &text.GoTextFace{Source: bold, Size: titleFontSize}
}

// drawText draws s with its top-left corner at (x, y). Without a font it
// falls back to the debug printer.
func drawText(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, clr ebiten.ColorScale) {
	if face == nil {
		ebitenutil.DebugPrintAt(dst, s, int(x), int(y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale = clr
	text.Draw(dst, s, face, op)
}

// drawCentered draws s centered horizontally on cx.
func drawCentered(dst *ebiten.Image, s string, face *text.GoTextFace, cx, y float64, clr ebiten.ColorScale) {
	if face != nil {
		w, _ := text.Measure(s, face, 0)
		cx -= w / 2
	}
	drawText(dst, s, face, cx, y, clr)
}
