package roomdesigner

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const hudFontSize = 14

// TTFFont wraps Ebitengine's text/v2 for TrueType rendering.
type TTFFont struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("roomdesigner: parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// drawText draws s with its top-left corner at (x, y).
func (f *TTFFont) drawText(dst *ebiten.Image, s string, x, y float64, c Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c.RGBA())
	op.LineSpacing = f.lh
	text.Draw(dst, s, f.face, op)
}

// drawTextCentered draws s centered in r.
func (f *TTFFont) drawTextCentered(dst *ebiten.Image, s string, r Rect, c Color) {
	w, h := f.MeasureString(s)
	f.drawText(dst, s, r.X+(r.Width-w)/2, r.Y+(r.Height-h)/2, c)
}

// hudFont is loaded on first draw. The designer is single-threaded.
var (
	hudFont    *TTFFont
	hudFontErr error
)

func ensureHUDFont() (*TTFFont, error) {
	if hudFont == nil && hudFontErr == nil {
		hudFont, hudFontErr = LoadTTFFont(goregular.TTF, hudFontSize)
		if hudFontErr != nil {
			debugf("hud font: %v", hudFontErr)
		}
	}
	return hudFont, hudFontErr
}
