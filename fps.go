package roomdesigner

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often the readout text is rebuilt, in seconds.
const fpsRefresh = 0.5

// fpsOverlay shows the current FPS and TPS in the bottom-right corner. The
// text only changes every fpsRefresh seconds so it stays readable.
type fpsOverlay struct {
	enabled bool
	elapsed float64
	label   string
}

func (o *fpsOverlay) update(dt float64, fps, tps float64) {
	if !o.enabled {
		return
	}
	o.elapsed += dt
	if o.label != "" && o.elapsed < fpsRefresh {
		return
	}
	o.elapsed = 0
	o.label = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if !o.enabled || o.label == "" {
		return
	}
	b := screen.Bounds()
	// ebitenutil's debug font is 6x16 per glyph.
	ebitenutil.DebugPrintAt(screen, o.label, b.Dx()-6*len("FPS: 000.0")-8, b.Dy()-2*16-8)
}

// SetShowFPS toggles the FPS/TPS readout.
func (d *Designer) SetShowFPS(show bool) {
	d.fps.enabled = show
	if !show {
		d.fps.label = ""
	}
}
