package roomdesigner

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Resizable lets the user resize the window. The viewport follows.
	Resizable bool
}

// game adapts a Designer to ebiten.Game.
type game struct {
	d *Designer
}

func (g *game) Update() error {
	return g.d.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.d.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.d.SetViewport(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a window and runs d until the window is closed. It blocks and
// closes d on return.
func Run(d *Designer, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = defaultViewportW
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultViewportH
	}
	if cfg.Title == "" {
		cfg.Title = "Room Designer"
	}
	defer d.Close()

	d.SetShowFPS(cfg.ShowFPS)
	d.SetViewport(float64(cfg.Width), float64(cfg.Height))
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(&game{d: d}); err != nil {
		return fmt.Errorf("roomdesigner: run: %w", err)
	}
	return nil
}
