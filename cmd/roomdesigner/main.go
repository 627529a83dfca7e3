// Command roomdesigner opens the 3D room designer in a desktop window.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/roomdesigner"
	"github.com/phanxgames/roomdesigner/appctx"
	"github.com/phanxgames/roomdesigner/catalog"
)

type options struct {
	catalogPath   string
	productID     int
	color         string
	scale         float64
	width         float64
	length        float64
	height        float64
	wall          string
	script        string
	screenshotDir string
	showFPS       bool
	debug         bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "roomdesigner",
		Short: "Interactive 3D room designer",
		Long: `roomdesigner - place catalog furniture in a configurable room.

Controls:
  Click item     - Select it (camera orbit pauses)
  Click spot     - Place the selected item there
  Click floor    - Deselect
  W/A/S/D, arrows - Move the selected item
  Q/E            - Move up/down
  R/F            - Rotate
  Drag           - Orbit the camera
  Scroll, pinch  - Zoom`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.catalogPath, "catalog", "", "Catalog file (.json, or .db/.sqlite for SQLite); built-in catalog if empty")
	f.IntVar(&opts.productID, "product", 0, "Product id to open the designer with")
	f.StringVar(&opts.color, "color", "", "Color of the opening product (#RRGGBB or a color name)")
	f.Float64Var(&opts.scale, "scale", 1, "Scale of the opening product")
	f.Float64Var(&opts.width, "width", 0, "Room width in meters (3-10)")
	f.Float64Var(&opts.length, "length", 0, "Room length in meters (3-10)")
	f.Float64Var(&opts.height, "height", 0, "Room height in meters (2-4)")
	f.StringVar(&opts.wall, "wall", "", "Wall color")
	f.StringVar(&opts.script, "script", "", "JSON test script to run")
	f.StringVar(&opts.screenshotDir, "screenshots", "screenshots", "Directory for script screenshots")
	f.BoolVar(&opts.showFPS, "fps", false, "Show the FPS overlay")
	f.BoolVar(&opts.debug, "debug", false, "Print diagnostics to stderr")
	return cmd
}

func run(ctx context.Context, opts options) error {
	provider, closeCatalog, err := catalog.Open(ctx, opts.catalogPath)
	if err != nil {
		return err
	}
	defer closeCatalog()

	app := appctx.New()
	defer app.Close()

	cfg, err := buildConfig(ctx, opts, provider, app)
	if err != nil {
		return err
	}
	d, err := roomdesigner.New(ctx, cfg)
	if err != nil {
		return err
	}
	d.ScreenshotDir = opts.screenshotDir

	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := roomdesigner.LoadTestScript(data)
		if err != nil {
			return err
		}
		d.SetTestRunner(runner)
	}

	err = roomdesigner.Run(d, roomdesigner.RunConfig{ShowFPS: opts.showFPS, Resizable: true})
	if n := app.CartCount(); n > 0 {
		log.Printf("cart: %d item(s), total $%.2f", n, app.CartTotal())
	}
	return err
}

// buildConfig turns the flags into a designer configuration. A --product
// is queued on app as a hand-off, the way the product page opens the
// designer.
func buildConfig(ctx context.Context, opts options, provider catalog.Provider, app *appctx.Context) (roomdesigner.Config, error) {
	cfg := roomdesigner.Config{
		Catalog: provider,
		Cart:    app,
		Handoff: app,
		Debug:   opts.debug,
	}

	room := roomdesigner.DefaultRoomConfig()
	if opts.width > 0 {
		room.Width = opts.width
	}
	if opts.length > 0 {
		room.Length = opts.length
	}
	if opts.height > 0 {
		room.Height = opts.height
	}
	if opts.wall != "" {
		c, err := roomdesigner.ParseColor(opts.wall)
		if err != nil {
			return cfg, fmt.Errorf("--wall: %w", err)
		}
		room.WallColor = c
	}
	cfg.Room = room

	if opts.productID != 0 {
		p, err := provider.Product(ctx, opts.productID)
		if err != nil {
			return cfg, fmt.Errorf("--product: %w", err)
		}
		if opts.color != "" {
			if _, err := roomdesigner.ParseColor(opts.color); err != nil {
				return cfg, fmt.Errorf("--color: %w", err)
			}
		}
		if err := app.OpenInDesigner(appctx.Handoff{
			Product:       p,
			Customization: appctx.Customization{Color: opts.color, Scale: opts.scale},
		}); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}
