package roomdesigner

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HUD geometry in pixels.
const (
	hudBarHeight    = 48.0
	hudButtonH      = 32.0
	hudMargin       = 8.0
	hudSwatchRadius = 12.0
	hudRowHeight    = 40.0
	hudPanelWidth   = 260.0
	hudCatalogWidth = 380.0
)

var (
	hudBarColor    = MustParseColor("#FFFFFF")
	hudButtonColor = MustParseColor("#4B5563")
	hudAccentColor = MustParseColor("#2563EB")
	hudDangerColor = MustParseColor("#EF4444")
	hudHoverColor  = MustParseColor("#1F2937")
	hudPanelColor  = MustParseColor("#FFFFFFEE")
	hudTextColor   = MustParseColor("#111827")
	hudLabelColor  = MustParseColor("#FFFFFF")
	hudRingColor   = MustParseColor("#9CA3AF")
)

// keyHelp is shown while an item is selected.
const keyHelp = "Use WASD or Arrow keys to move the selected item\nQ/E to move up/down\nR/F to rotate furniture direction"

// hudButton is one clickable screen control.
type hudButton struct {
	label  string // drawn unless the button is a swatch
	shape  HitShape
	bounds Rect
	swatch bool
	fill   Color
	action func(d *Designer)
}

// hudText is a static label.
type hudText struct {
	text  string
	x, y  float64
	color Color
}

// hud lays out and draws the screen-space controls: the top bar with the
// selected-item editor, the catalog dropdown, the room settings panel and
// the reset-view button.
type hud struct {
	buttons []hudButton
	panels  []Rect
	texts   []hudText
	hovered int
}

func (h *hud) addButton(label string, r Rect, fill Color, action func(d *Designer)) {
	h.buttons = append(h.buttons, hudButton{
		label:  label,
		shape:  HitRect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height},
		bounds: r,
		fill:   fill,
		action: action,
	})
}

func (h *hud) addSwatch(label string, cx, cy float64, fill Color, action func(d *Designer)) {
	h.buttons = append(h.buttons, hudButton{
		label:  label,
		shape:  HitCircle{CenterX: cx, CenterY: cy, Radius: hudSwatchRadius},
		bounds: Rect{X: cx - hudSwatchRadius, Y: cy - hudSwatchRadius, Width: 2 * hudSwatchRadius, Height: 2 * hudSwatchRadius},
		swatch: true,
		fill:   fill,
		action: action,
	})
}

// layout rebuilds every control for the current state and viewport. It
// needs no font, so input works before the first draw.
func (h *hud) layout(d *Designer) {
	h.buttons = h.buttons[:0]
	h.panels = h.panels[:0]
	h.texts = h.texts[:0]

	w := d.camera.Viewport.Width
	hgt := d.camera.Viewport.Height

	h.panels = append(h.panels, Rect{Width: w, Height: hudBarHeight})
	h.texts = append(h.texts, hudText{text: "Room Designer", x: 16, y: 16, color: hudTextColor})

	right := w - hudMargin - 160
	h.addButton("Add Furniture", Rect{X: right, Y: hudMargin, Width: 160, Height: hudButtonH}, hudAccentColor,
		func(d *Designer) { d.catalogPanel.Toggle() })

	if it, ok := d.store.Snapshot().SelectedItem(); ok {
		x := right - hudMargin - 110
		h.addButton("Add to Cart", Rect{X: x, Y: hudMargin, Width: 110, Height: hudButtonH}, hudButtonColor,
			func(d *Designer) {
				if err := d.AddSelectedToCart(); err != nil {
					debugf("add to cart: %v", err)
				}
			})
		x -= hudMargin + 100
		h.addButton("Delete Item", Rect{X: x, Y: hudMargin, Width: 100, Height: hudButtonH}, hudDangerColor,
			func(d *Designer) { d.DeleteSelected() })
		x -= hudMargin + float64(len(ItemSwatches))*(2*hudSwatchRadius+hudMargin)
		for i, c := range ItemSwatches {
			cx := x + hudSwatchRadius + float64(i)*(2*hudSwatchRadius+hudMargin)
			h.addSwatch("color "+c.Hex(), cx, hudBarHeight/2, c, func(d *Designer) { d.SetSelectedColor(c) })
		}
		h.texts = append(h.texts,
			hudText{text: it.Product.Name, x: 16, y: hudBarHeight + hudMargin, color: hudTextColor},
			hudText{text: keyHelp, x: 16, y: hudBarHeight + hudMargin + 20, color: hudTextColor})
	}

	if d.catalogPanel.IsOpen() {
		h.layoutCatalog(d, w)
	}

	h.addButton("Room", Rect{X: w - 64, Y: hgt/2 - 20, Width: 60, Height: 40}, hudButtonColor,
		func(d *Designer) { d.settingsPanel.Toggle() })
	if d.settingsPanel.IsOpen() {
		h.layoutSettings(d, w)
	}

	h.addButton("Reset View", Rect{X: hudMargin, Y: hgt - hudMargin - hudButtonH, Width: 110, Height: hudButtonH},
		hudButtonColor, func(d *Designer) { d.ResetView() })
}

func (h *hud) layoutCatalog(d *Designer, w float64) {
	x := w - hudMargin - hudCatalogWidth
	y := hudBarHeight + hudMargin
	products := d.catalogPanel.Products()
	cats := append([]string{"all"}, d.catalogPanel.Categories()...)
	height := 2*hudMargin + 28 + float64(len(products))*hudRowHeight
	h.panels = append(h.panels, Rect{X: x, Y: y, Width: hudCatalogWidth, Height: height})

	cx := x + hudMargin
	catW := (hudCatalogWidth - hudMargin*float64(len(cats)+1)) / float64(len(cats))
	for _, c := range cats {
		fill := hudButtonColor
		if c == d.catalogPanel.Category() || (c == "all" && d.catalogPanel.Category() == "") {
			fill = hudAccentColor
		}
		h.addButton(c, Rect{X: cx, Y: y + hudMargin, Width: catW, Height: 24}, fill,
			func(d *Designer) { d.catalogPanel.SetCategory(c) })
		cx += catW + hudMargin
	}

	ry := y + hudMargin + 28 + 4
	for i, p := range products {
		label := fmt.Sprintf("%s  $%.0f", p.Name, p.Price)
		h.addButton(label, Rect{X: x + hudMargin, Y: ry, Width: hudCatalogWidth - 2*hudMargin, Height: hudRowHeight - 4},
			hudButtonColor, func(d *Designer) { d.catalogPanel.Choose(i) })
		ry += hudRowHeight
	}
}

func (h *hud) layoutSettings(d *Designer, w float64) {
	x := w - 72 - hudPanelWidth
	y := hudBarHeight + 12
	h.panels = append(h.panels, Rect{X: x, Y: y, Width: hudPanelWidth, Height: 4*hudRowHeight + 60})
	h.texts = append(h.texts, hudText{text: "Room Settings", x: x + 12, y: y + 10, color: hudTextColor})

	room := d.room
	rows := []struct {
		name  string
		value float64
		step  func(s *SettingsPanel, n int)
	}{
		{"Width", room.Width, (*SettingsPanel).StepWidth},
		{"Length", room.Length, (*SettingsPanel).StepLength},
		{"Height", room.Height, (*SettingsPanel).StepHeight},
	}
	ry := y + 40
	for _, r := range rows {
		h.texts = append(h.texts, hudText{text: fmt.Sprintf("%s: %.1fm", r.name, r.value), x: x + 12, y: ry + 6, color: hudTextColor})
		h.addButton(r.name+" -", Rect{X: x + hudPanelWidth - 76, Y: ry, Width: 28, Height: 28}, hudButtonColor,
			func(d *Designer) { r.step(d.settingsPanel, -1) })
		h.addButton(r.name+" +", Rect{X: x + hudPanelWidth - 40, Y: ry, Width: 28, Height: 28}, hudButtonColor,
			func(d *Designer) { r.step(d.settingsPanel, 1) })
		ry += hudRowHeight
	}

	h.texts = append(h.texts, hudText{text: "Wall Color", x: x + 12, y: ry + 6, color: hudTextColor})
	ry += 28 + hudSwatchRadius
	for i, c := range WallSwatches {
		cx := x + 12 + hudSwatchRadius + float64(i)*(2*hudSwatchRadius+hudMargin)
		h.addSwatch("wall "+c.Hex(), cx, ry, c, func(d *Designer) { d.settingsPanel.SetWallColor(c) })
	}
}

// hit returns the topmost control at (x, y). Points over a panel but not
// over a control still belong to the HUD and report index -1.
func (h *hud) hit(x, y float64) (int, bool) {
	for i := len(h.buttons) - 1; i >= 0; i-- {
		if h.buttons[i].shape.Contains(x, y) {
			return i, true
		}
	}
	for _, p := range h.panels {
		if p.Contains(x, y) {
			return -1, true
		}
	}
	return 0, false
}

// press runs the action of control i. Panel background clicks do nothing.
func (h *hud) press(d *Designer, i int) {
	if i < 0 || i >= len(h.buttons) || h.buttons[i].action == nil {
		return
	}
	debugf("hud: %s", h.buttons[i].label)
	h.buttons[i].action(d)
	h.layout(d)
}

// find returns the control labeled label.
func (h *hud) find(label string) (hudButton, bool) {
	for _, b := range h.buttons {
		if b.label == label {
			return b, true
		}
	}
	return hudButton{}, false
}

// draw renders the controls laid out by the last layout call.
func (h *hud) draw(screen *ebiten.Image, d *Designer) {
	for _, p := range h.panels {
		fill := hudPanelColor
		if p.Y == 0 {
			fill = hudBarColor
		}
		vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), fill.RGBA(), false)
	}

	font, err := ensureHUDFont()
	selColor := ColorWhite
	if it, ok := d.store.Snapshot().SelectedItem(); ok {
		selColor = it.Color
	}
	for i, b := range h.buttons {
		if b.swatch {
			cx := float32(b.bounds.X + hudSwatchRadius)
			cy := float32(b.bounds.Y + hudSwatchRadius)
			ring := hudRingColor
			if b.fill == selColor || (strings.HasPrefix(b.label, "wall ") && b.fill == d.room.WallColor) {
				ring = hudAccentColor
			}
			vector.DrawFilledCircle(screen, cx, cy, hudSwatchRadius+2, ring.RGBA(), true)
			vector.DrawFilledCircle(screen, cx, cy, hudSwatchRadius, b.fill.RGBA(), true)
			continue
		}
		fill := b.fill
		if i == h.hovered {
			fill = hudHoverColor
		}
		r := b.bounds
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), fill.RGBA(), false)
		if err == nil {
			font.drawTextCentered(screen, b.label, r, hudLabelColor)
		}
	}
	if err != nil {
		return
	}
	for _, t := range h.texts {
		font.drawText(screen, t.text, t.x, t.y, t.color)
	}
}
