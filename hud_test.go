package roomdesigner

import (
	"testing"
)

// pressLabel lays out the HUD and presses the control labeled label.
func pressLabel(t *testing.T, d *Designer, label string) {
	t.Helper()
	d.hud.layout(d)
	for i, b := range d.hud.buttons {
		if b.label == label {
			d.hud.press(d, i)
			return
		}
	}
	t.Fatalf("no HUD control %q", label)
}

func buttonCenter(t *testing.T, d *Designer, label string) Vec2 {
	t.Helper()
	d.hud.layout(d)
	b, ok := d.hud.find(label)
	if !ok {
		t.Fatalf("no HUD control %q", label)
	}
	return Vec2{b.bounds.X + b.bounds.Width/2, b.bounds.Y + b.bounds.Height/2}
}

func TestHUDLayoutWithoutSelection(t *testing.T) {
	d := newTestDesigner(t, Config{})
	d.hud.layout(d)
	for _, label := range []string{"Add Furniture", "Room", "Reset View"} {
		if _, ok := d.hud.find(label); !ok {
			t.Errorf("missing %q", label)
		}
	}
	for _, label := range []string{"Add to Cart", "Delete Item", "color #FFFFFF"} {
		if _, ok := d.hud.find(label); ok {
			t.Errorf("%q shown without a selection", label)
		}
	}
	b, _ := d.hud.find("Add Furniture")
	if b.bounds.X != 1112 || b.bounds.Y != hudMargin {
		t.Errorf("Add Furniture at %+v", b.bounds)
	}
	b, _ = d.hud.find("Reset View")
	if b.bounds != (Rect{X: 8, Y: 680, Width: 110, Height: 32}) {
		t.Errorf("Reset View at %+v", b.bounds)
	}
}

func TestHUDLayoutWithSelection(t *testing.T) {
	d := designerWithCube(t)
	d.Controller().ClickItem(0)
	d.hud.layout(d)

	cart, _ := d.hud.find("Add to Cart")
	del, _ := d.hud.find("Delete Item")
	if cart.bounds.X != 994 || del.bounds.X != 886 {
		t.Errorf("cart at %v, delete at %v", cart.bounds.X, del.bounds.X)
	}
	for _, c := range ItemSwatches {
		b, ok := d.hud.find("color " + c.Hex())
		if !ok || !b.swatch {
			t.Errorf("swatch %s missing", c.Hex())
			continue
		}
		if b.bounds.X < 750 || b.bounds.X+b.bounds.Width > 878 {
			t.Errorf("swatch %s at %+v overlaps the buttons", c.Hex(), b.bounds)
		}
	}
	var help bool
	for _, tx := range d.hud.texts {
		if tx.text == keyHelp {
			help = true
		}
	}
	if !help {
		t.Error("key help missing")
	}
}

func TestHUDAddFurniture(t *testing.T) {
	d := newTestDesigner(t, Config{})
	pressLabel(t, d, "Add Furniture")
	if !d.CatalogPanel().IsOpen() {
		t.Fatal("catalog should open")
	}
	if _, ok := d.hud.find("office"); !ok {
		t.Error("category tabs missing")
	}

	pressLabel(t, d, "Test Chair  $199")
	snap := d.Store().Snapshot()
	if snap.Len() != 1 || snap.Item(0).Product.ID != testChair.ID {
		t.Fatalf("items = %+v", snap.Items())
	}
	if d.CatalogPanel().IsOpen() {
		t.Error("catalog should close after choosing")
	}
}

func TestHUDCategoryFilter(t *testing.T) {
	d := newTestDesigner(t, Config{})
	pressLabel(t, d, "Add Furniture")
	pressLabel(t, d, "office")
	if d.CatalogPanel().Category() != "office" {
		t.Fatalf("Category = %q", d.CatalogPanel().Category())
	}
	if _, ok := d.hud.find("Test Chair  $199"); ok {
		t.Error("living-room product listed under office")
	}
	pressLabel(t, d, "all")
	if len(d.CatalogPanel().Products()) != 3 {
		t.Error("all should list every product")
	}
}

func TestHUDSelectionControls(t *testing.T) {
	d := designerWithCube(t)
	d.AddFromCatalog(testChair)
	d.Controller().ClickItem(0)

	pressLabel(t, d, "color #8B4513")
	if got := d.Store().Snapshot().Item(0).Color.Hex(); got != "#8B4513" {
		t.Errorf("color = %s", got)
	}

	pressLabel(t, d, "Delete Item")
	snap := d.Store().Snapshot()
	if snap.Len() != 1 || snap.Item(0).Product.ID != testChair.ID {
		t.Errorf("delete removed the wrong item: %+v", snap.Items())
	}
	if snap.HasSelection() {
		t.Error("delete should clear the selection")
	}
	if _, ok := d.hud.find("Delete Item"); ok {
		t.Error("layout should refresh after a press")
	}
}

func TestHUDAddToCart(t *testing.T) {
	cart := &recordingCart{}
	d := newTestDesigner(t, Config{Cart: cart})
	d.AddFromCatalog(testSofa)
	d.Controller().ClickItem(0)
	pressLabel(t, d, "Add to Cart")
	if len(cart.lines) != 1 || cart.lines[0].Product.ID != testSofa.ID {
		t.Errorf("cart = %+v", cart.lines)
	}
}

func TestHUDRoomSettings(t *testing.T) {
	d := newTestDesigner(t, Config{})
	pressLabel(t, d, "Room")
	if !d.SettingsPanel().IsOpen() {
		t.Fatal("settings should open")
	}
	pressLabel(t, d, "Width +")
	pressLabel(t, d, "Length -")
	pressLabel(t, d, "Height +")
	r := d.Room()
	if !approxEqual(r.Width, 5.1, 1e-9) || !approxEqual(r.Length, 4.9, 1e-9) || !approxEqual(r.Height, 3.1, 1e-9) {
		t.Errorf("room = %+v", r)
	}
	pressLabel(t, d, "wall #ADD8E6")
	if d.Room().WallColor.Hex() != "#ADD8E6" {
		t.Errorf("wall = %s", d.Room().WallColor.Hex())
	}
	pressLabel(t, d, "Room")
	if d.SettingsPanel().IsOpen() {
		t.Error("second press should close the panel")
	}
}

func TestHUDResetView(t *testing.T) {
	d := newTestDesigner(t, Config{})
	d.Camera().Orbit(1, 0.2)
	pressLabel(t, d, "Reset View")
	if !d.Camera().Animating() {
		t.Error("reset view should animate the camera")
	}
}

func TestHUDHitPanels(t *testing.T) {
	d := newTestDesigner(t, Config{})
	d.hud.layout(d)
	if i, ok := d.hud.hit(600, 20); !ok || i != -1 {
		t.Errorf("bar background = %d, %v; want -1, true", i, ok)
	}
	if _, ok := d.hud.hit(600, 400); ok {
		t.Error("scene area reported as HUD")
	}
	d.hud.press(d, -1)
	d.hud.press(d, len(d.hud.buttons))
}

func TestHUDClickKeepsSelection(t *testing.T) {
	d := designerWithCube(t)
	d.Controller().ClickItem(0)
	clickAt(d, Vec2{600, 20})
	if !d.Store().Snapshot().HasSelection() {
		t.Error("a click on the top bar must not deselect")
	}

	clickAt(d, buttonCenter(t, d, "color #808080"))
	if got := d.Store().Snapshot().Item(0).Color.Hex(); got != "#808080" {
		t.Errorf("color = %s after swatch click", got)
	}
	if !d.Store().Snapshot().HasSelection() {
		t.Error("swatch click must keep the selection")
	}
}

func TestHUDHover(t *testing.T) {
	d := newTestDesigner(t, Config{})
	c := buttonCenter(t, d, "Reset View")
	d.InjectHover(c.X, c.Y)
	runFrames(d, 1)
	if d.hud.hovered < 0 || d.hud.buttons[d.hud.hovered].label != "Reset View" {
		t.Errorf("hovered = %d", d.hud.hovered)
	}
	d.InjectHover(640, 400)
	runFrames(d, 1)
	if d.hud.hovered != -1 {
		t.Errorf("hovered = %d after leaving", d.hud.hovered)
	}
}
