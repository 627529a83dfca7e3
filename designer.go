package roomdesigner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/roomdesigner/appctx"
	"github.com/phanxgames/roomdesigner/catalog"
)

// ErrNoCart is returned by AddSelectedToCart when the designer was created
// without a cart.
var ErrNoCart = errors.New("roomdesigner: no cart configured")

const (
	defaultViewportW = 1280
	defaultViewportH = 720
	resetViewTime    = 0.6 // seconds
)

// Config configures a Designer. Every field is optional.
type Config struct {
	// Room is the starting room. The zero value means DefaultRoomConfig.
	Room RoomConfig
	// Catalog lists the products offered by the catalog panel. Defaults to
	// catalog.Default().
	Catalog catalog.Provider
	// Loader builds furniture assets. Defaults to ProceduralLoader.
	Loader AssetLoader
	// Handoff, if set, seeds the room with the product carried from the
	// product page.
	Handoff appctx.HandoffReader
	// Cart receives "add to cart" requests for the selected item.
	Cart appctx.CartWriter
	// Events receives a DesignerEvent for every change.
	Events EventSink
	// Viewport is the initial screen rectangle. Defaults to 1280x720.
	Viewport Rect
	// Debug enables stderr diagnostics.
	Debug bool
}

// Designer is one room-designer session. It owns the room settings, the
// item store and everything derived from them. All methods must be called
// from the game loop goroutine.
type Designer struct {
	ctx    context.Context
	room   RoomConfig
	store  *ItemStore
	grid   *PlacementGrid
	camera *OrbitCamera
	ctrl   *Controller
	models map[uuid.UUID]*FurnitureModel
	loader AssetLoader
	cart   appctx.CartWriter
	events EventSink
	sub    SubscriptionHandle

	catalogPanel  *CatalogPanel
	settingsPanel *SettingsPanel
	hud           hud
	renderer      renderer
	fps           fpsOverlay

	// Input state
	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	touchBuf     []ebiten.TouchID
	keyBuf       []ebiten.Key
	pinch        pinchState
	dragDeadZone float64
	hoverSpot    int

	// Scripted input and capture
	injectQueue     []syntheticPointerEvent
	keyQueue        []string
	testRunner      *TestRunner
	screenshotQueue []string
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	closed bool
}

// New creates a designer session. The catalog is loaded once up front; a
// failing catalog is the only error.
func New(ctx context.Context, cfg Config) (*Designer, error) {
	if cfg.Debug {
		SetDebugMode(true)
	}
	room := cfg.Room
	if room == (RoomConfig{}) {
		room = DefaultRoomConfig()
	}
	room = room.Clamped()
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.Loader == nil {
		cfg.Loader = ProceduralLoader{}
	}
	vp := cfg.Viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		vp = Rect{Width: defaultViewportW, Height: defaultViewportH}
	}

	d := &Designer{
		ctx:           ctx,
		room:          room,
		grid:          NewPlacementGrid(room.Width, room.Length),
		camera:        NewOrbitCamera(vp),
		models:        make(map[uuid.UUID]*FurnitureModel),
		loader:        cfg.Loader,
		cart:          cfg.Cart,
		events:        cfg.Events,
		dragDeadZone:  defaultDragDeadZone,
		hoverSpot:     -1,
		hud:           hud{hovered: -1},
		ScreenshotDir: "screenshots",
	}

	var seed []PlacedItem
	if cfg.Handoff != nil {
		if h, ok := cfg.Handoff.TakeHandoff(); ok {
			seed = append(seed, itemFromHandoff(h))
		}
	}
	d.store = NewItemStore(seed...)
	d.ctrl = NewController(d.store, d.camera)
	for _, it := range d.store.Snapshot().Items() {
		d.attachModel(it)
	}
	d.sub = d.store.Subscribe(d.onStoreChange)

	d.catalogPanel = NewCatalogPanel(cfg.Catalog, func(p catalog.Product) {
		d.AddFromCatalog(p)
	})
	if err := d.catalogPanel.Refresh(ctx); err != nil {
		d.sub.Remove()
		return nil, fmt.Errorf("new designer: %w", err)
	}
	d.settingsPanel = NewSettingsPanel(d)

	if globalDebug {
		debugf("designer ready: room %.1f x %.1f x %.1f, %d item(s), %d spot(s)",
			room.Width, room.Length, room.Height, d.store.Snapshot().Len(), d.grid.Len())
	}
	return d, nil
}

// itemFromHandoff builds the seed item. A missing or non-positive scale
// becomes 1 and a missing or unparseable color becomes white.
func itemFromHandoff(h appctx.Handoff) PlacedItem {
	it := NewPlacedItem(h.Product)
	if h.Customization.Scale > 0 {
		it.Scale = h.Customization.Scale
	}
	if h.Customization.Color != "" {
		c, err := ParseColor(h.Customization.Color)
		if err != nil {
			debugf("hand-off color ignored: %v", err)
		} else {
			it.Color = c
		}
	}
	return it
}

// attachModel loads the asset for it and wires its click to selection.
// Load failures fall back to a placeholder box.
func (d *Designer) attachModel(it PlacedItem) {
	asset, err := d.loader.Load(d.ctx, it.Product)
	if err != nil {
		debugf("asset for %q: %v (using placeholder)", it.Product.Name, err)
		asset = PlaceholderAsset()
	}
	m := NewFurnitureModel(asset)
	m.SetScale(it.Scale)
	m.SetColor(it.Color)
	id := it.ID
	m.OnClick = func() {
		if i := d.indexOf(id); i >= 0 {
			d.ctrl.ClickItem(i)
		}
	}
	d.models[id] = m
}

// indexOf returns the current index of the item with id, or -1.
func (d *Designer) indexOf(id uuid.UUID) int {
	snap := d.store.Snapshot()
	for i := 0; i < snap.Len(); i++ {
		if snap.items[i].ID == id {
			return i
		}
	}
	return -1
}

// onStoreChange keeps the model adapters in step with the store and
// forwards the change to the event sink.
func (d *Designer) onStoreChange(ch Change) {
	debugLogChange(ch)
	switch ch.Op {
	case OpAdd:
		d.attachModel(ch.After.items[ch.Index])
	case OpDelete:
		d.pruneModels(ch.After)
	case OpRecolor:
		it := ch.After.items[ch.Index]
		if m := d.models[it.ID]; m != nil {
			m.SetColor(it.Color)
		}
	case OpMove, OpPlace:
		debugWarnOutsideRoom(ch.After.items[ch.Index], d.room)
	case OpDeselect:
		d.grid.ClearHover()
		d.hoverSpot = -1
	}
	if d.events != nil {
		d.events.EmitEvent(eventFromChange(ch, d.room))
	}
}

// pruneModels drops adapters whose item is no longer in snap.
func (d *Designer) pruneModels(snap *Snapshot) {
	live := make(map[uuid.UUID]struct{}, snap.Len())
	for i := range snap.items {
		live[snap.items[i].ID] = struct{}{}
	}
	for id := range d.models {
		if _, ok := live[id]; !ok {
			delete(d.models, id)
		}
	}
}

// --- Accessors ---

// Store returns the item store.
func (d *Designer) Store() *ItemStore { return d.store }

// Grid returns the placement grid.
func (d *Designer) Grid() *PlacementGrid { return d.grid }

// Camera returns the orbit camera.
func (d *Designer) Camera() *OrbitCamera { return d.camera }

// Controller returns the input controller.
func (d *Designer) Controller() *Controller { return d.ctrl }

// CatalogPanel returns the catalog panel.
func (d *Designer) CatalogPanel() *CatalogPanel { return d.catalogPanel }

// SettingsPanel returns the room settings panel.
func (d *Designer) SettingsPanel() *SettingsPanel { return d.settingsPanel }

// Mode returns the controller state.
func (d *Designer) Mode() Mode { return d.ctrl.Mode() }

// Room returns the current room settings.
func (d *Designer) Room() RoomConfig { return d.room }

// Model returns the adapter of the item with id.
func (d *Designer) Model(id uuid.UUID) (*FurnitureModel, bool) {
	m, ok := d.models[id]
	return m, ok
}

// --- Commands ---

// AddFromCatalog appends an item for p at the default pose.
func (d *Designer) AddFromCatalog(p catalog.Product) uuid.UUID {
	id := d.store.AddItem(p)
	d.ctrl.Refresh()
	return id
}

// SetRoomWidth sets the room width, clamped to its slider range. The
// placement grid is regenerated.
func (d *Designer) SetRoomWidth(w float64) {
	r := d.room
	r.Width = w
	d.setRoom(r)
}

// SetRoomLength sets the room length, clamped to its slider range.
func (d *Designer) SetRoomLength(l float64) {
	r := d.room
	r.Length = l
	d.setRoom(r)
}

// SetRoomHeight sets the room height, clamped to its slider range.
func (d *Designer) SetRoomHeight(h float64) {
	r := d.room
	r.Height = h
	d.setRoom(r)
}

// SetWallColor sets the color of all three walls.
func (d *Designer) SetWallColor(c Color) {
	r := d.room
	r.WallColor = c
	d.setRoom(r)
}

func (d *Designer) setRoom(r RoomConfig) {
	r = r.Clamped()
	if r == d.room {
		return
	}
	d.room = r
	if d.grid.Resize(r.Width, r.Length) {
		d.hoverSpot = -1
	}
	if d.events != nil {
		d.events.EmitEvent(DesignerEvent{
			Type:    EventRoomChanged,
			Version: d.store.Snapshot().Version(),
			Index:   NoSelection,
			Mode:    d.ctrl.Mode(),
			Room:    r,
		})
	}
}

// SetSelectedColor recolors the selected item.
func (d *Designer) SetSelectedColor(c Color) {
	d.store.SetSelectedColor(c)
}

// DeleteSelected removes the selected item.
func (d *Designer) DeleteSelected() {
	d.ctrl.Delete()
}

// Deselect returns to orbiting without changing any item.
func (d *Designer) Deselect() {
	d.ctrl.ClickBackground()
}

// ResetView animates the camera back to its starting position.
func (d *Designer) ResetView() {
	d.camera.ResetView(resetViewTime, ease.InOutQuad)
}

// AddSelectedToCart adds one of the selected item's source product to the
// cart. Without a selection it does nothing.
func (d *Designer) AddSelectedToCart() error {
	it, ok := d.store.Snapshot().SelectedItem()
	if !ok {
		return nil
	}
	if d.cart == nil {
		return ErrNoCart
	}
	if err := d.cart.AddToCart(it.Product, 1); err != nil {
		return fmt.Errorf("add %q to cart: %w", it.Product.Name, err)
	}
	if d.events != nil {
		snap := d.store.Snapshot()
		sel, _ := snap.Selected()
		d.events.EmitEvent(DesignerEvent{
			Type:      EventAddedToCart,
			Version:   snap.Version(),
			Index:     sel,
			ItemID:    it.ID,
			ProductID: it.SourceID(),
			Position:  it.Position,
			Rotation:  it.Rotation,
			Color:     it.Color,
			Mode:      d.ctrl.Mode(),
			Room:      d.room,
		})
	}
	return nil
}

// PlaceSelectedAt drops the selected item on the spot nearest to p, as if
// that spot had been clicked. Returns false without a selection or spots.
func (d *Designer) PlaceSelectedAt(p mgl64.Vec3) bool {
	if !d.store.Snapshot().HasSelection() || d.grid.Len() == 0 {
		return false
	}
	best, bestDist := 0, -1.0
	for i := 0; i < d.grid.Len(); i++ {
		q := d.grid.Spot(i).Position
		dist := (q[0]-p[0])*(q[0]-p[0]) + (q[2]-p[2])*(q[2]-p[2])
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	d.ctrl.ClickSpot(d.grid.Spot(best).Position)
	return true
}

// --- Game loop ---

// SetViewport resizes the drawing area.
func (d *Designer) SetViewport(width, height float64) {
	vp := Rect{Width: width, Height: height}
	if d.camera.Viewport == vp {
		return
	}
	d.camera.Viewport = vp
	d.camera.MarkDirty()
}

// Update advances animations and processes one frame of input.
func (d *Designer) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	d.tick(dt, true)
	return nil
}

// tick runs one frame. live selects whether real devices are polled in
// addition to injected input.
func (d *Designer) tick(dt float32, live bool) {
	if d.testRunner != nil {
		d.testRunner.step(d)
	}
	d.camera.update(dt)
	d.grid.update(dt)
	if live {
		d.fps.update(float64(dt), ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	d.hud.layout(d)
	if !d.processInjectedInput() && live {
		d.processInput()
	}
	d.processKeys(live)
}

// Draw renders the current frame onto screen.
func (d *Designer) Draw(screen *ebiten.Image) {
	var stats frameStats
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}
	f := d.Describe()
	if globalDebug {
		stats.describeTime = time.Since(t0)
	}
	d.renderer.draw(screen, f, d.camera, &stats)
	d.hud.draw(screen, d)
	d.fps.draw(screen)
	debugLog(stats)
	d.flushScreenshots(screen)
}

// Close ends the session. The store and models are discarded.
func (d *Designer) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.sub.Remove()
	d.store.Clear()
	d.models = make(map[uuid.UUID]*FurnitureModel)
	debugf("designer closed")
}
