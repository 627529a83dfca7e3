package roomdesigner

import (
	"context"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/phanxgames/roomdesigner/appctx"
	"github.com/phanxgames/roomdesigner/catalog"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func vecApprox(a, b mgl64.Vec3, eps float64) bool {
	return approxEqual(a[0], b[0], eps) && approxEqual(a[1], b[1], eps) && approxEqual(a[2], b[2], eps)
}

// Test products. The cube is a plain 1 m box so ray tests are predictable.
var (
	testCube = catalog.Product{
		ID: 100, Name: "Storage Cube", Category: "office", Price: 49,
		Specs: catalog.Specs{Dimensions: "100 x 100 x 100 cm"},
	}
	testChair = catalog.Product{
		ID: 101, Name: "Test Chair", Category: "living-room", Price: 199,
		Specs: catalog.Specs{Dimensions: "60 x 60 x 90 cm", Color: "#8B4513"},
	}
	testSofa = catalog.Product{
		ID: 102, Name: "Test Sofa", Category: "living-room", Price: 899,
		Specs: catalog.Specs{Dimensions: "200 x 90 x 80 cm"},
	}
)

func testCatalog() *catalog.Memory {
	return catalog.NewMemory(testCube, testChair, testSofa)
}

// recordingSink collects designer events.
type recordingSink struct {
	events []DesignerEvent
}

func (s *recordingSink) EmitEvent(ev DesignerEvent) {
	s.events = append(s.events, ev)
}

func (s *recordingSink) types() []EventType {
	out := make([]EventType, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Type
	}
	return out
}

// recordingCart records AddToCart calls.
type recordingCart struct {
	lines []appctx.CartLine
	err   error
}

func (c *recordingCart) AddToCart(p catalog.Product, quantity int) error {
	if c.err != nil {
		return c.err
	}
	c.lines = append(c.lines, appctx.CartLine{Product: p, Quantity: quantity})
	return nil
}

func (c *recordingCart) UpdateCartQuantity(productID, quantity int) error { return nil }

func (c *recordingCart) RemoveFromCart(productID int) error { return nil }

func newTestDesigner(t *testing.T, cfg Config) *Designer {
	t.Helper()
	if cfg.Catalog == nil {
		cfg.Catalog = testCatalog()
	}
	d, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(d.Close)
	return d
}

// runFrames advances d by n frames using only injected input.
func runFrames(d *Designer, n int) {
	for i := 0; i < n; i++ {
		d.tick(1.0/60, false)
	}
}

// screenOf projects a world point through d's camera.
func screenOf(t *testing.T, d *Designer, p mgl64.Vec3) Vec2 {
	t.Helper()
	s, _, ok := d.camera.WorldToScreen(p)
	if !ok {
		t.Fatalf("point %v is behind the camera", p)
	}
	return s
}
