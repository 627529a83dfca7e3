package roomdesigner

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func countLayer(polys []polygon, layer uint8) int {
	n := 0
	for _, p := range polys {
		if p.layer == layer {
			n++
		}
	}
	return n
}

func TestRendererBuildCullsBackFaces(t *testing.T) {
	d := designerWithCube(t)
	var r renderer
	r.build(d.Describe(), d.camera)

	// From (5, 5, 5) the right wall faces away.
	if got := countLayer(r.polys, layerRoom); got != 3 {
		t.Errorf("room polygons = %d, want 3", got)
	}
	// Top, front and right faces of the cube.
	if got := countLayer(r.polys, layerScene); got != 3 {
		t.Errorf("scene polygons = %d, want 3", got)
	}
	if len(r.lines) != 2*(2*gridHelperExtent+1) {
		t.Errorf("grid lines = %d", len(r.lines))
	}
}

func TestRendererBuildSelection(t *testing.T) {
	d := designerWithCube(t)
	d.Controller().ClickItem(0)
	var r renderer
	r.build(d.Describe(), d.camera)
	// Cube faces, one disc per spot and the marker.
	want := 3 + d.Grid().Len() + 1
	if got := countLayer(r.polys, layerScene); got != want {
		t.Errorf("scene polygons = %d, want %d", got, want)
	}
}

func TestRendererBuildOrder(t *testing.T) {
	d := designerWithCube(t)
	d.AddFromCatalog(testSofa)
	d.Controller().ClickItem(1)
	d.Store().MoveSelectedBy(mgl64.Vec3{-1.5, 0, 1})
	var r renderer
	r.build(d.Describe(), d.camera)
	for i := 1; i < len(r.polys); i++ {
		a, b := r.polys[i-1], r.polys[i]
		if a.layer > b.layer {
			t.Fatalf("polygon %d: layer %d before %d", i, a.layer, b.layer)
		}
		if a.layer == b.layer && a.depth < b.depth {
			t.Fatalf("polygon %d: depth %v before %v, want back to front", i, a.depth, b.depth)
		}
	}
}

func TestRendererReusesBuffers(t *testing.T) {
	d := designerWithCube(t)
	var r renderer
	f := d.Describe()
	r.build(f, d.camera)
	n := len(r.polys)
	r.build(f, d.camera)
	if len(r.polys) != n {
		t.Errorf("second build = %d polygons, want %d", len(r.polys), n)
	}
}

func TestAddPolygonDropsBehindCamera(t *testing.T) {
	cam := NewOrbitCamera(Rect{Width: 800, Height: 600})
	var r renderer
	r.addPolygon(cam, []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {10, 10, 10}}, ColorWhite, layerScene)
	if len(r.polys) != 0 {
		t.Error("polygon crossing the near plane should be dropped")
	}
	r.addPolygon(cam, []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, -1}}, ColorWhite, layerScene)
	if len(r.polys) != 1 || len(r.polys[0].pts) != 3 {
		t.Errorf("polys = %+v", r.polys)
	}
}

func TestShadeMaterial(t *testing.T) {
	l := Lighting{Ambient: AmbientIntensity, SunPosition: sunPosition, SunIntensity: SunIntensity}
	gray := Material{Color: MustParseColor("#808080"), Roughness: 1}
	view := mgl64.Vec3{0, 0, 1}

	lit := shadeMaterial(gray, l.SunDirection(), view, l)
	away := shadeMaterial(gray, l.SunDirection().Mul(-1), view, l)
	if lit.R <= away.R {
		t.Errorf("lit face %v should be brighter than unlit %v", lit, away)
	}
	if !approxEqual(away.R, gray.Color.R*AmbientIntensity, 1e-9) {
		t.Errorf("unlit face = %v, want ambient only", away.R)
	}

	metal := gray
	metal.Metalness = 1
	if m := shadeMaterial(metal, l.SunDirection(), view, l); m.R >= lit.R {
		t.Errorf("metal diffuse %v should be darker than %v", m.R, lit.R)
	}

	shiny := gray
	shiny.Roughness = 0
	half := l.SunDirection().Add(view).Normalize()
	if s := shadeMaterial(shiny, half, view, l); s.R <= shadeMaterial(gray, half, view, l).R {
		t.Error("a smooth surface should have a highlight")
	}
}

func TestAppendPolygon(t *testing.T) {
	quad := []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}
	verts, inds := appendPolygon(nil, nil, quad, c)
	if len(verts) != 4 || len(inds) != 6 {
		t.Fatalf("verts %d inds %d, want 4 and 6", len(verts), len(inds))
	}
	if verts[0].ColorR != 0.5 || verts[0].ColorG != 0.25 || verts[0].ColorA != 0.5 {
		t.Errorf("vertex color not premultiplied: %+v", verts[0])
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	for i := range want {
		if inds[i] != want[i] {
			t.Fatalf("inds = %v, want %v", inds, want)
		}
	}

	verts, inds = appendPolygon(verts, inds, quad[:3], c)
	if len(verts) != 7 || inds[len(inds)-3] != 4 {
		t.Errorf("second polygon should be offset: verts %d inds %v", len(verts), inds)
	}

	verts, inds = appendPolygon(verts, inds, quad[:2], c)
	if len(verts) != 7 || len(inds) != 9 {
		t.Error("degenerate polygon should be skipped")
	}
}

func TestCirclePoints(t *testing.T) {
	center := mgl64.Vec3{1, SpotHeight, -1}
	pts := circlePoints(center, SpotRadius, spotSegments)
	if len(pts) != spotSegments {
		t.Fatalf("points = %d", len(pts))
	}
	for _, p := range pts {
		if p[1] != SpotHeight {
			t.Errorf("point %v not on the spot plane", p)
		}
		if r := math.Hypot(p[0]-center[0], p[2]-center[2]); !approxEqual(r, SpotRadius, 1e-9) {
			t.Errorf("radius %v", r)
		}
	}
	// Counter-clockwise from above means the disc faces up.
	n := faceNormal(pts[0], pts[1], pts[2])
	if n[1] <= 0 {
		t.Errorf("disc normal %v should point up", n)
	}
}

func TestScreenCircle(t *testing.T) {
	pts := screenCircle(100, 50, 10, markerSegments)
	if len(pts) != markerSegments {
		t.Fatalf("points = %d", len(pts))
	}
	if !approxEqual(pts[0].X, 110, 1e-9) || !approxEqual(pts[0].Y, 50, 1e-9) {
		t.Errorf("first point = %v", pts[0])
	}
}
