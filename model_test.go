package roomdesigner

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/phanxgames/roomdesigner/catalog"
)

func TestParseDimensions(t *testing.T) {
	tests := []struct {
		in      string
		w, d, h float64
		wantErr bool
	}{
		{"75 x 80 x 85 cm", 0.75, 0.8, 0.85, false},
		{"220x95x80", 2.2, 0.95, 0.8, false},
		{"1.2 × 0.6 × 0.75 m", 1.2, 0.6, 0.75, false},
		{"600 X 400 X 300 mm", 0.6, 0.4, 0.3, false},
		{"  90 x 90 x 40 CM ", 0.9, 0.9, 0.4, false},
		{"", 0, 0, 0, true},
		{"90 x 90", 0, 0, 0, true},
		{"0 x 90 x 40 cm", 0, 0, 0, true},
		{"a x b x c", 0, 0, 0, true},
		{"1.2.3 x 1 x 1", 0, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, d, h, err := ParseDimensions(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDimensions(%q) = %v %v %v, want error", tt.in, w, d, h)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDimensions(%q): %v", tt.in, err)
			}
			if !approxEqual(w, tt.w, 1e-9) || !approxEqual(d, tt.d, 1e-9) || !approxEqual(h, tt.h, 1e-9) {
				t.Errorf("ParseDimensions(%q) = %v %v %v, want %v %v %v", tt.in, w, d, h, tt.w, tt.d, tt.h)
			}
		})
	}
}

func TestShapeFor(t *testing.T) {
	tests := []struct {
		name string
		want FurnitureShape
	}{
		{"Oslo Lounge Chair", ShapeChair},
		{"Bergen Three-Seat Sofa", ShapeSofa},
		{"Fjord Dining Table", ShapeTable},
		{"Writing Desk", ShapeTable},
		{"Tromso Bookshelf", ShapeShelf},
		{"Nordby Double Bed", ShapeBed},
		{"Storage Cube", ShapeBox},
	}
	for _, tt := range tests {
		if got := ShapeFor(catalog.Product{Name: tt.name}); got != tt.want {
			t.Errorf("ShapeFor(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestProceduralLoaderFitsDimensions(t *testing.T) {
	products, err := catalog.Default().Products(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range products {
		asset, err := ProceduralLoader{}.Load(context.Background(), p)
		if err != nil {
			t.Fatalf("Load(%q): %v", p.Name, err)
		}
		w, d, h, _ := ParseDimensions(p.Specs.Dimensions)
		lo, hi := NewFurnitureModel(asset).Bounds()
		size := hi.Sub(lo)
		if !vecApprox(size, mgl64.Vec3{w, h, d}, 1e-9) {
			t.Errorf("%s: bounds size = %v, want %v", p.Name, size, mgl64.Vec3{w, h, d})
		}
		if !approxEqual(lo[1], 0, 1e-9) {
			t.Errorf("%s: asset should rest on the floor, min y = %v", p.Name, lo[1])
		}
	}
}

func TestProceduralLoaderErrors(t *testing.T) {
	_, err := ProceduralLoader{}.Load(context.Background(), catalog.Product{Name: "Mystery"})
	if err == nil {
		t.Error("Load without dimensions should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ProceduralLoader{}.Load(ctx, testCube)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load with canceled ctx = %v, want context.Canceled", err)
	}
}

func TestProceduralLoaderBaseColor(t *testing.T) {
	asset, err := ProceduralLoader{}.Load(context.Background(), testChair)
	if err != nil {
		t.Fatal(err)
	}
	for _, part := range asset.Parts() {
		if part.Material.Color.Hex() != "#8B4513" {
			t.Errorf("%s color = %s, want the product color", part.Name, part.Material.Color.Hex())
		}
	}
}

func TestSetColorPreservesSurface(t *testing.T) {
	asset, err := ProceduralLoader{}.Load(context.Background(), testChair)
	if err != nil {
		t.Fatal(err)
	}
	type surface struct{ metal, rough float64 }
	orig := map[*MeshPart]surface{}
	for _, p := range asset.Parts() {
		orig[p] = surface{p.Material.Metalness, p.Material.Roughness}
	}

	m := NewFurnitureModel(asset)
	black := MustParseColor("#000000")
	for i := 0; i < 5; i++ {
		m.SetColor(MustParseColor("#808080"))
		m.SetColor(black)
	}
	for p, s := range orig {
		mat := p.Material
		if mat.Color != black {
			t.Errorf("%s color = %s, want #000000", p.Name, mat.Color.Hex())
		}
		wantMetal, wantRough := s.metal, s.rough
		if wantMetal == 0 {
			wantMetal = 0.5
		}
		if wantRough == 0 {
			wantRough = 0.5
		}
		if mat.Metalness != wantMetal || mat.Roughness != wantRough {
			t.Errorf("%s surface = %v/%v, want %v/%v", p.Name, mat.Metalness, mat.Roughness, wantMetal, wantRough)
		}
	}
	if m.Color() != black {
		t.Errorf("Color = %v", m.Color())
	}
}

func TestSetColorDefaultsZeroSurface(t *testing.T) {
	part := &MeshPart{Name: "p", Max: mgl64.Vec3{1, 1, 1}}
	asset := &Asset{Root: NewAssetNode("root", mgl64.Vec3{}, part)}
	m := NewFurnitureModel(asset)
	m.SetColor(ColorWhite)
	if part.Material.Metalness != 0.5 || part.Material.Roughness != 0.5 {
		t.Errorf("surface = %v/%v, want 0.5/0.5", part.Material.Metalness, part.Material.Roughness)
	}
}

func TestSetScaleIgnoresNonPositive(t *testing.T) {
	m := NewFurnitureModel(PlaceholderAsset())
	m.SetScale(2)
	m.SetScale(0)
	m.SetScale(-1)
	if m.Scale() != 2 {
		t.Errorf("Scale = %v, want 2", m.Scale())
	}
}

func TestClickRunsCallback(t *testing.T) {
	m := NewFurnitureModel(PlaceholderAsset())
	if !m.Click() {
		t.Error("Click without callback should still report handled")
	}
	n := 0
	m.OnClick = func() { n++ }
	m.Click()
	if n != 1 {
		t.Errorf("OnClick ran %d times", n)
	}
}

func TestIntersectRay(t *testing.T) {
	m := NewFurnitureModel(PlaceholderAsset()) // 0.5 m cube, y 0..0.5

	tests := []struct {
		name   string
		pose   mgl64.Mat4
		origin mgl64.Vec3
		dir    mgl64.Vec3
		hit    bool
		t      float64
	}{
		{"straight down", mgl64.Ident4(), mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -1, 0}, true, 4.5},
		{"miss beside", mgl64.Ident4(), mgl64.Vec3{1, 5, 0}, mgl64.Vec3{0, -1, 0}, false, 0},
		{"behind origin", mgl64.Ident4(), mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, 1, 0}, false, 0},
		{"translated", poseMatrix(mgl64.Vec3{2, 0, 0}, mgl64.Vec3{}, 1), mgl64.Vec3{2, 5, 0}, mgl64.Vec3{0, -1, 0}, true, 4.5},
		{"scaled", poseMatrix(mgl64.Vec3{}, mgl64.Vec3{}, 2), mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -1, 0}, true, 4},
		{"from the side", mgl64.Ident4(), mgl64.Vec3{-5, 0.25, 0}, mgl64.Vec3{1, 0, 0}, true, 4.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.IntersectRay(tt.pose, tt.origin, tt.dir)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && !approxEqual(got, tt.t, 1e-9) {
				t.Errorf("t = %v, want %v", got, tt.t)
			}
		})
	}
}

func TestIntersectRayRotated(t *testing.T) {
	asset := buildAsset("long", ShapeBox, 2, 0.2, 0.2, ColorWhite)
	m := NewFurnitureModel(asset)
	// Down through (0, _, 0.8): misses unrotated, hits after a quarter turn.
	origin, dir := mgl64.Vec3{0, 5, 0.8}, mgl64.Vec3{0, -1, 0}
	if _, ok := m.IntersectRay(mgl64.Ident4(), origin, dir); ok {
		t.Error("unrotated box should be missed")
	}
	pose := poseMatrix(mgl64.Vec3{}, mgl64.Vec3{0, math.Pi / 2, 0}, 1)
	if _, ok := m.IntersectRay(pose, origin, dir); !ok {
		t.Error("rotated box should be hit")
	}
}

func TestAssetNodeHierarchy(t *testing.T) {
	root := NewAssetNode("root", mgl64.Vec3{1, 0, 0}, nil)
	group := NewAssetNode("group", mgl64.Vec3{0, 2, 0}, nil)
	leaf := NewAssetNode("leaf", mgl64.Vec3{0, 0, 3}, &MeshPart{Name: "leaf"})
	root.AddChild(group)
	group.AddChild(leaf)

	if got := leaf.AssetOffset(); got != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("AssetOffset = %v, want (1, 2, 3)", got)
	}

	other := NewAssetNode("other", mgl64.Vec3{}, nil)
	other.AddChild(leaf)
	if len(group.Children()) != 0 || leaf.Parent != other {
		t.Error("AddChild should detach from the previous parent")
	}

	var names []string
	root.Walk(func(n *AssetNode) { names = append(names, n.Name) })
	if len(names) != 2 || names[0] != "root" || names[1] != "group" {
		t.Errorf("Walk = %v", names)
	}
}

func TestAssetNodeAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil", func() { NewAssetNode("a", mgl64.Vec3{}, nil).AddChild(nil) }},
		{"self", func() {
			a := NewAssetNode("a", mgl64.Vec3{}, nil)
			a.AddChild(a)
		}},
		{"cycle", func() {
			a := NewAssetNode("a", mgl64.Vec3{}, nil)
			b := NewAssetNode("b", mgl64.Vec3{}, nil)
			a.AddChild(b)
			b.AddChild(a)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestChairParts(t *testing.T) {
	asset := buildAsset("chair", ShapeChair, 0.6, 0.6, 0.9, ColorWhite)
	names := map[string]bool{}
	asset.Root.Walk(func(n *AssetNode) { names[n.Name] = true })
	for _, want := range []string{"seat", "back", "legs", "leg0", "leg3"} {
		if !names[want] {
			t.Errorf("chair has no %q node", want)
		}
	}
	if got := len(asset.Parts()); got != 6 {
		t.Errorf("chair parts = %d, want 6", got)
	}
}
