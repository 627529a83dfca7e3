package roomdesigner

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/phanxgames/roomdesigner/catalog"
)

// defaultSurface is substituted for a zero metalness or roughness when a
// material is recolored.
const defaultSurface = 0.5

// Material is the surface description of a mesh part.
type Material struct {
	Color     Color
	Metalness float64
	Roughness float64
}

// MeshPart is an axis-aligned box in its node's local space.
type MeshPart struct {
	Name     string
	Min, Max mgl64.Vec3
	Material Material
}

// AssetNode is one node of a loaded furniture asset. Nodes without a Part
// only group their children.
type AssetNode struct {
	Name   string
	Offset mgl64.Vec3 // relative to the parent
	Part   *MeshPart

	Parent   *AssetNode
	children []*AssetNode
}

// NewAssetNode creates a node holding part, which may be nil.
func NewAssetNode(name string, offset mgl64.Vec3, part *MeshPart) *AssetNode {
	return &AssetNode{Name: name, Offset: offset, Part: part}
}

// AddChild appends child, detaching it from any previous parent. Panics if
// child is nil or an ancestor of n.
func (n *AssetNode) AddChild(child *AssetNode) {
	if child == nil {
		panic("roomdesigner: cannot add nil asset node")
	}
	for p := n; p != nil; p = p.Parent {
		if p == child {
			panic("roomdesigner: adding asset node would create a cycle")
		}
	}
	if child.Parent != nil {
		child.Parent.removeChild(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

func (n *AssetNode) removeChild(child *AssetNode) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// Children returns the child list. The returned slice must not be mutated.
func (n *AssetNode) Children() []*AssetNode {
	return n.children
}

// AssetOffset returns the node's offset from the asset root.
func (n *AssetNode) AssetOffset() mgl64.Vec3 {
	var off mgl64.Vec3
	for p := n; p != nil; p = p.Parent {
		off = off.Add(p.Offset)
	}
	return off
}

// Walk visits n and its descendants depth-first.
func (n *AssetNode) Walk(fn func(*AssetNode)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Asset is a loaded furniture model.
type Asset struct {
	Root *AssetNode
}

// Parts returns every mesh part in depth-first order.
func (a *Asset) Parts() []*MeshPart {
	var out []*MeshPart
	a.Root.Walk(func(n *AssetNode) {
		if n.Part != nil {
			out = append(out, n.Part)
		}
	})
	return out
}

// AssetLoader turns a catalog product into an asset.
type AssetLoader interface {
	Load(ctx context.Context, p catalog.Product) (*Asset, error)
}

// FurnitureModel adapts an asset to one placed item: it applies the item's
// color and scale and turns clicks into selection requests.
type FurnitureModel struct {
	asset     *Asset
	originals map[*MeshPart]Material
	color     Color
	scale     float64

	// OnClick runs when the model is clicked.
	OnClick func()
}

// NewFurnitureModel wraps asset. The asset's materials are left untouched
// until the first SetColor.
func NewFurnitureModel(asset *Asset) *FurnitureModel {
	return &FurnitureModel{
		asset:     asset,
		originals: make(map[*MeshPart]Material),
		color:     ColorWhite,
		scale:     1,
	}
}

// Asset returns the wrapped asset.
func (m *FurnitureModel) Asset() *Asset {
	return m.asset
}

// Color returns the last color applied.
func (m *FurnitureModel) Color() Color {
	return m.color
}

// Scale returns the uniform scale.
func (m *FurnitureModel) Scale() float64 {
	return m.scale
}

// SetColor replaces the material of every mesh part with one of color c.
// Metalness and roughness come from the part's original material, captured
// the first time the part is recolored, so repeated recolors never drift.
func (m *FurnitureModel) SetColor(c Color) {
	m.color = c
	for _, part := range m.asset.Parts() {
		orig, ok := m.originals[part]
		if !ok {
			orig = part.Material
			m.originals[part] = orig
		}
		part.Material = Material{
			Color:     c,
			Metalness: orDefault(orig.Metalness),
			Roughness: orDefault(orig.Roughness),
		}
	}
}

func orDefault(v float64) float64 {
	if v == 0 {
		return defaultSurface
	}
	return v
}

// SetScale sets the uniform scale. Non-positive values are ignored.
func (m *FurnitureModel) SetScale(s float64) {
	if s > 0 {
		m.scale = s
	}
}

// Click runs OnClick and reports the click as handled, so it is not also
// treated as a background click.
func (m *FurnitureModel) Click() bool {
	if m.OnClick != nil {
		m.OnClick()
	}
	return true
}

// Bounds returns the model's local bounding box, ignoring scale.
func (m *FurnitureModel) Bounds() (min, max mgl64.Vec3) {
	first := true
	m.asset.Root.Walk(func(n *AssetNode) {
		if n.Part == nil {
			return
		}
		off := n.AssetOffset()
		lo, hi := n.Part.Min.Add(off), n.Part.Max.Add(off)
		if first {
			min, max = lo, hi
			first = false
			return
		}
		for i := 0; i < 3; i++ {
			min[i] = math.Min(min[i], lo[i])
			max[i] = math.Max(max[i], hi[i])
		}
	})
	return min, max
}

// IntersectRay tests the world-space ray origin + t*dir against every part
// of the model posed by pose. Returns the nearest t >= 0.
func (m *FurnitureModel) IntersectRay(pose mgl64.Mat4, origin, dir mgl64.Vec3) (float64, bool) {
	inv := pose.Inv()
	lo := transformPoint(inv, origin)
	ld := inv.Mul4x1(dir.Vec4(0)).Vec3()
	best, hit := math.Inf(1), false
	m.asset.Root.Walk(func(n *AssetNode) {
		if n.Part == nil {
			return
		}
		off := n.AssetOffset()
		if t, ok := rayBox(lo, ld, n.Part.Min.Add(off), n.Part.Max.Add(off)); ok && t < best {
			best, hit = t, true
		}
	})
	return best, hit
}

// rayBox is the slab test. t is in units of dir, so it stays comparable
// across affine transforms of the ray.
func rayBox(origin, dir, min, max mgl64.Vec3) (float64, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < min[i] || origin[i] > max[i] {
				return 0, false
			}
			continue
		}
		t1 := (min[i] - origin[i]) / dir[i]
		t2 := (max[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	return math.Max(tmin, 0), true
}

// --- Procedural loader ---

var dimensionsRE = regexp.MustCompile(`(?i)^\s*([\d.]+)\s*[x×]\s*([\d.]+)\s*[x×]\s*([\d.]+)\s*(mm|cm|m)?\s*$`)

// ParseDimensions parses a "W x D x H unit" string such as "75 x 80 x 85 cm"
// into meters. The unit defaults to centimeters.
func ParseDimensions(s string) (width, depth, height float64, err error) {
	m := dimensionsRE.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("parse dimensions %q: want \"W x D x H cm\"", s)
	}
	unit := 0.01
	switch strings.ToLower(m[4]) {
	case "mm":
		unit = 0.001
	case "m":
		unit = 1
	}
	var v [3]float64
	for i := range v {
		f, perr := strconv.ParseFloat(m[i+1], 64)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("parse dimensions %q: %w", s, perr)
		}
		if f <= 0 {
			return 0, 0, 0, fmt.Errorf("parse dimensions %q: sizes must be positive", s)
		}
		v[i] = f * unit
	}
	return v[0], v[1], v[2], nil
}

// FurnitureShape selects the procedural layout of an asset.
type FurnitureShape uint8

const (
	ShapeBox FurnitureShape = iota
	ShapeChair
	ShapeSofa
	ShapeTable
	ShapeShelf
	ShapeBed
)

// ShapeFor guesses a shape from the product name.
func ShapeFor(p catalog.Product) FurnitureShape {
	name := strings.ToLower(p.Name)
	switch {
	case strings.Contains(name, "chair"):
		return ShapeChair
	case strings.Contains(name, "sofa"):
		return ShapeSofa
	case strings.Contains(name, "table"), strings.Contains(name, "desk"):
		return ShapeTable
	case strings.Contains(name, "shelf"), strings.Contains(name, "bookcase"):
		return ShapeShelf
	case strings.Contains(name, "bed"):
		return ShapeBed
	default:
		return ShapeBox
	}
}

// ProceduralLoader builds box assets sized from a product's dimensions.
type ProceduralLoader struct{}

// Load builds the asset for p. Products without parseable dimensions fail;
// callers usually fall back to PlaceholderAsset.
func (ProceduralLoader) Load(ctx context.Context, p catalog.Product) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, d, h, err := ParseDimensions(p.Specs.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", p.Name, err)
	}
	base := ColorWhite
	if p.Specs.Color != "" {
		if c, cerr := ParseColor(p.Specs.Color); cerr == nil {
			base = c
		}
	}
	return buildAsset(p.Name, ShapeFor(p), w, d, h, base), nil
}

// PlaceholderAsset returns a 0.5 m cube used when an asset cannot be loaded.
func PlaceholderAsset() *Asset {
	return buildAsset("placeholder", ShapeBox, 0.5, 0.5, 0.5, ColorWhite)
}

// box returns a part spanning x0..x1, y0..y1, z0..z1.
func box(name string, x0, y0, z0, x1, y1, z1 float64, mat Material) *MeshPart {
	return &MeshPart{Name: name, Min: mgl64.Vec3{x0, y0, z0}, Max: mgl64.Vec3{x1, y1, z1}, Material: mat}
}

// buildAsset lays out shape inside a w (X) by d (Z) by h (Y) volume resting on y = 0
// and centered on X and Z.
func buildAsset(name string, shape FurnitureShape, w, d, h float64, base Color) *Asset {
	root := NewAssetNode(name, mgl64.Vec3{}, nil)
	hw, hd := w/2, d/2
	wood := Material{Color: base, Roughness: 0.8}
	fabric := Material{Color: base, Roughness: 0.9}
	metal := Material{Color: base, Metalness: 0.9, Roughness: 0.3}
	add := func(p *MeshPart) {
		root.AddChild(NewAssetNode(p.Name, mgl64.Vec3{}, p))
	}
	legs := func(top, t float64, mat Material) {
		group := NewAssetNode("legs", mgl64.Vec3{}, nil)
		for i, c := range [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			x, z := c[0]*(hw-t/2), c[1]*(hd-t/2)
			group.AddChild(NewAssetNode(fmt.Sprintf("leg%d", i), mgl64.Vec3{x, 0, z},
				box("leg", -t/2, 0, -t/2, t/2, top, t/2, mat)))
		}
		root.AddChild(group)
	}

	switch shape {
	case ShapeChair:
		seat := h * 0.5
		legs(seat, math.Min(w, d)*0.08, metal)
		add(box("seat", -hw, seat, -hd, hw, seat+h*0.08, hd, fabric))
		add(box("back", -hw, seat, -hd, hw, h, -hd+d*0.12, fabric))
	case ShapeSofa:
		arm := w * 0.08
		add(box("base", -hw, 0, -hd, hw, h*0.5, hd, fabric))
		add(box("back", -hw, h*0.5, -hd, hw, h, -hd+d*0.25, fabric))
		add(box("arm-left", -hw, h*0.5, -hd, -hw+arm, h*0.7, hd, fabric))
		add(box("arm-right", hw-arm, h*0.5, -hd, hw, h*0.7, hd, fabric))
	case ShapeTable:
		top := h * 0.06
		legs(h-top, math.Min(w, d)*0.06, wood)
		add(box("top", -hw, h-top, -hd, hw, h, hd, wood))
	case ShapeShelf:
		side := w * 0.04
		add(box("side-left", -hw, 0, -hd, -hw+side, h, hd, wood))
		add(box("side-right", hw-side, 0, -hd, hw, h, hd, wood))
		const shelves = 5
		for i := 0; i < shelves; i++ {
			y := float64(i) * (h - side) / (shelves - 1)
			add(box(fmt.Sprintf("shelf%d", i), -hw+side, y, -hd, hw-side, y+side, hd, wood))
		}
	case ShapeBed:
		frame := h * 0.3
		add(box("frame", -hw, 0, -hd, hw, frame, hd, wood))
		add(box("mattress", -hw+0.02, frame, -hd+0.05, hw-0.02, frame+h*0.2, hd, fabric))
		add(box("headboard", -hw, 0, -hd, hw, h, -hd+0.05, wood))
	default:
		add(box("body", -hw, 0, -hd, hw, h, hd, wood))
	}
	return &Asset{Root: root}
}
