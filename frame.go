package roomdesigner

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Scene lighting.
const (
	AmbientIntensity = 0.5
	SunIntensity     = 1.0

	markerRadius = 0.1
	markerHeight = 1.0

	gridHelperExtent = 15 // cells on each side of the origin
	gridHelperFade   = 30.0
)

var (
	sunPosition = mgl64.Vec3{5, 5, 5}
	markerColor = MustParseColor("#FFFF00")
	gridColor   = MustParseColor("#9CA3AF")
)

// PartView is one posed mesh part.
type PartView struct {
	Name     string
	Corners  [8]mgl64.Vec3 // world space, boxCorners order
	Material Material
}

// ItemView is the render description of one placed item.
type ItemView struct {
	ID       uuid.UUID
	Index    int
	Name     string
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    float64
	Color    Color
	Selected bool
	Pose     mgl64.Mat4
	Parts    []PartView
}

// SpotView is the render description of a placement spot.
type SpotView struct {
	Index    int
	Position mgl64.Vec3
	Radius   float64
	Color    Color
	Hovered  bool
}

// Marker is the indicator drawn above the selected item.
type Marker struct {
	Position mgl64.Vec3
	Radius   float64
	Color    Color
}

// Lighting is the scene's ambient plus one directional light.
type Lighting struct {
	Ambient      float64
	SunPosition  mgl64.Vec3
	SunIntensity float64
}

// SunDirection returns the unit vector pointing from the scene toward the
// directional light.
func (l Lighting) SunDirection() mgl64.Vec3 {
	return l.SunPosition.Normalize()
}

// CameraView is the camera part of a frame.
type CameraView struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	FOV    float64
}

// GridLine is one line of the floor grid helper. Alpha fades with distance
// from the origin.
type GridLine struct {
	From, To mgl64.Vec3
	Alpha    float64
}

// Frame is a complete, read-only description of what to draw. It is rebuilt
// from the store every frame and never written back.
type Frame struct {
	Room         RoomConfig
	Planes       []Plane
	Items        []ItemView
	Spots        []SpotView // empty unless an item is selected
	Marker       *Marker    // nil unless an item is selected
	Lights       Lighting
	Camera       CameraView
	GridLines    []GridLine
	OrbitEnabled bool
	Mode         Mode
}

// Describe builds the frame for the current state. It only reads.
func (d *Designer) Describe() Frame {
	snap := d.store.Snapshot()
	f := Frame{
		Room:   d.room,
		Planes: RoomGeometry(d.room),
		Lights: Lighting{
			Ambient:      AmbientIntensity,
			SunPosition:  sunPosition,
			SunIntensity: SunIntensity,
		},
		Camera: CameraView{
			Eye:    d.camera.Eye(),
			Target: d.camera.Target,
			FOV:    d.camera.FOV,
		},
		GridLines:    gridHelperLines(),
		OrbitEnabled: snap.OrbitEnabled(),
		Mode:         d.ctrl.Mode(),
	}

	sel, hasSel := snap.Selected()
	f.Items = make([]ItemView, snap.Len())
	for i := range f.Items {
		it := snap.Item(i)
		f.Items[i] = describeItem(i, it, d.models[it.ID], hasSel && i == sel)
		if hasSel && i == sel {
			f.Marker = &Marker{
				Position: transformPoint(f.Items[i].Pose, mgl64.Vec3{0, markerHeight, 0}),
				Radius:   markerRadius * it.Scale,
				Color:    markerColor,
			}
		}
	}

	if hasSel {
		f.Spots = make([]SpotView, d.grid.Len())
		for i := range f.Spots {
			s := d.grid.Spot(i)
			f.Spots[i] = SpotView{
				Index:    i,
				Position: s.Position,
				Radius:   SpotRadius,
				Color:    s.Color(),
				Hovered:  s.Hovered(),
			}
		}
	}
	return f
}

func describeItem(index int, it PlacedItem, m *FurnitureModel, selected bool) ItemView {
	v := ItemView{
		ID:       it.ID,
		Index:    index,
		Name:     it.Product.Name,
		Position: it.Position,
		Rotation: it.Rotation,
		Scale:    it.Scale,
		Color:    it.Color,
		Selected: selected,
		Pose:     poseMatrix(it.Position, it.Rotation, it.Scale),
	}
	if m == nil {
		return v
	}
	m.asset.Root.Walk(func(n *AssetNode) {
		if n.Part == nil {
			return
		}
		off := n.AssetOffset()
		local := boxCorners(n.Part.Min.Add(off), n.Part.Max.Add(off))
		pv := PartView{Name: n.Part.Name, Material: n.Part.Material}
		for i, c := range local {
			pv.Corners[i] = transformPoint(v.Pose, c)
		}
		v.Parts = append(v.Parts, pv)
	})
	return v
}

// gridHelperLines returns the 1 m floor grid around the origin.
func gridHelperLines() []GridLine {
	const n = gridHelperExtent
	out := make([]GridLine, 0, 2*(2*n+1))
	for i := -n; i <= n; i++ {
		v := float64(i)
		a := 1 - math.Min(math.Abs(v)*2/gridHelperFade, 1)
		out = append(out,
			GridLine{From: mgl64.Vec3{v, 0, -n}, To: mgl64.Vec3{v, 0, n}, Alpha: a},
			GridLine{From: mgl64.Vec3{-n, 0, v}, To: mgl64.Vec3{n, 0, v}, Alpha: a},
		)
	}
	return out
}
