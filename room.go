package roomdesigner

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Room dimension limits in meters, matching the settings sliders.
const (
	MinRoomWidth  = 3.0
	MaxRoomWidth  = 10.0
	MinRoomLength = 3.0
	MaxRoomLength = 10.0
	MinRoomHeight = 2.0
	MaxRoomHeight = 4.0

	// RoomSliderStep is the increment of the dimension sliders.
	RoomSliderStep = 0.1
)

// floorColor is fixed; only walls follow RoomConfig.WallColor.
var floorColor = MustParseColor("#f0f0f0")

// RoomConfig holds the parametric room settings of a designer session.
type RoomConfig struct {
	Width     float64 // along X
	Length    float64 // along Z
	Height    float64 // along Y
	WallColor Color
}

// DefaultRoomConfig returns a 5 x 5 x 3 m room with white walls.
func DefaultRoomConfig() RoomConfig {
	return RoomConfig{Width: 5, Length: 5, Height: 3, WallColor: ColorWhite}
}

// Clamped returns c with every dimension forced into its slider range.
// A zero wall color becomes white.
func (c RoomConfig) Clamped() RoomConfig {
	c.Width = clampRange(c.Width, MinRoomWidth, MaxRoomWidth)
	c.Length = clampRange(c.Length, MinRoomLength, MaxRoomLength)
	c.Height = clampRange(c.Height, MinRoomHeight, MaxRoomHeight)
	if c.WallColor == (Color{}) {
		c.WallColor = ColorWhite
	}
	return c
}

func clampRange(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}

// snapToStep rounds v to the nearest slider step so repeated +/- presses do
// not drift.
func snapToStep(v float64) float64 {
	return math.Round(v/RoomSliderStep) * RoomSliderStep
}

// PlaneKind identifies a room surface.
type PlaneKind uint8

const (
	PlaneFloor PlaneKind = iota
	PlaneBackWall
	PlaneLeftWall
	PlaneRightWall
)

func (k PlaneKind) String() string {
	switch k {
	case PlaneFloor:
		return "floor"
	case PlaneBackWall:
		return "back wall"
	case PlaneLeftWall:
		return "left wall"
	case PlaneRightWall:
		return "right wall"
	default:
		return "plane?"
	}
}

// Plane is a rectangle of Width x Height in its local XY plane, rotated by
// Rotation (Euler XYZ) and centered at Center.
type Plane struct {
	Kind     PlaneKind
	Center   mgl64.Vec3
	Rotation mgl64.Vec3
	Width    float64
	Height   float64
	Color    Color
}

// Corners returns the plane's four world-space corners in counter-clockwise
// order as seen from the side its local +Z faces.
func (p Plane) Corners() [4]mgl64.Vec3 {
	hw, hh := p.Width/2, p.Height/2
	rot := eulerMat3(p.Rotation)
	local := [4]mgl64.Vec3{
		{-hw, -hh, 0},
		{hw, -hh, 0},
		{hw, hh, 0},
		{-hw, hh, 0},
	}
	var out [4]mgl64.Vec3
	for i, l := range local {
		out[i] = rot.Mul3x1(l).Add(p.Center)
	}
	return out
}

// Normal returns the plane's front-facing unit normal.
func (p Plane) Normal() mgl64.Vec3 {
	return eulerMat3(p.Rotation).Mul3x1(mgl64.Vec3{0, 0, 1})
}

// RoomGeometry derives the room surfaces from c: the floor plus the back,
// left and right walls. There is no front wall so the camera can look in.
func RoomGeometry(c RoomConfig) []Plane {
	w, l, h := c.Width, c.Length, c.Height
	return []Plane{
		{
			Kind:     PlaneFloor,
			Rotation: mgl64.Vec3{-math.Pi / 2, 0, 0},
			Width:    w,
			Height:   l,
			Color:    floorColor,
		},
		{
			Kind:   PlaneBackWall,
			Center: mgl64.Vec3{0, h / 2, -l / 2},
			Width:  w,
			Height: h,
			Color:  c.WallColor,
		},
		{
			Kind:     PlaneLeftWall,
			Center:   mgl64.Vec3{-w / 2, h / 2, 0},
			Rotation: mgl64.Vec3{0, math.Pi / 2, 0},
			Width:    l,
			Height:   h,
			Color:    c.WallColor,
		},
		{
			Kind:     PlaneRightWall,
			Center:   mgl64.Vec3{w / 2, h / 2, 0},
			Rotation: mgl64.Vec3{0, -math.Pi / 2, 0},
			Width:    l,
			Height:   h,
			Color:    c.WallColor,
		},
	}
}
