package roomdesigner

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// GridSpacing is the distance between neighbouring placement spots.
	GridSpacing = 1.0
	// GridMargin keeps spots this far from every wall.
	GridMargin = 1.0
	// SpotHeight lifts spots above the floor to avoid z-fighting.
	SpotHeight = 0.01
	// SpotRadius is the radius of a spot disc.
	SpotRadius = 0.3
	// SpotOpacity is the alpha of a spot disc.
	SpotOpacity = 0.6

	spotHoverFade = 0.12 // seconds
)

var (
	spotColor      = MustParseColor("#8BC34A")
	spotHoverColor = MustParseColor("#4CAF50")
)

// Spot is one clickable drop point of the placement grid.
type Spot struct {
	Position mgl64.Vec3

	hovered bool
	glow    float64 // 0 = idle color, 1 = hover color
	fade    *gween.Tween
}

// Hovered reports whether the pointer is over the spot.
func (s *Spot) Hovered() bool {
	return s.hovered
}

// Color returns the spot's current (possibly mid-fade) display color.
func (s *Spot) Color() Color {
	return spotColor.Lerp(spotHoverColor, s.glow).WithAlpha(SpotOpacity)
}

// PlacementGrid is the lattice of drop points inside the room. Hover state
// is local to the grid and never reaches the item store.
type PlacementGrid struct {
	width, length float64
	spots         []Spot
}

// NewPlacementGrid creates a grid for a width x length room.
func NewPlacementGrid(width, length float64) *PlacementGrid {
	g := &PlacementGrid{}
	g.Resize(width, length)
	return g
}

// GridPositions returns the spot positions for a width x length room: a
// 1 m lattice from -dim/2+1 to dim/2-1 on X and Z at SpotHeight, X-major.
func GridPositions(width, length float64) []mgl64.Vec3 {
	xs := axisPositions(width)
	zs := axisPositions(length)
	out := make([]mgl64.Vec3, 0, len(xs)*len(zs))
	for _, x := range xs {
		for _, z := range zs {
			out = append(out, mgl64.Vec3{x, SpotHeight, z})
		}
	}
	return out
}

// axisPositions returns start, start+1, ... up to end inclusive, where
// start = -dim/2 + margin and end = dim/2 - margin. Positions are computed
// from the index rather than accumulated so they stay exact.
func axisPositions(dim float64) []float64 {
	start := -dim/2 + GridMargin
	end := dim/2 - GridMargin
	if end < start {
		return nil
	}
	n := int(math.Floor((end-start)/GridSpacing+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*GridSpacing
	}
	return out
}

// Resize regenerates the spots if the dimensions changed. Returns whether
// the grid was rebuilt. Hover state does not survive a rebuild.
func (g *PlacementGrid) Resize(width, length float64) bool {
	if g.spots != nil && width == g.width && length == g.length {
		return false
	}
	g.width, g.length = width, length
	pos := GridPositions(width, length)
	g.spots = make([]Spot, len(pos))
	for i, p := range pos {
		g.spots[i].Position = p
	}
	return true
}

// Len returns the number of spots.
func (g *PlacementGrid) Len() int {
	return len(g.spots)
}

// Spot returns the spot at index i.
func (g *PlacementGrid) Spot(i int) *Spot {
	return &g.spots[i]
}

// Positions returns every spot position.
func (g *PlacementGrid) Positions() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(g.spots))
	for i := range g.spots {
		out[i] = g.spots[i].Position
	}
	return out
}

// SetHovered starts a color fade on spot i toward the hover or idle color.
func (g *PlacementGrid) SetHovered(i int, hovered bool) {
	if i < 0 || i >= len(g.spots) {
		return
	}
	s := &g.spots[i]
	if s.hovered == hovered {
		return
	}
	s.hovered = hovered
	to := float32(0)
	if hovered {
		to = 1
	}
	s.fade = gween.New(float32(s.glow), to, spotHoverFade, ease.OutQuad)
}

// ClearHover drops hover state on every spot immediately.
func (g *PlacementGrid) ClearHover() {
	for i := range g.spots {
		g.spots[i].hovered = false
		g.spots[i].glow = 0
		g.spots[i].fade = nil
	}
}

// update advances hover fades by dt seconds.
func (g *PlacementGrid) update(dt float32) {
	for i := range g.spots {
		s := &g.spots[i]
		if s.fade == nil {
			continue
		}
		v, done := s.fade.Update(dt)
		s.glow = float64(v)
		if done {
			s.fade = nil
		}
	}
}
