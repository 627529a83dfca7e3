package roomdesigner

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// --- White pixel singleton (no sync.Once, the designer is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white image used as the
// source of untextured polygons.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// appendPolygon fan-triangulates the convex polygon pts with a flat color
// and appends it to verts and inds.
func appendPolygon(verts []ebiten.Vertex, inds []uint32, pts []Vec2, c Color) ([]ebiten.Vertex, []uint32) {
	if len(pts) < 3 {
		return verts, inds
	}
	r, g, b, a := float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A)
	base := uint32(len(verts))
	for _, p := range pts {
		verts = append(verts, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	for i := 1; i+1 < len(pts); i++ {
		inds = append(inds, base, base+uint32(i), base+uint32(i+1))
	}
	return verts, inds
}

// circlePoints returns n points on a horizontal circle of radius r around
// center, counter-clockwise seen from above.
func circlePoints(center mgl64.Vec3, r float64, n int) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = mgl64.Vec3{center[0] + r*math.Cos(a), center[1], center[2] - r*math.Sin(a)}
	}
	return out
}

// screenCircle returns n points on a screen-space circle.
func screenCircle(cx, cy, r float64, n int) []Vec2 {
	out := make([]Vec2, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = Vec2{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return out
}
