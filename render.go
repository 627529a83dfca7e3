package roomdesigner

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Render layers. Lower layers are drawn first; within a layer polygons are
// painted back to front. The floor grid helper is drawn before every layer.
const (
	layerRoom  uint8 = iota // floor and walls
	layerScene              // furniture, spots, marker
)

const (
	spotSegments   = 24
	markerSegments = 16
	specularPower  = 16
)

var backgroundColor = MustParseColor("#F3F4F6")

// polygon is one flat-shaded convex screen polygon.
type polygon struct {
	pts   []Vec2
	depth float64 // mean view depth, larger is farther
	color Color
	layer uint8
}

// renderer turns a Frame into triangles. Buffers are reused across frames.
type renderer struct {
	polys []polygon
	lines []GridLine
	verts []ebiten.Vertex
	inds  []uint32
}

// build projects and shades every visible surface of f. It does not touch
// any image, so it can run without a graphics context.
func (r *renderer) build(f Frame, cam *OrbitCamera) {
	r.polys = r.polys[:0]
	eye := cam.Eye()
	sun := f.Lights.SunDirection()

	for _, pl := range f.Planes {
		n := pl.Normal()
		if n.Dot(eye.Sub(pl.Center)) <= 0 {
			continue // single-sided, seen from behind
		}
		corners := pl.Corners()
		shade := f.Lights.Ambient + f.Lights.SunIntensity*math.Max(0, n.Dot(sun))
		r.addPolygon(cam, corners[:], pl.Color.Shade(shade), layerRoom)
	}

	for _, it := range f.Items {
		for _, part := range it.Parts {
			for _, face := range boxFaces {
				pts := []mgl64.Vec3{
					part.Corners[face[0]], part.Corners[face[1]],
					part.Corners[face[2]], part.Corners[face[3]],
				}
				n := faceNormal(pts[0], pts[1], pts[2])
				center := pts[0].Add(pts[2]).Mul(0.5)
				view := eye.Sub(center)
				if n.Dot(view) <= 0 {
					continue
				}
				c := shadeMaterial(part.Material, n, view.Normalize(), f.Lights)
				r.addPolygon(cam, pts, c, layerScene)
			}
		}
	}

	for _, s := range f.Spots {
		r.addPolygon(cam, circlePoints(s.Position, s.Radius, spotSegments), s.Color, layerScene)
	}

	if m := f.Marker; m != nil {
		center, depth, ok := cam.WorldToScreen(m.Position)
		top, _, okTop := cam.WorldToScreen(m.Position.Add(mgl64.Vec3{0, m.Radius, 0}))
		if ok && okTop {
			rad := math.Hypot(top.X-center.X, top.Y-center.Y)
			r.polys = append(r.polys, polygon{
				pts:   screenCircle(center.X, center.Y, rad, markerSegments),
				depth: depth,
				color: m.Color,
				layer: layerScene,
			})
		}
	}

	slices.SortStableFunc(r.polys, func(a, b polygon) int {
		if c := cmp.Compare(a.layer, b.layer); c != 0 {
			return c
		}
		return cmp.Compare(b.depth, a.depth)
	})
	r.lines = f.GridLines
}

// addPolygon projects world-space pts. Polygons crossing the near plane are
// dropped.
func (r *renderer) addPolygon(cam *OrbitCamera, pts []mgl64.Vec3, c Color, layer uint8) {
	screen := make([]Vec2, len(pts))
	var depth float64
	for i, p := range pts {
		s, w, ok := cam.WorldToScreen(p)
		if !ok {
			return
		}
		screen[i] = s
		depth += w
	}
	r.polys = append(r.polys, polygon{
		pts:   screen,
		depth: depth / float64(len(pts)),
		color: c,
		layer: layer,
	})
}

// shadeMaterial applies ambient, Lambert diffuse and a Blinn specular term.
// Metalness darkens the diffuse part; roughness dims the highlight.
func shadeMaterial(m Material, n, view mgl64.Vec3, l Lighting) Color {
	sun := l.SunDirection()
	diffuse := math.Max(0, n.Dot(sun)) * l.SunIntensity * (1 - 0.5*m.Metalness)
	half := sun.Add(view).Normalize()
	spec := math.Pow(math.Max(0, n.Dot(half)), specularPower) * (1 - m.Roughness) * l.SunIntensity
	c := m.Color.Shade(l.Ambient + diffuse)
	return Color{
		R: clamp01(c.R + spec),
		G: clamp01(c.G + spec),
		B: clamp01(c.B + spec),
		A: m.Color.A,
	}
}

// draw renders f onto screen.
func (r *renderer) draw(screen *ebiten.Image, f Frame, cam *OrbitCamera, stats *frameStats) {
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}
	r.build(f, cam)
	if globalDebug {
		stats.sortTime = time.Since(t0)
		t0 = time.Now()
	}

	screen.Fill(backgroundColor.RGBA())
	src := ensureWhitePixel()
	var op ebiten.DrawTrianglesOptions

	for _, ln := range r.lines {
		a, _, okA := cam.WorldToScreen(ln.From)
		b, _, okB := cam.WorldToScreen(ln.To)
		if !okA || !okB || ln.Alpha <= 0 {
			continue
		}
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
			1, gridColor.WithAlpha(ln.Alpha*0.5).RGBA(), true)
	}

	r.verts, r.inds = r.verts[:0], r.inds[:0]
	for i := range r.polys {
		r.verts, r.inds = appendPolygon(r.verts, r.inds, r.polys[i].pts, r.polys[i].color)
	}
	if len(r.inds) > 0 {
		screen.DrawTriangles32(r.verts, r.inds, src, &op)
	}

	if globalDebug {
		stats.submitTime = time.Since(t0)
		stats.planeCount = len(f.Planes)
		stats.polyCount = len(r.polys)
		stats.spotCount = len(f.Spots)
	}
}
