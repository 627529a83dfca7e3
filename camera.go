package roomdesigner

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Orbit camera defaults.
const (
	DefaultFOV = 60.0 // degrees, vertical

	cameraNear        = 0.1
	cameraFar         = 1000.0
	cameraMinDistance = 2.0
	cameraMaxDistance = 25.0
	cameraMinPolar    = 0.01
	cameraMaxPolar    = math.Pi / 2 // never look from below the floor
)

// defaultEye is where the camera starts, looking at the room center.
var defaultEye = mgl64.Vec3{5, 5, 5}

// orbitAnim holds the tweens of an animated view change.
type orbitAnim struct {
	azimuth, polar, distance *gween.Tween
}

// OrbitCamera circles a target point. Its position is given in spherical
// coordinates around Target: Polar is measured from +Y, Azimuth around +Y
// starting at +Z.
type OrbitCamera struct {
	Target   mgl64.Vec3
	Distance float64
	Azimuth  float64
	Polar    float64
	FOV      float64 // degrees
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect

	enabled bool
	anim    *orbitAnim

	view, proj, viewProj, invViewProj mgl64.Mat4
	dirty                             bool
}

// NewOrbitCamera creates a camera at (5, 5, 5) looking at the origin.
func NewOrbitCamera(viewport Rect) *OrbitCamera {
	c := &OrbitCamera{FOV: DefaultFOV, Viewport: viewport, enabled: true, dirty: true}
	c.setEye(defaultEye)
	return c
}

// setEye derives the spherical coordinates of eye around Target.
func (c *OrbitCamera) setEye(eye mgl64.Vec3) {
	off := eye.Sub(c.Target)
	c.Distance = off.Len()
	c.Polar = math.Acos(off[1] / c.Distance)
	c.Azimuth = math.Atan2(off[0], off[2])
	c.dirty = true
}

// Eye returns the camera position.
func (c *OrbitCamera) Eye() mgl64.Vec3 {
	s := math.Sin(c.Polar)
	return c.Target.Add(mgl64.Vec3{
		c.Distance * s * math.Sin(c.Azimuth),
		c.Distance * math.Cos(c.Polar),
		c.Distance * s * math.Cos(c.Azimuth),
	})
}

// SetOrbitEnabled implements OrbitToggle.
func (c *OrbitCamera) SetOrbitEnabled(enabled bool) {
	c.enabled = enabled
}

// OrbitEnabled reports whether user orbit and zoom are accepted.
func (c *OrbitCamera) OrbitEnabled() bool {
	return c.enabled
}

// Orbit rotates the camera by the given angles. Ignored while disabled.
// The polar angle is clamped so the camera stays above the floor.
func (c *OrbitCamera) Orbit(dAzimuth, dPolar float64) {
	if !c.enabled {
		return
	}
	c.anim = nil
	c.Azimuth += dAzimuth
	c.Polar = clampRange(c.Polar+dPolar, cameraMinPolar, cameraMaxPolar)
	c.dirty = true
}

// Zoom multiplies the distance to the target by factor. Ignored while
// disabled.
func (c *OrbitCamera) Zoom(factor float64) {
	if !c.enabled || factor <= 0 {
		return
	}
	c.anim = nil
	c.Distance = clampRange(c.Distance*factor, cameraMinDistance, cameraMaxDistance)
	c.dirty = true
}

// ResetView animates back to the starting view over duration seconds.
func (c *OrbitCamera) ResetView(duration float32, easeFn ease.TweenFunc) {
	home := &OrbitCamera{}
	home.setEye(defaultEye)
	c.AnimateTo(home.Azimuth, home.Polar, home.Distance, duration, easeFn)
}

// AnimateTo tweens the spherical coordinates to the given values. The
// azimuth takes the shorter way around.
func (c *OrbitCamera) AnimateTo(azimuth, polar, distance float64, duration float32, easeFn ease.TweenFunc) {
	delta := math.Remainder(azimuth-c.Azimuth, 2*math.Pi)
	c.anim = &orbitAnim{
		azimuth:  gween.New(float32(c.Azimuth), float32(c.Azimuth+delta), duration, easeFn),
		polar:    gween.New(float32(c.Polar), float32(polar), duration, easeFn),
		distance: gween.New(float32(c.Distance), float32(distance), duration, easeFn),
	}
}

// Animating reports whether a view animation is running.
func (c *OrbitCamera) Animating() bool {
	return c.anim != nil
}

// update advances a running view animation.
func (c *OrbitCamera) update(dt float32) {
	if c.anim == nil {
		return
	}
	a, doneA := c.anim.azimuth.Update(dt)
	p, doneP := c.anim.polar.Update(dt)
	d, doneD := c.anim.distance.Update(dt)
	c.Azimuth = float64(a)
	c.Polar = clampRange(float64(p), cameraMinPolar, cameraMaxPolar)
	c.Distance = float64(d)
	c.dirty = true
	if doneA && doneP && doneD {
		c.anim = nil
	}
}

// MarkDirty forces a recomputation of the matrices, for example after the
// viewport or a public field was changed directly.
func (c *OrbitCamera) MarkDirty() {
	c.dirty = true
}

func (c *OrbitCamera) computeMatrices() {
	if !c.dirty {
		return
	}
	c.dirty = false
	aspect := 1.0
	if c.Viewport.Height > 0 {
		aspect = c.Viewport.Width / c.Viewport.Height
	}
	c.view = mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 1, 0})
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, cameraNear, cameraFar)
	c.viewProj = c.proj.Mul4(c.view)
	c.invViewProj = c.viewProj.Inv()
}

// ViewMatrix returns the world-to-camera matrix.
func (c *OrbitCamera) ViewMatrix() mgl64.Mat4 {
	c.computeMatrices()
	return c.view
}

// WorldToScreen projects p into screen pixels. depth is the distance along
// the view axis; ok is false for points behind the near plane.
func (c *OrbitCamera) WorldToScreen(p mgl64.Vec3) (screen Vec2, depth float64, ok bool) {
	c.computeMatrices()
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	w := clip[3]
	if w < cameraNear {
		return Vec2{}, w, false
	}
	ndcX, ndcY := clip[0]/w, clip[1]/w
	return Vec2{
		X: c.Viewport.X + (ndcX+1)/2*c.Viewport.Width,
		Y: c.Viewport.Y + (1-ndcY)/2*c.Viewport.Height,
	}, w, true
}

// ScreenRay returns the world-space ray through screen point (sx, sy). dir
// is normalized.
func (c *OrbitCamera) ScreenRay(sx, sy float64) (origin, dir mgl64.Vec3) {
	c.computeMatrices()
	ndcX := (sx-c.Viewport.X)/c.Viewport.Width*2 - 1
	ndcY := 1 - (sy-c.Viewport.Y)/c.Viewport.Height*2
	near := c.invViewProj.Mul4x1(mgl64.Vec4{ndcX, ndcY, -1, 1})
	far := c.invViewProj.Mul4x1(mgl64.Vec4{ndcX, ndcY, 1, 1})
	n := near.Vec3().Mul(1 / near[3])
	f := far.Vec3().Mul(1 / far[3])
	return n, f.Sub(n).Normalize()
}

// PickPlaneY intersects the ray through (sx, sy) with the horizontal plane
// at height y.
func (c *OrbitCamera) PickPlaneY(sx, sy, y float64) (mgl64.Vec3, bool) {
	origin, dir := c.ScreenRay(sx, sy)
	if math.Abs(dir[1]) < 1e-9 {
		return mgl64.Vec3{}, false
	}
	t := (y - origin[1]) / dir[1]
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}
