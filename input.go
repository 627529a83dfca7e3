package roomdesigner

import (
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
	wheelZoomBase       = 0.95
)

// --- Hit shapes ---

// HitShape is a screen-space hit region.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Hit targets ---

type targetKind uint8

const (
	targetBackground targetKind = iota // floor, walls, sky
	targetHUD
	targetItem
	targetSpot
)

// hitTarget is what a pointer is over. Two targets are the same target iff
// they compare equal.
type hitTarget struct {
	kind  targetKind
	index int
}

var backgroundTarget = hitTarget{kind: targetBackground, index: -1}

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	hit      hitTarget
	hover    hitTarget
	dragging bool
}

// --- Pinch state ---

type pinchState struct {
	active   bool
	prevDist float64
}

// SetDragDeadZone sets the minimum movement in pixels before a press turns
// into a camera drag.
func (d *Designer) SetDragDeadZone(pixels float64) {
	d.dragDeadZone = pixels
}

// --- Hit testing ---

// hitTest finds what lies under screen point (sx, sy): HUD controls first,
// then the nearest item or (while placing) spot along the view ray.
func (d *Designer) hitTest(sx, sy float64) hitTarget {
	if i, ok := d.hud.hit(sx, sy); ok {
		return hitTarget{kind: targetHUD, index: i}
	}

	origin, dir := d.camera.ScreenRay(sx, sy)
	best := math.Inf(1)
	target := backgroundTarget

	snap := d.store.Snapshot()
	for i := range snap.items {
		it := &snap.items[i]
		m := d.models[it.ID]
		if m == nil {
			continue
		}
		pose := poseMatrix(it.Position, it.Rotation, it.Scale)
		if t, ok := m.IntersectRay(pose, origin, dir); ok && t < best {
			best = t
			target = hitTarget{kind: targetItem, index: i}
		}
	}

	if snap.HasSelection() && math.Abs(dir[1]) > 1e-9 {
		t := (SpotHeight - origin[1]) / dir[1]
		if t >= 0 && t < best {
			p := origin.Add(dir.Mul(t))
			for i := 0; i < d.grid.Len(); i++ {
				q := d.grid.Spot(i).Position
				dx, dz := p[0]-q[0], p[2]-q[2]
				if dx*dx+dz*dz <= SpotRadius*SpotRadius {
					target = hitTarget{kind: targetSpot, index: i}
					break
				}
			}
		}
	}
	return target
}

// --- Input processing ---

// processInput handles mouse, touch and wheel input for one frame.
func (d *Designer) processInput() {
	d.processMousePointer()
	d.processTouchPointers()
	d.detectPinch()
	if _, wy := ebiten.Wheel(); wy != 0 {
		d.camera.Zoom(math.Pow(wheelZoomBase, wy))
	}
}

// processMousePointer handles the mouse (pointer 0). Only the left button
// interacts.
func (d *Designer) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	d.processPointer(0, float64(mx), float64(my), pressed)
}

// processTouchPointers handles touches (pointers 1-9).
func (d *Designer) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(d.touchBuf[:0])
	d.touchBuf = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := d.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		d.processPointer(slot, float64(tx), float64(ty), true)
	}

	for i := 1; i < maxPointers; i++ {
		if d.touchUsed[i] && !activeSlots[i] {
			ps := &d.pointers[i]
			if ps.down {
				d.processPointer(i, ps.lastX, ps.lastY, false)
			}
			d.touchUsed[i] = false
			d.touchMap[i] = 0
		}
	}
}

// touchSlot maps a touch to a pointer slot (1-9). Returns -1 if all slots
// are taken.
func (d *Designer) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if d.touchUsed[i] && d.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !d.touchUsed[i] {
			d.touchUsed[i] = true
			d.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for one pointer. A press
// and release on the same target is a click; movement past the dead zone
// turns the press into a camera drag, which never clicks.
func (d *Designer) processPointer(pointerID int, sx, sy float64, pressed bool) {
	ps := &d.pointers[pointerID]
	target := d.hitTest(sx, sy)

	if target != ps.hover {
		d.setHover(ps.hover, false)
		d.setHover(target, true)
		ps.hover = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = sx, sy
		ps.lastX, ps.lastY = sx, sy
		ps.hit = target
		ps.dragging = false

	case !pressed && ps.down:
		if !ps.dragging && ps.hit == target {
			d.click(target)
		}
		ps.down = false
		ps.dragging = false

	case pressed && ps.down:
		if sx != ps.lastX || sy != ps.lastY {
			if !ps.dragging && ps.hit.kind != targetHUD {
				dx, dy := sx-ps.startX, sy-ps.startY
				if math.Sqrt(dx*dx+dy*dy) > d.dragDeadZone {
					ps.dragging = true
				}
			}
			if ps.dragging && !d.pinch.active {
				d.orbitDrag(sx-ps.lastX, sy-ps.lastY)
			}
		}
		ps.lastX, ps.lastY = sx, sy

	default:
		ps.lastX, ps.lastY = sx, sy
	}
}

// orbitDrag rotates the camera by a pointer delta: a drag across the full
// viewport height is one full turn. The camera ignores it while an item is
// selected.
func (d *Designer) orbitDrag(dx, dy float64) {
	h := d.camera.Viewport.Height
	if h <= 0 {
		return
	}
	d.camera.Orbit(-2*math.Pi*dx/h, -2*math.Pi*dy/h)
}

// click dispatches a completed click to its target.
func (d *Designer) click(t hitTarget) {
	switch t.kind {
	case targetHUD:
		d.hud.press(d, t.index)
	case targetItem:
		snap := d.store.Snapshot()
		if t.index < snap.Len() {
			if m := d.models[snap.items[t.index].ID]; m != nil && m.Click() {
				return
			}
		}
		d.ctrl.ClickBackground()
	case targetSpot:
		if t.index < d.grid.Len() {
			d.ctrl.ClickSpot(d.grid.Spot(t.index).Position)
		}
	default:
		d.ctrl.ClickBackground()
	}
}

func (d *Designer) setHover(t hitTarget, on bool) {
	switch t.kind {
	case targetSpot:
		d.grid.SetHovered(t.index, on)
		if on {
			d.hoverSpot = t.index
		} else {
			d.hoverSpot = -1
		}
	case targetHUD:
		if on {
			d.hud.hovered = t.index
		} else {
			d.hud.hovered = -1
		}
	}
}

// detectPinch turns a two-finger pinch into camera zoom.
func (d *Designer) detectPinch() {
	var p [2]*pointerState
	n := 0
	for i := 1; i < maxPointers && n < 2; i++ {
		if d.pointers[i].down {
			p[n] = &d.pointers[i]
			n++
		}
	}
	if n < 2 {
		d.pinch.active = false
		return
	}
	dx := p[1].lastX - p[0].lastX
	dy := p[1].lastY - p[0].lastY
	dist := math.Sqrt(dx*dx + dy*dy)
	if d.pinch.active && dist > 0 && d.pinch.prevDist > 0 {
		d.camera.Zoom(d.pinch.prevDist / dist)
	}
	d.pinch.active = true
	d.pinch.prevDist = dist
	p[0].dragging, p[1].dragging = true, true // a pinch never clicks
}

// --- Keyboard ---

// processKeys feeds injected keys and, when live, keys pressed this frame
// to the controller.
func (d *Designer) processKeys(live bool) {
	for _, k := range d.keyQueue {
		d.ctrl.KeyDown(k)
	}
	d.keyQueue = d.keyQueue[:0]
	if !live {
		return
	}
	d.keyBuf = inpututil.AppendJustPressedKeys(d.keyBuf[:0])
	for _, k := range d.keyBuf {
		d.ctrl.KeyDown(keyName(k))
	}
}

// keyName returns the lowercased name the controller's key map uses, such
// as "w" or "arrowup".
func keyName(k ebiten.Key) string {
	return strings.ToLower(k.String())
}
