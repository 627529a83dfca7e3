package roomdesigner

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MoveStep is the distance one movement key moves the selected item.
	MoveStep = 0.1
	// RotateStep is the yaw one rotation key adds, in radians.
	RotateStep = math.Pi / 4
)

// keyAction is the effect of one key on the selected item.
type keyAction struct {
	move mgl64.Vec3
	yaw  float64
}

// keyActions maps lowercased key names to item edits. Keys not listed here
// do nothing.
var keyActions = map[string]keyAction{
	"w":          {move: mgl64.Vec3{0, 0, -MoveStep}},
	"arrowup":    {move: mgl64.Vec3{0, 0, -MoveStep}},
	"s":          {move: mgl64.Vec3{0, 0, MoveStep}},
	"arrowdown":  {move: mgl64.Vec3{0, 0, MoveStep}},
	"a":          {move: mgl64.Vec3{-MoveStep, 0, 0}},
	"arrowleft":  {move: mgl64.Vec3{-MoveStep, 0, 0}},
	"d":          {move: mgl64.Vec3{MoveStep, 0, 0}},
	"arrowright": {move: mgl64.Vec3{MoveStep, 0, 0}},
	"q":          {move: mgl64.Vec3{0, MoveStep, 0}},
	"e":          {move: mgl64.Vec3{0, -MoveStep, 0}},
	"r":          {yaw: RotateStep},
	"f":          {yaw: -RotateStep},
}

// OrbitToggle is told whenever camera orbit control must be switched on or
// off. The orbit camera implements it.
type OrbitToggle interface {
	SetOrbitEnabled(enabled bool)
}

// Controller is the Orbiting / Manipulating state machine. It turns user
// intents into store commands and keeps the camera's orbit flag in step with
// the selection.
type Controller struct {
	store *ItemStore
	orbit OrbitToggle
	mode  Mode
}

// NewController creates a controller over store. orbit may be nil.
func NewController(store *ItemStore, orbit OrbitToggle) *Controller {
	c := &Controller{store: store, orbit: orbit}
	c.sync()
	return c
}

// Mode returns the current state.
func (c *Controller) Mode() Mode {
	return c.mode
}

// sync derives the mode from the store and pushes the orbit flag. The store
// is the source of truth; any command may have changed the selection.
func (c *Controller) sync() {
	snap := c.store.Snapshot()
	mode := ModeOrbiting
	if snap.HasSelection() {
		mode = ModeManipulating
	}
	if mode != c.mode && globalDebug {
		debugf("controller %s -> %s", c.mode, mode)
	}
	c.mode = mode
	if c.orbit != nil {
		c.orbit.SetOrbitEnabled(snap.OrbitEnabled())
	}
}

// ClickItem selects the item at index. Clicking another item while
// manipulating switches the selection.
func (c *Controller) ClickItem(index int) {
	c.store.SelectItem(index)
	c.sync()
}

// ClickBackground deselects. It is a no-op while orbiting.
func (c *Controller) ClickBackground() {
	c.store.Deselect()
	c.sync()
}

// ClickSpot drops the selected item onto pos and returns to orbiting. It is
// a no-op while orbiting.
func (c *Controller) ClickSpot(pos mgl64.Vec3) {
	if c.mode != ModeManipulating {
		return
	}
	c.store.SetSelectedPosition(pos)
	c.store.Deselect()
	c.sync()
}

// Delete removes the selected item and returns to orbiting.
func (c *Controller) Delete() {
	c.store.DeleteSelected()
	c.sync()
}

// KeyDown applies the edit bound to key. Matching is case-insensitive;
// unknown keys and keys pressed while orbiting are ignored. Returns whether
// the key changed the selected item.
func (c *Controller) KeyDown(key string) bool {
	if c.mode != ModeManipulating {
		return false
	}
	a, ok := keyActions[strings.ToLower(key)]
	if !ok {
		return false
	}
	if a.yaw != 0 {
		c.store.RotateSelectedBy(a.yaw)
	} else {
		c.store.MoveSelectedBy(a.move)
	}
	return true
}

// Refresh re-derives the mode after the store was changed by something
// other than the controller, such as a panel command.
func (c *Controller) Refresh() {
	c.sync()
}
