package roomdesigner

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/phanxgames/roomdesigner/catalog"
)

// NoSelection is the selected index when no item is selected.
const NoSelection = -1

// PlacedItem is one furniture instance in the room. It holds a copy of the
// catalog product it was created from plus its own placement state.
type PlacedItem struct {
	ID       uuid.UUID
	Product  catalog.Product
	Position mgl64.Vec3
	Rotation mgl64.Vec3 // Euler angles in radians, XYZ order
	Scale    float64    // uniform, always > 0
	Color    Color
}

// NewPlacedItem creates an item for p at the default pose: origin, no
// rotation, scale 1, white.
func NewPlacedItem(p catalog.Product) PlacedItem {
	return PlacedItem{
		ID:      uuid.New(),
		Product: p.Clone(),
		Scale:   1,
		Color:   ColorWhite,
	}
}

// SourceID returns the id of the catalog product the item was created from.
func (it PlacedItem) SourceID() int {
	return it.Product.ID
}

func (it PlacedItem) clone() PlacedItem {
	it.Product = it.Product.Clone()
	return it
}

// StoreOp names the command that produced a snapshot.
type StoreOp uint8

const (
	OpAdd StoreOp = iota
	OpSelect
	OpDeselect
	OpDelete
	OpMove
	OpRotate
	OpPlace
	OpRecolor
)

var storeOpNames = [...]string{"add", "select", "deselect", "delete", "move", "rotate", "place", "recolor"}

func (op StoreOp) String() string {
	if int(op) < len(storeOpNames) {
		return storeOpNames[op]
	}
	return "op?"
}

// Snapshot is an immutable view of the store. Snapshots are never modified
// after they are published.
type Snapshot struct {
	items    []PlacedItem
	selected int
	version  uint64
}

// Len returns the number of placed items.
func (s *Snapshot) Len() int {
	return len(s.items)
}

// Item returns a copy of the item at index i. Panics if i is out of range.
func (s *Snapshot) Item(i int) PlacedItem {
	return s.items[i].clone()
}

// Items returns copies of all items in render order.
func (s *Snapshot) Items() []PlacedItem {
	out := make([]PlacedItem, len(s.items))
	for i := range s.items {
		out[i] = s.items[i].clone()
	}
	return out
}

// Selected returns the selected index and whether a selection exists.
func (s *Snapshot) Selected() (int, bool) {
	return s.selected, s.selected != NoSelection
}

// SelectedItem returns a copy of the selected item.
func (s *Snapshot) SelectedItem() (PlacedItem, bool) {
	if s.selected == NoSelection {
		return PlacedItem{}, false
	}
	return s.items[s.selected].clone(), true
}

// HasSelection reports whether an item is selected.
func (s *Snapshot) HasSelection() bool {
	return s.selected != NoSelection
}

// OrbitEnabled reports whether camera orbit control should be enabled,
// which is exactly when nothing is selected.
func (s *Snapshot) OrbitEnabled() bool {
	return s.selected == NoSelection
}

// Version increases by one with every published snapshot.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Change describes one published snapshot transition.
type Change struct {
	Op     StoreOp
	Index  int // item index the command addressed
	Before *Snapshot
	After  *Snapshot
}

type storeSubscriber struct {
	id uint32
	fn func(Change)
}

// SubscriptionHandle removes a store subscription.
type SubscriptionHandle struct {
	id    uint32
	store *ItemStore
}

// Remove unsubscribes. Safe to call more than once.
func (h SubscriptionHandle) Remove() {
	if h.store == nil {
		return
	}
	subs := h.store.subs
	for i := range subs {
		if subs[i].id == h.id {
			copy(subs[i:], subs[i+1:])
			subs[len(subs)-1] = storeSubscriber{}
			h.store.subs = subs[:len(subs)-1]
			return
		}
	}
}

// ItemStore is the sole owner of placed items and the selection. Every
// command publishes a new Snapshot; commands that change nothing publish
// nothing.
type ItemStore struct {
	snap   *Snapshot
	subs   []storeSubscriber
	nextID uint32
}

// NewItemStore creates a store seeded with copies of initial. Nothing is
// selected.
func NewItemStore(initial ...PlacedItem) *ItemStore {
	items := make([]PlacedItem, len(initial))
	for i := range initial {
		items[i] = initial[i].clone()
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		if items[i].Scale <= 0 {
			items[i].Scale = 1
		}
	}
	return &ItemStore{snap: &Snapshot{items: items, selected: NoSelection}}
}

// Snapshot returns the current snapshot.
func (st *ItemStore) Snapshot() *Snapshot {
	return st.snap
}

// Subscribe registers fn to run after every published change.
func (st *ItemStore) Subscribe(fn func(Change)) SubscriptionHandle {
	st.nextID++
	st.subs = append(st.subs, storeSubscriber{id: st.nextID, fn: fn})
	return SubscriptionHandle{id: st.nextID, store: st}
}

func (st *ItemStore) publish(op StoreOp, index int, items []PlacedItem, selected int) {
	before := st.snap
	st.snap = &Snapshot{items: items, selected: selected, version: before.version + 1}
	ch := Change{Op: op, Index: index, Before: before, After: st.snap}
	for _, s := range st.subs {
		s.fn(ch)
	}
}

// AddItem appends an item for p at the default pose. The selection is
// unchanged. Returns the new item's id.
func (st *ItemStore) AddItem(p catalog.Product) uuid.UUID {
	return st.Append(NewPlacedItem(p))
}

// Append appends a copy of it, keeping its pose. A nil ID is replaced and a
// non-positive scale becomes 1.
func (st *ItemStore) Append(it PlacedItem) uuid.UUID {
	it = it.clone()
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	if it.Scale <= 0 {
		it.Scale = 1
	}
	cur := st.snap.items
	items := make([]PlacedItem, len(cur), len(cur)+1)
	copy(items, cur)
	items = append(items, it)
	st.publish(OpAdd, len(items)-1, items, st.snap.selected)
	return it.ID
}

// SelectItem selects the item at index. Out-of-range indices are ignored.
func (st *ItemStore) SelectItem(index int) {
	if index < 0 || index >= len(st.snap.items) {
		return
	}
	if st.snap.selected == index {
		return
	}
	st.publish(OpSelect, index, st.snap.items, index)
}

// Deselect clears the selection. Idempotent.
func (st *ItemStore) Deselect() {
	if st.snap.selected == NoSelection {
		return
	}
	st.publish(OpDeselect, st.snap.selected, st.snap.items, NoSelection)
}

// DeleteSelected removes the selected item and clears the selection.
// Later items shift down by one.
func (st *ItemStore) DeleteSelected() {
	k := st.snap.selected
	if k == NoSelection {
		return
	}
	cur := st.snap.items
	items := make([]PlacedItem, 0, len(cur)-1)
	items = append(items, cur[:k]...)
	items = append(items, cur[k+1:]...)
	st.publish(OpDelete, k, items, NoSelection)
}

// MoveSelectedBy adds delta to the selected item's position. There is no
// clamping against the room walls.
func (st *ItemStore) MoveSelectedBy(delta mgl64.Vec3) {
	st.updateSelected(OpMove, func(it *PlacedItem) {
		it.Position = it.Position.Add(delta)
	})
}

// RotateSelectedBy adds yaw radians to the selected item's rotation about
// the vertical axis. The angle accumulates without wrapping.
func (st *ItemStore) RotateSelectedBy(yaw float64) {
	st.updateSelected(OpRotate, func(it *PlacedItem) {
		it.Rotation[1] += yaw
	})
}

// SetSelectedPosition sets the selected item's position.
func (st *ItemStore) SetSelectedPosition(pos mgl64.Vec3) {
	st.updateSelected(OpPlace, func(it *PlacedItem) {
		it.Position = pos
	})
}

// SetSelectedColor sets the selected item's color. Sibling items are never
// touched.
func (st *ItemStore) SetSelectedColor(c Color) {
	st.updateSelected(OpRecolor, func(it *PlacedItem) {
		it.Color = c
	})
}

// updateSelected copies the item slice, applies fn to the selected entry of
// the copy and publishes it. No-op without a selection.
func (st *ItemStore) updateSelected(op StoreOp, fn func(it *PlacedItem)) {
	k := st.snap.selected
	if k == NoSelection {
		return
	}
	items := make([]PlacedItem, len(st.snap.items))
	copy(items, st.snap.items)
	fn(&items[k])
	st.publish(op, k, items, k)
}

// Clear removes every item and the selection.
func (st *ItemStore) Clear() {
	if len(st.snap.items) == 0 && st.snap.selected == NoSelection {
		return
	}
	st.publish(OpDelete, NoSelection, nil, NoSelection)
}
