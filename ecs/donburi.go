package ecs

import (
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/roomdesigner"
)

// DesignerEventType is the Donburi event type for designer events.
// Subscribe to this in your ECS systems to receive item and room changes.
var DesignerEventType = events.NewEventType[roomdesigner.DesignerEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Designer
// events are published to DesignerEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) roomdesigner.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event roomdesigner.DesignerEvent) {
	DesignerEventType.Publish(s.world, event)
}

// ItemData mirrors one placed item.
type ItemData struct {
	ID        uuid.UUID
	ProductID int
	Position  [3]float64
	Rotation  [3]float64
	Color     roomdesigner.Color
}

// Item is the component holding ItemData.
var Item = donburi.NewComponentType[ItemData]()

// ItemTracker keeps one entity per placed item in a world, driven by
// DesignerEventType. Entities are created on add, updated on every pose or
// color change and removed on delete.
type ItemTracker struct {
	world    donburi.World
	entities map[uuid.UUID]donburi.Entity
}

// TrackItems subscribes a new tracker to world.
func TrackItems(world donburi.World) *ItemTracker {
	t := &ItemTracker{world: world, entities: make(map[uuid.UUID]donburi.Entity)}
	DesignerEventType.Subscribe(world, t.handle)
	return t
}

// Len returns the number of tracked items.
func (t *ItemTracker) Len() int {
	return len(t.entities)
}

// Get returns the mirrored data for id.
func (t *ItemTracker) Get(id uuid.UUID) (ItemData, bool) {
	e, ok := t.entities[id]
	if !ok || !t.world.Valid(e) {
		return ItemData{}, false
	}
	return *Item.Get(t.world.Entry(e)), true
}

func (t *ItemTracker) handle(w donburi.World, ev roomdesigner.DesignerEvent) {
	switch ev.Type {
	case roomdesigner.EventItemAdded:
		e := w.Create(Item)
		t.entities[ev.ItemID] = e
		t.set(w, e, ev)
	case roomdesigner.EventItemDeleted:
		if ev.ItemID == uuid.Nil {
			// The store was cleared.
			for id, e := range t.entities {
				w.Remove(e)
				delete(t.entities, id)
			}
			return
		}
		if e, ok := t.entities[ev.ItemID]; ok {
			w.Remove(e)
			delete(t.entities, ev.ItemID)
		}
	case roomdesigner.EventItemMoved, roomdesigner.EventItemRotated,
		roomdesigner.EventItemPlaced, roomdesigner.EventItemRecolored:
		if e, ok := t.entities[ev.ItemID]; ok {
			t.set(w, e, ev)
		}
	}
}

func (t *ItemTracker) set(w donburi.World, e donburi.Entity, ev roomdesigner.DesignerEvent) {
	Item.SetValue(w.Entry(e), ItemData{
		ID:        ev.ItemID,
		ProductID: ev.ProductID,
		Position:  ev.Position,
		Rotation:  ev.Rotation,
		Color:     ev.Color,
	})
}
