package roomdesigner

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// EventType identifies the kind of designer event.
type EventType uint8

const (
	EventItemAdded EventType = iota
	EventItemSelected
	EventItemDeselected
	EventItemDeleted
	EventItemMoved
	EventItemRotated
	EventItemPlaced
	EventItemRecolored
	EventRoomChanged
	EventAddedToCart
)

var eventTypeNames = [...]string{
	"item-added", "item-selected", "item-deselected", "item-deleted",
	"item-moved", "item-rotated", "item-placed", "item-recolored",
	"room-changed", "added-to-cart",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "event?"
}

// storeOpEvents maps store commands to the event they publish.
var storeOpEvents = [...]EventType{
	OpAdd:      EventItemAdded,
	OpSelect:   EventItemSelected,
	OpDeselect: EventItemDeselected,
	OpDelete:   EventItemDeleted,
	OpMove:     EventItemMoved,
	OpRotate:   EventItemRotated,
	OpPlace:    EventItemPlaced,
	OpRecolor:  EventItemRecolored,
}

// DesignerEvent is a flat record of something that happened in a designer
// session. Item fields are zero for room events.
type DesignerEvent struct {
	Type      EventType
	Version   uint64 // store version after the change
	Index     int    // item index, or NoSelection
	ItemID    uuid.UUID
	ProductID int
	Position  mgl64.Vec3
	Rotation  mgl64.Vec3
	Color     Color
	Mode      Mode
	Room      RoomConfig
}

// EventSink receives designer events. The ecs package provides a donburi
// backed implementation.
type EventSink interface {
	EmitEvent(DesignerEvent)
}

// eventFromChange converts a store change. The item is looked up in the
// snapshot that still contains it.
func eventFromChange(ch Change, room RoomConfig) DesignerEvent {
	ev := DesignerEvent{
		Type:    storeOpEvents[ch.Op],
		Version: ch.After.Version(),
		Index:   ch.Index,
		Mode:    ModeOrbiting,
		Room:    room,
	}
	if ch.After.HasSelection() {
		ev.Mode = ModeManipulating
	}
	src := ch.After
	if ch.Op == OpDelete || ch.Op == OpDeselect {
		src = ch.Before
	}
	if ch.Index >= 0 && ch.Index < src.Len() {
		it := src.Item(ch.Index)
		ev.ItemID = it.ID
		ev.ProductID = it.SourceID()
		ev.Position = it.Position
		ev.Rotation = it.Rotation
		ev.Color = it.Color
	}
	return ev
}
