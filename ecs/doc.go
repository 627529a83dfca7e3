// Package ecs provides ECS adapters for roomdesigner's event stream.
//
// [NewDonburiSink] bridges designer events (item added, moved, placed,
// recolored, deleted, room changed) into a [Donburi] world as typed events.
// Subscribe to [DesignerEventType] in your ECS systems to receive them, or
// call [TrackItems] to keep one [Item] entity per placed item.
//
// Usage:
//
//	world := donburi.NewWorld()
//	items := ecs.TrackItems(world)
//	d, err := roomdesigner.New(ctx, roomdesigner.Config{Events: ecs.NewDonburiSink(world)})
//	...
//	events.ProcessAllEvents(world) // once per frame
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
