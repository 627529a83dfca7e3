// Package roomdesigner is an interactive room-layout designer for furniture,
// built on [Ebitengine].
//
// A [Designer] owns a parametric room ([RoomConfig]), the ordered list of
// placed furniture ([ItemStore]), a lattice of clickable drop points
// ([PlacementGrid]) and the [Controller] state machine that arbitrates
// between orbiting the camera and manipulating the selected item.
//
// # Quick start
//
//	d, err := roomdesigner.New(ctx, roomdesigner.Config{
//		Catalog: catalog.Default(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	roomdesigner.Run(d, roomdesigner.RunConfig{
//		Title: "Room Designer", Width: 1280, Height: 800,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Designer.Update] and [Designer.Draw] directly.
//
// # Modes
//
// The designer starts in [ModeOrbiting]: pointer drags orbit the camera and
// keyboard input is ignored. Clicking a placed item enters
// [ModeManipulating]: the camera is locked, the placement grid appears and
// the keyboard moves the selected item:
//
//	W / ArrowUp     move away from the camera (-Z)
//	S / ArrowDown   move toward the camera (+Z)
//	A / ArrowLeft   move left (-X)
//	D / ArrowRight  move right (+X)
//	Q / E           raise / lower
//	R / F           rotate +45° / -45° about the vertical axis
//
// Clicking the background, clicking a grid spot or deleting the item returns
// to orbiting. Every command is applied immediately; there is no undo.
//
// # Rendering
//
// Each frame the designer builds a declarative [Frame] from the current
// store snapshot and renders it. The render pass only reads state.
//
// [Ebitengine]: https://ebitengine.org
package roomdesigner
