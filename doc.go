// Package arcade is an Arcade-style 2D physics core for [Ebitengine] games.
//
// Arcade integrates velocities, finds overlapping pairs of axis-aligned
// boxes and circles, separates them, and reports what happened through
// callbacks and events. It does rotation-free, joint-free physics for
// platformers, shooters, and top-down games.
//
// # Quick start
//
//	world := arcade.NewWorld(0, 0, 800, 600)
//	world.Gravity = arcade.Vec2{Y: 900}
//
//	player := arcade.NewBody(100, 100, 32, 48)
//	player.CollideWorldBounds = true
//	floor := arcade.NewBody(0, 560, 800, 40)
//	floor.Immovable = true
//	world.Add(player, floor)
//
//	world.AddCollider(player, floor, nil, nil)
//
//	// each frame:
//	world.Update(1.0 / 60)
//
// # Bodies
//
// A [Body] is owned by its entity; the [World] only keeps a registration.
// Position is the top-left corner of the body's bounding box for both
// rectangles and circles. Immovable bodies act as infinite mass: they are
// never moved by collision response, but still translate by their own
// velocity and can be repositioned by the caller (see [TweenPlatform]).
//
// # Collide and overlap
//
// [World.Collide] and [World.Overlap] accept a *Body, a *[Group], or a
// [Bodies] slice on either side and expand them into pairs: one pair for
// single/single, one per member for single/collection, the full cross
// product for two collections, and each unique unordered pair once when the
// same collection is passed twice. Collide separates and calls its callback
// after resolution; Overlap only reports.
//
// Pair order is canonical (ascending by position in each collection), so a
// given configuration always resolves the same way.
//
// # Bounce
//
// The restitution used along a contact normal is the product of both
// bodies' bounce projected on that normal, clamped to [0, 1]. A ball with
// Bounce 1 only bounces fully off a floor that also has Bounce 1. World
// bounds use the body's own Bounce (or WorldBounce).
//
// # Events and errors
//
// Bodies opt in to world events with NotifyCollide, NotifyOverlap,
// NotifyTouch, and NotifyWorldBounds. Events go to the World handler fields
// and to an optional [EventSink]; package arcade/ecs forwards them into a
// Donburi world. Malformed or destroyed bodies never abort a step: they are
// skipped and reported as a [Diagnostic].
//
// [Ebitengine]: https://ebitengine.org
package arcade
