// Package ecs provides ECS adapters for arcade's physics events.
//
// The primary adapter is [NewDonburiSink], which bridges arcade events
// (collide, overlap, touch, worldbounds, diagnostic) into a [Donburi] world
// as typed events. Subscribe to [PhysicsEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	physics.SetEventSink(sink)
//
// Entities carrying a [BodyComponent] can be registered with a physics world
// in one call with [RegisterBodies].
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
