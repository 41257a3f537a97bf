// Package ecs provides ECS adapters for arcade.
package ecs

import (
	"github.com/phanxgames/arcade"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// PhysicsEventType is the Donburi event type for arcade physics events.
// Subscribe to this in your ECS systems to receive collide, overlap, touch,
// worldbounds, and diagnostic events.
var PhysicsEventType = events.NewEventType[arcade.Event]()

// BodyData is the component payload linking an entity to its body. The
// entity owns the body; the physics world only holds a registration.
type BodyData struct {
	Body *arcade.Body
}

// PhysicsBody returns the linked body, so BodyData satisfies
// arcade.BodyOwner.
func (d *BodyData) PhysicsBody() *arcade.Body { return d.Body }

// BodyComponent is the Donburi component type for BodyData.
var BodyComponent = donburi.NewComponentType[BodyData]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Physics events are published to PhysicsEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) arcade.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event arcade.Event) {
	PhysicsEventType.Publish(s.world, event)
}

var bodyQuery = donburi.NewQuery(filter.Contains(BodyComponent))

// RegisterBodies adds the body of every entity with a BodyComponent to the
// physics world and returns how many bodies were registered. Entities whose
// body is nil or destroyed are skipped.
func RegisterBodies(world donburi.World, physics *arcade.World) int {
	n := 0
	bodyQuery.Each(world, func(entry *donburi.Entry) {
		d := BodyComponent.Get(entry)
		if d.Body == nil || d.Body.IsDestroyed() {
			return
		}
		if d.Body.World() != physics {
			physics.Add(d)
			n++
		}
	})
	return n
}

// RemoveEntity destroys the entity's body (deregistering it from its
// physics world) and removes the entity from the Donburi world.
func RemoveEntity(world donburi.World, entity donburi.Entity) {
	if !world.Valid(entity) {
		return
	}
	entry := world.Entry(entity)
	if entry.HasComponent(BodyComponent) {
		if d := BodyComponent.Get(entry); d.Body != nil {
			d.Body.Destroy()
		}
	}
	world.Remove(entity)
}
