package ecs

import (
	"errors"
	"testing"

	"github.com/phanxgames/arcade"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []arcade.Event
	PhysicsEventType.Subscribe(world, func(w donburi.World, e arcade.Event) {
		received = append(received, e)
	})

	a := arcade.NewBody(0, 0, 10, 10)
	b := arcade.NewBody(5, 0, 10, 10)
	sink.EmitEvent(arcade.Event{Type: arcade.EventCollide, A: a, B: b})
	sink.EmitEvent(arcade.Event{Type: arcade.EventDiagnostic, A: a, Err: arcade.ErrStaleBody})

	// Events are queued until ProcessEvents.
	PhysicsEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Type != arcade.EventCollide || received[0].A != a || received[0].B != b {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Type != arcade.EventDiagnostic || !errors.Is(received[1].Err, arcade.ErrStaleBody) {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink arcade.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_WorldCollisionEvents(t *testing.T) {
	ecsWorld := donburi.NewWorld()
	physics := arcade.NewWorld(0, 0, 200, 200)
	physics.SetEventSink(NewDonburiSink(ecsWorld))

	var count1, count2 int
	PhysicsEventType.Subscribe(ecsWorld, func(w donburi.World, e arcade.Event) {
		if e.Type == arcade.EventCollide {
			count1++
		}
	})
	PhysicsEventType.Subscribe(ecsWorld, func(w donburi.World, e arcade.Event) {
		if e.Type == arcade.EventTouch {
			count2++
		}
	})

	a := arcade.NewBody(0, 0, 20, 20)
	a.NotifyCollide = true
	a.NotifyTouch = true
	b := arcade.NewBody(10, 0, 20, 20)
	physics.Add(a, b)

	if !physics.Collide(a, b, nil, nil) {
		t.Fatal("expected collision")
	}
	events.ProcessAllEvents(ecsWorld)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected one collide and one touch event, got %d and %d", count1, count2)
	}
}

func TestRegisterBodies(t *testing.T) {
	ecsWorld := donburi.NewWorld()
	physics := arcade.NewWorld(0, 0, 200, 200)

	for i := 0; i < 3; i++ {
		e := ecsWorld.Create(BodyComponent)
		BodyComponent.SetValue(ecsWorld.Entry(e), BodyData{Body: arcade.NewBody(float64(i)*30, 0, 20, 20)})
	}
	// An entity without a body is skipped.
	e := ecsWorld.Create(BodyComponent)
	BodyComponent.SetValue(ecsWorld.Entry(e), BodyData{})

	if n := RegisterBodies(ecsWorld, physics); n != 3 {
		t.Errorf("RegisterBodies = %d, want 3", n)
	}
	if physics.Len() != 3 {
		t.Errorf("physics.Len() = %d, want 3", physics.Len())
	}
	// Registering again is a no-op.
	if n := RegisterBodies(ecsWorld, physics); n != 0 {
		t.Errorf("second RegisterBodies = %d, want 0", n)
	}
}

func TestRemoveEntityDestroysBody(t *testing.T) {
	ecsWorld := donburi.NewWorld()
	physics := arcade.NewWorld(0, 0, 200, 200)

	body := arcade.NewBody(0, 0, 20, 20)
	e := ecsWorld.Create(BodyComponent)
	BodyComponent.SetValue(ecsWorld.Entry(e), BodyData{Body: body})
	RegisterBodies(ecsWorld, physics)

	RemoveEntity(ecsWorld, e)

	if !body.IsDestroyed() {
		t.Error("body should be destroyed")
	}
	if physics.Len() != 0 {
		t.Errorf("physics.Len() = %d, want 0", physics.Len())
	}
	if ecsWorld.Valid(e) {
		t.Error("entity should be removed")
	}
}
