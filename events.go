package arcade

import "errors"

// Errors reported by the world. Precondition violations (ErrInvalidDelta,
// ErrStepInProgress) are returned to the caller; the rest are delivered as
// Diagnostics and never abort a step.
var (
	ErrInvalidDelta   = errors.New("arcade: delta must be finite and non-negative")
	ErrStepInProgress = errors.New("arcade: step already in progress")
	ErrStaleBody      = errors.New("arcade: body has been destroyed")
	ErrInvalidShape   = errors.New("arcade: invalid body shape")
	ErrInvalidMass    = errors.New("arcade: movable body must have positive mass")
	ErrNonFinite      = errors.New("arcade: body state is not finite")
	ErrUnknownBody    = errors.New("arcade: unknown body")
)

// EventType identifies a kind of physics event.
type EventType uint8

const (
	EventCollide     EventType = iota // two bodies collided and were separated
	EventOverlap                      // two bodies overlap (reported, not separated)
	EventTouch                        // two bodies touch after separation
	EventWorldBounds                  // a body hit the world bounds
	EventDiagnostic                   // a body or pair was skipped because of an error
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventCollide:
		return "collide"
	case EventOverlap:
		return "overlap"
	case EventTouch:
		return "touch"
	case EventWorldBounds:
		return "worldbounds"
	case EventDiagnostic:
		return "diagnostic"
	default:
		return "unknown"
	}
}

// Event carries physics event data for an EventSink. B is nil for
// EventWorldBounds and for single-body diagnostics.
type Event struct {
	Type  EventType
	A, B  *Body
	Faces Faces // faces hit, for EventWorldBounds and EventTouch (A's side)
	Err   error // set for EventDiagnostic
}

// EventSink is the interface for optional event forwarding, for example into
// an ECS world. When set on a World, every emitted event is also passed here.
type EventSink interface {
	EmitEvent(event Event)
}

// Diagnostic describes a non-fatal problem with a body or pair. The offending
// body (or pair) is skipped; the rest of the step continues.
type Diagnostic struct {
	Body  *Body
	Other *Body
	Err   error
}

// CollideFunc is invoked for a pair that collided (Collide) or overlapped
// (Overlap).
type CollideFunc func(a, b *Body)

// ProcessFunc filters a pair after overlap was detected and before it is
// resolved. Returning false treats the pair as not colliding.
type ProcessFunc func(a, b *Body) bool

func (w *World) emitCollide(a, b *Body) {
	if !a.NotifyCollide && !b.NotifyCollide {
		return
	}
	if w.OnCollide != nil {
		w.OnCollide(a, b)
	}
	if w.sink != nil {
		w.sink.EmitEvent(Event{Type: EventCollide, A: a, B: b})
	}
}

func (w *World) emitOverlap(a, b *Body) {
	if !a.NotifyOverlap && !b.NotifyOverlap {
		return
	}
	if w.OnOverlap != nil {
		w.OnOverlap(a, b)
	}
	if w.sink != nil {
		w.sink.EmitEvent(Event{Type: EventOverlap, A: a, B: b})
	}
}

func (w *World) emitTouch(a, b *Body) {
	if !a.NotifyTouch && !b.NotifyTouch {
		return
	}
	if w.OnTouch != nil {
		w.OnTouch(a, b)
	}
	if w.sink != nil {
		w.sink.EmitEvent(Event{Type: EventTouch, A: a, B: b, Faces: a.Touching})
	}
}

func (w *World) emitWorldBounds(b *Body, faces Faces) {
	if !b.NotifyWorldBounds {
		return
	}
	if w.OnWorldBounds != nil {
		w.OnWorldBounds(b, faces)
	}
	if w.sink != nil {
		w.sink.EmitEvent(Event{Type: EventWorldBounds, A: b, Faces: faces})
	}
}

func (w *World) diagnose(b, other *Body, err error) {
	w.stats.Diagnostics++
	if w.debug {
		w.debugDiagnostic(b, other, err)
	}
	if w.OnDiagnostic != nil {
		w.OnDiagnostic(Diagnostic{Body: b, Other: other, Err: err})
	}
	if w.sink != nil {
		w.sink.EmitEvent(Event{Type: EventDiagnostic, A: b, B: other, Err: err})
	}
}
