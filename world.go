package arcade

import (
	"fmt"
	"math"
	"time"
)

// StepPhase is the world step state machine. A step runs every phase to
// completion before returning; callers only ever observe PhaseIdle.
type StepPhase uint8

const (
	PhaseIdle        StepPhase = iota // between steps
	PhaseIntegrating                  // integrating bodies
	PhaseBroadPhase                   // building candidate pairs
	PhaseResolving                    // narrow phase and separation
	PhaseDispatched                   // callbacks done, bookkeeping
)

// String returns the phase name.
func (p StepPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseIntegrating:
		return "integrating"
	case PhaseBroadPhase:
		return "broadphase"
	case PhaseResolving:
		return "resolving"
	case PhaseDispatched:
		return "dispatched"
	default:
		return "unknown"
	}
}

const (
	defaultFixedStep   = 1.0 / 60.0
	defaultMaxSubSteps = 5
)

// StepStats holds counters for the most recent step (and any Collide or
// Overlap calls made since it).
type StepStats struct {
	Bodies      int
	Skipped     int
	Candidates  int
	Collisions  int
	Overlaps    int
	Embedded    int
	Diagnostics int

	IntegrateTime time.Duration
	ResolveTime   time.Duration
}

// Collider is a pair of collidables checked automatically on every step.
type Collider struct {
	Name     string
	A, B     Collidable
	Relation Relation
	Callback CollideFunc
	Process  ProcessFunc
	// Active, when false, skips the collider without removing it.
	Active bool
}

// World is the top-level object that owns body registrations, colliders,
// and the broad-phase index. There is no global world; pass the World
// explicitly to everything that needs it.
type World struct {
	// Bounds is the rectangle bodies with CollideWorldBounds stay inside.
	Bounds Rect
	// BoundsFaces selects which edges of Bounds collide.
	BoundsFaces Faces
	// Gravity is added to every movable body's acceleration that has
	// AllowGravity set.
	Gravity Vec2
	// CellSize is the broad-phase grid cell size. Values <= 0 derive it from
	// the bodies being tested.
	CellSize float64
	// FixedStep is the step length Update advances by, in seconds.
	FixedStep float64
	// MaxSubSteps caps how many fixed steps a single Update may run.
	MaxSubSteps int

	// Event handlers, called for bodies that opted in (nil by default; zero
	// cost when unused).
	OnCollide     func(a, b *Body)
	OnOverlap     func(a, b *Body)
	OnTouch       func(a, b *Body)
	OnWorldBounds func(b *Body, faces Faces)
	// OnDiagnostic is called for every skipped body or pair.
	OnDiagnostic func(d Diagnostic)

	bodies    []*Body
	colliders []*Collider

	// pending holds adds and removes issued during a step, in call order.
	pending []pendingOp

	phase       StepPhase
	accumulator float64
	stats       StepStats
	sink        EventSink
	debug       bool

	grid        *spatialGrid
	bufA, bufB  []*Body
	dispatching int
}

// pendingOp is one deferred registration change.
type pendingOp struct {
	body *Body
	add  bool
}

// NewWorld creates a world with the given bounds and no gravity.
func NewWorld(x, y, width, height float64) *World {
	return &World{
		Bounds:      Rect{x, y, width, height},
		BoundsFaces: AllFaces,
		FixedStep:   defaultFixedStep,
		MaxSubSteps: defaultMaxSubSteps,
		grid:        newSpatialGrid(),
	}
}

// SetBounds replaces the world bounds.
func (w *World) SetBounds(x, y, width, height float64) {
	w.Bounds = Rect{x, y, width, height}
}

// SetEventSink sets the optional event forwarder.
func (w *World) SetEventSink(sink EventSink) {
	w.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, per-step timing
// and counters and every diagnostic are logged to stderr.
func (w *World) SetDebugMode(enabled bool) {
	w.debug = enabled
}

// Phase returns the current step phase.
func (w *World) Phase() StepPhase { return w.phase }

// Stats returns the counters of the most recent step.
func (w *World) Stats() StepStats { return w.stats }

// Len returns the number of registered bodies.
func (w *World) Len() int { return len(w.bodies) }

// Bodies returns the registered bodies in registration order. The returned
// slice MUST NOT be mutated.
func (w *World) Bodies() []*Body { return w.bodies }

// Find returns the first registered body with the given name.
func (w *World) Find(name string) (*Body, bool) {
	for _, b := range w.bodies {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Add registers the owners' bodies. A body belongs to at most one world;
// adding it to another world moves it. Adds made during a step take effect
// when the step ends.
func (w *World) Add(owners ...BodyOwner) {
	for _, o := range owners {
		if o == nil {
			continue
		}
		b := o.PhysicsBody()
		if b == nil || b.destroyed {
			continue
		}
		if w.phase != PhaseIdle {
			w.pending = append(w.pending, pendingOp{body: b, add: true})
			continue
		}
		w.add(b)
	}
}

func (w *World) add(b *Body) {
	if b.destroyed || b.world == w {
		return
	}
	if b.world != nil {
		b.world.remove(b)
	}
	b.world = w
	b.prev = b.Position
	b.carried = b.carried[:0]
	b.refreshBounds()
	w.bodies = append(w.bodies, b)
}

// Remove deregisters the owner's body. Removes made during a step take
// effect when the step ends.
func (w *World) Remove(o BodyOwner) {
	if o == nil {
		return
	}
	b := o.PhysicsBody()
	if b == nil {
		return
	}
	if w.phase != PhaseIdle {
		// Registration is checked when the queue is applied, so a body
		// added earlier in the same step can be removed again.
		w.pending = append(w.pending, pendingOp{body: b})
		return
	}
	if b.world == w {
		w.remove(b)
	}
}

func (w *World) remove(b *Body) {
	for i, m := range w.bodies {
		if m == b {
			copy(w.bodies[i:], w.bodies[i+1:])
			w.bodies[len(w.bodies)-1] = nil
			w.bodies = w.bodies[:len(w.bodies)-1]
			break
		}
	}
	if b.world == w {
		b.world = nil
	}
}

// AddCollider registers a collider that separates a and b on every step.
func (w *World) AddCollider(a, b Collidable, callback CollideFunc, process ProcessFunc) *Collider {
	c := &Collider{A: a, B: b, Relation: RelationCollide, Callback: callback, Process: process, Active: true}
	w.colliders = append(w.colliders, c)
	return c
}

// AddOverlap registers a collider that only reports overlaps of a and b on
// every step.
func (w *World) AddOverlap(a, b Collidable, callback CollideFunc, process ProcessFunc) *Collider {
	c := &Collider{A: a, B: b, Relation: RelationOverlap, Callback: callback, Process: process, Active: true}
	w.colliders = append(w.colliders, c)
	return c
}

// RemoveCollider unregisters c.
func (w *World) RemoveCollider(c *Collider) bool {
	for i, m := range w.colliders {
		if m == c {
			w.colliders = append(w.colliders[:i], w.colliders[i+1:]...)
			return true
		}
	}
	return false
}

// Colliders returns the registered colliders. The returned slice MUST NOT be
// mutated.
func (w *World) Colliders() []*Collider { return w.colliders }

// Update advances the world by elapsed seconds in FixedStep increments,
// carrying the remainder to the next call. It returns the number of steps
// run; at most MaxSubSteps run per call and excess time is dropped.
func (w *World) Update(elapsed float64) (int, error) {
	if !isFinite(elapsed) || elapsed < 0 {
		return 0, fmt.Errorf("update %v: %w", elapsed, ErrInvalidDelta)
	}
	step := w.FixedStep
	if !(step > 0) {
		step = defaultFixedStep
	}
	maxSteps := w.MaxSubSteps
	if maxSteps <= 0 {
		maxSteps = defaultMaxSubSteps
	}

	w.accumulator += elapsed
	n := 0
	for w.accumulator >= step && n < maxSteps {
		if err := w.Step(step); err != nil {
			return n, err
		}
		w.accumulator -= step
		n++
	}
	if w.accumulator >= step {
		w.accumulator = math.Mod(w.accumulator, step)
	}
	return n, nil
}

// Step advances the simulation by dt seconds: every body is integrated
// before any pair is tested, then registered colliders run in registration
// order. dt must be finite and non-negative and Gravity must be finite;
// otherwise nothing is changed. Step may not be called from a callback of the
// step in progress.
func (w *World) Step(dt float64) error {
	if !isFinite(dt) || dt < 0 {
		return fmt.Errorf("step %v: %w", dt, ErrInvalidDelta)
	}
	if w.phase != PhaseIdle {
		return ErrStepInProgress
	}
	if !w.Gravity.IsFinite() {
		return fmt.Errorf("step: gravity %v: %w", w.Gravity, ErrNonFinite)
	}
	if w.grid == nil {
		w.grid = newSpatialGrid()
	}
	defer func() { w.phase = PhaseIdle }()

	w.stats = StepStats{}
	w.applyPending()

	var t0 time.Time
	if w.debug {
		t0 = time.Now()
	}

	w.phase = PhaseIntegrating
	for _, b := range w.bodies {
		b.skipThisStep = false
		b.syncFromTransform()
		b.beginStep()
		if !b.Enable {
			continue
		}
		if err := b.validate(); err != nil {
			b.skipThisStep = true
			w.stats.Skipped++
			w.diagnose(b, nil, fmt.Errorf("step %s: %w", b, err))
			continue
		}
		if err := b.integrate(w, dt); err != nil {
			b.skipThisStep = true
			w.stats.Skipped++
			w.diagnose(b, nil, fmt.Errorf("step %s: %w", b, err))
			continue
		}
		w.stats.Bodies++
	}

	if w.debug {
		w.stats.IntegrateTime = time.Since(t0)
		t0 = time.Now()
	}

	w.phase = PhaseBroadPhase
	for _, c := range w.colliders {
		if !c.Active {
			continue
		}
		w.dispatch(c.A, c.B, c.Relation, c.Callback, c.Process)
	}

	w.phase = PhaseDispatched
	for _, b := range w.bodies {
		b.syncToTransform()
		b.prev = b.Position
		b.carried = b.carried[:0]
		b.skipThisStep = false
	}

	if w.debug {
		w.stats.ResolveTime = time.Since(t0)
		w.debugLog(w.stats)
		w.debugCheckEmbedded()
	}

	w.phase = PhaseIdle
	w.applyPending()
	return nil
}

// applyPending applies adds and removes deferred during a step in the order
// they were made.
func (w *World) applyPending() {
	for i, op := range w.pending {
		switch {
		case op.add:
			w.add(op.body)
		case op.body.world == w:
			w.remove(op.body)
		}
		w.pending[i] = pendingOp{}
	}
	w.pending = w.pending[:0]
}
