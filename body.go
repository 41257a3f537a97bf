package arcade

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyOwner is implemented by entities that own a Body. *Body implements it
// itself, so bodies can be passed anywhere an owner is expected.
type BodyOwner interface {
	PhysicsBody() *Body
}

// Transform is an entity transform that a Body mirrors each step. The body
// reads XY before integration and writes it back afterwards, offset by
// Body.Offset.
type Transform interface {
	XY() (x, y float64)
	SetXY(x, y float64)
}

// bodyIDCounter is a plain counter (not atomic; arcade is single-threaded).
var bodyIDCounter uint32

func nextBodyID() uint32 {
	bodyIDCounter++
	return bodyIDCounter
}

const (
	defaultMaxVelocity = 10000
	dampingSnap        = 1e-3
)

// Body is the physical state attached to one entity. A single flat struct is
// used for both shapes to avoid interface dispatch on the hot path.
//
// Position is the top-left corner of the body's bounding box for both
// rectangles and circles; a circle's center is Position + (Radius, Radius).
type Body struct {
	// Identity
	ID       uint32
	Name     string
	UserData any

	// Shape
	Shape  ShapeKind
	Width  float64
	Height float64
	Radius float64

	// Motion
	Position     Vec2
	Offset       Vec2
	Velocity     Vec2
	Acceleration Vec2
	Drag         Vec2
	Gravity      Vec2
	MaxVelocity  Vec2
	MaxSpeed     float64

	// Response
	Bounce      Vec2
	WorldBounce *Vec2
	Friction    Vec2
	Mass        float64

	// Flags
	Immovable          bool
	Enable             bool
	Moves              bool
	AllowGravity       bool
	AllowDrag          bool
	UseDamping         bool
	CollideWorldBounds bool
	CheckCollision     Faces

	// Event opt-ins
	NotifyCollide     bool
	NotifyOverlap     bool
	NotifyTouch       bool
	NotifyWorldBounds bool

	// Transform, when set, is mirrored into Position each step.
	Transform Transform

	// Per-step state
	Touching     Faces
	WasTouching  Faces
	Blocked      Faces
	OverlapX     float64
	OverlapY     float64
	Embedded     bool
	prev         Vec2
	bounds       Rect
	skipThisStep bool
	// carried lists the platforms that already moved this body since the
	// previous position was recorded.
	carried []*Body

	// Registration
	world     *World
	destroyed bool
}

// bodyDefaults sets the common default field values shared by all constructors.
func bodyDefaults(b *Body) {
	b.ID = nextBodyID()
	b.Mass = 1
	b.Friction = Vec2{1, 0}
	b.MaxVelocity = Vec2{defaultMaxVelocity, defaultMaxVelocity}
	b.MaxSpeed = -1
	b.Enable = true
	b.Moves = true
	b.AllowGravity = true
	b.AllowDrag = true
	b.CheckCollision = AllFaces
	b.Touching = NoFaces
	b.WasTouching = NoFaces
	b.Blocked = NoFaces
	b.prev = b.Position
	b.refreshBounds()
}

// NewBody creates a rectangular body with its top-left corner at (x, y).
func NewBody(x, y, width, height float64) *Body {
	b := &Body{Shape: ShapeRect, Position: Vec2{x, y}, Width: width, Height: height}
	bodyDefaults(b)
	return b
}

// NewCircleBody creates a circular body whose bounding box has its top-left
// corner at (x, y).
func NewCircleBody(x, y, radius float64) *Body {
	b := &Body{Shape: ShapeCircle, Position: Vec2{x, y}}
	b.SetCircle(radius)
	bodyDefaults(b)
	return b
}

// PhysicsBody returns b, so that *Body satisfies BodyOwner.
func (b *Body) PhysicsBody() *Body { return b }

// SetSize turns the body into a rectangle of the given size.
func (b *Body) SetSize(width, height float64) {
	b.Shape = ShapeRect
	b.Width = width
	b.Height = height
	b.Radius = 0
	b.refreshBounds()
}

// SetCircle turns the body into a circle of the given radius.
func (b *Body) SetCircle(radius float64) {
	b.Shape = ShapeCircle
	b.Radius = radius
	b.Width = radius * 2
	b.Height = radius * 2
	b.refreshBounds()
}

// Reset moves the body to (x, y) and clears its velocity, acceleration, and
// per-step state. The previous position is reset too, so Delta is zero.
func (b *Body) Reset(x, y float64) {
	b.Position = Vec2{x, y}
	b.prev = b.Position
	b.Stop()
	b.Touching = NoFaces
	b.WasTouching = NoFaces
	b.Blocked = NoFaces
	b.Embedded = false
	b.OverlapX, b.OverlapY = 0, 0
	b.carried = b.carried[:0]
	b.refreshBounds()
}

// Stop zeroes velocity and acceleration.
func (b *Body) Stop() {
	b.Velocity = Vec2{}
	b.Acceleration = Vec2{}
}

// Bounds returns the body's axis-aligned bounding box at its current position.
func (b *Body) Bounds() Rect {
	return Rect{b.Position.X, b.Position.Y, b.Width, b.Height}
}

// Center returns the center of the body's bounding box (the circle center for
// circular bodies).
func (b *Body) Center() Vec2 {
	return Vec2{b.Position.X + b.Width/2, b.Position.Y + b.Height/2}
}

// Delta returns how far the body moved since the end of the previous step,
// including any direct repositioning by the caller.
func (b *Body) Delta() Vec2 {
	return b.Position.Sub(b.prev)
}

// Speed returns the magnitude of the velocity.
func (b *Body) Speed() float64 {
	return b.Velocity.Len()
}

// OnFloor reports whether the body is blocked from below.
func (b *Body) OnFloor() bool { return b.Blocked.Down }

// OnCeiling reports whether the body is blocked from above.
func (b *Body) OnCeiling() bool { return b.Blocked.Up }

// OnWall reports whether the body is blocked on the left or right.
func (b *Body) OnWall() bool { return b.Blocked.Left || b.Blocked.Right }

// JustTouched reports whether face f started touching during the last step.
func (b *Body) JustTouched(f Face) bool {
	return b.Touching.Has(f) && !b.WasTouching.Has(f)
}

// World returns the world the body is registered with, or nil.
func (b *Body) World() *World { return b.world }

// Destroy removes the body from its world and marks it dead. Destroyed bodies
// are reported as stale if they are passed to Collide or Overlap.
func (b *Body) Destroy() {
	if b.destroyed {
		return
	}
	if b.world != nil {
		b.world.Remove(b)
	}
	b.destroyed = true
	b.Enable = false
}

// IsDestroyed reports whether Destroy has been called.
func (b *Body) IsDestroyed() bool { return b.destroyed }

// String returns a short description used in debug output.
func (b *Body) String() string {
	if b.Name != "" {
		return fmt.Sprintf("%s#%d", b.Name, b.ID)
	}
	return fmt.Sprintf("body#%d", b.ID)
}

// validate checks the body for configuration errors that would make
// collision response undefined. It returns nil for a usable body.
func (b *Body) validate() error {
	switch b.Shape {
	case ShapeRect:
		if !(b.Width >= 0) || !(b.Height >= 0) || !isFinite(b.Width) || !isFinite(b.Height) {
			return fmt.Errorf("%w: size %vx%v", ErrInvalidShape, b.Width, b.Height)
		}
	case ShapeCircle:
		if !(b.Radius >= 0) || !isFinite(b.Radius) {
			return fmt.Errorf("%w: radius %v", ErrInvalidShape, b.Radius)
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidShape, b.Shape)
	}
	if !b.Immovable && !(b.Mass > 0 && isFinite(b.Mass)) {
		return fmt.Errorf("%w: mass %v", ErrInvalidMass, b.Mass)
	}
	if !b.Position.IsFinite() || !b.Velocity.IsFinite() || !b.Acceleration.IsFinite() {
		return fmt.Errorf("%w: position %v velocity %v acceleration %v", ErrNonFinite, b.Position, b.Velocity, b.Acceleration)
	}
	if !b.Gravity.IsFinite() || !b.Drag.IsFinite() || !b.Offset.IsFinite() {
		return fmt.Errorf("%w: gravity %v drag %v offset %v", ErrNonFinite, b.Gravity, b.Drag, b.Offset)
	}
	if !b.Bounce.IsFinite() || !b.Friction.IsFinite() || (b.WorldBounce != nil && !b.WorldBounce.IsFinite()) {
		return fmt.Errorf("%w: bounce %v friction %v", ErrNonFinite, b.Bounce, b.Friction)
	}
	// Infinite limits mean unlimited; only NaN is rejected.
	if math.IsNaN(b.MaxVelocity.X) || math.IsNaN(b.MaxVelocity.Y) || math.IsNaN(b.MaxSpeed) {
		return fmt.Errorf("%w: max velocity %v max speed %v", ErrNonFinite, b.MaxVelocity, b.MaxSpeed)
	}
	return nil
}

// inverseMass returns 0 for immovable bodies, which then take no share of a
// separation.
func (b *Body) inverseMass() float64 {
	if b.Immovable {
		return 0
	}
	return 1 / b.Mass
}

// refreshBounds updates the cached bounding box used by the broad-phase.
func (b *Body) refreshBounds() {
	b.bounds = b.Bounds()
}

// beginStep rolls per-step state forward before integration.
func (b *Body) beginStep() {
	b.WasTouching = b.Touching
	b.Touching = NoFaces
	b.Blocked = NoFaces
	b.Embedded = false
	b.OverlapX, b.OverlapY = 0, 0
}

// integrate advances velocity and position by dt seconds. If the result is
// not finite (an overflow from huge but finite inputs) the body is restored
// to its state before the call and ErrNonFinite is returned.
func (b *Body) integrate(w *World, dt float64) error {
	if !b.Moves {
		b.refreshBounds()
		return nil
	}
	pos, vel := b.Position, b.Velocity
	if !b.Immovable {
		accel := b.Acceleration.Add(b.Gravity)
		if b.AllowGravity {
			accel = accel.Add(w.Gravity)
		}
		b.Velocity = b.Velocity.Add(accel.Scale(dt))

		if b.AllowDrag {
			b.Velocity.X = b.applyDrag(b.Velocity.X, b.Drag.X, dt)
			b.Velocity.Y = b.applyDrag(b.Velocity.Y, b.Drag.Y, dt)
		}

		if b.MaxVelocity.X > 0 {
			b.Velocity.X = Clamp(b.Velocity.X, -b.MaxVelocity.X, b.MaxVelocity.X)
		}
		if b.MaxVelocity.Y > 0 {
			b.Velocity.Y = Clamp(b.Velocity.Y, -b.MaxVelocity.Y, b.MaxVelocity.Y)
		}
		if b.MaxSpeed > 0 {
			if s := b.Velocity.Len(); s > b.MaxSpeed {
				b.Velocity = b.Velocity.Scale(b.MaxSpeed / s)
			}
		}
	}

	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
		b.Position, b.Velocity = pos, vel
		b.refreshBounds()
		return fmt.Errorf("%w: integration overflow", ErrNonFinite)
	}

	if b.CollideWorldBounds {
		b.checkWorldBounds(w)
	}
	b.refreshBounds()
	return nil
}

// applyDrag reduces v toward zero without ever changing its sign.
func (b *Body) applyDrag(v, drag, dt float64) float64 {
	if drag == 0 || v == 0 {
		return v
	}
	if b.UseDamping {
		// Drag is the fraction of velocity retained per second.
		v *= math.Pow(Clamp(drag, 0, 1), dt)
		if mgl64.Abs(v) < dampingSnap {
			return 0
		}
		return v
	}
	return approach(v, mgl64.Abs(drag)*dt)
}

// checkWorldBounds keeps the bounding box inside the world bounds on every
// enabled world face, reflecting velocity by the body's bounce.
func (b *Body) checkWorldBounds(w *World) {
	bounce := b.Bounce
	if b.WorldBounce != nil {
		bounce = *b.WorldBounce
	}
	wb := w.Bounds
	var hit Faces
	hit.None = true

	if w.BoundsFaces.Left && b.Position.X < wb.X {
		b.Position.X = wb.X
		b.Velocity.X = -b.Velocity.X * bounce.X
		hit.Set(FaceLeft)
	} else if w.BoundsFaces.Right && b.Position.X+b.Width > wb.Right() {
		b.Position.X = wb.Right() - b.Width
		b.Velocity.X = -b.Velocity.X * bounce.X
		hit.Set(FaceRight)
	}

	if w.BoundsFaces.Up && b.Position.Y < wb.Y {
		b.Position.Y = wb.Y
		b.Velocity.Y = -b.Velocity.Y * bounce.Y
		hit.Set(FaceUp)
	} else if w.BoundsFaces.Down && b.Position.Y+b.Height > wb.Bottom() {
		b.Position.Y = wb.Bottom() - b.Height
		b.Velocity.Y = -b.Velocity.Y * bounce.Y
		hit.Set(FaceDown)
	}

	if !hit.Any() {
		return
	}
	for _, f := range [...]Face{FaceUp, FaceDown, FaceLeft, FaceRight} {
		if hit.Has(f) {
			b.Touching.Set(f)
			b.Blocked.Set(f)
		}
	}
	w.emitWorldBounds(b, hit)
}

// syncFromTransform copies the entity transform into the body position.
func (b *Body) syncFromTransform() {
	if b.Transform == nil {
		return
	}
	x, y := b.Transform.XY()
	b.Position = Vec2{x + b.Offset.X, y + b.Offset.Y}
}

// syncToTransform writes the body position back to the entity transform.
func (b *Body) syncToTransform() {
	if b.Transform == nil {
		return
	}
	b.Transform.SetXY(b.Position.X-b.Offset.X, b.Position.Y-b.Offset.Y)
}
