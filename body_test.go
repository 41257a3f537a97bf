package arcade

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func TestNewBodyDefaults(t *testing.T) {
	b := NewBody(1, 2, 30, 40)
	if b.Shape != ShapeRect || b.Width != 30 || b.Height != 40 {
		t.Errorf("shape = %v %vx%v, want rect 30x40", b.Shape, b.Width, b.Height)
	}
	if b.Mass != 1 || !b.Enable || !b.Moves || !b.AllowGravity || !b.AllowDrag {
		t.Errorf("unexpected defaults: %+v", b)
	}
	if b.CheckCollision != AllFaces {
		t.Errorf("CheckCollision = %+v, want all faces", b.CheckCollision)
	}
	if !b.Touching.None || !b.Blocked.None {
		t.Error("per-step faces should start cleared")
	}
	if b.Bounds() != (Rect{1, 2, 30, 40}) {
		t.Errorf("Bounds = %v", b.Bounds())
	}
}

func TestNewCircleBodyCenter(t *testing.T) {
	b := NewCircleBody(90, 90, 10)
	if b.Width != 20 || b.Height != 20 {
		t.Errorf("circle box = %vx%v, want 20x20", b.Width, b.Height)
	}
	assertVec(t, "Center", b.Center(), Vec2{100, 100})
}

func TestBodyIDsUnique(t *testing.T) {
	a, b := NewBody(0, 0, 1, 1), NewBody(0, 0, 1, 1)
	if a.ID == b.ID {
		t.Errorf("duplicate ID %d", a.ID)
	}
}

func TestBodyString(t *testing.T) {
	b := NewBody(0, 0, 1, 1)
	b.Name = "hero"
	if got := b.String(); got == "" || got[:4] != "hero" {
		t.Errorf("String() = %q", got)
	}
}

func TestBodyReset(t *testing.T) {
	b := NewBody(0, 0, 10, 10)
	b.Velocity = Vec2{5, 5}
	b.Touching.Set(FaceDown)
	b.Reset(50, 60)
	assertVec(t, "Position", b.Position, Vec2{50, 60})
	assertVec(t, "Velocity", b.Velocity, Vec2{})
	assertVec(t, "Delta", b.Delta(), Vec2{})
	if b.Touching.Any() {
		t.Error("Touching not cleared")
	}
}

func TestIntegratePureTranslation(t *testing.T) {
	w := NewWorld(-1000, -1000, 2000, 2000)
	b := NewBody(10, 20, 5, 5)
	b.Velocity = Vec2{3, -4}
	w.Add(b)
	if err := w.Step(0.5); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "Position", b.Position, Vec2{11.5, 18})
	assertVec(t, "Velocity", b.Velocity, Vec2{3, -4})
}

func TestIntegrateGravityAndAcceleration(t *testing.T) {
	w := NewWorld(-1000, -1000, 2000, 2000)
	w.Gravity = Vec2{0, 10}
	b := NewBody(0, 0, 1, 1)
	b.Acceleration = Vec2{2, 0}
	w.Add(b)

	floating := NewBody(0, 0, 1, 1)
	floating.AllowGravity = false
	w.Add(floating)

	if err := w.Step(1); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "Velocity", b.Velocity, Vec2{2, 10})
	assertVec(t, "Position", b.Position, Vec2{2, 10})
	assertVec(t, "floating Velocity", floating.Velocity, Vec2{})
}

func TestImmovableTranslatesByOwnVelocity(t *testing.T) {
	w := NewWorld(-1000, -1000, 2000, 2000)
	w.Gravity = Vec2{0, 100}
	p := NewBody(0, 0, 10, 10)
	p.Immovable = true
	p.Velocity = Vec2{10, 0}
	w.Add(p)
	if err := w.Step(1); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "Position", p.Position, Vec2{10, 0})
	assertVec(t, "Velocity", p.Velocity, Vec2{10, 0})
}

func TestMovesFalseIsNotIntegrated(t *testing.T) {
	w := NewWorld(-1000, -1000, 2000, 2000)
	b := NewBody(0, 0, 1, 1)
	b.Velocity = Vec2{100, 100}
	b.Moves = false
	w.Add(b)
	if err := w.Step(1); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "Position", b.Position, Vec2{})
}

func TestDragNeverOvershoots(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		b := NewBody(0, 0, 1, 1)
		b.UseDamping = i%2 == 1
		v := (rng.Float64() - 0.5) * 400
		drag := rng.Float64() * 2000
		if b.UseDamping {
			drag = rng.Float64()
		}
		dt := rng.Float64() * 0.2
		got := b.applyDrag(v, drag, dt)
		if math.Abs(got) > math.Abs(v) {
			t.Fatalf("drag grew |v|: v=%v drag=%v dt=%v -> %v", v, drag, dt, got)
		}
		if got != 0 && math.Signbit(got) != math.Signbit(v) {
			t.Fatalf("drag flipped sign: v=%v drag=%v dt=%v -> %v", v, drag, dt, got)
		}
	}
}

func TestDragStopsBody(t *testing.T) {
	w := NewWorld(-1000, -1000, 2000, 2000)
	b := NewBody(0, 0, 1, 1)
	b.Velocity = Vec2{10, -10}
	b.Drag = Vec2{1000, 1000}
	w.Add(b)
	if err := w.Step(0.1); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "Velocity", b.Velocity, Vec2{})
}

func TestMaxVelocityAndSpeed(t *testing.T) {
	w := NewWorld(-1e6, -1e6, 2e6, 2e6)
	b := NewBody(0, 0, 1, 1)
	b.Velocity = Vec2{500, -500}
	b.MaxVelocity = Vec2{100, 200}
	w.Add(b)

	c := NewBody(0, 0, 1, 1)
	c.Velocity = Vec2{30, 40}
	c.MaxSpeed = 10
	w.Add(c)

	if err := w.Step(0.01); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "clamped Velocity", b.Velocity, Vec2{100, -200})
	if !approx(c.Speed(), 10) {
		t.Errorf("Speed = %v, want 10", c.Speed())
	}
}

func TestWorldBoundsReflect(t *testing.T) {
	w := NewWorld(0, 0, 100, 100)
	var hits int
	var faces Faces
	w.OnWorldBounds = func(b *Body, f Faces) {
		hits++
		faces = f
	}
	b := NewBody(5, 50, 10, 10)
	b.Velocity = Vec2{-100, 0}
	b.Bounce = Vec2{0.5, 0.5}
	b.CollideWorldBounds = true
	b.NotifyWorldBounds = true
	w.Add(b)

	if err := w.Step(0.1); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "Position", b.Position, Vec2{0, 50})
	assertVec(t, "Velocity", b.Velocity, Vec2{50, 0})
	if !b.Blocked.Left || !b.Touching.Left || !b.OnWall() {
		t.Errorf("blocked = %+v, want left", b.Blocked)
	}
	if hits != 1 || !faces.Left {
		t.Errorf("world bounds events = %d faces %+v", hits, faces)
	}
}

func TestWorldBoundsFaceDisabled(t *testing.T) {
	w := NewWorld(0, 0, 100, 100)
	w.BoundsFaces.Down = false
	b := NewBody(0, 95, 10, 10)
	b.CollideWorldBounds = true
	b.Velocity = Vec2{0, 100}
	w.Add(b)
	if err := w.Step(0.1); err != nil {
		t.Fatal(err)
	}
	if b.Position.Y != 105 || b.OnFloor() {
		t.Errorf("y = %v floor = %v, want 105 and no floor", b.Position.Y, b.OnFloor())
	}
}

func TestWorldBounceOverride(t *testing.T) {
	w := NewWorld(0, 0, 100, 100)
	b := NewBody(0, 95, 10, 10)
	b.CollideWorldBounds = true
	b.Velocity = Vec2{0, 100}
	b.Bounce = Vec2{0, 0}
	b.WorldBounce = &Vec2{0, 1}
	w.Add(b)
	if err := w.Step(0.1); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "Velocity", b.Velocity, Vec2{0, -100})
	if !b.OnFloor() {
		t.Error("expected OnFloor")
	}
}

func TestBodyValidate(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *Body)
		want  error
	}{
		{"ok", func(b *Body) {}, nil},
		{"negative width", func(b *Body) { b.Width = -1 }, ErrInvalidShape},
		{"nan height", func(b *Body) { b.Height = math.NaN() }, ErrInvalidShape},
		{"zero mass", func(b *Body) { b.Mass = 0 }, ErrInvalidMass},
		{"zero mass immovable", func(b *Body) { b.Mass = 0; b.Immovable = true }, nil},
		{"nan position", func(b *Body) { b.Position.X = math.NaN() }, ErrNonFinite},
		{"inf velocity", func(b *Body) { b.Velocity.Y = math.Inf(1) }, ErrNonFinite},
		{"negative radius", func(b *Body) { b.SetCircle(-2) }, ErrInvalidShape},
		{"nan gravity", func(b *Body) { b.Gravity.X = math.NaN() }, ErrNonFinite},
		{"inf acceleration", func(b *Body) { b.Acceleration.Y = math.Inf(-1) }, ErrNonFinite},
		{"nan drag", func(b *Body) { b.Drag.Y = math.NaN() }, ErrNonFinite},
		{"nan offset", func(b *Body) { b.Offset.X = math.NaN() }, ErrNonFinite},
		{"nan bounce", func(b *Body) { b.Bounce.X = math.NaN() }, ErrNonFinite},
		{"nan world bounce", func(b *Body) { b.WorldBounce = &Vec2{math.NaN(), 0} }, ErrNonFinite},
		{"inf friction", func(b *Body) { b.Friction.X = math.Inf(1) }, ErrNonFinite},
		{"nan max velocity", func(b *Body) { b.MaxVelocity.Y = math.NaN() }, ErrNonFinite},
		{"nan max speed", func(b *Body) { b.MaxSpeed = math.NaN() }, ErrNonFinite},
		{"inf max velocity", func(b *Body) { b.MaxVelocity = Vec2{math.Inf(1), math.Inf(1)} }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody(0, 0, 10, 10)
			tt.setup(b)
			err := b.validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

type fakeTransform struct{ x, y float64 }

func (f *fakeTransform) XY() (float64, float64) { return f.x, f.y }
func (f *fakeTransform) SetXY(x, y float64)     { f.x, f.y = x, y }

func TestTransformSync(t *testing.T) {
	w := NewWorld(-1000, -1000, 2000, 2000)
	tr := &fakeTransform{x: 100, y: 100}
	b := NewBody(0, 0, 10, 10)
	b.Offset = Vec2{-5, -5}
	b.Velocity = Vec2{10, 0}
	b.Transform = tr
	w.Add(b)

	if err := w.Step(1); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "Position", b.Position, Vec2{105, 95})
	if tr.x != 110 || tr.y != 100 {
		t.Errorf("transform = (%v, %v), want (110, 100)", tr.x, tr.y)
	}
}

func TestDeltaTracksDirectMoves(t *testing.T) {
	w := NewWorld(-1000, -1000, 2000, 2000)
	b := NewBody(0, 0, 10, 10)
	w.Add(b)
	b.Position.X += 7
	assertVec(t, "Delta", b.Delta(), Vec2{7, 0})
	if err := w.Step(0.1); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "Delta after step", b.Delta(), Vec2{})
}

func TestJustTouched(t *testing.T) {
	b := NewBody(0, 0, 1, 1)
	b.Touching.Set(FaceDown)
	if !b.JustTouched(FaceDown) {
		t.Error("JustTouched(down) = false on first contact")
	}
	b.beginStep()
	b.Touching.Set(FaceDown)
	if b.JustTouched(FaceDown) {
		t.Error("JustTouched(down) = true while resting")
	}
}

func TestDestroyRemovesFromWorld(t *testing.T) {
	w := NewWorld(0, 0, 100, 100)
	b := NewBody(0, 0, 1, 1)
	w.Add(b)
	b.Destroy()
	if w.Len() != 0 || b.World() != nil {
		t.Errorf("Len = %d World = %v after Destroy", w.Len(), b.World())
	}
	if !b.IsDestroyed() || b.Enable {
		t.Error("destroyed body should be marked and disabled")
	}
	w.Add(b)
	if w.Len() != 0 {
		t.Error("destroyed body was re-added")
	}
}

func TestNonFiniteGravitySkipsBody(t *testing.T) {
	w := NewWorld(0, 0, 200, 200)
	var diags []Diagnostic
	w.OnDiagnostic = func(d Diagnostic) { diags = append(diags, d) }
	b := NewBody(100, 100, 10, 10)
	b.Velocity = Vec2{5, 0}
	b.Gravity = Vec2{math.NaN(), 0}
	w.Add(b)

	if err := w.Step(0.1); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "Position", b.Position, Vec2{100, 100})
	assertVec(t, "Velocity", b.Velocity, Vec2{5, 0})
	if len(diags) != 1 || !errors.Is(diags[0].Err, ErrNonFinite) {
		t.Fatalf("diagnostics = %+v, want one ErrNonFinite", diags)
	}
	if st := w.Stats(); st.Skipped != 1 || st.Bodies != 0 {
		t.Errorf("stats = %+v, want 0 bodies 1 skipped", st)
	}
}

func TestIntegrateOverflowRestoresBody(t *testing.T) {
	w := NewWorld(0, 0, 200, 200)
	var diags []Diagnostic
	w.OnDiagnostic = func(d Diagnostic) { diags = append(diags, d) }
	b := NewBody(100, 100, 10, 10)
	b.Acceleration = Vec2{1e308, 0}
	b.MaxVelocity = Vec2{}
	w.Add(b)

	if err := w.Step(1e10); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "Position", b.Position, Vec2{100, 100})
	assertVec(t, "Velocity", b.Velocity, Vec2{})
	if len(diags) != 1 || !errors.Is(diags[0].Err, ErrNonFinite) {
		t.Fatalf("diagnostics = %+v, want one ErrNonFinite", diags)
	}
	if w.Stats().Skipped != 1 {
		t.Errorf("skipped = %d, want 1", w.Stats().Skipped)
	}
}
