package arcade

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenBodyPositionReachesTarget(t *testing.T) {
	b := NewBody(10, 20, 5, 5)
	tw := TweenBodyPosition(b, 100, 200, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	tw.Update(0.5)
	if tw.Done {
		t.Fatal("Done before the end")
	}
	if math.Abs(b.Position.X-55) > 0.01 || math.Abs(b.Position.Y-110) > 0.01 {
		t.Errorf("midpoint = %v, want ~(55, 110)", b.Position)
	}
	tw.Update(0.5)
	if !tw.Done {
		t.Fatal("expected Done after full duration")
	}
	if b.Position != (Vec2{100, 200}) {
		t.Errorf("end = %v, want exactly (100, 200)", b.Position)
	}
	if b.Bounds().X != 100 {
		t.Error("bounds not refreshed")
	}

	tw.Update(0.5)
	if b.Position != (Vec2{100, 200}) {
		t.Error("finished tween kept moving")
	}
}

func TestTweenPlatformPingPong(t *testing.T) {
	b := NewBody(0, 0, 50, 10)
	b.Immovable = true
	tw := TweenPlatform(b, 100, 0, 1.0, ease.Linear)

	steps := []float64{50, 100, 50, 0, 50}
	for i, want := range steps {
		tw.Update(0.5)
		if math.Abs(b.Position.X-want) > 0.01 {
			t.Errorf("update %d: x = %v, want ~%v", i, b.Position.X, want)
		}
	}
	if tw.Done {
		t.Error("ping-pong tween finished")
	}
}

func TestTweenStopsOnDestroyedBody(t *testing.T) {
	b := NewBody(0, 0, 5, 5)
	tw := TweenPlatform(b, 100, 0, 1.0, ease.Linear)
	b.Destroy()
	tw.Update(0.5)
	if !tw.Done {
		t.Error("tween continued on a destroyed body")
	}
	if b.Position != (Vec2{}) {
		t.Errorf("destroyed body moved to %v", b.Position)
	}
}

func TestTweenCarriesRider(t *testing.T) {
	w := NewWorld(-1000, -1000, 2000, 2000)
	w.Gravity = Vec2{0, 100}
	platform := NewBody(0, 100, 200, 10)
	platform.Immovable = true
	rider := NewBody(50, 90, 10, 10)
	w.Add(platform, rider)
	w.AddCollider(rider, platform, nil, nil)
	tw := TweenPlatform(platform, 40, 100, 1.0, ease.Linear)

	tw.Update(0.25)
	if err := w.Step(0.1); err != nil {
		t.Fatal(err)
	}
	if math.Abs(rider.Position.X-60) > 0.01 {
		t.Errorf("rider x = %v, want ~60", rider.Position.X)
	}
}
