package arcade

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// BodyTween moves a body's position along a straight line, typically to
// script an immovable platform. Bodies resting on the platform ride along
// through platform friction, because the move shows up in the platform's
// Delta on the next step.
//
// There is no global tween manager; call Update once per frame before
// stepping the world. If the target body is destroyed, the tween stops.
type BodyTween struct {
	x, y   *gween.Tween
	from   Vec2
	to     Vec2
	dur    float32
	fn     ease.TweenFunc
	target *Body
	// PingPong, when true, reverses direction every time the end is reached
	// instead of finishing.
	PingPong bool
	Done     bool
}

// TweenBodyPosition creates a BodyTween that moves b from its current
// position to (toX, toY) over duration seconds using the easing function.
func TweenBodyPosition(b *Body, toX, toY float64, duration float32, fn ease.TweenFunc) *BodyTween {
	t := &BodyTween{
		from:   b.Position,
		to:     Vec2{toX, toY},
		dur:    duration,
		fn:     fn,
		target: b,
	}
	t.build()
	return t
}

// TweenPlatform is TweenBodyPosition with PingPong enabled.
func TweenPlatform(b *Body, toX, toY float64, duration float32, fn ease.TweenFunc) *BodyTween {
	t := TweenBodyPosition(b, toX, toY, duration, fn)
	t.PingPong = true
	return t
}

func (t *BodyTween) build() {
	t.x = gween.New(float32(t.from.X), float32(t.to.X), t.dur, t.fn)
	t.y = gween.New(float32(t.from.Y), float32(t.to.Y), t.dur, t.fn)
}

// Update advances the tween by dt seconds and writes the position to the
// body. With PingPong set the tween never finishes.
func (t *BodyTween) Update(dt float32) {
	if t.Done {
		return
	}
	if t.target == nil || t.target.IsDestroyed() {
		t.Done = true
		return
	}

	x, doneX := t.x.Update(dt)
	y, doneY := t.y.Update(dt)
	t.target.Position = Vec2{float64(x), float64(y)}
	t.target.refreshBounds()

	if !doneX || !doneY {
		return
	}
	// Snap to the exact end so float32 drift does not accumulate.
	t.target.Position = t.to
	t.target.refreshBounds()
	if !t.PingPong {
		t.Done = true
		return
	}
	t.from, t.to = t.to, t.from
	t.build()
}
