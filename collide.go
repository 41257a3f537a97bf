package arcade

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// embedEpsilon is the residual penetration above which a pair still counts
// as overlapping after separation.
const embedEpsilon = 1e-6

// Relation distinguishes report-only overlap checks from collide checks that
// also separate the bodies.
type Relation uint8

const (
	RelationCollide Relation = iota // report and separate
	RelationOverlap                 // report only
)

// contact is the transient result of a narrow-phase test. Normal is a unit
// vector pointing from A toward B; Depth is the penetration along it.
type contact struct {
	A, B     *Body
	Normal   Vec2
	Depth    float64
	Relation Relation
}

// narrowPhase tests a and b for overlap. Touching edges do not overlap.
func narrowPhase(a, b *Body) (contact, bool) {
	c := contact{A: a, B: b}
	var ok bool
	switch {
	case a.Shape == ShapeCircle && b.Shape == ShapeCircle:
		c.Normal, c.Depth, ok = circleCircle(a.Center(), a.Radius, b.Center(), b.Radius)
	case a.Shape == ShapeCircle:
		// Box-vs-circle normal points from box to circle; flip it for a->b.
		var n Vec2
		n, c.Depth, ok = rectCircle(b.Bounds(), a.Center(), a.Radius)
		c.Normal = n.Scale(-1)
	case b.Shape == ShapeCircle:
		c.Normal, c.Depth, ok = rectCircle(a.Bounds(), b.Center(), b.Radius)
	default:
		c.Normal, c.Depth, ok = rectRect(a.Bounds(), b.Bounds())
	}
	return c, ok
}

// rectRect computes the overlap of two boxes on each axis. The bodies are
// separated along the axis of minimum penetration; equal penetrations
// separate on Y.
func rectRect(a, b Rect) (Vec2, float64, bool) {
	ox := math.Min(a.Right(), b.Right()) - math.Max(a.X, b.X)
	oy := math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Y, b.Y)
	if ox <= 0 || oy <= 0 {
		return Vec2{}, 0, false
	}
	ca, cb := a.Center(), b.Center()
	if ox < oy {
		return Vec2{sign(cb.X - ca.X), 0}, ox, true
	}
	return Vec2{0, sign(cb.Y - ca.Y)}, oy, true
}

// circleCircle overlaps iff the center distance is below the radius sum.
// Coincident centers separate along +X.
func circleCircle(ca Vec2, ra float64, cb Vec2, rb float64) (Vec2, float64, bool) {
	d := cb.Sub(ca)
	sum := ra + rb
	distSq := d.LenSq()
	if distSq >= sum*sum {
		return Vec2{}, 0, false
	}
	dist := math.Sqrt(distSq)
	if dist == 0 {
		return Vec2{1, 0}, sum, true
	}
	return d.Scale(1 / dist), sum - dist, true
}

// rectCircle tests a box against a circle using the point of the box closest
// to the circle center. The returned normal points from the box toward the
// circle. A center inside the box falls back to the minimum penetration axis
// of the circle's bounding box.
func rectCircle(r Rect, center Vec2, radius float64) (Vec2, float64, bool) {
	closest := Vec2{
		Clamp(center.X, r.X, r.Right()),
		Clamp(center.Y, r.Y, r.Bottom()),
	}
	d := center.Sub(closest)
	distSq := d.LenSq()
	if distSq >= radius*radius {
		return Vec2{}, 0, false
	}
	if distSq > 0 {
		dist := math.Sqrt(distSq)
		return d.Scale(1 / dist), radius - dist, true
	}
	box := Rect{center.X - radius, center.Y - radius, radius * 2, radius * 2}
	n, depth, ok := rectRect(r, box)
	if !ok {
		// Zero-radius circle on the box edge.
		return Vec2{}, 0, false
	}
	return n, depth, true
}

// contactFaces returns the faces of A and B that meet along the normal. The
// dominant normal component decides; a tie counts as vertical.
func contactFaces(n Vec2) (fa, fb Face) {
	if mgl64.Abs(n.X) > mgl64.Abs(n.Y) {
		if n.X > 0 {
			return FaceRight, FaceLeft
		}
		return FaceLeft, FaceRight
	}
	if n.Y > 0 {
		return FaceDown, FaceUp
	}
	return FaceUp, FaceDown
}

// combinedBounce returns the restitution used along normal n: the product of
// both bodies' bounce projected on the normal, clamped to [0, 1].
func combinedBounce(a, b *Body, n Vec2) float64 {
	ax, ay := mgl64.Abs(n.X), mgl64.Abs(n.Y)
	ea := ax*a.Bounce.X + ay*a.Bounce.Y
	eb := ax*b.Bounce.X + ay*b.Bounce.Y
	return Clamp(ea*eb, 0, 1)
}

// separate resolves a contact: it pushes the bodies apart in proportion to
// their inverse masses, reflects the approaching normal velocity, applies
// platform friction, and updates touching state. It returns false without
// touching either body when one of the contact faces has collision disabled.
func separate(c *contact) bool {
	a, b := c.A, c.B
	fa, fb := contactFaces(c.Normal)
	if !a.CheckCollision.Has(fa) || !b.CheckCollision.Has(fb) {
		return false
	}

	ia, ib := a.inverseMass(), b.inverseMass()
	total := ia + ib
	if total > 0 {
		push := c.Normal.Scale(c.Depth / total)
		a.Position = a.Position.Sub(push.Scale(ia))
		b.Position = b.Position.Add(push.Scale(ib))

		rel := b.Velocity.Sub(a.Velocity).Dot(c.Normal)
		if rel < 0 {
			e := combinedBounce(a, b, c.Normal)
			j := -(1 + e) * rel / total
			a.Velocity = a.Velocity.Sub(c.Normal.Scale(j * ia))
			b.Velocity = b.Velocity.Add(c.Normal.Scale(j * ib))
		}
		applyPlatformFriction(a, b, fa)
	}

	overlap := c.Normal.Scale(c.Depth)
	a.OverlapX, a.OverlapY = overlap.X, overlap.Y
	b.OverlapX, b.OverlapY = -overlap.X, -overlap.Y

	a.Touching.Set(fa)
	b.Touching.Set(fb)
	if b.Immovable {
		a.Blocked.Set(fa)
	}
	if a.Immovable {
		b.Blocked.Set(fb)
	}

	a.refreshBounds()
	b.refreshBounds()

	if after, still := narrowPhase(a, b); still && after.Depth > embedEpsilon {
		a.Embedded = true
		b.Embedded = true
	}
	return true
}

// applyPlatformFriction carries a movable body along with an immovable one
// it is pressed against, scaled by the immovable body's friction on the
// tangent axis. fa is the face of a that made contact. A rider is carried by
// a given platform at most once per step.
func applyPlatformFriction(a, b *Body, fa Face) {
	var rider, platform *Body
	switch {
	case b.Immovable && !a.Immovable:
		rider, platform = a, b
	case a.Immovable && !b.Immovable:
		rider, platform = b, a
	default:
		return
	}
	if slices.Contains(rider.carried, platform) {
		return
	}
	rider.carried = append(rider.carried, platform)
	d := platform.Delta()
	if fa == FaceUp || fa == FaceDown {
		rider.Position.X += d.X * platform.Friction.X
	} else {
		rider.Position.Y += d.Y * platform.Friction.Y
	}
}
