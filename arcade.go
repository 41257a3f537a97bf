package arcade

import "math"

// Vec2 is a 2D vector used for positions, velocities, sizes, and directions
// throughout the API. The coordinate system has Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// LenSq returns the squared length of v.
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Len returns the length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns the unit vector in the direction of v. The zero vector
// normalizes to the zero vector rather than NaN.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Overlaps reports whether r and other share a region of positive area.
// Unlike Intersects, rectangles that only share an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// ShapeKind selects the collision shape of a Body.
type ShapeKind uint8

const (
	ShapeRect   ShapeKind = iota // axis-aligned rectangle (Width x Height)
	ShapeCircle                  // circle of Radius inscribed in a 2R x 2R box
)

// String returns the shape name.
func (k ShapeKind) String() string {
	switch k {
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// Face identifies one side of a body's bounding box.
type Face uint8

const (
	FaceUp    Face = iota // top edge (smaller Y)
	FaceDown              // bottom edge (larger Y)
	FaceLeft              // left edge (smaller X)
	FaceRight             // right edge (larger X)
)

// String returns the face name.
func (f Face) String() string {
	switch f {
	case FaceUp:
		return "up"
	case FaceDown:
		return "down"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	default:
		return "unknown"
	}
}

// Faces is a per-face flag set used for touching, blocked, and collision
// filtering state. None is true when no face flag is set.
type Faces struct {
	None  bool
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// AllFaces has every face enabled. It is the default for CheckCollision.
var AllFaces = Faces{Up: true, Down: true, Left: true, Right: true}

// NoFaces is the cleared state used for per-step touching and blocked flags.
var NoFaces = Faces{None: true}

// Has reports whether face f is set.
func (fs Faces) Has(f Face) bool {
	switch f {
	case FaceUp:
		return fs.Up
	case FaceDown:
		return fs.Down
	case FaceLeft:
		return fs.Left
	case FaceRight:
		return fs.Right
	}
	return false
}

// Set marks face f and clears None.
func (fs *Faces) Set(f Face) {
	switch f {
	case FaceUp:
		fs.Up = true
	case FaceDown:
		fs.Down = true
	case FaceLeft:
		fs.Left = true
	case FaceRight:
		fs.Right = true
	default:
		return
	}
	fs.None = false
}

// Any reports whether at least one face is set.
func (fs Faces) Any() bool {
	return fs.Up || fs.Down || fs.Left || fs.Right
}

// opposite returns the face on the other side of the box.
func (f Face) opposite() Face {
	switch f {
	case FaceUp:
		return FaceDown
	case FaceDown:
		return FaceUp
	case FaceLeft:
		return FaceRight
	default:
		return FaceLeft
	}
}
