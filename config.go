package arcade

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WorldConfig is the persisted description of a world: bounds, gravity,
// stepping, and the initial state of its bodies.
type WorldConfig struct {
	Bounds      Rect         `yaml:"bounds"`
	Gravity     Vec2         `yaml:"gravity"`
	FixedStep   float64      `yaml:"fixed_step,omitempty"`
	MaxSubSteps int          `yaml:"max_sub_steps,omitempty"`
	CellSize    float64      `yaml:"cell_size,omitempty"`
	Bodies      []BodyConfig `yaml:"bodies,omitempty"`
}

// BodyConfig is the initial state of one body. Pointer fields are optional
// and fall back to the Body defaults when omitted.
type BodyConfig struct {
	Name               string   `yaml:"name"`
	Shape              string   `yaml:"shape,omitempty"` // "rect" (default) or "circle"
	X                  float64  `yaml:"x"`
	Y                  float64  `yaml:"y"`
	Width              float64  `yaml:"width,omitempty"`
	Height             float64  `yaml:"height,omitempty"`
	Radius             float64  `yaml:"radius,omitempty"`
	Velocity           Vec2     `yaml:"velocity,omitempty"`
	Acceleration       Vec2     `yaml:"acceleration,omitempty"`
	Drag               Vec2     `yaml:"drag,omitempty"`
	Gravity            Vec2     `yaml:"gravity,omitempty"`
	Bounce             Vec2     `yaml:"bounce,omitempty"`
	Friction           *Vec2    `yaml:"friction,omitempty"`
	MaxVelocity        *Vec2    `yaml:"max_velocity,omitempty"`
	Mass               *float64 `yaml:"mass,omitempty"`
	Immovable          bool     `yaml:"immovable,omitempty"`
	Disabled           bool     `yaml:"disabled,omitempty"`
	NoGravity          bool     `yaml:"no_gravity,omitempty"`
	UseDamping         bool     `yaml:"use_damping,omitempty"`
	CollideWorldBounds bool     `yaml:"collide_world_bounds,omitempty"`
	CheckCollision     *Faces   `yaml:"check_collision,omitempty"`
	Notify             bool     `yaml:"notify,omitempty"`
}

// DefaultConfig returns a 800x600 world with no gravity and no bodies.
func DefaultConfig() WorldConfig {
	return WorldConfig{
		Bounds:      Rect{0, 0, 800, 600},
		FixedStep:   defaultFixedStep,
		MaxSubSteps: defaultMaxSubSteps,
	}
}

// LoadConfig parses a YAML world description. Missing stepping fields take
// their defaults.
func LoadConfig(data []byte) (*WorldConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse world config: %w", err)
	}
	return &cfg, nil
}

// LoadConfigFile reads and parses a YAML world description from path.
func LoadConfigFile(path string) (*WorldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world config: %w", err)
	}
	return LoadConfig(data)
}

// Marshal encodes the config as YAML.
func (c *WorldConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Build creates a World from the config and registers its bodies. Every
// body is validated; the first invalid body aborts the build.
func (c *WorldConfig) Build() (*World, error) {
	w := NewWorld(c.Bounds.X, c.Bounds.Y, c.Bounds.Width, c.Bounds.Height)
	w.Gravity = c.Gravity
	w.CellSize = c.CellSize
	if c.FixedStep > 0 {
		w.FixedStep = c.FixedStep
	}
	if c.MaxSubSteps > 0 {
		w.MaxSubSteps = c.MaxSubSteps
	}
	for i := range c.Bodies {
		b, err := c.Bodies[i].Body()
		if err != nil {
			return nil, fmt.Errorf("build world: body %d (%q): %w", i, c.Bodies[i].Name, err)
		}
		w.Add(b)
	}
	return w, nil
}

// Body creates the body described by bc.
func (bc *BodyConfig) Body() (*Body, error) {
	var b *Body
	switch bc.Shape {
	case "", "rect":
		b = NewBody(bc.X, bc.Y, bc.Width, bc.Height)
	case "circle":
		b = NewCircleBody(bc.X, bc.Y, bc.Radius)
	default:
		return nil, fmt.Errorf("%w: unknown shape %q", ErrInvalidShape, bc.Shape)
	}
	b.Name = bc.Name
	b.Velocity = bc.Velocity
	b.Acceleration = bc.Acceleration
	b.Drag = bc.Drag
	b.Gravity = bc.Gravity
	b.Bounce = bc.Bounce
	if bc.Friction != nil {
		b.Friction = *bc.Friction
	}
	if bc.MaxVelocity != nil {
		b.MaxVelocity = *bc.MaxVelocity
	}
	if bc.Mass != nil {
		b.Mass = *bc.Mass
	}
	b.Immovable = bc.Immovable
	b.Enable = !bc.Disabled
	b.AllowGravity = !bc.NoGravity
	b.UseDamping = bc.UseDamping
	b.CollideWorldBounds = bc.CollideWorldBounds
	if bc.CheckCollision != nil {
		b.CheckCollision = *bc.CheckCollision
	}
	if bc.Notify {
		b.NotifyCollide = true
		b.NotifyOverlap = true
		b.NotifyTouch = true
		b.NotifyWorldBounds = true
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}
