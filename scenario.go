package arcade

import (
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// scenarioStep represents a single action in a scenario script.
type scenarioStep struct {
	Action string   `yaml:"action"`
	A      []string `yaml:"a,omitempty"`
	B      []string `yaml:"b,omitempty"`
	Body   string   `yaml:"body,omitempty"`
	Frames int      `yaml:"frames,omitempty"`
	Dt     float64  `yaml:"dt,omitempty"`
	X      *float64 `yaml:"x,omitempty"`
	Y      *float64 `yaml:"y,omitempty"`
	VX     *float64 `yaml:"vx,omitempty"`
	VY     *float64 `yaml:"vy,omitempty"`
	Touch  []string `yaml:"touching,omitempty"`
	Count  *int     `yaml:"count,omitempty"`
	Tol    float64  `yaml:"tolerance,omitempty"`
}

// scenarioScript is the top-level YAML structure for a scenario.
type scenarioScript struct {
	World WorldConfig    `yaml:"world"`
	Steps []scenarioStep `yaml:"steps"`
}

// Scenario replays a scripted sequence of steps, collide/overlap calls, and
// expectations against a world built from the script's config. It is used
// to pin down behavior in readable fixtures.
//
// Actions: "step" (frames, dt), "collide" and "overlap" (a, b: body names;
// the same list twice means self-collide), "expect" (body, x, y, vx, vy,
// touching, tolerance), "count" (count of callbacks since the last count).
type Scenario struct {
	world     *World
	steps     []scenarioStep
	cursor    int
	callbacks int
	lastCount int
}

// LoadScenario parses a YAML scenario script and builds its world.
func LoadScenario(data []byte) (*Scenario, error) {
	script := scenarioScript{World: DefaultConfig()}
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse scenario: no steps")
	}
	w, err := script.World.Build()
	if err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &Scenario{world: w, steps: script.Steps}, nil
}

// World returns the scenario's world.
func (s *Scenario) World() *World { return s.world }

// Done reports whether every step has run.
func (s *Scenario) Done() bool { return s.cursor >= len(s.steps) }

// Run executes every remaining step, stopping at the first failure.
func (s *Scenario) Run() error {
	for !s.Done() {
		if err := s.Next(); err != nil {
			return err
		}
	}
	return nil
}

// Next executes a single step.
func (s *Scenario) Next() error {
	if s.Done() {
		return nil
	}
	st := s.steps[s.cursor]
	s.cursor++
	label := fmt.Sprintf("scenario step %d (%s)", s.cursor, st.Action)

	switch st.Action {
	case "step":
		frames := max(st.Frames, 1)
		dt := st.Dt
		if dt == 0 {
			dt = s.world.FixedStep
		}
		for range frames {
			if err := s.world.Step(dt); err != nil {
				return fmt.Errorf("%s: %w", label, err)
			}
		}
	case "collide", "overlap":
		a, err := s.collection(st.A)
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		b := a
		if !sameNames(st.A, st.B) {
			if b, err = s.collection(st.B); err != nil {
				return fmt.Errorf("%s: %w", label, err)
			}
		}
		count := func(_, _ *Body) { s.callbacks++ }
		if st.Action == "collide" {
			s.world.Collide(a, b, count, nil)
		} else {
			s.world.Overlap(a, b, count, nil)
		}
	case "expect":
		if err := s.expect(st); err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
	case "count":
		got := s.callbacks - s.lastCount
		s.lastCount = s.callbacks
		if st.Count != nil && got != *st.Count {
			return fmt.Errorf("%s: %d callbacks, want %d", label, got, *st.Count)
		}
	default:
		return fmt.Errorf("%s: unknown action", label)
	}
	return nil
}

func (s *Scenario) collection(names []string) (Bodies, error) {
	out := make(Bodies, 0, len(names))
	for _, n := range names {
		b, ok := s.world.Find(n)
		if !ok {
			return nil, fmt.Errorf("%q: %w", n, ErrUnknownBody)
		}
		out = append(out, b)
	}
	return out, nil
}

func sameNames(a, b []string) bool {
	if len(b) == 0 {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *Scenario) expect(st scenarioStep) error {
	b, ok := s.world.Find(st.Body)
	if !ok {
		return fmt.Errorf("%q: %w", st.Body, ErrUnknownBody)
	}
	tol := st.Tol
	if tol == 0 {
		tol = 1e-9
	}
	check := func(field string, want *float64, got float64) error {
		if want != nil && math.Abs(got-*want) > tol {
			return fmt.Errorf("%s %s = %v, want %v", b, field, got, *want)
		}
		return nil
	}
	if err := errors.Join(
		check("x", st.X, b.Position.X),
		check("y", st.Y, b.Position.Y),
		check("vx", st.VX, b.Velocity.X),
		check("vy", st.VY, b.Velocity.Y),
	); err != nil {
		return err
	}
	for _, name := range st.Touch {
		f, err := parseFace(name)
		if err != nil {
			return err
		}
		if !b.Touching.Has(f) {
			return fmt.Errorf("%s not touching %s", b, f)
		}
	}
	return nil
}

func parseFace(name string) (Face, error) {
	for _, f := range [...]Face{FaceUp, FaceDown, FaceLeft, FaceRight} {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown face %q", name)
}
