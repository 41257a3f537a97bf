package arcade

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/vmihailenco/msgpack/v5"
)

// BodyState is the serializable dynamic state of one body. Field names
// match Body so the state can be copied field by field.
type BodyState struct {
	ID           uint32 `msgpack:"id"`
	Name         string `msgpack:"name"`
	Position     Vec2   `msgpack:"pos"`
	Velocity     Vec2   `msgpack:"vel"`
	Acceleration Vec2   `msgpack:"acc"`
	Touching     Faces  `msgpack:"touching"`
	WasTouching  Faces  `msgpack:"was_touching"`
	Blocked      Faces  `msgpack:"blocked"`
	Embedded     bool   `msgpack:"embedded"`
	Enable       bool   `msgpack:"enable"`
}

// Snapshot is the serializable state of a world between steps.
type Snapshot struct {
	Gravity Vec2        `msgpack:"gravity"`
	Bounds  Rect        `msgpack:"bounds"`
	Bodies  []BodyState `msgpack:"bodies"`
}

// Capture records the dynamic state of every registered body.
func (w *World) Capture() (*Snapshot, error) {
	s := &Snapshot{
		Gravity: w.Gravity,
		Bounds:  w.Bounds,
		Bodies:  make([]BodyState, len(w.bodies)),
	}
	for i, b := range w.bodies {
		if err := copier.Copy(&s.Bodies[i], b); err != nil {
			return nil, fmt.Errorf("capture %s: %w", b, err)
		}
	}
	return s, nil
}

// Apply restores body state from s. Bodies are matched by name, falling back
// to ID for unnamed bodies; a state with no matching body fails with
// ErrUnknownBody and leaves no partial changes.
func (w *World) Apply(s *Snapshot) error {
	if w.phase != PhaseIdle {
		return ErrStepInProgress
	}
	targets := make([]*Body, len(s.Bodies))
	for i := range s.Bodies {
		st := &s.Bodies[i]
		b := w.lookup(st.Name, st.ID)
		if b == nil {
			return fmt.Errorf("apply snapshot: %q (id %d): %w", st.Name, st.ID, ErrUnknownBody)
		}
		targets[i] = b
	}

	w.Gravity = s.Gravity
	w.Bounds = s.Bounds
	for i, b := range targets {
		id := b.ID
		if err := copier.Copy(b, &s.Bodies[i]); err != nil {
			return fmt.Errorf("apply snapshot to %s: %w", b, err)
		}
		b.ID = id
		b.prev = b.Position
		b.carried = b.carried[:0]
		b.refreshBounds()
	}
	return nil
}

func (w *World) lookup(name string, id uint32) *Body {
	for _, b := range w.bodies {
		if name != "" && b.Name == name {
			return b
		}
	}
	if name != "" {
		return nil
	}
	for _, b := range w.bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// MarshalSnapshot captures the world and encodes it with msgpack.
func (w *World) MarshalSnapshot() ([]byte, error) {
	s, err := w.Capture()
	if err != nil {
		return nil, err
	}
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a msgpack snapshot and applies it.
func (w *World) UnmarshalSnapshot(data []byte) error {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	return w.Apply(&s)
}
