package arcade

import "fmt"

// Collide tests a against b, separates every overlapping pair, and calls
// onCollide for each pair that was resolved. process, when non-nil, is
// consulted after overlap is found and before resolution; returning false
// skips the pair. Collide reports whether at least one pair collided.
//
// a and b may each be a *Body, a *Group, or a Bodies slice. Passing the same
// collection twice checks each unique unordered pair of members once.
func (w *World) Collide(a, b Collidable, onCollide CollideFunc, process ProcessFunc) bool {
	return w.dispatch(a, b, RelationCollide, onCollide, process)
}

// Overlap tests a against b like Collide but never separates or changes
// velocities. onOverlap is called for each overlapping pair that passes
// process. Calling Overlap repeatedly without a step in between has no
// effect on body state.
func (w *World) Overlap(a, b Collidable, onOverlap CollideFunc, process ProcessFunc) bool {
	return w.dispatch(a, b, RelationOverlap, onOverlap, process)
}

func (w *World) dispatch(a, b Collidable, rel Relation, cb CollideFunc, process ProcessFunc) bool {
	// Callbacks may dispatch again; nested calls get their own buffers.
	grid, bufA, bufB := w.grid, w.bufA[:0], w.bufB[:0]
	nested := w.dispatching > 0
	if nested {
		grid, bufA, bufB = newSpatialGrid(), nil, nil
	}
	w.dispatching++
	defer func() { w.dispatching-- }()

	self := sameCollection(a, b)
	la := w.usable(expand(a), bufA)
	lb := la
	if !self {
		lb = w.usable(expand(b), bufB)
	}
	if !nested {
		w.bufA = la
		if !self {
			w.bufB = lb
		}
	}
	if len(la) == 0 || len(lb) == 0 {
		return false
	}

	inStep := w.phase != PhaseIdle
	if inStep {
		w.phase = PhaseBroadPhase
	}
	pairs := grid.crossPairs(la, lb, cellSizeFor(w.CellSize, la, lb), self)
	w.stats.Candidates += len(pairs)
	if inStep {
		w.phase = PhaseResolving
	}

	var seen map[[2]*Body]struct{}
	if !self && sharesMembers(la, lb) {
		seen = make(map[[2]*Body]struct{})
	}

	hit := false
	for _, p := range pairs {
		ba, bb := la[p.I], lb[p.J]
		if ba == bb {
			continue
		}
		if seen != nil {
			if _, dup := seen[[2]*Body{bb, ba}]; dup {
				continue
			}
			k := [2]*Body{ba, bb}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
		}
		if w.resolvePair(ba, bb, rel, cb, process) {
			hit = true
		}
	}
	return hit
}

// resolvePair runs the narrow phase for one candidate pair and, on overlap,
// the process filter, resolution, callbacks, and events.
func (w *World) resolvePair(a, b *Body, rel Relation, cb CollideFunc, process ProcessFunc) bool {
	if !a.Enable || !b.Enable {
		return false
	}
	c, ok := narrowPhase(a, b)
	if !ok {
		return false
	}
	c.Relation = rel
	if process != nil && !process(a, b) {
		return false
	}

	if rel == RelationOverlap {
		w.stats.Overlaps++
		if cb != nil {
			cb(a, b)
		}
		w.emitOverlap(a, b)
		return true
	}

	if !separate(&c) {
		// A face with collision disabled: the overlap is still reported.
		w.stats.Overlaps++
		w.emitOverlap(a, b)
		return false
	}
	w.stats.Collisions++
	if a.Embedded {
		w.stats.Embedded++
	}
	if cb != nil {
		cb(a, b)
	}
	w.emitCollide(a, b)
	w.emitTouch(a, b)
	return true
}

// usable filters list into out, dropping bodies that cannot take part in a
// pair test this call. Destroyed and malformed bodies produce a diagnostic;
// disabled bodies and bodies with every face off are skipped silently.
func (w *World) usable(list []*Body, out []*Body) []*Body {
	for _, b := range list {
		if b == nil {
			continue
		}
		if b.destroyed {
			w.diagnose(b, nil, fmt.Errorf("collide %s: %w", b, ErrStaleBody))
			continue
		}
		if !b.Enable || !b.CheckCollision.Any() || (b.skipThisStep && w.phase != PhaseIdle) {
			continue
		}
		if err := b.validate(); err != nil {
			w.diagnose(b, nil, fmt.Errorf("collide %s: %w", b, err))
			continue
		}
		b.refreshBounds()
		out = append(out, b)
	}
	return out
}

// sharesMembers reports whether any body appears in both lists.
func sharesMembers(a, b []*Body) bool {
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	if len(small) == 0 {
		return false
	}
	set := make(map[*Body]struct{}, len(small))
	for _, x := range small {
		set[x] = struct{}{}
	}
	for _, x := range large {
		if _, ok := set[x]; ok {
			return true
		}
	}
	return false
}
