package arcade

// Collidable is anything Collide and Overlap accept: a single *Body, a
// *Group, or a Bodies slice. The set is closed; it is resolved once at the
// dispatch boundary into a flat list of bodies.
type Collidable interface {
	collidable()
}

func (*Body) collidable()  {}
func (*Group) collidable() {}
func (Bodies) collidable() {}

// Bodies is an ad-hoc collection of bodies.
type Bodies []*Body

// Of collects the bodies of the given owners into a Bodies collection.
func Of(owners ...BodyOwner) Bodies {
	out := make(Bodies, 0, len(owners))
	for _, o := range owners {
		if o == nil {
			continue
		}
		if b := o.PhysicsBody(); b != nil {
			out = append(out, b)
		}
	}
	return out
}

// Group is a named, ordered collection of bodies. Collide(g, g) checks each
// unique unordered pair of members once.
type Group struct {
	Name    string
	members []*Body
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	return &Group{Name: name}
}

// Add appends owners' bodies to the group. Bodies already in the group are
// not added twice.
func (g *Group) Add(owners ...BodyOwner) {
	for _, o := range owners {
		if o == nil {
			continue
		}
		b := o.PhysicsBody()
		if b == nil || g.Contains(b) {
			continue
		}
		g.members = append(g.members, b)
	}
}

// Remove removes the owner's body from the group, preserving member order.
func (g *Group) Remove(o BodyOwner) bool {
	b := o.PhysicsBody()
	for i, m := range g.members {
		if m == b {
			g.members = append(g.members[:i], g.members[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether b is a member of the group.
func (g *Group) Contains(b *Body) bool {
	for _, m := range g.members {
		if m == b {
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (g *Group) Len() int { return len(g.members) }

// Bodies returns the group's members. The returned slice MUST NOT be mutated.
func (g *Group) Bodies() []*Body { return g.members }

// Prune drops destroyed members and returns how many were removed.
func (g *Group) Prune() int {
	n := 0
	kept := g.members[:0]
	for _, m := range g.members {
		if m.destroyed {
			n++
			continue
		}
		kept = append(kept, m)
	}
	for i := len(kept); i < len(g.members); i++ {
		g.members[i] = nil
	}
	g.members = kept
	return n
}

// expand resolves a Collidable into its member list.
func expand(c Collidable) []*Body {
	switch v := c.(type) {
	case *Body:
		if v == nil {
			return nil
		}
		return []*Body{v}
	case *Group:
		if v == nil {
			return nil
		}
		return v.members
	case Bodies:
		return v
	}
	return nil
}

// sameCollection reports whether a and b denote the same collection, which
// switches dispatch to unique unordered pairs.
func sameCollection(a, b Collidable) bool {
	switch va := a.(type) {
	case *Body:
		vb, ok := b.(*Body)
		return ok && va == vb
	case *Group:
		vb, ok := b.(*Group)
		return ok && va == vb
	case Bodies:
		vb, ok := b.(Bodies)
		return ok && len(va) > 0 && len(va) == len(vb) && &va[0] == &vb[0]
	}
	return false
}
