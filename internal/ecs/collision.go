package ecs

// CollisionPadding is how far apart two boxes may be and still count as touching
const CollisionPadding = 0.5

// Side is where a contact touches an entity, from that entity's point of view
type Side int

const (
	SideInner Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "Top"
	case SideBottom:
		return "Bottom"
	case SideLeft:
		return "Left"
	case SideRight:
		return "Right"
	default:
		return "Inner"
	}
}

// IsHorizontal returns true for Left and Right
func (s Side) IsHorizontal() bool { return s == SideLeft || s == SideRight }

// IsVertical returns true for Top and Bottom
func (s Side) IsVertical() bool { return s == SideTop || s == SideBottom }

// ContactState is the lifecycle stage of a contact
type ContactState int

const (
	ContactEnter ContactState = iota
	ContactSteady
	ContactExit
)

func (s ContactState) String() string {
	switch s {
	case ContactEnter:
		return "Enter"
	case ContactSteady:
		return "Steady"
	default:
		return "Exit"
	}
}

// Contact is one tracked collision with another entity.
// SideChanged is set on the Steady frame the contact moved to a new side.
type Contact struct {
	Side        Side
	State       ContactState
	SideChanged bool
}

// Touching reports whether the contact is ongoing (Enter or Steady)
func (c Contact) Touching() bool { return c.State != ContactExit }

// EnteredInner reports whether the boxes started overlapping this frame,
// as a new contact or coming in from an edge
func (c Contact) EnteredInner() bool {
	if c.Side != SideInner {
		return false
	}
	return c.State == ContactEnter || (c.State == ContactSteady && c.SideChanged)
}

// Collision tracks an entity's contacts across frames
type Collision struct {
	contacts map[EntityID]Contact
}

// NewCollision creates an empty contact set
func NewCollision() *Collision {
	return &Collision{contacts: make(map[EntityID]Contact)}
}

// CollisionWith returns the contact with other, if tracked
func (c *Collision) CollisionWith(other EntityID) (Contact, bool) {
	ct, ok := c.contacts[other]
	return ct, ok
}

// InCollision reports whether any contact is ongoing
func (c *Collision) InCollision() bool {
	for _, ct := range c.contacts {
		if ct.Touching() {
			return true
		}
	}
	return false
}

// ContactIDs returns the tracked contact IDs in ascending order
func (c *Collision) ContactIDs() []EntityID {
	return SortedIDs(c.contacts)
}

// Len returns the number of tracked contacts (including Exit)
func (c *Collision) Len() int { return len(c.contacts) }

// Advance moves every contact one frame forward.
// current maps the entities overlapping this frame to their side.
func (c *Collision) Advance(current map[EntityID]Side) {
	if c.contacts == nil {
		c.contacts = make(map[EntityID]Contact)
	}
	for id, ct := range c.contacts {
		if _, still := current[id]; still {
			continue
		}
		if ct.State == ContactExit {
			delete(c.contacts, id)
			continue
		}
		ct.State = ContactExit
		c.contacts[id] = ct
	}
	for id, side := range current {
		prev, ok := c.contacts[id]
		state := ContactEnter
		if ok && prev.State != ContactExit {
			state = ContactSteady
		}
		c.contacts[id] = Contact{
			Side:        side,
			State:       state,
			SideChanged: state == ContactSteady && prev.Side != side,
		}
	}
}

// Clear drops every contact
func (c *Collision) Clear() {
	c.contacts = make(map[EntityID]Contact)
}

// contactSide classifies the contact between self and other.
// Boxes overlapping on both axes are Inner. Boxes flush or within
// CollisionPadding on one axis touch on the side facing other, which is
// where the movement integrator leaves blocking solids.
func contactSide(self, other Rect) (Side, bool) {
	ox, oy := self.Overlap(other)
	if ox < -CollisionPadding || oy < -CollisionPadding {
		return SideInner, false
	}
	if ox <= 0 && oy <= 0 {
		// corners touching diagonally
		return SideInner, false
	}
	if ox > moveEpsilon && oy > moveEpsilon {
		return SideInner, true
	}

	sc, oc := self.Center(), other.Center()
	if ox < oy {
		if oc.X < sc.X {
			return SideLeft, true
		}
		return SideRight, true
	}
	if oc.Y < sc.Y {
		return SideBottom, true
	}
	return SideTop, true
}

// UpdateCollisions recomputes contacts for every entity with CheckCollision
func UpdateCollisions(w *World) {
	candidates := make([]EntityID, 0, len(w.Collision))
	for _, id := range SortedIDs(w.Collision) {
		if !w.Active(id) {
			continue
		}
		if _, ok := w.Bounds(id); !ok {
			continue
		}
		candidates = append(candidates, id)
	}

	for _, id := range SortedIDs(w.CheckCollision) {
		col, ok := w.Collision[id]
		if !ok {
			continue
		}
		self, ok := w.Bounds(id)
		if !ok || !w.Active(id) {
			continue
		}

		current := make(map[EntityID]Side)
		for _, other := range candidates {
			if other == id {
				continue
			}
			ob, _ := w.Bounds(other)
			if side, hit := contactSide(self, ob); hit {
				current[other] = side
			}
		}
		col.Advance(current)
	}
}

// IsTouching reports whether id has an ongoing contact on side with a solid
// that blocks it
func (w *World) IsTouching(id EntityID, side Side) bool {
	col, ok := w.Collision[id]
	if !ok {
		return false
	}
	solid, ok := w.Solid[id]
	if !ok {
		return false
	}
	for other, ct := range col.contacts {
		if !ct.Touching() || ct.Side != side {
			continue
		}
		if os, ok := w.Solid[other]; ok && solid.CollidesWith(os) {
			return true
		}
	}
	return false
}

// IsTouchingHorizontally reports a blocking contact on Left or Right
func (w *World) IsTouchingHorizontally(id EntityID) bool {
	return w.IsTouching(id, SideLeft) || w.IsTouching(id, SideRight)
}

// IsTouchingVertically reports a blocking contact on Top or Bottom
func (w *World) IsTouchingVertically(id EntityID) bool {
	return w.IsTouching(id, SideTop) || w.IsTouching(id, SideBottom)
}
