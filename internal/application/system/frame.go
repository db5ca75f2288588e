package system

import (
	"github.com/younwookim/platformer/internal/ecs"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// Frame is what one pipeline step hands to every system
type Frame struct {
	World    *ecs.World
	Settings *config.Settings
	Clock    ecs.Clock
	Input    InputState
	DT       float64 // seconds
	Bullets  *BulletQueue
	Events   *EventLog
}

// sides is a snapshot of the blocking contacts of one entity
type sides struct {
	left, right, top, bottom bool
}

func touchingSides(w *ecs.World, id ecs.EntityID) sides {
	return sides{
		left:   w.IsTouching(id, ecs.SideLeft),
		right:  w.IsTouching(id, ecs.SideRight),
		top:    w.IsTouching(id, ecs.SideTop),
		bottom: w.IsTouching(id, ecs.SideBottom),
	}
}

func (s sides) horizontally() bool { return s.left || s.right }

func (s sides) vertically() bool { return s.top || s.bottom }

// decayOf returns the entity's decay component or a detached one, so
// systems can set suppression flags without nil checks
func decayOf(w *ecs.World, id ecs.EntityID) *ecs.DecreaseVelocity {
	if dv, ok := w.DecreaseVelocity[id]; ok && dv != nil {
		return dv
	}
	return &ecs.DecreaseVelocity{}
}

// animationOf returns the entity's animation or a detached one
func animationOf(w *ecs.World, id ecs.EntityID) *ecs.Animation {
	if a, ok := w.Animation[id]; ok && a != nil {
		return a
	}
	return &ecs.Animation{}
}

// goalReached reports whether any goal fired this level
func goalReached(w *ecs.World) bool {
	for _, g := range w.Goal {
		if g.NextLevel {
			return true
		}
	}
	return false
}

// enterOn reports whether col holds a contact with other that started this frame
func enterOn(col *ecs.Collision, other ecs.EntityID) (ecs.Contact, bool) {
	if col == nil {
		return ecs.Contact{}, false
	}
	ct, ok := col.CollisionWith(other)
	if !ok || ct.State != ecs.ContactEnter {
		return ecs.Contact{}, false
	}
	return ct, true
}

// enteredInner reports whether other started overlapping the owner of col
// this frame
func enteredInner(col *ecs.Collision, other ecs.EntityID) bool {
	if col == nil {
		return false
	}
	ct, ok := col.CollisionWith(other)
	return ok && ct.EnteredInner()
}
