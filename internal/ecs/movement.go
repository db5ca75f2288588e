package ecs

import "math"

// moveEpsilon is the overlap below which two solids count as merely touching
const moveEpsilon = 1e-6

// ResetDecayFlags clears decay suppression; call first every frame
func ResetDecayFlags(w *World) {
	for _, dv := range w.DecreaseVelocity {
		dv.ResetFlags()
	}
}

// ApplyGravity adds gravity to velocity for entities with enabled gravity
func ApplyGravity(w *World, dt float64) {
	for id, g := range w.Gravity {
		if !g.Enabled || !w.Active(id) {
			continue
		}
		vel, ok := w.Velocity[id]
		if !ok {
			continue
		}
		vel.X += g.Accel.X * dt
		vel.Y += g.Accel.Y * dt
		w.Velocity[id] = vel
	}
}

// LimitVelocities clamps velocities to MaxVelocity per axis
func LimitVelocities(w *World) {
	for id, max := range w.MaxVelocity {
		vel, ok := w.Velocity[id]
		if !ok {
			continue
		}
		if max.X != nil {
			vel.X = clampAbs(vel.X, *max.X)
		}
		if max.Y != nil {
			vel.Y = clampAbs(vel.Y, *max.Y)
		}
		w.Velocity[id] = vel
	}
}

func clampAbs(v, limit float64) float64 {
	limit = math.Abs(limit)
	return math.Max(-limit, math.Min(limit, v))
}

// MoveEntities integrates position += velocity * dt.
// Solid entities move one axis at a time and stop flush against any solid
// that blocks them.
func MoveEntities(w *World, dt float64) {
	blockers := make([]EntityID, 0, len(w.Solid))
	for _, id := range SortedIDs(w.Solid) {
		if _, ok := w.Size[id]; ok && w.Active(id) {
			blockers = append(blockers, id)
		}
	}

	for _, id := range SortedIDs(w.Velocity) {
		if !w.Active(id) {
			continue
		}
		tr, ok := w.Transform[id]
		if !ok {
			continue
		}
		vel := w.Velocity[id]
		dx, dy := vel.X*dt, vel.Y*dt

		solid, isSolid := w.Solid[id]
		size, hasSize := w.Size[id]
		if !isSolid || !hasSize {
			tr.Pos.X += dx
			tr.Pos.Y += dy
			w.Transform[id] = tr
			continue
		}

		if dx != 0 {
			tr.Pos.X += dx
			for _, r := range overlappingBlockers(w, id, solid, CenteredRect(tr.Pos, size), blockers) {
				if dx > 0 {
					tr.Pos.X = math.Min(tr.Pos.X, r.X-size.W*0.5)
				} else {
					tr.Pos.X = math.Max(tr.Pos.X, r.MaxX()+size.W*0.5)
				}
			}
		}
		if dy != 0 {
			tr.Pos.Y += dy
			for _, r := range overlappingBlockers(w, id, solid, CenteredRect(tr.Pos, size), blockers) {
				if dy > 0 {
					tr.Pos.Y = math.Min(tr.Pos.Y, r.Y-size.H*0.5)
				} else {
					tr.Pos.Y = math.Max(tr.Pos.Y, r.MaxY()+size.H*0.5)
				}
			}
		}
		w.Transform[id] = tr
	}
}

// overlappingBlockers returns the boxes of solids that block self and
// overlap box by more than moveEpsilon
func overlappingBlockers(w *World, self EntityID, solid SolidTag, box Rect, blockers []EntityID) []Rect {
	var hits []Rect
	for _, other := range blockers {
		if other == self {
			continue
		}
		if !solid.CollidesWith(w.Solid[other]) {
			continue
		}
		ob, ok := w.Bounds(other)
		if !ok {
			continue
		}
		ox, oy := box.Overlap(ob)
		if ox <= moveEpsilon || oy <= moveEpsilon {
			continue
		}
		hits = append(hits, ob)
	}
	return hits
}

// DecreaseVelocities decays each axis toward zero unless suppressed this frame
func DecreaseVelocities(w *World, dt float64) {
	for id, dv := range w.DecreaseVelocity {
		if !w.Active(id) {
			continue
		}
		vel, ok := w.Velocity[id]
		if !ok {
			continue
		}
		if dv.shouldDecreaseX(vel.X) {
			vel.X = decayToward0(vel.X, dv.Rate.X*dt)
		}
		if dv.shouldDecreaseY(vel.Y) {
			vel.Y = decayToward0(vel.Y, dv.Rate.Y*dt)
		}
		w.Velocity[id] = vel
	}
}

func decayToward0(v, amount float64) float64 {
	switch {
	case v > 0:
		return math.Max(0, v-amount)
	case v < 0:
		return math.Min(0, v+amount)
	default:
		return 0
	}
}
