package system

import (
	"github.com/younwookim/platformer/internal/ecs"
)

// UpdatePhysics integrates gravity, velocity caps and positions.
// Player control and AI run before it so their decay flags are set.
func UpdatePhysics(f *Frame) {
	ecs.ApplyGravity(f.World, f.DT)
	ecs.LimitVelocities(f.World)
	ecs.MoveEntities(f.World, f.DT)
}

// UpdateDecay slows velocities toward zero, honoring this frame's flags
func UpdateDecay(f *Frame) {
	ecs.DecreaseVelocities(f.World, f.DT)
}

// UpdateAnimations advances one-shot animations
func UpdateAnimations(f *Frame) {
	for _, id := range ecs.SortedIDs(f.World.Animation) {
		if a := f.World.Animation[id]; a != nil {
			a.Tick(f.DT)
		}
	}
}
