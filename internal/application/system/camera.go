package system

import (
	"math"

	"github.com/younwookim/platformer/internal/ecs"
)

// UpdateCamera eases the camera toward its target and confines it to the
// level. The target may drift within the deadzone without moving the camera.
func UpdateCamera(f *Frame) {
	w := f.World
	id := w.CameraID
	cam, ok := w.Camera[id]
	if !ok {
		return
	}
	tr, ok := w.Transform[id]
	if !ok {
		return
	}
	size := w.Size[id]
	if target, ok := w.Transform[cam.Follow]; ok {
		center := ecs.Vec2{X: tr.Pos.X + size.W*0.5, Y: tr.Pos.Y + size.H*0.5}
		tr.Pos.X += follow(target.Pos.X-center.X, cam.Deadzone.X, cam.BaseSpeed.X*f.DT)
		tr.Pos.Y += follow(target.Pos.Y-center.Y, cam.Deadzone.Y, cam.BaseSpeed.Y*f.DT)
	}
	tr.Pos = ConfineCamera(tr.Pos, size, cam.LevelSize)
	w.Transform[id] = tr
}

// follow returns the step toward a target delta ignoring the deadzone
func follow(delta, deadzone, factor float64) float64 {
	over := math.Abs(delta) - deadzone
	if over <= 0 {
		return 0
	}
	return math.Copysign(over*math.Min(factor, 1), delta)
}

// ConfineCamera keeps a bottom-left anchored camera inside the level.
// A level smaller than the camera pins it to the origin.
func ConfineCamera(pos ecs.Vec2, size ecs.Size, level ecs.Vec2) ecs.Vec2 {
	return ecs.Vec2{
		X: clamp(pos.X, 0, math.Max(level.X-size.W, 0)),
		Y: clamp(pos.Y, 0, math.Max(level.Y-size.H, 0)),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
