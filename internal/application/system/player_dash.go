package system

import (
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/ecs"
)

// UpdatePlayerDash starts, continues and ends the player's dash.
// Dash timing runs on the DashState clock, which only advances with the
// simulation so pausing freezes it.
func UpdatePlayerDash(f *Frame) {
	w := f.World
	id := w.PlayerID
	player, ok := w.PlayerData()
	if !ok || !player.InControl {
		return
	}
	dash, ok := w.Dash[id]
	if !ok || dash == nil {
		return
	}
	vel, ok := w.Velocity[id]
	if !ok {
		return
	}
	ms := f.DT * 1000
	dash.Clock += ms

	data := &player.Items.Dash
	if data.IsDashing {
		dash.Elapsed += ms
		if dash.Elapsed > float64(data.DurationMS) {
			stopDash(w, id, data)
		} else {
			applyDash(w, id, &vel, data, dash.Direction)
		}
		w.Velocity[id] = vel
		return
	}

	if !data.HasDash() {
		dash.LastAction = nil
		return
	}

	for _, dir := range ecs.DashDirections {
		if !f.Input.DashDown(dir) {
			continue
		}
		doubleTap := dash.LastAction != nil &&
			dash.LastAction.Direction == dir &&
			dash.Clock-dash.LastAction.At <= float64(data.InputDelayMS)
		if f.Input.DashTrigger || doubleTap {
			startDash(w, id, dash, data, dir)
			applyDash(w, id, &vel, data, dir)
		} else {
			dash.LastAction = &ecs.DashAction{Direction: dir, At: dash.Clock}
		}
		break
	}
	w.Velocity[id] = vel
}

func startDash(w *ecs.World, id ecs.EntityID, dash *ecs.DashState, data *entity.DashData, dir ecs.DashDirection) {
	dash.LastAction = nil
	dash.Elapsed = 0
	dash.Direction = dir
	data.IsDashing = true
	data.UsedDashes++
	if g, ok := w.Gravity[id]; ok {
		g.Enabled = false
		w.Gravity[id] = g
	}
}

func stopDash(w *ecs.World, id ecs.EntityID, data *entity.DashData) {
	data.IsDashing = false
	if g, ok := w.Gravity[id]; ok {
		g.Enabled = true
		w.Gravity[id] = g
	}
}

// applyDash sets the constant dash velocity on the axes the direction uses
func applyDash(w *ecs.World, id ecs.EntityID, vel *ecs.Velocity, data *entity.DashData, dir ecs.DashDirection) {
	dv := decayOf(w, id)
	v := dir.Vector()
	if v.X != 0 {
		vel.X = data.Velocity.X * v.X
		dv.DontDecreaseX()
	}
	if v.Y != 0 {
		vel.Y = data.Velocity.Y * v.Y
		dv.DontDecreaseY()
	}
}
