package system

import (
	"math"

	"github.com/younwookim/platformer/internal/ecs"
)

// UpdateLoader marks Loadable entities as Loaded while they are near a
// loader and unloads them once they leave its range. A camera loader
// measures from its center. Non-enemies get a wider range so the level
// around enemies is present before they wake up.
func UpdateLoader(f *Frame) {
	w := f.World
	diff := f.Settings.EntityLoader.EnemyLoadDistanceDifference

	for _, loaderID := range ecs.SortedIDs(w.Loader) {
		loader := w.Loader[loaderID]
		tr, ok := w.Transform[loaderID]
		if !ok {
			continue
		}
		loaderSize, hasSize := w.Size[loaderID]
		if loader.Distance == nil && !hasSize {
			continue
		}
		center := tr.Pos
		if loaderID == w.CameraID {
			center = ecs.Vec2{X: tr.Pos.X + loaderSize.W*0.5, Y: tr.Pos.Y + loaderSize.H*0.5}
		}

		for _, id := range ecs.SortedIDs(w.Loadable) {
			pos, ok := w.Transform[id]
			if !ok {
				continue
			}
			size := w.Size[id]

			var reach ecs.Vec2
			if loader.Distance != nil {
				reach = *loader.Distance
			} else {
				reach = ecs.Vec2{X: (loaderSize.W + size.W) * 0.5, Y: (loaderSize.H + size.H) * 0.5}
			}
			if _, enemy := w.Enemy[id]; !enemy {
				reach = reach.Add(diff)
			}

			in := math.Abs(center.X-pos.Pos.X) <= reach.X && math.Abs(center.Y-pos.Pos.Y) <= reach.Y
			if in {
				w.Loaded[id] = struct{}{}
			} else {
				delete(w.Loaded, id)
			}
		}
	}
}
