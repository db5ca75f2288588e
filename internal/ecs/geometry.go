package ecs

import (
	"math"

	"github.com/younwookim/platformer/internal/domain/entity"
)

// Vec2 is a 2D vector in world units.
// World coordinates are Y-up: positive Y points toward the ceiling.
type Vec2 = entity.Vector

// Rect is an axis-aligned box given by its minimum corner and size
type Rect struct {
	X, Y float64 // bottom-left corner
	W, H float64
}

// CenteredRect builds a box around a center point
func CenteredRect(center Vec2, size Size) Rect {
	return Rect{
		X: center.X - size.W*0.5,
		Y: center.Y - size.H*0.5,
		W: size.W,
		H: size.H,
	}
}

// MaxX returns the right edge
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the top edge
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Center returns the box center
func (r Rect) Center() Vec2 { return Vec2{X: r.X + r.W*0.5, Y: r.Y + r.H*0.5} }

// Overlap returns the penetration depth on each axis.
// Negative values are the gap between the boxes.
func (r Rect) Overlap(o Rect) (ox, oy float64) {
	ox = math.Min(r.MaxX(), o.MaxX()) - math.Max(r.X, o.X)
	oy = math.Min(r.MaxY(), o.MaxY()) - math.Max(r.Y, o.Y)
	return ox, oy
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Sign returns -1, 0 or 1
func Sign(v float64) float64 { return sign(v) }
