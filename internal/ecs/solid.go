package ecs

// SolidTag categorizes an entity for movement blocking
type SolidTag int

const (
	SolidDefault SolidTag = iota
	SolidPlayer
	SolidEnemy
	SolidNoclip
)

func (s SolidTag) String() string {
	switch s {
	case SolidDefault:
		return "Default"
	case SolidPlayer:
		return "Player"
	case SolidEnemy:
		return "Enemy"
	case SolidNoclip:
		return "Noclip"
	default:
		return "Unknown"
	}
}

// CollidesWith reports whether two solids block each other.
// Noclip never blocks; Default blocks everything else; players and enemies
// pass through each other and themselves.
func (s SolidTag) CollidesWith(other SolidTag) bool {
	if s == SolidNoclip || other == SolidNoclip {
		return false
	}
	return s == SolidDefault || other == SolidDefault
}
