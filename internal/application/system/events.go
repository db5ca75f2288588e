package system

import "github.com/younwookim/platformer/internal/domain/entity"

// Event is something a system reports to the level manager during a step
type Event interface {
	isEvent()
}

// EnemyKilledEvent is emitted when an enemy dies and is removed
type EnemyKilledEvent struct {
	Type entity.EnemyType
}

func (EnemyKilledEvent) isEvent() {}

// ItemBoughtEvent is emitted when the player buys an item
type ItemBoughtEvent struct {
	Type entity.ItemType
}

func (ItemBoughtEvent) isEvent() {}

// PlayerDiedEvent is emitted once when the player loses control by dying
type PlayerDiedEvent struct{}

func (PlayerDiedEvent) isEvent() {}

// GoalReachedEvent is emitted when the player touches the goal
type GoalReachedEvent struct{}

func (GoalReachedEvent) isEvent() {}

// EventLog collects events in emission order. A nil log drops events.
type EventLog struct {
	events []Event
}

// Emit appends an event
func (l *EventLog) Emit(e Event) {
	if l == nil {
		return
	}
	l.events = append(l.events, e)
}

// Drain returns the collected events and empties the log
func (l *EventLog) Drain() []Event {
	if l == nil {
		return nil
	}
	out := l.events
	l.events = nil
	return out
}

// Len returns the number of pending events
func (l *EventLog) Len() int {
	if l == nil {
		return 0
	}
	return len(l.events)
}
