package ecs

import (
	"fmt"
	"time"
)

// Clock is the source of wall-clock time for timers
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now
type SystemClock struct{}

// Now implements Clock
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is advanced explicitly (tests, replays)
type ManualClock struct {
	now time.Time
}

// NewManualClock creates a clock starting at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now implements Clock
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// TimerState is the lifecycle state of a Timer
type TimerState int

const (
	TimerStopped TimerState = iota
	TimerRunning
	TimerPaused
	TimerFinished
)

// Timer measures elapsed wall-clock time excluding paused spans
type Timer struct {
	clock     Clock
	state     TimerState
	startedAt time.Time
	pausedAt  time.Time
	paused    time.Duration // accumulated paused duration
	final     time.Duration // elapsed time frozen by Finish
}

// NewTimer creates a stopped timer
func NewTimer(clock Clock) *Timer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Timer{clock: clock}
}

// NewStartedTimer creates a timer that is already running
func NewStartedTimer(clock Clock) *Timer {
	t := NewTimer(clock)
	t.Start()
	return t
}

// Start (re)starts the timer from zero
func (t *Timer) Start() {
	t.state = TimerRunning
	t.startedAt = t.clock.Now()
	t.paused = 0
	t.final = 0
}

// Pause freezes elapsed time. No-op unless running.
func (t *Timer) Pause() {
	if t.state != TimerRunning {
		return
	}
	t.state = TimerPaused
	t.pausedAt = t.clock.Now()
}

// Resume continues a paused timer. No-op unless paused.
func (t *Timer) Resume() {
	if t.state != TimerPaused {
		return
	}
	t.paused += t.clock.Now().Sub(t.pausedAt)
	t.state = TimerRunning
}

// Finish stops the timer and keeps its elapsed time readable
func (t *Timer) Finish() {
	if t.state != TimerRunning && t.state != TimerPaused {
		return
	}
	t.final = t.Elapsed()
	t.state = TimerFinished
}

// Stop resets the timer to its initial state
func (t *Timer) Stop() {
	t.state = TimerStopped
	t.paused = 0
	t.final = 0
}

// State returns the current state
func (t *Timer) State() TimerState { return t.state }

// IsRunning returns true if the timer is counting
func (t *Timer) IsRunning() bool { return t.state == TimerRunning }

// IsPaused returns true if the timer is paused
func (t *Timer) IsPaused() bool { return t.state == TimerPaused }

// StartedAt returns the time Start was last called
func (t *Timer) StartedAt() time.Time { return t.startedAt }

// Elapsed returns the counted time
func (t *Timer) Elapsed() time.Duration {
	switch t.state {
	case TimerRunning:
		return t.clock.Now().Sub(t.startedAt) - t.paused
	case TimerPaused:
		return t.pausedAt.Sub(t.startedAt) - t.paused
	case TimerFinished:
		return t.final
	default:
		return 0
	}
}

// FormatDuration renders a duration as MM:SS.mmm, or H:MM:SS.mmm past an hour
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	hours := ms / 3_600_000
	minutes := (ms / 60_000) % 60
	seconds := (ms / 1000) % 60
	millis := ms % 1000
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%03d", hours, minutes, seconds, millis)
	}
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}
