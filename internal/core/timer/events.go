package timer

import (
	"time"

	"github.com/neilberkman/pomo/internal/core/models"
)

// EventType defines the type of timer event.
type EventType string

const (
	// EventStateChange fires on start, pause, resume, and reset.
	EventStateChange EventType = "state_change"
	// EventProgress fires once per tick while the countdown is running.
	EventProgress EventType = "progress"
	// EventTransition fires exactly once per phase completion, whether
	// the countdown expired naturally or was skipped.
	EventTransition EventType = "transition"
)

// Event represents a timer update for observers.
type Event struct {
	Type                  EventType
	CompletedMode         models.Mode // transition events only
	NextMode              models.Mode // transition events only
	CompletedWorkSessions int
	Snapshot              models.Snapshot
	At                    time.Time
}

// Subscribe registers a new observer channel. Events are delivered
// non-blocking; slow observers miss events rather than stalling ticks.
// Subscribing after Close returns an already-closed channel.
func (t *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	t.evMu.Lock()
	if t.evClosed {
		close(ch)
	} else {
		t.events = append(t.events, ch)
	}
	t.evMu.Unlock()
	return ch
}

// emit holds evMu across the sends; they never block, and Close takes
// the same lock before closing, so a send on a closed channel cannot
// happen.
func (t *Timer) emit(event Event) {
	t.evMu.Lock()
	defer t.evMu.Unlock()
	for _, ch := range t.events {
		select {
		case ch <- event:
		default:
		}
	}
}
