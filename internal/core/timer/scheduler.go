package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrSchedulerActive indicates an arm attempt while the periodic
// callback is still armed.
var ErrSchedulerActive = errors.New("tick scheduler already armed")

// scheduler fires a callback at a fixed period. It has no awareness of
// the state machine beyond invoking the callback; duplicate-timer
// protection lives in the Start guard, not here.
type scheduler struct {
	interval time.Duration
	mu       sync.Mutex
	stop     chan struct{}
	done     chan struct{}
}

func newScheduler(interval time.Duration) *scheduler {
	return &scheduler{interval: interval}
}

// arm starts the periodic callback. At most one callback loop may be
// active; arming an armed scheduler is an error.
func (s *scheduler) arm(tick func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.interval <= 0 {
		return fmt.Errorf("invalid tick interval %v", s.interval)
	}
	if s.stop != nil {
		return ErrSchedulerActive
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(tick, s.stop, s.done)
	return nil
}

// disarm cancels the callback loop and releases the underlying ticker.
// It is idempotent and synchronous: once it returns, the loop goroutine
// has exited and no further callback will be invoked.
func (s *scheduler) disarm() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (s *scheduler) armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

func (s *scheduler) run(tick func(), stop, done chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(done)

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// A stop racing a pending tick wins.
			select {
			case <-stop:
				return
			default:
			}
			tick()
		}
	}
}
