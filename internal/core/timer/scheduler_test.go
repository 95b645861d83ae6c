package timer

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerFiresPeriodically(t *testing.T) {
	var count atomic.Int64
	s := newScheduler(5 * time.Millisecond)
	if err := s.arm(func() { count.Add(1) }); err != nil {
		t.Fatalf("arm returned error: %v", err)
	}
	defer s.disarm()

	deadline := time.After(2 * time.Second)
	for count.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("scheduler fired %d times, want at least 3", count.Load())
		case <-time.After(time.Millisecond):
		}
	}
}

func TestSchedulerArmWhileArmed(t *testing.T) {
	s := newScheduler(time.Minute)
	if err := s.arm(func() {}); err != nil {
		t.Fatalf("first arm returned error: %v", err)
	}
	defer s.disarm()

	if err := s.arm(func() {}); !errors.Is(err, ErrSchedulerActive) {
		t.Errorf("second arm error = %v, want ErrSchedulerActive", err)
	}
}

func TestSchedulerRejectsInvalidInterval(t *testing.T) {
	s := newScheduler(0)
	if err := s.arm(func() {}); err == nil {
		t.Error("arm accepted a zero interval")
	}
}

func TestSchedulerDisarmIsSynchronous(t *testing.T) {
	var count atomic.Int64
	s := newScheduler(time.Millisecond)
	if err := s.arm(func() { count.Add(1) }); err != nil {
		t.Fatalf("arm returned error: %v", err)
	}

	// Let it tick at least once, then disarm.
	time.Sleep(10 * time.Millisecond)
	s.disarm()
	after := count.Load()

	time.Sleep(20 * time.Millisecond)
	if got := count.Load(); got != after {
		t.Errorf("callback fired after disarm returned: %d -> %d", after, got)
	}
	if s.armed() {
		t.Error("scheduler still reports armed after disarm")
	}
}

func TestSchedulerDisarmIsIdempotent(t *testing.T) {
	s := newScheduler(time.Millisecond)
	s.disarm() // never armed

	if err := s.arm(func() {}); err != nil {
		t.Fatalf("arm returned error: %v", err)
	}
	s.disarm()
	s.disarm() // double disarm must not panic or block

	// Re-arm after disarm works.
	if err := s.arm(func() {}); err != nil {
		t.Errorf("re-arm after disarm returned error: %v", err)
	}
	s.disarm()
}
