package timer

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/neilberkman/pomo/internal/core/config"
	"github.com/neilberkman/pomo/internal/core/models"
)

// Clock supplies wall-clock time; injectable for tests and recovery.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Persister stores the session state after every mutating operation.
// Save failures are logged and never interrupt the timer.
type Persister interface {
	Save(models.SessionState) error
}

// Hooks receives lifecycle callbacks. Invocation is best-effort: errors
// and panics are logged at the call site and never abort a transition.
type Hooks interface {
	OnStart(mode models.Mode) error
	OnWorkComplete(next models.Mode) error
	OnBreakComplete() error
}

// Options contains runtime collaborators for the Timer.
type Options struct {
	Clock Clock     // defaults to the system clock
	Store Persister // optional write-through persistence
	Hooks Hooks     // optional lifecycle hooks

	// TickInterval is the scheduler period, defaulting to one second.
	TickInterval time.Duration

	// ManualTick disables the background scheduler; the caller drives the
	// countdown through Tick. Used by one-shot CLI commands (which
	// recompute remaining time from timestamps instead of ticking) and by
	// tests.
	ManualTick bool

	// Initial seeds the timer with recovered state instead of idle.
	Initial *models.SessionState
}

// Timer is the session state machine: the single owner of the timer
// state, enforcing legal transitions between work and break phases.
type Timer struct {
	mu     sync.Mutex
	cfg    config.Config
	state  models.SessionState
	clock  Clock
	store  Persister
	hooks  Hooks
	sched  *scheduler
	manual bool

	// Observer channels live under their own lock so emits (which run
	// outside t.mu) cannot race Close into a send on a closed channel.
	evMu     sync.Mutex
	evClosed bool
	events   []chan Event
}

// New creates a Timer with the provided configuration and collaborators.
func New(cfg config.Config, opts Options) *Timer {
	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}
	interval := opts.TickInterval
	if interval == 0 {
		interval = time.Second
	}
	state := models.NewIdleState()
	if opts.Initial != nil {
		state = *opts.Initial
	}
	t := &Timer{
		cfg:    cfg,
		state:  state,
		clock:  clock,
		store:  opts.Store,
		hooks:  opts.Hooks,
		sched:  newScheduler(interval),
		manual: opts.ManualTick,
	}
	// A recovered running session gets its tick source back immediately;
	// the Start guard would otherwise leave it frozen.
	if !t.manual && t.state.Run == models.RunRunning {
		if err := t.sched.arm(t.Tick); err != nil {
			log.Printf("Failed to arm tick scheduler for recovered session: %v", err)
		}
	}
	return t
}

// Start begins a countdown in the given mode, defaulting to work. If a
// session is already running this is a deliberate idempotency guard and
// returns the unchanged snapshot; it protects against the double-timer
// bug where a second tick source shadows the first.
func (t *Timer) Start(mode models.Mode) (models.Snapshot, error) {
	t.mu.Lock()
	if t.state.Run == models.RunRunning {
		snap := t.state.Snapshot()
		t.mu.Unlock()
		return snap, nil
	}

	if mode == "" || mode == models.ModeIdle {
		mode = models.ModeWork
	}
	if _, err := models.ParseMode(string(mode)); err != nil {
		snap := t.state.Snapshot()
		t.mu.Unlock()
		return snap, err
	}

	// Arm before mutating: a scheduler failure must leave the state
	// untouched rather than running with no tick source.
	if err := t.armLocked(); err != nil {
		snap := t.state.Snapshot()
		t.mu.Unlock()
		return snap, err
	}

	now := t.clock.Now()
	t.state.Mode = mode
	t.state.RemainingSeconds = t.cfg.DurationSeconds(mode)
	t.state.Run = models.RunRunning
	t.state.SessionStartedAt = &now
	t.state.PhaseStartedAt = &now
	t.state.PausedAt = nil
	snap := t.persistLocked()
	t.mu.Unlock()

	if t.hooks != nil {
		t.invokeHook("on_start", func() error { return t.hooks.OnStart(mode) })
	}
	t.emit(Event{Type: EventStateChange, Snapshot: snap, CompletedWorkSessions: snap.CompletedWorkSessions, At: now})
	return snap, nil
}

// Pause suspends a running countdown. The session stays active but no
// tick fires until Resume. No-op unless running.
func (t *Timer) Pause() (models.Snapshot, error) {
	t.mu.Lock()
	if t.state.Run != models.RunRunning {
		snap := t.state.Snapshot()
		t.mu.Unlock()
		return snap, nil
	}

	now := t.clock.Now()
	t.state.Run = models.RunPaused
	t.state.PausedAt = &now
	snap := t.persistLocked()
	t.mu.Unlock()

	// Outside the lock: the loop goroutine may be blocked in Tick, which
	// now no-ops against the paused state.
	t.disarm()
	t.emit(Event{Type: EventStateChange, Snapshot: snap, CompletedWorkSessions: snap.CompletedWorkSessions, At: now})
	return snap, nil
}

// Resume continues a paused countdown. No-op unless paused. The drift
// anchor moves to now so that persisted remaining time stays accurate;
// paused time never counts against the session. PhaseStartedAt keeps
// recording when the phase really began.
func (t *Timer) Resume() (models.Snapshot, error) {
	t.mu.Lock()
	if t.state.Run != models.RunPaused {
		snap := t.state.Snapshot()
		t.mu.Unlock()
		return snap, nil
	}

	if err := t.armLocked(); err != nil {
		snap := t.state.Snapshot()
		t.mu.Unlock()
		return snap, err
	}

	now := t.clock.Now()
	t.state.Run = models.RunRunning
	t.state.PausedAt = nil
	t.state.SessionStartedAt = &now
	snap := t.persistLocked()
	t.mu.Unlock()

	t.emit(Event{Type: EventStateChange, Snapshot: snap, CompletedWorkSessions: snap.CompletedWorkSessions, At: now})
	return snap, nil
}

// Reset stops any countdown and returns to idle. The completed-session
// counter survives a reset; use ResetAll to clear it.
func (t *Timer) Reset() models.Snapshot {
	return t.reset(false)
}

// ResetAll resets the timer and zeroes the completed-session counter.
func (t *Timer) ResetAll() models.Snapshot {
	return t.reset(true)
}

func (t *Timer) reset(clearCount bool) models.Snapshot {
	t.mu.Lock()
	t.state.Mode = models.ModeIdle
	t.state.RemainingSeconds = 0
	t.state.Run = models.RunIdle
	t.state.SessionStartedAt = nil
	t.state.PhaseStartedAt = nil
	t.state.PausedAt = nil
	if clearCount {
		t.state.CompletedWorkSessions = 0
	}
	snap := t.persistLocked()
	t.mu.Unlock()

	t.disarm()
	t.emit(Event{Type: EventStateChange, Snapshot: snap, CompletedWorkSessions: snap.CompletedWorkSessions, At: t.clock.Now()})
	return snap
}

// Skip forces the phase transition as if the countdown reached zero,
// regardless of remaining time. The work/break rule is the same as
// natural expiry, including the completed-session increment for work
// phases. No-op when idle.
func (t *Timer) Skip() (models.Snapshot, error) {
	t.mu.Lock()
	if t.state.Run == models.RunIdle {
		snap := t.state.Snapshot()
		t.mu.Unlock()
		return snap, nil
	}

	// Skipping out of a paused session resumes ticking into the next
	// phase, so the tick source must come back first.
	if t.state.Run == models.RunPaused {
		if err := t.armLocked(); err != nil {
			snap := t.state.Snapshot()
			t.mu.Unlock()
			return snap, err
		}
	}

	event, runHooks := t.transitionLocked()
	t.mu.Unlock()

	runHooks()
	t.emit(event)
	return event.Snapshot, nil
}

// Tick advances the countdown by one second. Invoked by the scheduler
// while running, or directly by callers driving the timer manually.
// Reaching zero triggers the phase transition immediately; the countdown
// is never left at a dangling zero.
func (t *Timer) Tick() {
	t.mu.Lock()
	if t.state.Run != models.RunRunning {
		t.mu.Unlock()
		return
	}

	if t.state.RemainingSeconds > 0 {
		t.state.RemainingSeconds--
	}
	if t.state.RemainingSeconds > 0 {
		snap := t.state.Snapshot()
		t.mu.Unlock()
		t.emit(Event{Type: EventProgress, Snapshot: snap, CompletedWorkSessions: snap.CompletedWorkSessions, At: t.clock.Now()})
		return
	}

	event, runHooks := t.transitionLocked()
	t.mu.Unlock()

	runHooks()
	t.emit(event)
}

// Status returns the current snapshot without side effects.
func (t *Timer) Status() models.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Snapshot()
}

// Close disarms the scheduler and closes all observer channels. The
// state is left as-is (and persisted state untouched) so a later process
// can recover it.
func (t *Timer) Close() {
	t.disarm()
	t.evMu.Lock()
	observers := t.events
	t.events = nil
	t.evClosed = true
	t.evMu.Unlock()
	for _, ch := range observers {
		close(ch)
	}
}

// transitionLocked applies the phase-completion rule: a finished work
// phase increments the counter and chooses the break length by cadence;
// a finished break returns to work. The next phase starts immediately
// with RunState preserved as running, reusing the start bookkeeping.
// Caller holds t.mu; hook execution is returned to run outside the lock.
func (t *Timer) transitionLocked() (Event, func()) {
	completed := t.state.Mode
	next := models.ModeWork
	if completed == models.ModeWork {
		t.state.CompletedWorkSessions++
		if t.state.CompletedWorkSessions%t.cfg.SessionsBeforeLongBreak == 0 {
			next = models.ModeLongBreak
		} else {
			next = models.ModeShortBreak
		}
	}

	now := t.clock.Now()
	t.state.Mode = next
	t.state.RemainingSeconds = t.cfg.DurationSeconds(next)
	t.state.Run = models.RunRunning
	t.state.SessionStartedAt = &now
	t.state.PhaseStartedAt = &now
	t.state.PausedAt = nil
	snap := t.persistLocked()

	event := Event{
		Type:                  EventTransition,
		CompletedMode:         completed,
		NextMode:              next,
		CompletedWorkSessions: snap.CompletedWorkSessions,
		Snapshot:              snap,
		At:                    now,
	}

	runHooks := func() {
		if t.hooks == nil {
			return
		}
		if completed == models.ModeWork {
			t.invokeHook("on_work_complete", func() error { return t.hooks.OnWorkComplete(next) })
		} else {
			t.invokeHook("on_break_complete", t.hooks.OnBreakComplete)
		}
	}
	return event, runHooks
}

func (t *Timer) armLocked() error {
	if t.manual {
		return nil
	}
	if err := t.sched.arm(t.Tick); err != nil {
		return fmt.Errorf("failed to arm tick scheduler: %w", err)
	}
	return nil
}

func (t *Timer) disarm() {
	if t.manual {
		return
	}
	t.sched.disarm()
}

// persistLocked writes through to the store and returns the snapshot of
// the state just written. Persistence failures are logged; the in-memory
// timer continues regardless.
func (t *Timer) persistLocked() models.Snapshot {
	snap := t.state.Snapshot()
	if t.store != nil {
		if err := t.store.Save(t.state); err != nil {
			log.Printf("Failed to persist timer state: %v", err)
		}
	}
	return snap
}

// invokeHook is the boundary that keeps collaborator failures out of the
// state machine: errors and panics are logged with context and dropped.
func (t *Timer) invokeHook(name string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Hook %s panicked: %v", name, r)
		}
	}()
	if err := fn(); err != nil {
		log.Printf("Hook %s failed: %v", name, err)
	}
}
