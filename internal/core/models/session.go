package models

import (
	"errors"
	"fmt"
	"time"
)

// Mode identifies the phase a timer session is in.
type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
	ModeIdle       Mode = "idle"
)

// RunState captures whether a tick source is active. It is the single
// source of truth internally; the exported snapshot decomposes it into
// the IsRunning/IsPaused pair that external consumers expect.
type RunState string

const (
	RunIdle    RunState = "idle"
	RunRunning RunState = "running"
	RunPaused  RunState = "paused"
)

// ErrInvalidMode indicates a mode string outside the startable set.
var ErrInvalidMode = errors.New("invalid mode")

// ParseMode validates a user-supplied mode argument.
// Only the three startable phases are accepted; "idle" is not a
// phase a session can be started in.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeWork, ModeShortBreak, ModeLongBreak:
		return Mode(raw), nil
	}
	return "", fmt.Errorf("%w: %q (expected work, short_break, or long_break)", ErrInvalidMode, raw)
}

// Label returns the human-readable name for a mode.
func (m Mode) Label() string {
	switch m {
	case ModeWork:
		return "Work"
	case ModeShortBreak:
		return "Short break"
	case ModeLongBreak:
		return "Long break"
	case ModeIdle:
		return "Idle"
	}
	return string(m)
}

// IsBreak reports whether the mode is one of the two break phases.
func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

// SessionState is the canonical mutable timer state. It is owned by the
// timer state machine and mutated only through its operations.
//
// SessionStartedAt is the drift anchor: RemainingSeconds is accurate as
// of this instant, so resume and recovery move it forward. PhaseStartedAt
// is when the current phase actually began; it only changes on a phase
// change and is what display surfaces should show.
type SessionState struct {
	Mode                  Mode
	RemainingSeconds      int
	Run                   RunState
	CompletedWorkSessions int
	SessionStartedAt      *time.Time
	PhaseStartedAt        *time.Time
	PausedAt              *time.Time
}

// NewIdleState returns the default state used when nothing was persisted.
func NewIdleState() SessionState {
	return SessionState{
		Mode: ModeIdle,
		Run:  RunIdle,
	}
}

// Validate checks the state invariants.
func (s *SessionState) Validate() error {
	if s.RemainingSeconds < 0 {
		return fmt.Errorf("remaining seconds must be non-negative, got %d", s.RemainingSeconds)
	}
	if s.CompletedWorkSessions < 0 {
		return fmt.Errorf("completed work sessions must be non-negative, got %d", s.CompletedWorkSessions)
	}
	switch s.Mode {
	case ModeWork, ModeShortBreak, ModeLongBreak, ModeIdle:
	default:
		return fmt.Errorf("unknown mode %q", s.Mode)
	}
	switch s.Run {
	case RunIdle, RunRunning, RunPaused:
	default:
		return fmt.Errorf("unknown run state %q", s.Run)
	}
	if s.Run == RunRunning && s.SessionStartedAt == nil {
		return errors.New("running state requires a session start time")
	}
	if s.Run == RunPaused && s.PausedAt == nil {
		return errors.New("paused state requires a pause time")
	}
	return nil
}

// Snapshot is an immutable status view handed to UI, CLI, and hook
// consumers. Minutes/Seconds are the countdown decomposition of
// RemainingSeconds.
type Snapshot struct {
	Mode                  Mode       `json:"mode"`
	Label                 string     `json:"label"`
	RemainingSeconds      int        `json:"remainingSeconds"`
	Minutes               int        `json:"minutes"`
	Seconds               int        `json:"seconds"`
	IsRunning             bool       `json:"isRunning"`
	IsPaused              bool       `json:"isPaused"`
	CompletedWorkSessions int        `json:"completedWorkSessions"`
	PhaseStartedAt        *time.Time `json:"startedAt,omitempty"`
}

// Snapshot returns the read-only view of the current state.
func (s SessionState) Snapshot() Snapshot {
	return Snapshot{
		Mode:                  s.Mode,
		Label:                 s.Mode.Label(),
		RemainingSeconds:      s.RemainingSeconds,
		Minutes:               s.RemainingSeconds / 60,
		Seconds:               s.RemainingSeconds % 60,
		IsRunning:             s.Run == RunRunning,
		IsPaused:              s.Run == RunPaused,
		CompletedWorkSessions: s.CompletedWorkSessions,
		PhaseStartedAt:        s.PhaseStartedAt,
	}
}

// Countdown formats the remaining time as MM:SS.
func (s Snapshot) Countdown() string {
	return fmt.Sprintf("%02d:%02d", s.Minutes, s.Seconds)
}
