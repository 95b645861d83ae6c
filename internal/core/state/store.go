package state

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/neilberkman/pomo/internal/core/models"
)

// record is the on-disk shape of the timer state. Timestamps are Unix
// seconds, null when absent.
type record struct {
	Mode                  string `json:"mode"`
	RemainingSeconds      int    `json:"remainingSeconds"`
	IsRunning             bool   `json:"isRunning"`
	IsPaused              bool   `json:"isPaused"`
	CompletedWorkSessions int    `json:"completedWorkSessions"`
	SessionStartedAt      *int64 `json:"sessionStartedAt"`
	PhaseStartedAt        *int64 `json:"phaseStartedAt"`
	PausedAt              *int64 `json:"pausedAt"`
}

// Store persists the timer state as a single JSON document. All I/O
// failures degrade to "no persisted state"; nothing here is allowed to
// take the timer down.
type Store struct {
	path string
}

// NewStore returns a store writing to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// Save atomically writes the state file, creating parent directories as
// needed.
func (s *Store) Save(st models.SessionState) error {
	rec := toRecord(st)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Load reads the persisted state. found is false when the file does not
// exist, is empty, or cannot be parsed; parse failures are logged as
// recoverable, never returned as fatal.
func (s *Store) Load() (st models.SessionState, found bool, err error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewIdleState(), false, nil
		}
		return models.NewIdleState(), false, fmt.Errorf("failed to read state file: %w", err)
	}
	if len(data) == 0 {
		return models.NewIdleState(), false, nil
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Printf("Ignoring corrupt state file %s: %v", s.path, err)
		return models.NewIdleState(), false, nil
	}

	st = fromRecord(rec)
	if err := st.Validate(); err != nil {
		log.Printf("Ignoring inconsistent state file %s: %v", s.path, err)
		return models.NewIdleState(), false, nil
	}
	return st, true, nil
}

// Recover reconciles a loaded state with real elapsed time. A running
// session loses the seconds that passed while the process was down and
// has its drift anchor moved to now, so the persisted remaining value
// stays accurate relative to SessionStartedAt. PhaseStartedAt is left
// alone; when the phase actually began is a fact recovery cannot change.
// Paused and idle states are returned unchanged; paused time never
// counts against a session.
//
// When recovery lands on zero the caller must evaluate the phase
// transition immediately rather than resume a dead countdown.
func Recover(st models.SessionState, now time.Time) models.SessionState {
	if st.Run != models.RunRunning || st.SessionStartedAt == nil {
		return st
	}

	elapsed := int(now.Sub(*st.SessionStartedAt).Seconds())
	if elapsed > 0 {
		st.RemainingSeconds -= elapsed
		if st.RemainingSeconds < 0 {
			st.RemainingSeconds = 0
		}
	}
	started := now
	st.SessionStartedAt = &started
	return st
}

func toRecord(st models.SessionState) record {
	rec := record{
		Mode:                  string(st.Mode),
		RemainingSeconds:      st.RemainingSeconds,
		IsRunning:             st.Run == models.RunRunning,
		IsPaused:              st.Run == models.RunPaused,
		CompletedWorkSessions: st.CompletedWorkSessions,
	}
	if st.SessionStartedAt != nil {
		ts := st.SessionStartedAt.Unix()
		rec.SessionStartedAt = &ts
	}
	if st.PhaseStartedAt != nil {
		ts := st.PhaseStartedAt.Unix()
		rec.PhaseStartedAt = &ts
	}
	if st.PausedAt != nil {
		ts := st.PausedAt.Unix()
		rec.PausedAt = &ts
	}
	return rec
}

func fromRecord(rec record) models.SessionState {
	st := models.SessionState{
		Mode:                  models.Mode(rec.Mode),
		RemainingSeconds:      rec.RemainingSeconds,
		Run:                   models.RunIdle,
		CompletedWorkSessions: rec.CompletedWorkSessions,
	}
	// Paused wins over running if a record ever carries both flags.
	switch {
	case rec.IsPaused:
		st.Run = models.RunPaused
	case rec.IsRunning:
		st.Run = models.RunRunning
	}
	if rec.SessionStartedAt != nil {
		ts := time.Unix(*rec.SessionStartedAt, 0)
		st.SessionStartedAt = &ts
	}
	if rec.PhaseStartedAt != nil {
		ts := time.Unix(*rec.PhaseStartedAt, 0)
		st.PhaseStartedAt = &ts
	} else {
		// Fall back to the drift anchor when no phase start was recorded.
		st.PhaseStartedAt = st.SessionStartedAt
	}
	if rec.PausedAt != nil {
		ts := time.Unix(*rec.PausedAt, 0)
		st.PausedAt = &ts
	}
	return st
}
