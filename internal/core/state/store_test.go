package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/neilberkman/pomo/internal/core/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "nested", "state.json"))
}

func TestLoadMissingFile(t *testing.T) {
	st, found, err := testStore(t).Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if found {
		t.Error("found = true for missing file")
	}
	if st.Mode != models.ModeIdle || st.Run != models.RunIdle {
		t.Errorf("expected idle default state, got %+v", st)
	}
}

func TestSaveCreatesDirectories(t *testing.T) {
	store := testStore(t)
	if err := store.Save(models.NewIdleState()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if _, err := os.Stat(store.Path()); err != nil {
		t.Errorf("state file not written: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	pausedAt := time.Unix(1700000100, 0)
	startedAt := time.Unix(1700000000, 0)
	resumedAt := time.Unix(1700000400, 0)

	tests := []struct {
		name  string
		state models.SessionState
	}{
		{
			name:  "idle",
			state: models.NewIdleState(),
		},
		{
			name: "paused mid short break",
			state: models.SessionState{
				Mode:                  models.ModeShortBreak,
				RemainingSeconds:      120,
				Run:                   models.RunPaused,
				CompletedWorkSessions: 2,
				SessionStartedAt:      &startedAt,
				PhaseStartedAt:        &startedAt,
				PausedAt:              &pausedAt,
			},
		},
		{
			name: "running with re-anchored drift reference",
			state: models.SessionState{
				Mode:             models.ModeWork,
				RemainingSeconds: 1300,
				Run:              models.RunRunning,
				SessionStartedAt: &resumedAt,
				PhaseStartedAt:   &startedAt,
			},
		},
		{
			name: "idle with surviving counter",
			state: models.SessionState{
				Mode:                  models.ModeIdle,
				Run:                   models.RunIdle,
				CompletedWorkSessions: 7,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testStore(t)
			if err := store.Save(tt.state); err != nil {
				t.Fatalf("Save returned error: %v", err)
			}
			got, found, err := store.Load()
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if !found {
				t.Fatal("found = false after save")
			}
			assertStatesEqual(t, got, tt.state)
		})
	}
}

func TestLoadCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty file", content: ""},
		{name: "not json", content: "definitely not json{{"},
		{name: "inconsistent record", content: `{"mode":"work","remainingSeconds":-10}`},
		{name: "unknown mode", content: `{"mode":"banana","remainingSeconds":100,"isRunning":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			st, found, err := NewStore(path).Load()
			if err != nil {
				t.Fatalf("corrupt state escalated to error: %v", err)
			}
			if found {
				t.Error("found = true for corrupt file")
			}
			if st.Mode != models.ModeIdle {
				t.Errorf("expected idle fallback, got %+v", st)
			}
		})
	}
}

func TestRecoverDriftWhileRunning(t *testing.T) {
	t0 := time.Unix(1700000000, 0)

	tests := []struct {
		name          string
		remaining     int
		loadedAt      time.Time
		wantRemaining int
	}{
		{name: "partial elapse", remaining: 1500, loadedAt: t0.Add(600 * time.Second), wantRemaining: 900},
		{name: "exactly expired", remaining: 1500, loadedAt: t0.Add(1500 * time.Second), wantRemaining: 0},
		{name: "overdue clamps to zero", remaining: 1500, loadedAt: t0.Add(1505 * time.Second), wantRemaining: 0},
		{name: "no time passed", remaining: 1500, loadedAt: t0, wantRemaining: 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			started := t0
			phase := t0
			st := models.SessionState{
				Mode:             models.ModeWork,
				RemainingSeconds: tt.remaining,
				Run:              models.RunRunning,
				SessionStartedAt: &started,
				PhaseStartedAt:   &phase,
			}
			got := Recover(st, tt.loadedAt)
			if got.RemainingSeconds != tt.wantRemaining {
				t.Errorf("RemainingSeconds = %d, want %d", got.RemainingSeconds, tt.wantRemaining)
			}
			if got.RemainingSeconds < 0 {
				t.Error("recovery produced negative remaining time")
			}
			if got.SessionStartedAt == nil || !got.SessionStartedAt.Equal(tt.loadedAt) {
				t.Errorf("SessionStartedAt not moved to load time: %v", got.SessionStartedAt)
			}
			if got.PhaseStartedAt == nil || !got.PhaseStartedAt.Equal(t0) {
				t.Errorf("PhaseStartedAt disturbed by recovery: %v, want %v", got.PhaseStartedAt, t0)
			}
		})
	}
}

func TestRecoverLeavesPausedAlone(t *testing.T) {
	started := time.Unix(1700000000, 0)
	paused := started.Add(200 * time.Second)
	st := models.SessionState{
		Mode:             models.ModeWork,
		RemainingSeconds: 1300,
		Run:              models.RunPaused,
		SessionStartedAt: &started,
		PausedAt:         &paused,
	}

	got := Recover(st, started.Add(24*time.Hour))
	if got.RemainingSeconds != 1300 {
		t.Errorf("paused session lost time: RemainingSeconds = %d, want 1300", got.RemainingSeconds)
	}
	if !got.SessionStartedAt.Equal(started) {
		t.Errorf("paused session start moved: %v", got.SessionStartedAt)
	}
}

// A session recovered long after it began must still report when the
// phase actually started; only the drift anchor moves to load time.
func TestRecoverKeepsPhaseStartForDisplay(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	started := t0
	phase := t0
	st := models.SessionState{
		Mode:             models.ModeWork,
		RemainingSeconds: 1500,
		Run:              models.RunRunning,
		SessionStartedAt: &started,
		PhaseStartedAt:   &phase,
	}

	got := Recover(st, t0.Add(600*time.Second))
	snap := got.Snapshot()
	if snap.PhaseStartedAt == nil {
		t.Fatal("snapshot lost the phase start time")
	}
	if !snap.PhaseStartedAt.Equal(t0) {
		t.Errorf("snapshot phase start = %v, want %v", snap.PhaseStartedAt, t0)
	}
	if snap.PhaseStartedAt.Equal(*got.SessionStartedAt) {
		t.Error("phase start collapsed into the drift anchor; display would always show the load time")
	}
}

func TestLoadWithoutPhaseStartFallsBackToDriftAnchor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	content := `{"mode":"work","remainingSeconds":900,"isRunning":true,"sessionStartedAt":1700000000}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	st, found, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !found {
		t.Fatal("found = false for valid record")
	}
	if st.PhaseStartedAt == nil || st.PhaseStartedAt.Unix() != 1700000000 {
		t.Errorf("PhaseStartedAt = %v, want fallback to sessionStartedAt", st.PhaseStartedAt)
	}
}

func assertStatesEqual(t *testing.T, got, want models.SessionState) {
	t.Helper()
	if got.Mode != want.Mode || got.Run != want.Run ||
		got.RemainingSeconds != want.RemainingSeconds ||
		got.CompletedWorkSessions != want.CompletedWorkSessions {
		t.Errorf("state mismatch:\n got %+v\nwant %+v", got, want)
	}
	if (got.SessionStartedAt == nil) != (want.SessionStartedAt == nil) {
		t.Errorf("SessionStartedAt presence mismatch: got %v, want %v", got.SessionStartedAt, want.SessionStartedAt)
	} else if got.SessionStartedAt != nil && got.SessionStartedAt.Unix() != want.SessionStartedAt.Unix() {
		t.Errorf("SessionStartedAt = %v, want %v", got.SessionStartedAt, want.SessionStartedAt)
	}
	if (got.PhaseStartedAt == nil) != (want.PhaseStartedAt == nil) {
		t.Errorf("PhaseStartedAt presence mismatch: got %v, want %v", got.PhaseStartedAt, want.PhaseStartedAt)
	} else if got.PhaseStartedAt != nil && got.PhaseStartedAt.Unix() != want.PhaseStartedAt.Unix() {
		t.Errorf("PhaseStartedAt = %v, want %v", got.PhaseStartedAt, want.PhaseStartedAt)
	}
	if (got.PausedAt == nil) != (want.PausedAt == nil) {
		t.Errorf("PausedAt presence mismatch: got %v, want %v", got.PausedAt, want.PausedAt)
	} else if got.PausedAt != nil && got.PausedAt.Unix() != want.PausedAt.Unix() {
		t.Errorf("PausedAt = %v, want %v", got.PausedAt, want.PausedAt)
	}
}
