package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/neilberkman/pomo/internal/core/config"
	"github.com/neilberkman/pomo/internal/core/hooks"
	"github.com/neilberkman/pomo/internal/core/models"
	"github.com/neilberkman/pomo/internal/core/state"
	"github.com/neilberkman/pomo/internal/core/timer"
)

// openTimer builds a timer from config and recovered state. One-shot
// commands never need a live ticker: the countdown is virtual, recomputed
// here from the persisted timestamps, so the timer runs in manual-tick
// mode.
func openTimer() (*timer.Timer, config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, cfg, err
	}

	store := state.NewStore(cfg.StatePath)
	st, _, err := store.Load()
	if err != nil {
		log.Printf("Could not read state file: %v; starting fresh", err)
		st = models.NewIdleState()
	}
	st = state.Recover(st, time.Now())

	tm := timer.New(cfg, timer.Options{
		Store:      store,
		Hooks:      hooks.New(cfg),
		ManualTick: true,
		Initial:    &st,
	})

	// A running session that expired while no process was alive
	// transitions now instead of sitting at a dead zero.
	if snap := tm.Status(); snap.IsRunning && snap.RemainingSeconds == 0 {
		tm.Tick()
	}
	return tm, cfg, nil
}

func printSnapshot(snap models.Snapshot) {
	switch {
	case snap.IsRunning:
		fmt.Printf("%s  %s\n", snap.Label, snap.Countdown())
		if snap.PhaseStartedAt != nil {
			fmt.Printf("Started %s\n", humanize.Time(*snap.PhaseStartedAt))
		}
	case snap.IsPaused:
		fmt.Printf("%s  %s  (paused)\n", snap.Label, snap.Countdown())
	default:
		fmt.Println("Idle. Run 'pomo start' to begin a work session.")
	}
	fmt.Printf("Completed work sessions: %d\n", snap.CompletedWorkSessions)
}

// statusline renders the one-line form consumed by status bars.
func statusline(snap models.Snapshot) string {
	switch {
	case snap.IsRunning:
		return fmt.Sprintf("🍅 %s %s", snap.Label, snap.Countdown())
	case snap.IsPaused:
		return fmt.Sprintf("🍅 %s %s (paused)", snap.Label, snap.Countdown())
	default:
		return "🍅 idle"
	}
}
