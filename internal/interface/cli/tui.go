package cli

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/neilberkman/pomo/internal/core/config"
	"github.com/neilberkman/pomo/internal/core/hooks"
	"github.com/neilberkman/pomo/internal/core/models"
	"github.com/neilberkman/pomo/internal/core/state"
	"github.com/neilberkman/pomo/internal/core/timer"
	"github.com/neilberkman/pomo/internal/interface/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Live countdown (interactive)",
	Long: `Run the timer with a live one-second countdown. A session recovered
from a previous process keeps ticking from where the wall clock left it.

Keys: s start, p pause, r resume, k skip, R reset, q quit. Quitting keeps
the session running on the wall clock.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	store := state.NewStore(cfg.StatePath)
	st, _, err := store.Load()
	if err != nil {
		log.Printf("Could not read state file: %v; starting fresh", err)
		st = models.NewIdleState()
	}
	st = state.Recover(st, time.Now())

	// Live mode: the timer owns a real one-second scheduler.
	tm := timer.New(cfg, timer.Options{
		Store:   store,
		Hooks:   hooks.New(cfg),
		Initial: &st,
	})
	defer tm.Close()

	if snap := tm.Status(); snap.IsRunning && snap.RemainingSeconds == 0 {
		tm.Tick()
	}

	p := tea.NewProgram(tui.New(tm, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
