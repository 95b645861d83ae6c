package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/neilberkman/pomo/internal/core/config"
	"github.com/neilberkman/pomo/internal/core/models"
	"github.com/neilberkman/pomo/internal/core/timer"
)

// Model renders the live countdown and forwards key presses to the
// timer. All timer semantics stay in the core; this is presentation only.
type Model struct {
	timer    *timer.Timer
	cfg      config.Config
	events   <-chan timer.Event
	progress progress.Model
	snap     models.Snapshot
	width    int
}

type eventMsg timer.Event

// New creates the countdown model for an already-constructed timer.
func New(tm *timer.Timer, cfg config.Config) Model {
	return Model{
		timer:    tm,
		cfg:      cfg,
		events:   tm.Subscribe(16),
		progress: progress.New(progress.WithDefaultGradient()),
		snap:     tm.Status(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 8
		if w > 60 {
			w = 60
		}
		if w > 0 {
			m.progress.Width = w
		}
		return m, nil

	case eventMsg:
		m.snap = msg.Snapshot
		return m, m.waitForEvent()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "s":
			m.snap, _ = m.timer.Start(models.ModeWork)
		case "p":
			m.snap, _ = m.timer.Pause()
		case "r":
			m.snap, _ = m.timer.Resume()
		case "k":
			m.snap, _ = m.timer.Skip()
		case "R":
			m.snap = m.timer.Reset()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	title := titleStyle.Render("pomo")

	var phase string
	switch {
	case m.snap.Mode == models.ModeWork:
		phase = workStyle.Render(m.snap.Label)
	case m.snap.Mode.IsBreak():
		phase = breakStyle.Render(m.snap.Label)
	default:
		phase = idleStyle.Render("Idle — press s to start")
	}
	if m.snap.IsPaused {
		phase = lipgloss.JoinHorizontal(lipgloss.Top, phase, pausedStyle.Render("  ⏸ paused"))
	}

	body := title + "\n\n" + phase + "\n"
	if m.snap.Mode != models.ModeIdle {
		body += countdownStyle.Render(m.snap.Countdown()) + "\n"
		body += m.progress.ViewAs(m.phaseProgress()) + "\n"
	}
	body += "\n" + counterStyle.Render(fmt.Sprintf("Completed work sessions: %d", m.snap.CompletedWorkSessions))
	body += "\n\n" + helpStyle.Render("s start • p pause • r resume • k skip • R reset • q quit")

	return appStyle.Render(body)
}

func (m Model) phaseProgress() float64 {
	total := m.cfg.DurationSeconds(m.snap.Mode)
	if total <= 0 {
		return 0
	}
	done := float64(total-m.snap.RemainingSeconds) / float64(total)
	if done < 0 {
		return 0
	}
	if done > 1 {
		return 1
	}
	return done
}
