package hooks

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/cbroglie/mustache"
	"github.com/neilberkman/pomo/internal/core/config"
	"github.com/neilberkman/pomo/internal/core/models"
)

// CommandHooks runs the shell commands configured under [hooks] on timer
// lifecycle events. Commands are mustache templates rendered with the
// event context, then executed via sh -c. The timer treats every hook as
// best-effort, so a broken command only produces a log line.
//
// Template fields: {{mode}}, {{label}}, {{next_mode}}, {{next_label}},
// {{minutes}} (length of the phase being entered).
type CommandHooks struct {
	cfg config.Config
}

// New returns command hooks for the given configuration.
func New(cfg config.Config) *CommandHooks {
	return &CommandHooks{cfg: cfg}
}

// OnStart fires when a session is started explicitly.
func (h *CommandHooks) OnStart(mode models.Mode) error {
	return h.run(h.cfg.Hooks.OnStart, map[string]interface{}{
		"mode":    string(mode),
		"label":   mode.Label(),
		"minutes": h.cfg.DurationSeconds(mode) / 60,
	})
}

// OnWorkComplete fires when a work phase finishes, before the break begins.
func (h *CommandHooks) OnWorkComplete(next models.Mode) error {
	return h.run(h.cfg.Hooks.OnWorkComplete, map[string]interface{}{
		"mode":       string(models.ModeWork),
		"label":      models.ModeWork.Label(),
		"next_mode":  string(next),
		"next_label": next.Label(),
		"minutes":    h.cfg.DurationSeconds(next) / 60,
	})
}

// OnBreakComplete fires when a break finishes and work resumes.
func (h *CommandHooks) OnBreakComplete() error {
	return h.run(h.cfg.Hooks.OnBreakComplete, map[string]interface{}{
		"next_mode":  string(models.ModeWork),
		"next_label": models.ModeWork.Label(),
		"minutes":    h.cfg.WorkMinutes,
	})
}

func (h *CommandHooks) run(command string, data map[string]interface{}) error {
	if command == "" {
		return nil
	}

	rendered, err := mustache.Render(command, data)
	if err != nil {
		return fmt.Errorf("failed to render hook template: %w", err)
	}

	out, err := exec.Command("sh", "-c", rendered).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("hook command failed: %w: %s", err, msg)
		}
		return fmt.Errorf("hook command failed: %w", err)
	}
	return nil
}
