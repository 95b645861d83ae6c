package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/neilberkman/pomo/internal/core/config"
	"github.com/neilberkman/pomo/internal/core/hooks"
	"github.com/neilberkman/pomo/internal/core/models"
	"github.com/neilberkman/pomo/internal/core/state"
	"github.com/neilberkman/pomo/internal/core/timer"
)

// StartTimerArgs defines arguments for the timer_start tool
type StartTimerArgs struct {
	Mode string `json:"mode,omitempty" jsonschema:"description=Session mode: work, short_break, or long_break (default: work)"`
}

// ResetTimerArgs defines arguments for the timer_reset tool
type ResetTimerArgs struct {
	All bool `json:"all,omitempty" jsonschema:"description=Also clear the completed session counter"`
}

// StartServer starts the MCP server
func StartServer(cfgPath string) error {
	s := server.NewMCPServer(
		"pomo",
		"1.0.0",
	)

	startTool := mcp.NewTool("timer_start",
		mcp.WithDescription("Start a Pomodoro countdown. No-op if a session is already running."),
		mcp.WithString("mode",
			mcp.Description("Session mode: work, short_break, or long_break (default: work)")),
	)
	s.AddTool(startTool, makeStartHandler(cfgPath))

	pauseTool := mcp.NewTool("timer_pause",
		mcp.WithDescription("Pause the running countdown. Paused time does not count against the session."),
	)
	s.AddTool(pauseTool, makeOpHandler(cfgPath, func(tm *timer.Timer) (models.Snapshot, error) {
		return tm.Pause()
	}))

	resumeTool := mcp.NewTool("timer_resume",
		mcp.WithDescription("Resume a paused countdown."),
	)
	s.AddTool(resumeTool, makeOpHandler(cfgPath, func(tm *timer.Timer) (models.Snapshot, error) {
		return tm.Resume()
	}))

	skipTool := mcp.NewTool("timer_skip",
		mcp.WithDescription("Skip to the next phase, applying the normal work/break transition rule."),
	)
	s.AddTool(skipTool, makeOpHandler(cfgPath, func(tm *timer.Timer) (models.Snapshot, error) {
		return tm.Skip()
	}))

	resetTool := mcp.NewTool("timer_reset",
		mcp.WithDescription("Stop the timer and return to idle. The completed session counter survives unless 'all' is set."),
		mcp.WithBoolean("all",
			mcp.Description("Also clear the completed session counter")),
	)
	s.AddTool(resetTool, makeResetHandler(cfgPath))

	statusTool := mcp.NewTool("timer_status",
		mcp.WithDescription("Get the current timer state: mode, remaining time, running/paused flags, completed session count."),
	)
	s.AddTool(statusTool, makeOpHandler(cfgPath, func(tm *timer.Timer) (models.Snapshot, error) {
		return tm.Status(), nil
	}))

	return server.ServeStdio(s)
}

// openTimer rebuilds the timer from persisted state, reconciling elapsed
// wall-clock time. Each tool call is a fresh load-mutate-save cycle; the
// countdown itself is virtual, so no live ticker is needed here.
func openTimer(cfgPath string) (*timer.Timer, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
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
	if snap := tm.Status(); snap.IsRunning && snap.RemainingSeconds == 0 {
		tm.Tick()
	}
	return tm, nil
}

func snapshotResult(snap models.Snapshot) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal snapshot: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func makeStartHandler(cfgPath string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args StartTimerArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		mode := models.ModeWork
		if args.Mode != "" {
			parsed, err := models.ParseMode(args.Mode)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			mode = parsed
		}

		tm, err := openTimer(cfgPath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		snap, err := tm.Start(mode)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return snapshotResult(snap)
	}
}

func makeResetHandler(cfgPath string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ResetTimerArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		tm, err := openTimer(cfgPath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if args.All {
			return snapshotResult(tm.ResetAll())
		}
		return snapshotResult(tm.Reset())
	}
}

func makeOpHandler(cfgPath string, op func(*timer.Timer) (models.Snapshot, error)) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tm, err := openTimer(cfgPath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		snap, err := op(tm)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return snapshotResult(snap)
	}
}
