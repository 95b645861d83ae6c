package cli

import (
	"github.com/neilberkman/pomo/internal/core/models"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start [mode]",
	Short: "Start a session",
	Long: `Start a countdown in the given mode, defaulting to work.

Starting while a session is already running is a no-op; the running
session is reported unchanged.

Examples:
  pomo start
  pomo start work
  pomo start short_break
  pomo start long_break`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	mode := models.ModeWork
	if len(args) == 1 {
		parsed, err := models.ParseMode(args[0])
		if err != nil {
			return err
		}
		mode = parsed
	}

	tm, _, err := openTimer()
	if err != nil {
		return err
	}

	snap, err := tm.Start(mode)
	if err != nil {
		return err
	}
	printSnapshot(snap)
	return nil
}
