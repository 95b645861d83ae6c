package cli

import (
	"github.com/spf13/cobra"
)

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the running session",
	Long: `Suspend the current countdown. The session stays active but no time
passes until 'pomo resume'. Paused time never counts against the session.`,
	RunE: runPause,
}

func init() {
	rootCmd.AddCommand(pauseCmd)
}

func runPause(cmd *cobra.Command, args []string) error {
	tm, _, err := openTimer()
	if err != nil {
		return err
	}

	snap, err := tm.Pause()
	if err != nil {
		return err
	}
	printSnapshot(snap)
	return nil
}
