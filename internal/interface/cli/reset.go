package cli

import (
	"github.com/spf13/cobra"
)

var resetAll bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Stop the timer and return to idle",
	Long: `Stop any running or paused session and return to idle. The completed
work session counter survives a reset; pass --all to clear it too.`,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "Also clear the completed session counter")
}

func runReset(cmd *cobra.Command, args []string) error {
	tm, _, err := openTimer()
	if err != nil {
		return err
	}

	if resetAll {
		printSnapshot(tm.ResetAll())
	} else {
		printSnapshot(tm.Reset())
	}
	return nil
}
