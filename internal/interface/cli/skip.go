package cli

import (
	"github.com/spf13/cobra"
)

var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Skip to the next phase",
	Long: `End the current phase immediately, applying the same transition rule as
a natural expiry: skipping a work session counts it as completed, skipping
a break does not touch the counter.`,
	RunE: runSkip,
}

func init() {
	rootCmd.AddCommand(skipCmd)
}

func runSkip(cmd *cobra.Command, args []string) error {
	tm, _, err := openTimer()
	if err != nil {
		return err
	}

	snap, err := tm.Skip()
	if err != nil {
		return err
	}
	printSnapshot(snap)
	return nil
}
