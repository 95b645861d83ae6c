package cli

import (
	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a paused session",
	RunE:  runResume,
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, args []string) error {
	tm, _, err := openTimer()
	if err != nil {
		return err
	}

	snap, err := tm.Resume()
	if err != nil {
		return err
	}
	printSnapshot(snap)
	return nil
}
