package cli

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var (
	statusJSON bool
	statusCopy bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current timer state",
	Long: `Print the current phase, remaining time, and completed session count.

Examples:
  pomo status
  pomo status --json
  pomo status --copy`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print the snapshot as JSON")
	statusCmd.Flags().BoolVar(&statusCopy, "copy", false, "Copy the statusline string to the clipboard")
}

func runStatus(cmd *cobra.Command, args []string) error {
	tm, _, err := openTimer()
	if err != nil {
		return err
	}
	snap := tm.Status()

	if statusCopy {
		if err := clipboard.WriteAll(statusline(snap)); err != nil {
			return fmt.Errorf("failed to copy statusline: %w", err)
		}
	}

	if statusJSON {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printSnapshot(snap)
	return nil
}
