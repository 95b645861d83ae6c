package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pomo",
	Short: "Pomodoro timer for the terminal",
	Long: `pomo - a Pomodoro interval timer that survives restarts

Alternates work and break sessions on the classic 25/5/15 cadence, with a
long break after every fourth work session. State lives in a JSON file, so
quitting the terminal never loses a running countdown: the next invocation
reconciles the elapsed wall-clock time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to the live countdown if no subcommand specified
		return tuiCmd.RunE(cmd, args)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file path (default ~/.config/pomo/config.toml)")
}
