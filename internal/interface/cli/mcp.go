package cli

import (
	"fmt"

	"github.com/neilberkman/pomo/cmd/pomo/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP server for AI assistant integration",
	Long: `Start a Model Context Protocol server over stdio, exposing the timer
operations as tools (timer_start, timer_pause, timer_resume, timer_reset,
timer_skip, timer_status).

Add to your MCP client configuration:
  {
    "mcpServers": {
      "pomo": {
        "command": "pomo",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	if err := mcp.StartServer(cfgPath); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
