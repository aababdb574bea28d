package cmd

import (
	"fmt"

	"github.com/jayPark21/Pomodoro-timer/internal/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server offers read-only tools over the cycle journal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol, so chatter goes to stderr.
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, "🚀 Starting MCP server...")
		fmt.Fprintln(errOut, "   The server will communicate via stdio")
		fmt.Fprintln(errOut, "   Press Ctrl+C to stop")

		server := mcp.NewServer(app.journal, Version)
		defer func() { _ = server.Stop() }()

		app.logger.Info("mcp server starting")
		if err := server.Start(setupSignalHandler()); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
