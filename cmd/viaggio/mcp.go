// ABOUTME: MCP command, serves trip data to AI assistants over stdio
// ABOUTME: Blocks until the client disconnects

package main

import (
	"github.com/dmarchetti/viaggio/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server on stdio",
	Long: `Serve trips, tracks and statistics to MCP clients over stdio.
Point your assistant at 'viaggio mcp' to let it read your travel log.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store)
		if err != nil {
			return err
		}
		return server.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
