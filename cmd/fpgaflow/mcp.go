package main

import (
	"log"
	"os"

	"github.com/aretw0/fpgaflow/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts fpgaflow as an MCP server over stdio.
AI agents can then call build, upload, clean and plan as tools. Tool output goes to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		return cli.RunMCP(runOptions(cmd, nil))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
