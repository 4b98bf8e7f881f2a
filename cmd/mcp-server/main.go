// cmd/mcp-server/main.go - Standalone HTTP MCP server for gopoly
//
// Exposes gopoly tools as an HTTP endpoint for AI agent frameworks.
//
// Usage:
//
//	go run ./cmd/mcp-server --port 8080 --config gopoly.yaml
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gopoly/internal/cli"
)

func newCommand() *cobra.Command {
	root := &cli.RootOptions{Format: "text"}
	cmd := cli.NewServeCommand(root)
	cmd.Use = "mcp-server"
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.PersistentFlags().BoolVarP(&root.Verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
