package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/headlessly/hly/internal/mcpserver"
	"github.com/headlessly/hly/internal/stdio"
)

// mcpCmd is the parent command for MCP-related subcommands. Running it
// without a subcommand serves directly, which is what MCP client configs
// typically invoke.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long: `Commands for exposing the Headlessly gateway to AI agents over the Model
Context Protocol. The server speaks line-delimited JSON-RPC on
stdin/stdout; all diagnostics go to stderr so the output stream stays
parseable.`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing search, fetch, and do tools
for every platform domain plus a generic call tool. The process exits 0
when the client closes its end of the pipe.`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if err := app.requireAuth(); err != nil {
		return err
	}

	handler := mcpserver.New(app.caller(), Version)
	server := stdio.New(handler,
		stdio.WithReader(cmd.InOrStdin()),
		stdio.WithWriter(cmd.OutOrStdout()),
	)

	slog.Info("mcp server listening on stdio", "gateway", app.gatewayURL())
	return server.Run(cmd.Context())
}
