package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can plan
routes, build share links and read saved routes.

The server speaks JSON-RPC over stdio unless --port is given, in which
case it serves the streamable HTTP transport on that port.

Tools: plan_route, share_link, open_link, save_route
Resources: wayfinder://history, wayfinder://history/{routeId}

Examples:
  # Stdio mode (default)
  wayfinder mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  wayfinder mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "wayfinder": {
        "command": "/path/to/wayfinder",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Routes:   routeProvider,
		Resolver: addressResolver,
		Share:    shareCodec,
		History:  historyService,
		Version:  version,
	})
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if port <= 0 {
		return server.Run(ctx)
	}

	addr := fmt.Sprintf(":%d", port)
	cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
	return server.RunHTTP(ctx, addr)
}
