package cli

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/composer/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Expose message conversion, mention listing, member search and
drafts to MCP clients.

Tools:
  convert_message  - Convert a stored value to canonical, markup or plain
  list_mentions    - List the members a stored value mentions
  search_members   - Find mentionable members by name prefix

Resources:
  composer://drafts, composer://drafts/{channel}, composer://members

The server speaks JSON-RPC over stdio unless --port is given, in which
case it serves streamable HTTP on --host:--port.

Examples:
  composer mcp serve
  composer mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

var (
	mcpHost string
	mcpPort int
)

func init() {
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "127.0.0.1", "HTTP listen address")
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if conversionService == nil {
		return errors.New("conversion service not configured")
	}
	if mcpPort < 0 || mcpPort > 65535 {
		return fmt.Errorf("invalid port %d", mcpPort)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Conversion: conversionService,
		Directory:  directoryService,
		Drafts:     draftService,
	})
	if err != nil {
		return err
	}

	if mcpPort == 0 {
		return server.Run(cmd.Context())
	}

	addr := net.JoinHostPort(mcpHost, strconv.Itoa(mcpPort))
	fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
