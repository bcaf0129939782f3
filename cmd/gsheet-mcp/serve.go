// Package main provides the entry point for the gsheet-mcp CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/quillpad/gsheet-mcp/internal/config"
	gsheetmcp "github.com/quillpad/gsheet-mcp/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run gsheet-mcp as a Model Context Protocol (MCP) server over stdio.

This exposes the configured spreadsheets and Drive folders as MCP tools
that any MCP-capable agent environment can use.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "gsheet": {
        "command": "gsheet-mcp",
        "args": ["serve"]
      }
    }
  }

Available tools: list_sheets, get_sheet_status, get_prompts, insert_prompt,
create_sheet, init_readme, list_drive_files, upload_file, get_file_content,
delete_file.

Tools fail with an auth error when no cached token exists for a resource's
profile; run 'gsheet-mcp auth login' first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			server := gsheetmcp.NewServer(buildVersion(), gsheetmcp.NewGoogleServices(cfg))
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: <config dir>/config.yaml)")
	return cmd
}
