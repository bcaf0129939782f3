// Package main provides the entry point for the gsheet-mcp CLI.
package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillpad/gsheet-mcp/internal/config"
	gsheetmcp "github.com/quillpad/gsheet-mcp/internal/mcp"
	"github.com/quillpad/gsheet-mcp/internal/sheets"
)

// sheetsClientFor resolves an alias to an authenticated Sheets client via
// the same factory the MCP server uses.
func sheetsClientFor(ctx context.Context, alias string) (gsheetmcp.SheetsClient, string, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, "", err
	}
	return gsheetmcp.NewGoogleServices(cfg).Sheets(ctx, alias)
}

// newSheetsCmd creates the sheets command group.
func newSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Work with configured spreadsheets",
	}
	cmd.AddCommand(newSheetsTabsCmd())
	cmd.AddCommand(newSheetsStatusCmd())
	cmd.AddCommand(newSheetsPromptsCmd())
	cmd.AddCommand(newSheetsInsertCmd())
	cmd.AddCommand(newSheetsCreateTabCmd())
	cmd.AddCommand(newSheetsInitReadmeCmd())
	return cmd
}

// newSheetsTabsCmd creates the sheets tabs command.
func newSheetsTabsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tabs <sheet-alias>",
		Short: "List the tabs of a configured spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			client, spreadsheetID, err := sheetsClientFor(cmd.Context(), args[0])
			if err != nil {
				return fail(printer, err)
			}
			tabs, err := client.ListTabTitles(cmd.Context(), spreadsheetID)
			if err != nil {
				return fail(printer, err)
			}

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"tabs": tabs})
			}
			if len(tabs) == 0 {
				printer.Println("No tabs found.")
				return nil
			}
			for i, tab := range tabs {
				printer.Print("%d. %s\n", i+1, tab)
			}
			return nil
		},
	}
}

// newSheetsStatusCmd creates the sheets status command.
func newSheetsStatusCmd() *cobra.Command {
	var rangeName string

	cmd := &cobra.Command{
		Use:   "status <sheet-alias>",
		Short: "Read a range of a configured spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			client, spreadsheetID, err := sheetsClientFor(cmd.Context(), args[0])
			if err != nil {
				return fail(printer, err)
			}
			values, err := client.ReadRange(cmd.Context(), spreadsheetID, rangeName)
			if err != nil {
				return fail(printer, err)
			}

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"range": rangeName, "rows": values})
			}
			if len(values) == 0 {
				printer.Println("No data found.")
				return nil
			}
			for _, row := range values {
				printer.Println(row...)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rangeName, "range", sheets.ReadmeTab+"!A1", "A1-notation range to read")
	return cmd
}

// newSheetsPromptsCmd creates the sheets prompts command.
func newSheetsPromptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompts <sheet-alias> <tab>",
		Short: "List the prompt rows of a tab",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			client, spreadsheetID, err := sheetsClientFor(cmd.Context(), args[0])
			if err != nil {
				return fail(printer, err)
			}
			rows, err := client.ReadRange(cmd.Context(), spreadsheetID, sheets.PromptRange(args[1]))
			if err != nil {
				return fail(printer, err)
			}
			prompts := sheets.ParsePrompts(rows)

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"prompts": prompts})
			}
			if len(prompts) == 0 {
				printer.Println("No prompts found.")
				return nil
			}

			tableRows := make([][]string, 0, len(prompts))
			for _, prompt := range prompts {
				content := prompt.Content
				if len(content) > 50 {
					content = content[:47] + "..."
				}
				tableRows = append(tableRows, []string{prompt.Name, content, prompt.CreatedBy})
			}
			printer.Table([]string{"Name", "Content", "Created By"}, tableRows)
			return nil
		},
	}
}

// newSheetsInsertCmd creates the sheets insert command.
func newSheetsInsertCmd() *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   "insert <sheet-alias> <tab> <name> <content>",
		Short: "Insert a prompt row at the top of a tab",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			client, spreadsheetID, err := sheetsClientFor(cmd.Context(), args[0])
			if err != nil {
				return fail(printer, err)
			}

			timestamp := time.Now().UTC().Format(time.RFC3339)
			row := sheets.PromptRow(args[2], args[3], author, timestamp)
			if err := client.InsertRowAtTop(cmd.Context(), spreadsheetID, args[1], row); err != nil {
				return fail(printer, err)
			}
			return printer.Success(map[string]any{
				"message": "prompt " + args[2] + " inserted into " + args[1],
			})
		},
	}

	cmd.Flags().StringVar(&author, "author", "cli", "Author recorded in the row")
	return cmd
}

// newSheetsCreateTabCmd creates the sheets create-tab command.
func newSheetsCreateTabCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-tab <sheet-alias> <title>",
		Short: "Create a new tab in a configured spreadsheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			client, spreadsheetID, err := sheetsClientFor(cmd.Context(), args[0])
			if err != nil {
				return fail(printer, err)
			}
			if err := client.CreateTab(cmd.Context(), spreadsheetID, args[1]); err != nil {
				return fail(printer, err)
			}
			return printer.Success(map[string]any{"message": "tab " + args[1] + " created"})
		},
	}
}

// newSheetsInitReadmeCmd creates the sheets init-readme command.
func newSheetsInitReadmeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-readme <sheet-alias>",
		Short: "Create the README status tab and write the status rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			client, spreadsheetID, err := sheetsClientFor(cmd.Context(), args[0])
			if err != nil {
				return fail(printer, err)
			}

			timestamp := time.Now().UTC().Format(time.RFC3339)
			if err := client.InitReadme(cmd.Context(), spreadsheetID, timestamp); err != nil {
				return fail(printer, err)
			}
			return printer.Success(map[string]any{"message": "README tab initialized"})
		},
	}
}
