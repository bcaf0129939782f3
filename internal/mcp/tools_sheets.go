package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quillpad/gsheet-mcp/internal/sheets"
)

// DefaultAuthor is recorded when insert_prompt omits an author.
const DefaultAuthor = "gsheet-mcp"

// defaultStatusRange is the range get_sheet_status reads when none is given.
const defaultStatusRange = sheets.ReadmeTab + "!A1"

// --- list_sheets ---

// ListSheetsInput identifies a configured spreadsheet.
type ListSheetsInput struct {
	SheetAlias string `json:"sheet_alias" jsonschema:"configured spreadsheet alias"`
}

// ListSheetsOutput lists tab titles.
type ListSheetsOutput struct {
	Tabs []string `json:"tabs" jsonschema:"tab titles in spreadsheet order"`
}

func handleListSheets(services Services) mcp.ToolHandlerFor[ListSheetsInput, ListSheetsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListSheetsInput) (*mcp.CallToolResult, ListSheetsOutput, error) {
		client, spreadsheetID, err := services.Sheets(ctx, input.SheetAlias)
		if err != nil {
			return nil, ListSheetsOutput{}, err
		}
		tabs, err := client.ListTabTitles(ctx, spreadsheetID)
		if err != nil {
			return nil, ListSheetsOutput{}, fmt.Errorf("listing tabs: %w", err)
		}
		return nil, ListSheetsOutput{Tabs: tabs}, nil
	}
}

// --- get_sheet_status ---

// SheetStatusInput identifies a spreadsheet range to read.
type SheetStatusInput struct {
	SheetAlias string `json:"sheet_alias"     jsonschema:"configured spreadsheet alias"`
	Range      string `json:"range,omitempty" jsonschema:"A1-notation range (default README!A1)"`
}

// SheetStatusOutput carries the values of the requested range.
type SheetStatusOutput struct {
	Range string     `json:"range" jsonschema:"the range that was read"`
	Rows  [][]string `json:"rows"  jsonschema:"cell values, row-major"`
}

func handleSheetStatus(services Services) mcp.ToolHandlerFor[SheetStatusInput, SheetStatusOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SheetStatusInput) (*mcp.CallToolResult, SheetStatusOutput, error) {
		rangeName := input.Range
		if rangeName == "" {
			rangeName = defaultStatusRange
		}

		client, spreadsheetID, err := services.Sheets(ctx, input.SheetAlias)
		if err != nil {
			return nil, SheetStatusOutput{}, err
		}
		values, err := client.ReadRange(ctx, spreadsheetID, rangeName)
		if err != nil {
			return nil, SheetStatusOutput{}, fmt.Errorf("reading range: %w", err)
		}
		return nil, SheetStatusOutput{Range: rangeName, Rows: stringRows(values)}, nil
	}
}

// --- get_prompts ---

// GetPromptsInput identifies a prompt tab.
type GetPromptsInput struct {
	SheetAlias string `json:"sheet_alias" jsonschema:"configured spreadsheet alias"`
	Tab        string `json:"tab"         jsonschema:"tab holding prompt rows"`
}

// GetPromptsOutput lists parsed prompt records.
type GetPromptsOutput struct {
	Prompts []sheets.Prompt `json:"prompts" jsonschema:"prompt rows, header excluded"`
}

func handleGetPrompts(services Services) mcp.ToolHandlerFor[GetPromptsInput, GetPromptsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetPromptsInput) (*mcp.CallToolResult, GetPromptsOutput, error) {
		if input.Tab == "" {
			return nil, GetPromptsOutput{}, errors.New("tab is required")
		}

		client, spreadsheetID, err := services.Sheets(ctx, input.SheetAlias)
		if err != nil {
			return nil, GetPromptsOutput{}, err
		}
		rows, err := client.ReadRange(ctx, spreadsheetID, sheets.PromptRange(input.Tab))
		if err != nil {
			return nil, GetPromptsOutput{}, fmt.Errorf("reading prompts: %w", err)
		}
		return nil, GetPromptsOutput{Prompts: sheets.ParsePrompts(rows)}, nil
	}
}

// --- insert_prompt ---

// InsertPromptInput is a new prompt row.
type InsertPromptInput struct {
	SheetAlias string `json:"sheet_alias"      jsonschema:"configured spreadsheet alias"`
	Tab        string `json:"tab"              jsonschema:"tab to insert into"`
	Name       string `json:"name"             jsonschema:"prompt name"`
	Content    string `json:"content"          jsonschema:"prompt content"`
	Author     string `json:"author,omitempty" jsonschema:"author recorded in the row (default gsheet-mcp)"`
}

// InsertPromptOutput confirms the insertion.
type InsertPromptOutput struct {
	Message string `json:"message" jsonschema:"confirmation message"`
}

func handleInsertPrompt(services Services) mcp.ToolHandlerFor[InsertPromptInput, InsertPromptOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input InsertPromptInput) (*mcp.CallToolResult, InsertPromptOutput, error) {
		if err := validateInsertPrompt(input); err != nil {
			return nil, InsertPromptOutput{}, err
		}

		author := input.Author
		if author == "" {
			author = DefaultAuthor
		}

		client, spreadsheetID, err := services.Sheets(ctx, input.SheetAlias)
		if err != nil {
			return nil, InsertPromptOutput{}, err
		}

		timestamp := time.Now().UTC().Format(time.RFC3339)
		row := sheets.PromptRow(input.Name, input.Content, author, timestamp)
		if err := client.InsertRowAtTop(ctx, spreadsheetID, input.Tab, row); err != nil {
			return nil, InsertPromptOutput{}, fmt.Errorf("inserting prompt: %w", err)
		}
		return nil, InsertPromptOutput{Message: fmt.Sprintf("prompt %q inserted into %s", input.Name, input.Tab)}, nil
	}
}

func validateInsertPrompt(input InsertPromptInput) error {
	if input.Tab == "" {
		return errors.New("tab is required")
	}
	if input.Name == "" {
		return errors.New("name is required")
	}
	if input.Content == "" {
		return errors.New("content is required")
	}
	return nil
}

// --- create_sheet ---

// CreateSheetInput names a new tab.
type CreateSheetInput struct {
	SheetAlias string `json:"sheet_alias" jsonschema:"configured spreadsheet alias"`
	Title      string `json:"title"       jsonschema:"title of the new tab"`
}

// CreateSheetOutput confirms the creation.
type CreateSheetOutput struct {
	Message string `json:"message" jsonschema:"confirmation message"`
}

func handleCreateSheet(services Services) mcp.ToolHandlerFor[CreateSheetInput, CreateSheetOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateSheetInput) (*mcp.CallToolResult, CreateSheetOutput, error) {
		if input.Title == "" {
			return nil, CreateSheetOutput{}, errors.New("title is required")
		}

		client, spreadsheetID, err := services.Sheets(ctx, input.SheetAlias)
		if err != nil {
			return nil, CreateSheetOutput{}, err
		}
		if err := client.CreateTab(ctx, spreadsheetID, input.Title); err != nil {
			return nil, CreateSheetOutput{}, err
		}
		return nil, CreateSheetOutput{Message: fmt.Sprintf("tab %q created", input.Title)}, nil
	}
}

// --- init_readme ---

// InitReadmeInput identifies the spreadsheet to initialize.
type InitReadmeInput struct {
	SheetAlias string `json:"sheet_alias" jsonschema:"configured spreadsheet alias"`
}

// InitReadmeOutput confirms initialization.
type InitReadmeOutput struct {
	Message string `json:"message" jsonschema:"confirmation message"`
}

func handleInitReadme(services Services) mcp.ToolHandlerFor[InitReadmeInput, InitReadmeOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input InitReadmeInput) (*mcp.CallToolResult, InitReadmeOutput, error) {
		client, spreadsheetID, err := services.Sheets(ctx, input.SheetAlias)
		if err != nil {
			return nil, InitReadmeOutput{}, err
		}

		timestamp := time.Now().UTC().Format(time.RFC3339)
		if err := client.InitReadme(ctx, spreadsheetID, timestamp); err != nil {
			return nil, InitReadmeOutput{}, err
		}
		return nil, InitReadmeOutput{Message: "README tab initialized"}, nil
	}
}

// stringRows flattens API cell values to strings for schema-stable output.
func stringRows(values [][]any) [][]string {
	rows := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}
	return rows
}
