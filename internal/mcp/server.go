// Package mcp provides the Model Context Protocol server for gsheet-mcp.
// It exposes the configured Google Sheets and Drive resources as MCP tools
// that any MCP-capable agent can use.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quillpad/gsheet-mcp/internal/drive"
)

// SheetsClient is the subset of the Sheets service the tools use.
type SheetsClient interface {
	ListTabTitles(ctx context.Context, spreadsheetID string) ([]string, error)
	ReadRange(ctx context.Context, spreadsheetID, rangeName string) ([][]any, error)
	InsertRowAtTop(ctx context.Context, spreadsheetID, tab string, values []any) error
	CreateTab(ctx context.Context, spreadsheetID, title string) error
	InitReadme(ctx context.Context, spreadsheetID, timestamp string) error
}

// DriveClient is the subset of the Drive service the tools use.
type DriveClient interface {
	ListFolder(ctx context.Context, folderID string) ([]drive.File, error)
	Upload(ctx context.Context, localPath, folderID, name string) (drive.File, error)
	Download(ctx context.Context, fileID, localPath string) error
	Remove(ctx context.Context, fileID string) error
}

// Services resolves a configured alias to an authenticated client plus the
// Google resource ID it maps to. The config's alias map is the whole
// access-control surface: tools never accept raw resource IDs.
type Services interface {
	Sheets(ctx context.Context, alias string) (SheetsClient, string, error)
	Drive(ctx context.Context, alias string) (DriveClient, string, error)
}

// NewServer creates an MCP server with all gsheet-mcp tools registered.
func NewServer(version string, services Services) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "gsheet-mcp",
		Version: version,
	}, nil)
	registerTools(server, services)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(true),
	}
}

// writeAnnotations returns annotations for additive write tools.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	}
}

// destructiveAnnotations returns annotations for destructive tools.
func destructiveAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		OpenWorldHint:   boolPtr(true),
	}
}

// registerTools adds all gsheet-mcp tools to the server.
func registerTools(server *mcp.Server, services Services) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_sheets",
		Description: "List all tabs (sheets) in a configured spreadsheet, identified by its alias.",
		Annotations: readOnlyAnnotations(),
	}, handleListSheets(services))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_sheet_status",
		Description: "Read the values of a spreadsheet range. Defaults to README!A1, the status cell written by init_readme.",
		Annotations: readOnlyAnnotations(),
	}, handleSheetStatus(services))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_prompts",
		Description: "Read all prompt rows from a tab of a configured spreadsheet. Rows follow the Name/Content/Created By/Created At/Last Modified By/Last Modified At schema.",
		Annotations: readOnlyAnnotations(),
	}, handleGetPrompts(services))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "insert_prompt",
		Description: "Insert a prompt as a new row at the top of a tab (below the header) in a configured spreadsheet.",
		Annotations: writeAnnotations(),
	}, handleInsertPrompt(services))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_sheet",
		Description: "Create a new tab in a configured spreadsheet.",
		Annotations: writeAnnotations(),
	}, handleCreateSheet(services))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "init_readme",
		Description: "Create the README status tab in a configured spreadsheet (if missing) and write the standard status rows.",
		Annotations: writeAnnotations(),
	}, handleInitReadme(services))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_drive_files",
		Description: "List files in a configured Google Drive folder, identified by its alias.",
		Annotations: readOnlyAnnotations(),
	}, handleListDriveFiles(services))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "upload_file",
		Description: "Upload a local file to a configured Google Drive folder.",
		Annotations: writeAnnotations(),
	}, handleUploadFile(services))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_file_content",
		Description: "Download a file from a configured Google Drive folder to a local temporary file and return its path.",
		Annotations: readOnlyAnnotations(),
	}, handleGetFileContent(services))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_file",
		Description: "Delete a file from a configured Google Drive folder.",
		Annotations: destructiveAnnotations(),
	}, handleDeleteFile(services))
}
