package mcp

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quillpad/gsheet-mcp/internal/drive"
)

// --- Fake services ---

type fakeSheets struct {
	tabs       []string
	rows       [][]any
	readRange  string
	inserted   [][]any
	insertTab  string
	createdTab string
	readmeInit bool
	err        error
}

func (f *fakeSheets) ListTabTitles(_ context.Context, _ string) ([]string, error) {
	return f.tabs, f.err
}

func (f *fakeSheets) ReadRange(_ context.Context, _ string, rangeName string) ([][]any, error) {
	f.readRange = rangeName
	return f.rows, f.err
}

func (f *fakeSheets) InsertRowAtTop(_ context.Context, _ string, tab string, values []any) error {
	f.insertTab = tab
	f.inserted = append(f.inserted, values)
	return f.err
}

func (f *fakeSheets) CreateTab(_ context.Context, _ string, title string) error {
	f.createdTab = title
	return f.err
}

func (f *fakeSheets) InitReadme(_ context.Context, _ string, _ string) error {
	f.readmeInit = true
	return f.err
}

type fakeDrive struct {
	files      []drive.File
	uploaded   string
	downloaded string
	removed    string
	content    []byte
	err        error
}

func (f *fakeDrive) ListFolder(_ context.Context, _ string) ([]drive.File, error) {
	return f.files, f.err
}

func (f *fakeDrive) Upload(_ context.Context, localPath, _ string, name string) (drive.File, error) {
	f.uploaded = localPath
	if f.err != nil {
		return drive.File{}, f.err
	}
	return drive.File{ID: "new-file", Name: name}, nil
}

func (f *fakeDrive) Download(_ context.Context, fileID, localPath string) error {
	f.downloaded = fileID
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(localPath, f.content, 0o600)
}

func (f *fakeDrive) Remove(_ context.Context, fileID string) error {
	f.removed = fileID
	return f.err
}

type fakeServices struct {
	sheets     *fakeSheets
	drive      *fakeDrive
	aliasErr   error
	seenAlias  string
	resourceID string
}

func (f *fakeServices) Sheets(_ context.Context, alias string) (SheetsClient, string, error) {
	f.seenAlias = alias
	if f.aliasErr != nil {
		return nil, "", f.aliasErr
	}
	return f.sheets, f.resourceID, nil
}

func (f *fakeServices) Drive(_ context.Context, alias string) (DriveClient, string, error) {
	f.seenAlias = alias
	if f.aliasErr != nil {
		return nil, "", f.aliasErr
	}
	return f.drive, f.resourceID, nil
}

// --- Sheets tool tests ---

func TestHandleListSheets(t *testing.T) {
	services := &fakeServices{
		sheets:     &fakeSheets{tabs: []string{"README", "Prompts"}},
		resourceID: "sheet-1",
	}
	handler := handleListSheets(services)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ListSheetsInput{SheetAlias: "prompts"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Tabs) != 2 || out.Tabs[0] != "README" {
		t.Errorf("Tabs = %v", out.Tabs)
	}
	if services.seenAlias != "prompts" {
		t.Errorf("alias = %q", services.seenAlias)
	}
}

func TestHandleListSheets_UnknownAlias(t *testing.T) {
	services := &fakeServices{aliasErr: errors.New("access denied: sheet alias \"nope\" not found")}
	handler := handleListSheets(services)

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ListSheetsInput{SheetAlias: "nope"})
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Errorf("err = %v", err)
	}
}

func TestHandleSheetStatus_DefaultRange(t *testing.T) {
	fake := &fakeSheets{rows: [][]any{{"gsheet-mcp"}}}
	services := &fakeServices{sheets: fake, resourceID: "sheet-1"}
	handler := handleSheetStatus(services)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, SheetStatusInput{SheetAlias: "prompts"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.readRange != "README!A1" {
		t.Errorf("read range = %q, want default README!A1", fake.readRange)
	}
	if out.Rows[0][0] != "gsheet-mcp" {
		t.Errorf("Rows = %v", out.Rows)
	}
}

func TestHandleGetPrompts_ParsesRows(t *testing.T) {
	fake := &fakeSheets{rows: [][]any{
		{"Name", "Content", "Created By", "Created At", "Last Modified By", "Last Modified At"},
		{"greeting", "Say hello", "alice", "t1", "alice", "t1"},
	}}
	services := &fakeServices{sheets: fake, resourceID: "sheet-1"}
	handler := handleGetPrompts(services)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, GetPromptsInput{SheetAlias: "prompts", Tab: "Prompts"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.readRange != "Prompts!A:F" {
		t.Errorf("read range = %q", fake.readRange)
	}
	if len(out.Prompts) != 1 || out.Prompts[0].Name != "greeting" {
		t.Errorf("Prompts = %+v", out.Prompts)
	}
}

func TestHandleInsertPrompt(t *testing.T) {
	fake := &fakeSheets{}
	services := &fakeServices{sheets: fake, resourceID: "sheet-1"}
	handler := handleInsertPrompt(services)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, InsertPromptInput{
		SheetAlias: "prompts",
		Tab:        "Prompts",
		Name:       "greeting",
		Content:    "Say hello",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.insertTab != "Prompts" || len(fake.inserted) != 1 {
		t.Fatalf("inserted = %v in tab %q", fake.inserted, fake.insertTab)
	}

	row := fake.inserted[0]
	if len(row) != 6 {
		t.Fatalf("row has %d columns, want 6", len(row))
	}
	if row[2] != DefaultAuthor || row[4] != DefaultAuthor {
		t.Errorf("author columns = %v, %v, want default author", row[2], row[4])
	}
	if row[3] != row[5] {
		t.Errorf("created/modified timestamps differ on insert: %v vs %v", row[3], row[5])
	}
	if out.Message == "" {
		t.Error("empty confirmation message")
	}
}

func TestHandleInsertPrompt_Validation(t *testing.T) {
	handler := handleInsertPrompt(&fakeServices{sheets: &fakeSheets{}})

	tests := []struct {
		name  string
		input InsertPromptInput
	}{
		{"missing tab", InsertPromptInput{SheetAlias: "a", Name: "n", Content: "c"}},
		{"missing name", InsertPromptInput{SheetAlias: "a", Tab: "t", Content: "c"}},
		{"missing content", InsertPromptInput{SheetAlias: "a", Tab: "t", Name: "n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := handler(context.Background(), &mcp.CallToolRequest{}, tt.input); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestHandleCreateSheet(t *testing.T) {
	fake := &fakeSheets{}
	handler := handleCreateSheet(&fakeServices{sheets: fake, resourceID: "sheet-1"})

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, CreateSheetInput{SheetAlias: "prompts", Title: "Archive"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.createdTab != "Archive" {
		t.Errorf("createdTab = %q", fake.createdTab)
	}
}

func TestHandleInitReadme(t *testing.T) {
	fake := &fakeSheets{}
	handler := handleInitReadme(&fakeServices{sheets: fake, resourceID: "sheet-1"})

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, InitReadmeInput{SheetAlias: "prompts"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fake.readmeInit {
		t.Error("InitReadme not called")
	}
	if out.Message == "" {
		t.Error("empty confirmation message")
	}
}

// --- Drive tool tests ---

func TestHandleListDriveFiles(t *testing.T) {
	services := &fakeServices{
		drive:      &fakeDrive{files: []drive.File{{ID: "f1", Name: "notes.txt"}}},
		resourceID: "folder-1",
	}
	handler := handleListDriveFiles(services)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ListDriveFilesInput{FolderAlias: "inbox"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Files) != 1 || out.Files[0].ID != "f1" {
		t.Errorf("Files = %+v", out.Files)
	}
}

func TestHandleUploadFile(t *testing.T) {
	fake := &fakeDrive{}
	handler := handleUploadFile(&fakeServices{drive: fake, resourceID: "folder-1"})

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, UploadFileInput{
		FolderAlias: "inbox",
		LocalPath:   "/tmp/notes.txt",
		Name:        "notes.txt",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.uploaded != "/tmp/notes.txt" {
		t.Errorf("uploaded = %q", fake.uploaded)
	}
	if out.FileID != "new-file" {
		t.Errorf("FileID = %q", out.FileID)
	}
}

func TestHandleGetFileContent_WritesTempFile(t *testing.T) {
	fake := &fakeDrive{content: []byte("hello")}
	handler := handleGetFileContent(&fakeServices{drive: fake, resourceID: "folder-1"})

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, GetFileContentInput{
		FolderAlias: "inbox",
		FileID:      "f1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(out.LocalPath) })

	data, err := os.ReadFile(out.LocalPath)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q", data)
	}
}

func TestHandleDeleteFile(t *testing.T) {
	fake := &fakeDrive{}
	handler := handleDeleteFile(&fakeServices{drive: fake, resourceID: "folder-1"})

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, DeleteFileInput{FolderAlias: "inbox", FileID: "f1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.removed != "f1" {
		t.Errorf("removed = %q", fake.removed)
	}
}

func TestHandleDeleteFile_GuardErrorPropagates(t *testing.T) {
	fake := &fakeDrive{err: drive.ErrDenied}
	handler := handleDeleteFile(&fakeServices{drive: fake, resourceID: "folder-1"})

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, DeleteFileInput{FolderAlias: "inbox", FileID: "f1"})
	if !errors.Is(err, drive.ErrDenied) {
		t.Errorf("err = %v, want ErrDenied", err)
	}
}
