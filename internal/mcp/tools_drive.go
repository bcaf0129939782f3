package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quillpad/gsheet-mcp/internal/drive"
)

// --- list_drive_files ---

// ListDriveFilesInput identifies a configured folder.
type ListDriveFilesInput struct {
	FolderAlias string `json:"folder_alias" jsonschema:"configured Drive folder alias"`
}

// ListDriveFilesOutput lists the folder's files.
type ListDriveFilesOutput struct {
	Files []drive.File `json:"files" jsonschema:"non-trashed files in the folder"`
}

func handleListDriveFiles(services Services) mcp.ToolHandlerFor[ListDriveFilesInput, ListDriveFilesOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListDriveFilesInput) (*mcp.CallToolResult, ListDriveFilesOutput, error) {
		client, folderID, err := services.Drive(ctx, input.FolderAlias)
		if err != nil {
			return nil, ListDriveFilesOutput{}, err
		}
		files, err := client.ListFolder(ctx, folderID)
		if err != nil {
			return nil, ListDriveFilesOutput{}, err
		}
		return nil, ListDriveFilesOutput{Files: files}, nil
	}
}

// --- upload_file ---

// UploadFileInput describes a local file to upload.
type UploadFileInput struct {
	FolderAlias string `json:"folder_alias"   jsonschema:"configured Drive folder alias"`
	LocalPath   string `json:"local_path"     jsonschema:"path of the local file to upload"`
	Name        string `json:"name,omitempty" jsonschema:"name in Drive (default: local base name)"`
}

// UploadFileOutput reports the created file.
type UploadFileOutput struct {
	FileID  string `json:"file_id" jsonschema:"ID of the created Drive file"`
	Message string `json:"message" jsonschema:"confirmation message"`
}

func handleUploadFile(services Services) mcp.ToolHandlerFor[UploadFileInput, UploadFileOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UploadFileInput) (*mcp.CallToolResult, UploadFileOutput, error) {
		if input.LocalPath == "" {
			return nil, UploadFileOutput{}, errors.New("local_path is required")
		}

		client, folderID, err := services.Drive(ctx, input.FolderAlias)
		if err != nil {
			return nil, UploadFileOutput{}, err
		}
		file, err := client.Upload(ctx, input.LocalPath, folderID, input.Name)
		if err != nil {
			return nil, UploadFileOutput{}, err
		}
		return nil, UploadFileOutput{
			FileID:  file.ID,
			Message: fmt.Sprintf("uploaded %s", file.Name),
		}, nil
	}
}

// --- get_file_content ---

// GetFileContentInput identifies a file to download.
type GetFileContentInput struct {
	FolderAlias string `json:"folder_alias" jsonschema:"configured Drive folder alias"`
	FileID      string `json:"file_id"      jsonschema:"ID of the Drive file to download"`
}

// GetFileContentOutput reports where the content was written.
type GetFileContentOutput struct {
	LocalPath string `json:"local_path" jsonschema:"temporary file holding the downloaded content"`
	Message   string `json:"message"    jsonschema:"confirmation message"`
}

func handleGetFileContent(services Services) mcp.ToolHandlerFor[GetFileContentInput, GetFileContentOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetFileContentInput) (*mcp.CallToolResult, GetFileContentOutput, error) {
		if input.FileID == "" {
			return nil, GetFileContentOutput{}, errors.New("file_id is required")
		}

		client, _, err := services.Drive(ctx, input.FolderAlias)
		if err != nil {
			return nil, GetFileContentOutput{}, err
		}

		tmp, err := os.CreateTemp("", "gsheet-mcp-*")
		if err != nil {
			return nil, GetFileContentOutput{}, fmt.Errorf("creating temp file: %w", err)
		}
		path := tmp.Name()
		_ = tmp.Close()

		if err := client.Download(ctx, input.FileID, path); err != nil {
			_ = os.Remove(path)
			return nil, GetFileContentOutput{}, err
		}
		return nil, GetFileContentOutput{LocalPath: path, Message: "file downloaded"}, nil
	}
}

// --- delete_file ---

// DeleteFileInput identifies a file to delete.
type DeleteFileInput struct {
	FolderAlias string `json:"folder_alias" jsonschema:"configured Drive folder alias"`
	FileID      string `json:"file_id"      jsonschema:"ID of the Drive file to delete"`
}

// DeleteFileOutput confirms the deletion.
type DeleteFileOutput struct {
	Message string `json:"message" jsonschema:"confirmation message"`
}

func handleDeleteFile(services Services) mcp.ToolHandlerFor[DeleteFileInput, DeleteFileOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteFileInput) (*mcp.CallToolResult, DeleteFileOutput, error) {
		if input.FileID == "" {
			return nil, DeleteFileOutput{}, errors.New("file_id is required")
		}

		client, _, err := services.Drive(ctx, input.FolderAlias)
		if err != nil {
			return nil, DeleteFileOutput{}, err
		}
		if err := client.Remove(ctx, input.FileID); err != nil {
			return nil, DeleteFileOutput{}, err
		}
		return nil, DeleteFileOutput{Message: fmt.Sprintf("file %s deleted", input.FileID)}, nil
	}
}
