// Package drive wraps the Google Drive API with a folder allow-list.
// Every operation is checked against the folders configured for the
// active profile, so a misdirected tool call cannot touch files outside
// the configured folders.
package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// ErrDenied marks an operation outside the allowed folders.
var ErrDenied = errors.New("drive access denied")

// File is the subset of Drive file metadata the tools report.
type File struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size,omitempty"`
	ModifiedTime string `json:"modified_time,omitempty"`
}

// Service is a folder-guarded client over the Drive API.
type Service struct {
	api     *driveapi.Service
	allowed map[string]bool
}

// New creates a Service restricted to allowedFolderIDs. An empty list
// disables all guarded operations.
func New(ctx context.Context, allowedFolderIDs []string, opts ...option.ClientOption) (*Service, error) {
	api, err := driveapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating drive client: %w", err)
	}

	allowed := make(map[string]bool, len(allowedFolderIDs))
	for _, id := range allowedFolderIDs {
		allowed[id] = true
	}
	return &Service{api: api, allowed: allowed}, nil
}

// verifyFolder checks that a parent folder is allowed.
func (s *Service) verifyFolder(folderID string) error {
	if len(s.allowed) == 0 {
		return fmt.Errorf("%w: no allowed folders configured", ErrDenied)
	}
	if !s.allowed[folderID] {
		return fmt.Errorf("%w: folder %s is not allowed", ErrDenied, folderID)
	}
	return nil
}

// verifyFile checks that a file lives inside an allowed folder by
// inspecting its parents. An unverifiable file (missing, no parents) is
// denied rather than allowed.
func (s *Service) verifyFile(ctx context.Context, fileID string) error {
	if len(s.allowed) == 0 {
		return fmt.Errorf("%w: no allowed folders configured", ErrDenied)
	}

	file, err := s.api.Files.Get(fileID).Fields("parents").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: could not verify access for file %s: %v", ErrDenied, fileID, err)
	}
	for _, parent := range file.Parents {
		if s.allowed[parent] {
			return nil
		}
	}
	return fmt.Errorf("%w: file %s is not in an allowed folder", ErrDenied, fileID)
}

// ListFolder lists the non-trashed files in an allowed folder.
func (s *Service) ListFolder(ctx context.Context, folderID string) ([]File, error) {
	if err := s.verifyFolder(folderID); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("'%s' in parents and trashed = false", folderID)
	resp, err := s.api.Files.List().Q(query).
		Fields("files(id, name, mimeType, size, modifiedTime)").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing folder %s: %w", folderID, err)
	}
	return toFiles(resp.Files), nil
}

// ListAll lists every file visible to the credentials, unguarded. This is
// a diagnostic operation needing the broader drive.readonly scope; it is
// exposed only on the CLI, never as an MCP tool.
func (s *Service) ListAll(ctx context.Context, pageSize int64) ([]File, error) {
	if pageSize <= 0 {
		pageSize = 100
	}
	resp, err := s.api.Files.List().PageSize(pageSize).
		Fields("nextPageToken, files(id, name, mimeType)").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing all files: %w", err)
	}
	return toFiles(resp.Files), nil
}

// Upload creates a file in an allowed folder from local content.
// Name defaults to the local file's base name.
func (s *Service) Upload(ctx context.Context, localPath, folderID, name string) (File, error) {
	if err := s.verifyFolder(folderID); err != nil {
		return File{}, err
	}

	local, err := os.Open(localPath)
	if err != nil {
		return File{}, fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer local.Close() //nolint:errcheck // read-only file

	if name == "" {
		name = filepath.Base(localPath)
	}
	created, err := s.api.Files.Create(&driveapi.File{
		Name:    name,
		Parents: []string{folderID},
	}).Media(local).Fields("id, name, mimeType").Context(ctx).Do()
	if err != nil {
		return File{}, fmt.Errorf("uploading %s: %w", name, err)
	}
	return File{ID: created.Id, Name: created.Name, MimeType: created.MimeType}, nil
}

// Download writes an allowed file's content to localPath.
func (s *Service) Download(ctx context.Context, fileID, localPath string) error {
	if err := s.verifyFile(ctx, fileID); err != nil {
		return err
	}

	resp, err := s.api.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("downloading file %s: %w", fileID, err)
	}
	defer resp.Body.Close() //nolint:errcheck // drained below

	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", localPath, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		return fmt.Errorf("writing %s: %w", localPath, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", localPath, err)
	}
	return nil
}

// Remove deletes an allowed file.
func (s *Service) Remove(ctx context.Context, fileID string) error {
	if err := s.verifyFile(ctx, fileID); err != nil {
		return err
	}
	if err := s.api.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("deleting file %s: %w", fileID, err)
	}
	return nil
}

func toFiles(raw []*driveapi.File) []File {
	files := make([]File, 0, len(raw))
	for _, f := range raw {
		files = append(files, File{
			ID:           f.Id,
			Name:         f.Name,
			MimeType:     f.MimeType,
			Size:         f.Size,
			ModifiedTime: f.ModifiedTime,
		})
	}
	return files
}
