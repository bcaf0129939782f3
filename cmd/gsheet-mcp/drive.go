// Package main provides the entry point for the gsheet-mcp CLI.
package main

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/quillpad/gsheet-mcp/internal/auth"
	"github.com/quillpad/gsheet-mcp/internal/config"
	"github.com/quillpad/gsheet-mcp/internal/drive"
	gsheetmcp "github.com/quillpad/gsheet-mcp/internal/mcp"
	"github.com/quillpad/gsheet-mcp/internal/output"
)

// driveClientFor resolves a folder alias to an authenticated Drive client
// bounded by the profile's allowed folders.
func driveClientFor(ctx context.Context, alias string) (gsheetmcp.DriveClient, string, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, "", err
	}
	return gsheetmcp.NewGoogleServices(cfg).Drive(ctx, alias)
}

// newDriveCmd creates the drive command group.
func newDriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drive",
		Short: "Work with configured Drive folders",
	}
	cmd.AddCommand(newDriveLsCmd())
	cmd.AddCommand(newDriveLsAllCmd())
	cmd.AddCommand(newDriveUploadCmd())
	cmd.AddCommand(newDriveGetCmd())
	cmd.AddCommand(newDriveRmCmd())
	return cmd
}

// printFiles renders a file listing in the current output mode.
func printFiles(printer *output.Printer, files []drive.File) error {
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"files": files})
	}
	if len(files) == 0 {
		printer.Println("No files found.")
		return nil
	}
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{f.Name, f.ID, f.MimeType, f.ModifiedTime})
	}
	printer.Table([]string{"Name", "ID", "Type", "Modified"}, rows)
	return nil
}

// newDriveLsCmd creates the drive ls command.
func newDriveLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <folder-alias>",
		Short: "List files in a configured Drive folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			client, folderID, err := driveClientFor(cmd.Context(), args[0])
			if err != nil {
				return fail(printer, err)
			}
			files, err := client.ListFolder(cmd.Context(), folderID)
			if err != nil {
				return fail(printer, err)
			}
			return printFiles(printer, files)
		},
	}
}

// newDriveLsAllCmd creates the drive ls-all command. Unlike ls it is not
// bounded by the configured folders; it exists so a user can find the IDs
// to configure in the first place. It never runs as an MCP tool.
func newDriveLsAllCmd() *cobra.Command {
	var (
		profile  string
		pageSize int64
	)

	cmd := &cobra.Command{
		Use:   "ls-all",
		Short: "List recent Drive files across the whole account",
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			scopes := append(auth.DefaultScopes(), auth.ScopeDriveReadonly)
			src, err := auth.TokenSource(cmd.Context(), profile, scopes)
			if err != nil {
				return fail(printer, err)
			}
			client, err := drive.New(cmd.Context(), nil, option.WithTokenSource(src))
			if err != nil {
				return fail(printer, err)
			}
			files, err := client.ListAll(cmd.Context(), pageSize)
			if err != nil {
				return fail(printer, err)
			}
			return printFiles(printer, files)
		},
	}

	cmd.Flags().StringVar(&profile, "profile", config.DefaultProfile, "Credential profile to authenticate with")
	cmd.Flags().Int64Var(&pageSize, "limit", 100, "Maximum number of files to list")
	return cmd
}

// newDriveUploadCmd creates the drive upload command.
func newDriveUploadCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "upload <folder-alias> <local-path>",
		Short: "Upload a local file to a configured Drive folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			client, folderID, err := driveClientFor(cmd.Context(), args[0])
			if err != nil {
				return fail(printer, err)
			}
			if name == "" {
				name = filepath.Base(args[1])
			}
			file, err := client.Upload(cmd.Context(), args[1], folderID, name)
			if err != nil {
				return fail(printer, err)
			}
			return printer.Success(map[string]any{
				"message": "uploaded " + file.Name,
				"id":      file.ID,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name for the uploaded file (defaults to the local file name)")
	return cmd
}

// newDriveGetCmd creates the drive get command.
func newDriveGetCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "get <folder-alias> <file-id>",
		Short: "Download a file from a configured Drive folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			client, _, err := driveClientFor(cmd.Context(), args[0])
			if err != nil {
				return fail(printer, err)
			}
			if out == "" {
				out = args[1]
			}
			if err := client.Download(cmd.Context(), args[1], out); err != nil {
				return fail(printer, err)
			}
			return printer.Success(map[string]any{
				"message": "downloaded to " + out,
				"path":    out,
			})
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Local path to write (defaults to the file ID)")
	return cmd
}

// newDriveRmCmd creates the drive rm command.
func newDriveRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <folder-alias> <file-id>",
		Short: "Delete a file from a configured Drive folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			client, _, err := driveClientFor(cmd.Context(), args[0])
			if err != nil {
				return fail(printer, err)
			}
			if err := client.Remove(cmd.Context(), args[1]); err != nil {
				return fail(printer, err)
			}
			return printer.Success(map[string]any{"message": "deleted " + args[1]})
		},
	}
}
