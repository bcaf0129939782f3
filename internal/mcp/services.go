package mcp

import (
	"context"

	"google.golang.org/api/option"

	"github.com/quillpad/gsheet-mcp/internal/auth"
	"github.com/quillpad/gsheet-mcp/internal/config"
	"github.com/quillpad/gsheet-mcp/internal/drive"
	"github.com/quillpad/gsheet-mcp/internal/sheets"
)

// GoogleServices is the production Services implementation: aliases come
// from the config file, credentials from the profile's token cache. Each
// call builds a fresh client, so a token refreshed or replaced on disk is
// picked up without restarting the server.
type GoogleServices struct {
	cfg *config.Manager
}

// NewGoogleServices creates a Services backed by the loaded configuration.
func NewGoogleServices(cfg *config.Manager) *GoogleServices {
	return &GoogleServices{cfg: cfg}
}

// Sheets resolves a spreadsheet alias to an authenticated Sheets client.
func (g *GoogleServices) Sheets(ctx context.Context, alias string) (SheetsClient, string, error) {
	res, err := g.cfg.SheetResource(alias)
	if err != nil {
		return nil, "", err
	}

	src, err := auth.TokenSource(ctx, res.Profile, auth.DefaultScopes())
	if err != nil {
		return nil, "", err
	}

	client, err := sheets.New(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, "", err
	}
	return client, res.ID, nil
}

// Drive resolves a folder alias to an authenticated Drive client bounded
// by the folders configured for the same profile.
func (g *GoogleServices) Drive(ctx context.Context, alias string) (DriveClient, string, error) {
	res, err := g.cfg.FolderResource(alias)
	if err != nil {
		return nil, "", err
	}

	src, err := auth.TokenSource(ctx, res.Profile, auth.DefaultScopes())
	if err != nil {
		return nil, "", err
	}

	client, err := drive.New(ctx, g.cfg.AllowedFolderIDs(res.Profile), option.WithTokenSource(src))
	if err != nil {
		return nil, "", err
	}
	return client, res.ID, nil
}
