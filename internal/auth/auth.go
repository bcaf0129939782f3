// Package auth turns resolved credential files into usable OAuth2 token
// sources for the Google APIs. Interactive login is an explicit operation
// (Login); TokenSource never opens a browser, so the MCP server can fail
// fast with ErrAuthRequired instead of hanging on user interaction.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/quillpad/gsheet-mcp/internal/credentials"
)

// OAuth scopes used by gsheet-mcp.
const (
	ScopeSpreadsheets  = "https://www.googleapis.com/auth/spreadsheets"
	ScopeDriveFile     = "https://www.googleapis.com/auth/drive.file"
	ScopeDriveReadonly = "https://www.googleapis.com/auth/drive.readonly"
)

// ErrAuthRequired signals that no usable cached token exists for the
// profile and an interactive Login is needed.
var ErrAuthRequired = errors.New("interactive login required")

// DefaultScopes returns the scopes requested when the caller has no
// special needs: read/write spreadsheets plus app-created Drive files.
func DefaultScopes() []string {
	return []string{ScopeSpreadsheets, ScopeDriveFile}
}

// TokenSource returns a token source for the profile, backed by the cached
// token on disk. Refreshed tokens are written back to the cache.
//
// Fails with ErrAuthRequired when the cache is missing, unreadable, lacks
// a requested scope, or is expired beyond refresh.
func TokenSource(ctx context.Context, profile string, scopes []string) (oauth2.TokenSource, error) {
	cachePath, err := credentials.ResolveTokenCache(profile)
	if err != nil {
		return nil, err
	}

	cached, err := readCache(cachePath)
	if err != nil {
		return nil, fmt.Errorf("%w: no cached token for profile %q", ErrAuthRequired, profile)
	}
	if !hasScopes(cached.Scopes, scopes) {
		return nil, fmt.Errorf("%w: cached token for profile %q lacks requested scopes", ErrAuthRequired, profile)
	}

	tok := cached.token()
	if !tok.Valid() && tok.RefreshToken == "" {
		return nil, fmt.Errorf("%w: cached token for profile %q expired with no refresh token", ErrAuthRequired, profile)
	}

	conf, confErr := clientConfig("", cached.Scopes)
	if confErr != nil {
		// No client secret on disk. A still-valid access token works as-is;
		// an expired one cannot be refreshed without the client config.
		if tok.Valid() {
			return oauth2.StaticTokenSource(tok), nil
		}
		return nil, confErr
	}

	src := oauth2.ReuseTokenSource(tok, conf.TokenSource(ctx, tok))
	return &savingSource{src: src, path: cachePath, scopes: cached.Scopes, last: tok}, nil
}

// Status describes the cached token for a profile, for diagnostics.
type Status struct {
	Profile     string   `json:"profile"`
	TokenPath   string   `json:"token_path"`
	HasToken    bool     `json:"has_token"`
	Valid       bool     `json:"valid"`
	Refreshable bool     `json:"refreshable"`
	Scopes      []string `json:"scopes,omitempty"`
}

// Inspect reports the state of a profile's token cache without touching
// the network.
func Inspect(profile string) (Status, error) {
	cachePath, err := credentials.ResolveTokenCache(profile)
	if err != nil {
		return Status{}, err
	}

	status := Status{Profile: profile, TokenPath: cachePath}
	cached, err := readCache(cachePath)
	if err != nil {
		return status, nil
	}

	status.HasToken = true
	status.Valid = cached.token().Valid()
	status.Refreshable = cached.RefreshToken != ""
	status.Scopes = cached.Scopes
	return status, nil
}

// clientConfig resolves the client-secret file and parses it into an
// oauth2 config for the given scopes.
func clientConfig(explicit string, scopes []string) (*oauth2.Config, error) {
	resolved, err := credentials.ResolveClientSecret(explicit)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(resolved.SecretPath)
	if err != nil {
		return nil, fmt.Errorf("reading client secret %s: %w", resolved.SecretPath, err)
	}
	conf, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing client secret %s: %w", resolved.SecretPath, err)
	}
	return conf, nil
}

// savingSource persists refreshed tokens back to the cache so the next
// process start does not need to refresh again.
type savingSource struct {
	src    oauth2.TokenSource
	path   string
	scopes []string

	mu   sync.Mutex
	last *oauth2.Token
}

func (s *savingSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil || tok.AccessToken != s.last.AccessToken {
		// Best effort: a failed cache write should not fail the API call.
		_ = writeCache(s.path, tok, s.scopes)
		s.last = tok
	}
	return tok, nil
}
