package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

// cachedToken is the on-disk token format. Scopes are persisted alongside
// the token so a scope-widening request can be detected and force re-auth,
// matching how the Google client libraries behave.
type cachedToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
	Scopes       []string  `json:"scopes,omitempty"`
}

func (c *cachedToken) token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    c.TokenType,
		Expiry:       c.Expiry,
	}
}

// readCache loads a cached token from path.
func readCache(path string) (*cachedToken, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading token cache %s: %w", path, err)
	}
	cached := &cachedToken{}
	if err := json.Unmarshal(data, cached); err != nil {
		return nil, fmt.Errorf("parsing token cache %s: %w", path, err)
	}
	return cached, nil
}

// writeCache persists a token to path, creating parent directories.
// The file is user-only: it holds a refresh token.
func writeCache(path string, tok *oauth2.Token, scopes []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating token cache directory: %w", err)
	}
	data, err := json.MarshalIndent(&cachedToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
		Scopes:       scopes,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding token cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing token cache %s: %w", path, err)
	}
	return nil
}

// hasScopes reports whether the cached scopes cover every requested scope.
func hasScopes(cached, requested []string) bool {
	have := make(map[string]bool, len(cached))
	for _, scope := range cached {
		have[scope] = true
	}
	for _, scope := range requested {
		if !have[scope] {
			return false
		}
	}
	return true
}
