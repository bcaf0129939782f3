// Package config holds the gsheet-mcp configuration: the config directory
// and the alias map from sheet/folder names to Google resource IDs.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the gsheet-mcp configuration directory.
//
// Resolution:
//   - $GSHEET_MCP_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/gsheet-mcp if set (respects XDG on any platform)
//   - %AppData%/gsheet-mcp on Windows
//   - ~/.config/gsheet-mcp on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("GSHEET_MCP_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gsheet-mcp")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "gsheet-mcp")
		}
	}

	// macOS and Linux: ~/.config/gsheet-mcp
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gsheet-mcp")
}
