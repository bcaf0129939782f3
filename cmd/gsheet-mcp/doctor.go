// Package main provides the entry point for the gsheet-mcp CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillpad/gsheet-mcp/internal/auth"
	"github.com/quillpad/gsheet-mcp/internal/config"
	"github.com/quillpad/gsheet-mcp/internal/credentials"
	"github.com/quillpad/gsheet-mcp/internal/output"
)

// doctorResult holds everything the doctor command reports.
type doctorResult struct {
	Version     string                  `json:"version"`
	Candidates  []credentials.Candidate `json:"candidates"`
	Selected    *credentials.Location   `json:"selected,omitempty"`
	ConfigPath  string                  `json:"config_path"`
	ConfigFound bool                    `json:"config_found"`
	SheetCount  int                     `json:"sheet_count"`
	FolderCount int                     `json:"folder_count"`
	Token       auth.Status             `json:"token"`
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check credential discovery and configuration health",
		Long: `Check gsheet-mcp setup health.

Reports every candidate location for the OAuth client-secret file in
priority order (with existence and readability), which rule was selected,
the config file state, and the cached-token state for a profile.

Set GSHEET_MCP_VERBOSE=1 to always print the full candidate list even
when a credential file was found.

Examples:
  gsheet-mcp doctor                  # Check the default profile
  gsheet-mcp doctor --profile work   # Check another profile
  gsheet-mcp doctor --json           # Structured output`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, profile)
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "default", "Credential profile to inspect")
	return cmd
}

// runDoctor executes the doctor command.
func runDoctor(cmd *cobra.Command, profile string) error {
	printer := newPrinter(cmd)

	result := doctorResult{Version: buildVersion()}
	result.Candidates = credentials.DescribeSearch("")
	if resolved, err := credentials.ResolveClientSecret(""); err == nil {
		loc := resolved.Location
		result.Selected = &loc
	}

	cfg, err := config.Load("")
	if err != nil {
		wrapped := output.NewSystemErrorWithCause("loading config: "+err.Error(), err)
		printer.Error(wrapped)
		return wrapped
	}
	result.ConfigPath = cfg.Path()
	result.ConfigFound = fileExists(cfg.Path())
	result.SheetCount = len(cfg.ListSheets(""))
	result.FolderCount = len(cfg.ListFolders(""))

	status, err := auth.Inspect(profile)
	if err != nil {
		wrapped := output.NewUserError(err.Error())
		printer.Error(wrapped)
		return wrapped
	}
	result.Token = status

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	printHumanDoctor(printer, result)
	return nil
}

// printHumanDoctor renders the doctor report for a terminal.
func printHumanDoctor(printer *output.Printer, result doctorResult) {
	printer.Section("Credential search")
	verbose := os.Getenv("GSHEET_MCP_VERBOSE") != ""
	for _, cand := range result.Candidates {
		mark := "✗"
		note := "does not exist"
		switch {
		case cand.Existed && cand.Readable:
			mark = "✓"
			note = "readable"
		case cand.Existed:
			note = "not readable"
		}
		if !verbose && result.Selected != nil && !(cand.Existed && cand.Readable) {
			continue
		}
		printer.Println(fmt.Sprintf("  %s [%d] %s (%s)", mark, cand.Location.Rank, cand.Location.Path, note))
	}
	if result.Selected != nil {
		printer.KeyValue("Selected", fmt.Sprintf("rule %d: %s", result.Selected.Rank, result.Selected.Path))
	} else {
		printer.Warn("no client-secret file found; run 'gsheet-mcp auth login' after placing credentials.json")
	}

	printer.Section("Configuration")
	printer.KeyValue("Config file", result.ConfigPath)
	printer.KeyValue("Exists", boolWord(result.ConfigFound))
	printer.KeyValue("Sheets", fmt.Sprintf("%d", result.SheetCount))
	printer.KeyValue("Drive folders", fmt.Sprintf("%d", result.FolderCount))

	printer.Section("Token")
	printer.KeyValue("Profile", result.Token.Profile)
	printer.KeyValue("Token path", result.Token.TokenPath)
	printer.KeyValue("Cached", boolWord(result.Token.HasToken))
	if result.Token.HasToken {
		printer.KeyValue("Valid", boolWord(result.Token.Valid))
		printer.KeyValue("Refreshable", boolWord(result.Token.Refreshable))
	}
}

// fileExists reports whether path exists as a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
