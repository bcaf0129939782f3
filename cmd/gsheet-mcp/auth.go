// Package main provides the entry point for the gsheet-mcp CLI.
package main

import (
	"errors"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillpad/gsheet-mcp/internal/auth"
	"github.com/quillpad/gsheet-mcp/internal/credentials"
	"github.com/quillpad/gsheet-mcp/internal/output"
)

// newAuthCmd creates the auth command group.
func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage OAuth credentials and tokens",
	}
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthStatusCmd())
	return cmd
}

// newAuthLoginCmd creates the auth login command.
func newAuthLoginCmd() *cobra.Command {
	var (
		profile    string
		scopes     []string
		secretPath string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Run the interactive OAuth flow and cache a token",
		Long: `Run the installed-app OAuth flow for a profile.

Opens a loopback redirect listener, prints the authorization URL for you
to open in a browser, and caches the resulting token under the profile's
token path. Re-run with --scope to widen access (for example
'gsheet-mcp drive ls-all' needs the drive.readonly scope).

Examples:
  gsheet-mcp auth login
  gsheet-mcp auth login --profile work
  gsheet-mcp auth login --scope https://www.googleapis.com/auth/drive.readonly`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			requested := auth.DefaultScopes()
			for _, scope := range scopes {
				if !slices.Contains(requested, scope) {
					requested = append(requested, scope)
				}
			}

			tok, err := auth.Login(cmd.Context(), auth.LoginOptions{
				Profile:          profile,
				Scopes:           requested,
				ClientSecretPath: secretPath,
				Notify: func(authURL string) {
					printer.Stderr("Open this URL in your browser to authorize:\n\n  %s\n\n", authURL)
				},
			})
			if err != nil {
				wrapped := loginError(err)
				printer.Error(wrapped)
				return wrapped
			}

			return printer.Success(map[string]any{
				"message": "login complete for profile " + profileOrDefault(profile),
				"profile": profileOrDefault(profile),
				"expiry":  tok.Expiry,
			})
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "default", "Credential profile")
	cmd.Flags().StringSliceVar(&scopes, "scope", nil, "Additional OAuth scopes")
	cmd.Flags().StringVar(&secretPath, "credentials", "", "Client-secret file (overrides discovery)")
	return cmd
}

// newAuthStatusCmd creates the auth status command.
func newAuthStatusCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the cached token state for a profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			status, err := auth.Inspect(profile)
			if err != nil {
				wrapped := output.NewUserError(err.Error())
				printer.Error(wrapped)
				return wrapped
			}

			if printer.IsJSON() {
				return printer.WriteJSON(status)
			}

			printer.KeyValue("Profile", status.Profile)
			printer.KeyValue("Token path", status.TokenPath)
			printer.KeyValue("Has token", boolWord(status.HasToken))
			if status.HasToken {
				printer.KeyValue("Valid", boolWord(status.Valid))
				printer.KeyValue("Refreshable", boolWord(status.Refreshable))
				printer.KeyValue("Scopes", strings.Join(status.Scopes, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "default", "Credential profile")
	return cmd
}

// loginError classifies a login failure into the CLI's exit-code taxonomy.
func loginError(err error) error {
	notFound := &credentials.NotFoundError{}
	if errors.As(err, &notFound) {
		return output.NewAuthErrorWithCause(err.Error(), err)
	}
	invalid := &credentials.InvalidProfileError{}
	if errors.As(err, &invalid) {
		return output.NewUserError(err.Error())
	}
	return output.NewSystemErrorWithCause("login failed: "+err.Error(), err)
}

func profileOrDefault(profile string) string {
	if profile == "" {
		return "default"
	}
	return profile
}

func boolWord(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
