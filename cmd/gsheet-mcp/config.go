// Package main provides the entry point for the gsheet-mcp CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/quillpad/gsheet-mcp/internal/config"
	"github.com/quillpad/gsheet-mcp/internal/output"
)

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage spreadsheet and folder aliases",
	}
	cmd.AddCommand(newConfigListSheetsCmd())
	cmd.AddCommand(newConfigListFoldersCmd())
	cmd.AddCommand(newConfigAddSheetCmd())
	cmd.AddCommand(newConfigAddFolderCmd())
	return cmd
}

// newConfigListSheetsCmd creates the config list-sheets command.
func newConfigListSheetsCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "list-sheets",
		Short: "List configured spreadsheet aliases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigList(cmd, profile, true)
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "", "Only show aliases for this profile")
	return cmd
}

// newConfigListFoldersCmd creates the config list-folders command.
func newConfigListFoldersCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "list-folders",
		Short: "List configured Drive folder aliases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigList(cmd, profile, false)
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "", "Only show aliases for this profile")
	return cmd
}

// runConfigList renders either alias table.
func runConfigList(cmd *cobra.Command, profile string, wantSheets bool) error {
	printer := newPrinter(cmd)

	cfg, err := config.Load("")
	if err != nil {
		wrapped := output.NewSystemErrorWithCause(err.Error(), err)
		printer.Error(wrapped)
		return wrapped
	}

	resources := cfg.ListFolders(profile)
	label := "folders"
	if wantSheets {
		resources = cfg.ListSheets(profile)
		label = "sheets"
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{label: resources})
	}

	if len(resources) == 0 {
		printer.Println("No configured " + label + ".")
		return nil
	}

	rows := make([][]string, 0, len(resources))
	for _, alias := range config.SortedAliases(resources) {
		res := resources[alias]
		desc := res.Description
		if desc == "" {
			desc = "(no description)"
		}
		rows = append(rows, []string{alias, res.ID, res.Profile, desc})
	}
	printer.Table([]string{"Alias", "ID", "Profile", "Description"}, rows)
	return nil
}

// newConfigAddSheetCmd creates the config add-sheet command.
func newConfigAddSheetCmd() *cobra.Command {
	var (
		profile     string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add-sheet <alias> <spreadsheet-id>",
		Short: "Register a spreadsheet alias",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigAdd(cmd, args[0], config.Resource{
				ID:          args[1],
				Profile:     profile,
				Description: description,
			}, true)
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "", "Credential profile for this resource")
	cmd.Flags().StringVar(&description, "description", "", "Human-readable description")
	return cmd
}

// newConfigAddFolderCmd creates the config add-folder command.
func newConfigAddFolderCmd() *cobra.Command {
	var (
		profile     string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add-folder <alias> <folder-id>",
		Short: "Register a Drive folder alias",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigAdd(cmd, args[0], config.Resource{
				ID:          args[1],
				Profile:     profile,
				Description: description,
			}, false)
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "", "Credential profile for this resource")
	cmd.Flags().StringVar(&description, "description", "", "Human-readable description")
	return cmd
}

// runConfigAdd registers an alias and saves the config file.
func runConfigAdd(cmd *cobra.Command, alias string, res config.Resource, isSheet bool) error {
	printer := newPrinter(cmd)

	cfg, err := config.Load("")
	if err != nil {
		wrapped := output.NewSystemErrorWithCause(err.Error(), err)
		printer.Error(wrapped)
		return wrapped
	}

	if isSheet {
		cfg.AddSheet(alias, res)
	} else {
		cfg.AddFolder(alias, res)
	}
	if err := cfg.Save(); err != nil {
		wrapped := output.NewSystemErrorWithCause(err.Error(), err)
		printer.Error(wrapped)
		return wrapped
	}

	return printer.Success(map[string]any{
		"message": "alias " + alias + " saved",
		"alias":   alias,
		"id":      res.ID,
	})
}
