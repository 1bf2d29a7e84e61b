package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/icdeck/icdeck/cli"
	"github.com/icdeck/icdeck/pkg/catalog"
	"github.com/icdeck/icdeck/util/pathutil"
	"github.com/spf13/cobra"
)

// ProjectOutput is one row of 'icdeck list'.
type ProjectOutput struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	GitURL    string `json:"git_url,omitempty"`
	Available bool   `json:"available"`
	Installed bool   `json:"installed"`
}

func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the projects in the projects file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			cat, err := catalog.FromConfig(cfg, catalog.WithExpander(pathutil.NewExpander()))
			if err != nil {
				return err
			}

			ws := newWorkspace()
			var rows []ProjectOutput
			for _, d := range cat.Descriptors() {
				rows = append(rows, ProjectOutput{
					Index:     d.Key,
					Name:      d.Name,
					Path:      d.LocalPath,
					GitURL:    d.RemoteURL,
					Available: d.Available,
					Installed: ws.Check(d).Present,
				})
			}

			if cli.GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal projects to JSON: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderProjectTable(rows))
			return nil
		},
	}
	noGit(cmd)

	return cmd
}

func renderProjectTable(rows []ProjectOutput) string {
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "PROJECT", "PATH", "AVAILABLE", "INSTALLED")
	for _, r := range rows {
		t.Row(fmt.Sprintf("%d", r.Index), r.Name, r.Path, yesNo(r.Available), yesNo(r.Installed))
	}
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		style := lipgloss.NewStyle().Padding(0, 1)
		if row == table.HeaderRow {
			return style.Bold(true)
		}
		return style
	}).String()
}
