package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/icdeck/icdeck/cli"
	"github.com/icdeck/icdeck/logging"
	"github.com/icdeck/icdeck/pkg/session"
	"github.com/icdeck/icdeck/pkg/shell"
	"github.com/icdeck/icdeck/state"
	"github.com/spf13/cobra"
)

// StatusOutput is the JSON form of 'icdeck status'.
type StatusOutput struct {
	Active      bool   `json:"active"`
	Project     string `json:"project,omitempty"`
	ProjectDir  string `json:"project_dir,omitempty"`
	GitURL      string `json:"git_url,omitempty"`
	Home        string `json:"home,omitempty"`
	SavedHome   string `json:"saved_home,omitempty"`
	Directory   string `json:"directory,omitempty"`
	LastProject string `json:"last_project,omitempty"`
}

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the project session of the calling shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := shell.FromProcess()
			if err != nil {
				return err
			}
			st := session.Snapshot(rec)
			wd, _ := rec.Getwd()

			out := StatusOutput{
				Active:     st.Active,
				Project:    st.Project,
				ProjectDir: st.ProjectDir,
				GitURL:     st.RemoteURL,
				Home:       st.Home,
				SavedHome:  st.SavedHome,
				Directory:  wd,
			}
			if store, err := state.Default(); err == nil {
				out.LastProject, _ = store.GetString(state.KeyLastProject)
			}

			if cli.GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal status to JSON: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			if !st.Active {
				pretty.Info("No project session is active.")
				if out.LastProject != "" {
					pretty.Field("Last project", out.LastProject)
				}
				return nil
			}
			pretty.Success("Project " + st.Project + " is active")
			pretty.Field("Project dir", st.ProjectDir)
			if st.RemoteURL != "" {
				pretty.Field("Git URL", st.RemoteURL)
			}
			pretty.Field("HOME", st.Home)
			pretty.Field("Saved HOME", st.SavedHome)
			pretty.Field("Directory", wd)
			return nil
		},
	}
	noGit(cmd)

	return cmd
}
