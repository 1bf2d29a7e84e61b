package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/icdeck/icdeck/config"
	"github.com/icdeck/icdeck/pkg/paths"
	"github.com/spf13/cobra"
)

// PathsOutput lists the directories icdeck reads and writes.
type PathsOutput struct {
	ConfigDir  string `json:"config_dir"`
	StateDir   string `json:"state_dir"`
	LogDir     string `json:"log_dir"`
	ConfigFile string `json:"config_file,omitempty"`
	UserHome   string `json:"user_home"`
}

func NewPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the paths used by icdeck",
		Long: `Print the paths used by icdeck as JSON.

- config_dir: searched for projects.yaml / projects.toml
- state_dir: runtime state
- log_dir: log files when the file sink is enabled
- config_file: the projects file that would be loaded, if any
- user_home: the real home directory, even inside a project session`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := PathsOutput{
				ConfigDir: paths.ConfigDir(),
				StateDir:  paths.StateDir(),
				LogDir:    paths.LogDir(),
				UserHome:  paths.UserHome(),
			}
			explicit, _ := cmd.Flags().GetString("config")
			if found, err := config.FindConfigFile(explicit); err == nil {
				output.ConfigFile = found
			}

			jsonData, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal paths to JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		},
	}
	noGit(cmd)

	return cmd
}
