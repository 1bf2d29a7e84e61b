package cmd

import (
	"fmt"

	"github.com/icdeck/icdeck/cli"
	"github.com/icdeck/icdeck/config"
	"github.com/icdeck/icdeck/logging"
	"github.com/spf13/cobra"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the projects file",
	}
	noGit(cmd)

	cmd.AddCommand(newConfigSchemaCmd(), newConfigValidateCmd())
	return cmd
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the projects file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return fmt.Errorf("failed to generate schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the projects file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.FindConfigFile(cli.GetOptions(cmd).ConfigFile)
			if err != nil {
				return err
			}
			cfg, err := config.LoadWithLogger(path, cli.GetLogger(cmd))
			if err != nil {
				return err
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			pretty.Success("Projects file is valid")
			pretty.Field("File", path)
			pretty.Field("Projects", len(cfg.Projects))
			if len(cfg.Extensions) > 0 {
				var names []string
				for name := range cfg.Extensions {
					names = append(names, name)
				}
				pretty.Field("Extra sections", names)
			}
			return nil
		},
	}
}
