package cmd

import (
	"github.com/icdeck/icdeck/cli"
	"github.com/icdeck/icdeck/logging"
	"github.com/icdeck/icdeck/pkg/session"
	"github.com/icdeck/icdeck/pkg/shell"
	"github.com/spf13/cobra"
)

func NewExitCmd() *cobra.Command {
	var kind shell.Kind

	cmd := &cobra.Command{
		Use:   "exit",
		Short: "Print the statements that leave the active project",
		Long: `Prints the shell statements that restore HOME, clear the project
variables and return to the project root. Without an active session
nothing is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := loadSessionForExit(cmd, kind)
			if err != nil {
				return err
			}

			project := deps.env.State().Project
			ctrl := session.NewController(deps.catalog, newWorkspace(), deps.env, &session.StaticConfirmer{})
			if err := ctrl.ExitSession(); err != nil {
				return err
			}

			deps.emit(cmd)
			if project != "" {
				logging.NewPrettyLogger().WithWriter(cmd.ErrOrStderr()).
					Info("Left project " + project)
			}
			return nil
		},
	}
	cli.MarkEval(cmd)
	noGit(cmd)
	addShellFlag(cmd, &kind)

	return cmd
}
