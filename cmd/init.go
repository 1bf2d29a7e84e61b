package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/icdeck/icdeck/pkg/shell"
	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	var kind shell.Kind

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Print the prj and prjexit shell aliases",
		Long: `Prints the aliases that run icdeck and eval its output in the current
shell. Add them to your shell startup file.

Examples:
  icdeck init --shell csh >> ~/.cshrc
  icdeck init --shell bash >> ~/.bashrc
  icdeck init --shell zsh >> ~/.zshrc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("shell") {
				kind = shell.DetectKind(os.Getenv("SHELL"))
			}

			binary := "icdeck"
			if exe, err := os.Executable(); err == nil {
				if resolved, err := filepath.EvalSymlinks(exe); err == nil {
					exe = resolved
				}
				binary = exe
			}

			fmt.Fprint(cmd.OutOrStdout(), shell.InitScript(kind, binary))
			return nil
		},
	}
	noGit(cmd)
	addShellFlag(cmd, &kind)

	return cmd
}
