package cmd

import (
	"context"

	"github.com/icdeck/icdeck/cli"
	"github.com/icdeck/icdeck/git"
	"github.com/icdeck/icdeck/pkg/session"
	"github.com/icdeck/icdeck/version"
	"github.com/spf13/cobra"
)

// noGitAnnotation marks commands that run without git installed.
const noGitAnnotation = "icdeck/no-git"

// NewRootCmd builds the icdeck command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"icdeck",
		"Switch the shell between chip design projects",
	)
	root.Long = `icdeck puts the calling shell into a project session: it changes to the
project's working copy, points HOME at it and exports PROJECT, PRJ_DIR,
ICPRO_DIR and GIT_URL. Missing working copies can be cloned on the spot.

The select and exit commands print shell statements; run them through the
aliases printed by 'icdeck init'.

Examples:
  # Add the aliases to ~/.cshrc
  icdeck init --shell csh >> ~/.cshrc
  # Pick a project from the menu
  prj
  # Enter a project by name
  prj --project Alpha
  # Leave the session
  prjexit`

	info := version.GetInfo()
	cli.SetVersionTemplate(root, info)

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if skipsGitCheck(cmd) {
			return nil
		}
		return git.NewCLIRepository().EnsureInstalled()
	}

	root.AddCommand(
		NewSelectCmd(),
		NewExitCmd(),
		NewListCmd(),
		NewStatusCmd(),
		NewInitCmd(),
		NewProvisionCmd(),
		NewScaffoldCmd(),
		NewConfigCmd(),
		NewPathsCmd(),
		NewVersionCmd(),
	)
	cli.ApplyStyledHelpRecursive(root)
	return root
}

// NewVersionCmd prints build information.
func NewVersionCmd() *cobra.Command {
	cmd := cli.NewVersionCommand("icdeck", version.GetInfo())
	noGit(cmd)
	return cmd
}

func noGit(cmd *cobra.Command) {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[noGitAnnotation] = "true"
}

func skipsGitCheck(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[noGitAnnotation] == "true" {
			return true
		}
	}
	return !cmd.Runnable()
}

// Execute runs icdeck with args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	root := NewRootCmd()
	root.SetArgs(args)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}
	if cmd == nil {
		cmd = root
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	handler := cli.NewErrorHandler(verbose)
	handler.Describe = func(err error) string {
		return session.Describe(err, "")
	}
	return handler.Handle(err)
}
