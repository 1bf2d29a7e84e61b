package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/icdeck/icdeck/cli"
	"github.com/icdeck/icdeck/logging"
	"github.com/icdeck/icdeck/pkg/scaffold"
	"github.com/spf13/cobra"
)

type scaffoldFlags struct {
	structure    string
	project      string
	dest         string
	vars         []string
	enable       []string
	templateRoot string
	force        bool
	dryRun       bool
	tree         bool
}

func NewScaffoldCmd() *cobra.Command {
	f := &scaffoldFlags{}

	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Create a project directory tree from a structure file",
		Long: `Creates the directories and files described by a structure YAML file.
{{TOKEN}} placeholders in names and text files are replaced with --vars,
the file's defaults and PROJECT. Optional components are included with
--enable.

Examples:
  icdeck scaffold --structure structure.yaml --project Alpha --tree
  icdeck scaffold --structure structure.yaml --project Alpha --dest ~/project --dry-run
  icdeck scaffold --structure structure.yaml --project Alpha --vars TECH=n5 --enable pcie`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := scaffold.LoadStructure(f.structure)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if f.tree {
				fmt.Fprint(out, st.Tree())
				return nil
			}

			vars, err := scaffold.ParseVars(f.vars)
			if err != nil {
				return err
			}

			dest := f.dest
			if dest == "" {
				dest = "."
			}
			if abs, err := filepath.Abs(dest); err == nil {
				dest = abs
			}

			actions, err := scaffold.New().Apply(st, scaffold.Options{
				Project:      f.project,
				Dest:         dest,
				Vars:         vars,
				Enabled:      f.enable,
				TemplateRoot: f.templateRoot,
				Force:        f.force,
				DryRun:       f.dryRun,
			})
			if err != nil {
				return err
			}

			if cli.GetOptions(cmd).JSONOutput {
				return writeJSON(out, actions)
			}

			pretty := logging.NewPrettyLogger().WithWriter(out)
			for _, a := range actions {
				pretty.Entry(a.Kind, a.Path)
			}
			switch {
			case f.dryRun:
				pretty.Info(fmt.Sprintf("Dry run: %d entries would be created", len(actions)))
			default:
				pretty.Success(fmt.Sprintf("Project %s scaffolded in %s", f.project, dest))
			}
			return nil
		},
	}
	noGit(cmd)

	cmd.Flags().StringVarP(&f.structure, "structure", "s", "", "Structure YAML file")
	cmd.Flags().StringVarP(&f.project, "project", "p", "", "Project name (the PROJECT variable)")
	cmd.Flags().StringVarP(&f.dest, "dest", "d", "", "Directory to create the project in (default: current directory)")
	cmd.Flags().StringArrayVar(&f.vars, "vars", nil, "Template variables as KEY=VALUE")
	cmd.Flags().StringSliceVar(&f.enable, "enable", nil, "Optional component ids to include")
	cmd.Flags().StringVar(&f.templateRoot, "template-root", "", "Directory 'from' templates are read from")
	cmd.Flags().BoolVar(&f.force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "List what would be created without writing")
	cmd.Flags().BoolVar(&f.tree, "tree", false, "Print the structure as a tree and exit")
	_ = cmd.MarkFlagRequired("structure")

	return cmd
}
