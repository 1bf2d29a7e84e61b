package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/icdeck/icdeck/cli"
	"github.com/icdeck/icdeck/errors"
	"github.com/icdeck/icdeck/logging"
	"github.com/icdeck/icdeck/pkg/catalog"
	"github.com/icdeck/icdeck/pkg/session"
	"github.com/icdeck/icdeck/pkg/shell"
	"github.com/icdeck/icdeck/pkg/workspace"
	"github.com/icdeck/icdeck/state"
	"github.com/spf13/cobra"
)

type selectOptions struct {
	project string
	index   int
	yes     bool
	kind    shell.Kind
}

func NewSelectCmd() *cobra.Command {
	opts := &selectOptions{}

	cmd := &cobra.Command{
		Use:   "select [KEY]",
		Short: "Choose a project and print the statements that enter it",
		Long: `Shows the project menu on the terminal and prints the shell statements
that enter the chosen project. KEY may be a menu index, a project name or
'q'. Missing working copies are cloned after confirmation.

Examples:
  eval "` + "`" + `icdeck select --shell csh` + "`" + `"
  icdeck select --project Alpha --shell sh
  icdeck select --index 2 --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd, opts, args)
		},
	}
	cli.MarkEval(cmd)

	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "Enter the project with this name")
	cmd.Flags().IntVarP(&opts.index, "index", "i", -1, "Enter the project at this menu index")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Clone missing projects without asking")
	addShellFlag(cmd, &opts.kind)
	cmd.MarkFlagsMutuallyExclusive("project", "index")

	return cmd
}

func runSelect(cmd *cobra.Command, opts *selectOptions, args []string) error {
	deps, err := loadSession(cmd, opts.kind)
	if err != nil {
		return err
	}

	term := cli.OpenTerminal()
	defer term.Close()
	pretty := logging.NewPrettyLogger().WithWriter(term.Out)

	var confirm session.Confirmer = cli.NewConfirmer(term)
	if opts.yes {
		confirm = &session.StaticConfirmer{Answer: true}
	}

	ws := &reportingWorkspace{Workspace: newWorkspace(), progress: cli.NewProgressReporter(term.Out)}
	ctrl := session.NewController(deps.catalog, ws, deps.env, confirm).
		WithContact(deps.cfg.Session.Contact)
	ctx := cmd.Context()

	var result session.Result
	switch {
	case opts.project != "":
		result, err = ctrl.SelectByName(ctx, opts.project)
	case cmd.Flags().Changed("index"):
		result, err = ctrl.SelectAndEnter(ctx, strconv.Itoa(opts.index))
	case len(args) == 1:
		result, err = selectKey(ctx, ctrl, args[0])
	default:
		result, err = selectFromMenu(ctx, ctrl, deps, term)
	}
	if err != nil {
		return err
	}

	deps.emit(cmd)
	rememberProject(result.Project.Name)
	if result.Cloned {
		pretty.Success(fmt.Sprintf("Cloned %s into %s", result.Project.Name, result.Path))
	}
	pretty.Success(fmt.Sprintf("Entered project %s", result.Project.Name))
	pretty.Field("Directory", result.Path)
	return nil
}

// rememberProject records the last project entered. Failures are only
// logged.
func rememberProject(name string) {
	log := logging.NewLogger("state")
	store, err := state.Default()
	if err == nil {
		err = store.Update(map[string]interface{}{
			state.KeyLastProject: name,
			state.KeyLastEntered: time.Now().Format(time.RFC3339),
		})
	}
	if err != nil {
		log.WithError(err).Debug("Could not record the last project")
	}
}

// reportingWorkspace shows clone progress on the terminal.
type reportingWorkspace struct {
	*workspace.Workspace
	progress *cli.ProgressReporter
}

func (w *reportingWorkspace) Clone(ctx context.Context, d catalog.Descriptor) (string, error) {
	w.progress.Update(d.Name, "cloning")
	path, err := w.Workspace.Clone(ctx, d)
	if err != nil {
		w.progress.Update(d.Name, "failed")
		return "", err
	}
	w.progress.Update(d.Name, "completed")
	w.progress.Done()
	return path, nil
}

// selectKey treats key as a menu index when it is a number and as a
// project name otherwise.
func selectKey(ctx context.Context, ctrl *session.Controller, key string) (session.Result, error) {
	if catalog.IsQuit(key) {
		return ctrl.SelectAndEnter(ctx, key)
	}
	if _, err := strconv.Atoi(key); err == nil {
		return ctrl.SelectAndEnter(ctx, key)
	}
	return ctrl.SelectByName(ctx, key)
}

func selectFromMenu(ctx context.Context, ctrl *session.Controller, deps *sessionDeps, term *cli.Terminal) (session.Result, error) {
	term.Printf("%s\n", cli.Banner(deps.cfg.Colors.Default, "Project selector"))
	term.Printf("%s\n", cli.RenderMenu(deps.catalog.List(), cli.MenuOptions{
		QuitColor: deps.cfg.Colors.Quit,
		Width:     term.Width(),
	}))

	answer, err := term.Ask(cli.MenuPrompt)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return session.Result{}, errors.Aborted()
		}
		return session.Result{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to read the selection")
	}

	if !catalog.IsQuit(answer) {
		if _, err := strconv.Atoi(answer); err != nil {
			logging.NewLogger("select").WithField("input", answer).Error("Invalid selection")
			return session.Result{}, errors.InvalidSelection(answer)
		}
	}
	return ctrl.SelectAndEnter(ctx, answer)
}
