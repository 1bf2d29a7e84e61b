package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/icdeck/icdeck/cli"
	"github.com/icdeck/icdeck/command"
	"github.com/icdeck/icdeck/config"
	"github.com/icdeck/icdeck/errors"
	"github.com/icdeck/icdeck/git"
	"github.com/icdeck/icdeck/logging"
	"github.com/icdeck/icdeck/pkg/catalog"
	"github.com/icdeck/icdeck/pkg/session"
	"github.com/icdeck/icdeck/pkg/shell"
	"github.com/icdeck/icdeck/pkg/workspace"
	"github.com/icdeck/icdeck/util/pathutil"
	"github.com/spf13/cobra"
)

// cloneTimeout bounds a single git clone.
const cloneTimeout = 10 * time.Minute

// sessionDeps is everything a session command needs, built from the
// projects file and the calling shell's environment.
type sessionDeps struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	recorder *shell.Recorder
	env      *session.Environment
	kind     shell.Kind
}

func addShellFlag(cmd *cobra.Command, kind *shell.Kind) {
	cmd.Flags().Var(kind, "shell", "Statement syntax for eval: csh, sh, bash, or zsh")
}

// resolveKind picks the shell syntax: --shell, then the projects file,
// then $SHELL.
func resolveKind(cmd *cobra.Command, flag shell.Kind, cfg *config.Config) (shell.Kind, error) {
	if cmd.Flags().Changed("shell") {
		return flag, nil
	}
	if cfg != nil && cfg.Session.Shell != "" {
		return shell.ParseKind(cfg.Session.Shell)
	}
	return shell.DetectKind(os.Getenv("SHELL")), nil
}

func loadSession(cmd *cobra.Command, flag shell.Kind) (*sessionDeps, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	expander := pathutil.NewExpander()
	cat, err := catalog.FromConfig(cfg, catalog.WithExpander(expander))
	if err != nil {
		return nil, err
	}
	return newSessionDeps(cmd, flag, cfg, cat, expander)
}

// loadSessionForExit is loadSession that falls back to default settings
// when the projects file is missing or broken, so a session can always
// be left.
func loadSessionForExit(cmd *cobra.Command, flag shell.Kind) (*sessionDeps, error) {
	deps, err := loadSession(cmd, flag)
	if err == nil {
		return deps, nil
	}
	if !errors.Is(err, errors.ErrCodeConfigNotFound) && !errors.Is(err, errors.ErrCodeConfigInvalid) {
		return nil, err
	}
	cli.GetLogger(cmd).WithError(err).Warn("Using default session settings")

	cfg := &config.Config{}
	cfg.SetDefaults()
	return newSessionDeps(cmd, flag, cfg, nil, pathutil.NewExpander())
}

func newSessionDeps(cmd *cobra.Command, flag shell.Kind, cfg *config.Config, cat *catalog.Catalog, expander *pathutil.Expander) (*sessionDeps, error) {
	kind, err := resolveKind(cmd, flag, cfg)
	if err != nil {
		return nil, err
	}

	rec, err := shell.FromProcess()
	if err != nil {
		return nil, err
	}

	prompt := cfg.Session.Prompt
	if prompt == "" {
		prompt = kind.DefaultPrompt()
	}

	env := session.NewEnvironment(rec,
		session.WithPromptRenderer(session.NewPromptRenderer(prompt, cfg.Colors.Highlight)),
		session.WithProjectRoot(cfg.Session.ProjectRoot, expander),
		session.WithEnvironmentLogger(logging.NewLogger("session")),
	)

	return &sessionDeps{
		cfg:      cfg,
		catalog:  cat,
		recorder: rec,
		env:      env,
		kind:     kind,
	}, nil
}

func newWorkspace() *workspace.Workspace {
	builder := command.NewSafeBuilder().WithDefaultTimeout(cloneTimeout)
	return workspace.New(git.NewCLIRepositoryWithBuilder(builder))
}

// emit writes the recorded statements to stdout for the shell to eval.
func (d *sessionDeps) emit(cmd *cobra.Command) {
	if d.recorder.Len() == 0 {
		return
	}
	fmt.Fprint(cmd.OutOrStdout(), d.recorder.Render(d.kind))
}
