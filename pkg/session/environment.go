// Package session enters and leaves project sessions: it redirects HOME
// to the project, exports the project variables, and restores everything
// on exit.
package session

import (
	"github.com/icdeck/icdeck/config"
	"github.com/icdeck/icdeck/errors"
	"github.com/icdeck/icdeck/logging"
	"github.com/icdeck/icdeck/pkg/catalog"
	"github.com/icdeck/icdeck/util/pathutil"
	"github.com/sirupsen/logrus"
)

// Environment is the Idle/Active state machine over an Environ.
type Environment struct {
	env         Environ
	prompt      *PromptRenderer
	projectRoot string
	expander    *pathutil.Expander
	logger      *logrus.Entry
}

// EnvironmentOption configures NewEnvironment.
type EnvironmentOption func(*Environment)

// WithPromptRenderer sets how prompts are built.
func WithPromptRenderer(r *PromptRenderer) EnvironmentOption {
	return func(e *Environment) { e.prompt = r }
}

// WithProjectRoot sets the directory Exit returns to. It is expanded
// against the restored home, so "~/project" works.
func WithProjectRoot(root string, expander *pathutil.Expander) EnvironmentOption {
	return func(e *Environment) {
		e.projectRoot = root
		e.expander = expander
	}
}

// WithEnvironmentLogger replaces the component logger.
func WithEnvironmentLogger(logger *logrus.Entry) EnvironmentOption {
	return func(e *Environment) { e.logger = logger }
}

// NewEnvironment wraps env. The initial state is whatever env holds.
func NewEnvironment(env Environ, opts ...EnvironmentOption) *Environment {
	e := &Environment{
		env:         env,
		prompt:      NewPromptRenderer(config.DefaultPrompt, config.DefaultHighlight),
		projectRoot: config.DefaultProjectRoot,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.expander == nil {
		e.expander = pathutil.NewExpander()
	}
	if e.logger == nil {
		e.logger = logging.NewLogger("session")
	}
	return e
}

// State returns the current session snapshot.
func (e *Environment) State() State {
	return Snapshot(e.env)
}

// Active reports whether a project session is in effect.
func (e *Environment) Active() bool {
	_, ok := e.env.LookupEnv(EnvProject)
	return ok
}

// Enter starts a session for d rooted at path. It fails without changing
// anything when a session is already active or path cannot be entered.
// An OLDHOME left over from an earlier session is kept: it is the only
// record of the real home.
func (e *Environment) Enter(d catalog.Descriptor, path string) error {
	if active, ok := e.env.LookupEnv(EnvProject); ok {
		return errors.SessionAlreadyActive(active)
	}

	previousDir, wdErr := e.env.Getwd()
	if err := e.env.Chdir(path); err != nil {
		return errors.DirectoryUnavailable(path, err)
	}

	saved := e.save()
	if err := e.apply(d, path); err != nil {
		e.restore(saved)
		if wdErr == nil {
			if cdErr := e.env.Chdir(previousDir); cdErr != nil {
				e.logger.WithError(cdErr).WithField("dir", previousDir).Warn("Failed to return to previous directory")
			}
		}
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to update the session environment")
	}

	e.logger.WithFields(logrus.Fields{
		"project": d.Name,
		"path":    path,
	}).Info("Entered project")
	return nil
}

func (e *Environment) apply(d catalog.Descriptor, path string) error {
	if _, ok := e.env.LookupEnv(EnvOldHome); !ok {
		if err := e.env.Setenv(EnvOldHome, e.env.Getenv(EnvHome)); err != nil {
			return err
		}
	}

	writes := []struct{ key, value string }{
		{EnvHome, path},
		{EnvProject, d.Name},
		{EnvProjectDir, path},
		{EnvLegacyDir, path},
	}
	for _, w := range writes {
		if err := e.env.Setenv(w.key, w.value); err != nil {
			return err
		}
	}

	if d.HasRemote() {
		if err := e.env.Setenv(EnvGitURL, d.RemoteURL); err != nil {
			return err
		}
	} else if _, ok := e.env.LookupEnv(EnvGitURL); ok {
		if err := e.env.Unsetenv(EnvGitURL); err != nil {
			return err
		}
	}

	return e.env.SetPrompt(e.prompt.Active(d.Name))
}

// Exit ends the active session: HOME comes back from OLDHOME, the project
// variables are removed, the prompt is reset and the shell moves to the
// project root. Exiting while idle does nothing. The environment is
// restored even when the final directory change fails; that failure is
// returned for the caller to log.
func (e *Environment) Exit() error {
	if !e.Active() {
		return nil
	}

	project := e.env.Getenv(EnvProject)
	home, hadSaved := e.env.LookupEnv(EnvOldHome)
	if !hadSaved {
		home = e.env.Getenv(EnvHome)
	}

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if home != "" {
		keep(e.env.Setenv(EnvHome, home))
	} else {
		keep(e.env.Unsetenv(EnvHome))
	}
	for _, key := range []string{EnvProject, EnvProjectDir, EnvLegacyDir, EnvGitURL, EnvOldHome} {
		if _, ok := e.env.LookupEnv(key); ok {
			keep(e.env.Unsetenv(key))
		}
	}
	keep(e.env.SetPrompt(e.prompt.Plain()))

	if firstErr != nil {
		return errors.Wrap(firstErr, errors.ErrCodeInternal, "failed to restore the shell environment")
	}

	e.logger.WithField("project", project).Info("Left project")

	root, err := e.rootFor(home)
	if err != nil {
		return errors.DirectoryUnavailable(e.projectRoot, err)
	}
	if err := e.env.Chdir(root); err != nil {
		return errors.DirectoryUnavailable(root, err)
	}
	return nil
}

// rootFor expands the project root against home.
func (e *Environment) rootFor(home string) (string, error) {
	exp := *e.expander
	if home != "" {
		exp.Home = home
	}
	return exp.Expand(e.projectRoot)
}

type savedVar struct {
	value string
	set   bool
}

type savedEnv struct {
	vars   map[string]savedVar
	prompt string
}

func (e *Environment) save() savedEnv {
	s := savedEnv{vars: make(map[string]savedVar, len(sessionKeys)), prompt: e.env.Prompt()}
	for _, key := range sessionKeys {
		value, ok := e.env.LookupEnv(key)
		s.vars[key] = savedVar{value: value, set: ok}
	}
	return s
}

// restore puts back the saved variables. It is best effort: it runs after
// a failed write and reports nothing further.
func (e *Environment) restore(s savedEnv) {
	for _, key := range sessionKeys {
		v := s.vars[key]
		if v.set {
			_ = e.env.Setenv(key, v.value)
		} else {
			_ = e.env.Unsetenv(key)
		}
	}
	_ = e.env.SetPrompt(s.prompt)
}
