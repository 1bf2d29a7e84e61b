package session

import (
	"context"
	"fmt"
	"io"

	"github.com/icdeck/icdeck/errors"
	"github.com/icdeck/icdeck/pkg/catalog"
	"github.com/icdeck/icdeck/pkg/workspace"
	"github.com/icdeck/icdeck/util/pathutil"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
)

// fakeEnviron is an in-memory Environ. Only paths in dirs can be entered.
type fakeEnviron struct {
	vars    map[string]string
	dirs    map[string]bool
	wd      string
	prompt  string
	failSet string
}

func newFakeEnviron(home string) *fakeEnviron {
	return &fakeEnviron{
		vars:   map[string]string{EnvHome: home, "USER": "u"},
		dirs:   map[string]bool{home: true, home + "/project": true},
		wd:     home,
		prompt: "%n@%m:%c2 %# ",
	}
}

func (f *fakeEnviron) Getenv(key string) string { return f.vars[key] }

func (f *fakeEnviron) LookupEnv(key string) (string, bool) {
	v, ok := f.vars[key]
	return v, ok
}

func (f *fakeEnviron) Setenv(key, value string) error {
	if key == f.failSet {
		return fmt.Errorf("setenv %s: refused", key)
	}
	f.vars[key] = value
	return nil
}

func (f *fakeEnviron) Unsetenv(key string) error {
	delete(f.vars, key)
	return nil
}

func (f *fakeEnviron) Chdir(dir string) error {
	if !f.dirs[dir] {
		return fmt.Errorf("chdir %s: no such file or directory", dir)
	}
	f.wd = dir
	return nil
}

func (f *fakeEnviron) Getwd() (string, error) { return f.wd, nil }

func (f *fakeEnviron) SetPrompt(p string) error {
	f.prompt = p
	return nil
}

func (f *fakeEnviron) Prompt() string { return f.prompt }

// snapshot captures everything observable, including the working directory.
type snapshot struct {
	vars   map[string]string
	wd     string
	prompt string
}

func (f *fakeEnviron) snapshot() snapshot {
	vars := make(map[string]string, len(f.vars))
	for k, v := range f.vars {
		vars[k] = v
	}
	return snapshot{vars: vars, wd: f.wd, prompt: f.prompt}
}

// stubWorkspace reports directories from the fake environ and "clones" by
// creating one there.
type stubWorkspace struct {
	env      *fakeEnviron
	cloneErr error
	cloneTo  string
	clones   int
}

func (s *stubWorkspace) Check(d catalog.Descriptor) workspace.Status {
	if s.env.dirs[d.LocalPath] {
		return workspace.Present(d.LocalPath)
	}
	return workspace.Absent(d.LocalPath)
}

func (s *stubWorkspace) Clone(_ context.Context, d catalog.Descriptor) (string, error) {
	s.clones++
	if s.cloneErr != nil {
		return "", s.cloneErr
	}
	path := d.LocalPath
	if s.cloneTo != "" {
		path = s.cloneTo
	}
	if d.RemoteURL == "" {
		return "", errors.NoRemoteConfigured(d.Name)
	}
	s.env.dirs[path] = true
	return path, nil
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestEnvironment(env *fakeEnviron) *Environment {
	return NewEnvironment(env,
		WithPromptRenderer(NewPromptRenderer("%n@%m:%c2 %# ", "red").WithProfile(termenv.Ascii)),
		WithProjectRoot("~/project", &pathutil.Expander{Home: "/home/u", User: "u"}),
		WithEnvironmentLogger(discardLogger()),
	)
}

var alpha = catalog.Descriptor{
	Key:       0,
	Name:      "Alpha",
	LocalPath: "/home/u/project/Alpha",
	RemoteURL: "git@host:Alpha.git",
	Available: true,
}
