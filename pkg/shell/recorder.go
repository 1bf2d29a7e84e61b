// Package shell records session changes and renders them as statements
// for the calling shell to eval. A child process cannot change its
// parent's environment, so this is how a selection takes effect.
package shell

import (
	"fmt"
	"os"

	"github.com/icdeck/icdeck/pkg/session"
)

type opKind int

const (
	opSet opKind = iota
	opUnset
	opChdir
	opPrompt
)

type op struct {
	kind  opKind
	key   string
	value string
}

// Recorder is a session.Environ over a copy of the caller's variables.
// Every mutation is applied to the copy and queued for rendering.
type Recorder struct {
	vars   map[string]string
	wd     string
	prompt string
	ops    []op
	isDir  func(string) error
}

var _ session.Environ = (*Recorder)(nil)

// NewRecorder starts from vars and working directory wd.
func NewRecorder(vars map[string]string, wd string) *Recorder {
	copied := make(map[string]string, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	return &Recorder{vars: copied, wd: wd, isDir: statDir}
}

// FromProcess seeds a recorder with the session variables of this process.
func FromProcess() (*Recorder, error) {
	vars, err := session.LoadVars()
	if err != nil {
		return nil, fmt.Errorf("failed to read session variables: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	return NewRecorder(vars.Map(os.LookupEnv), wd), nil
}

// WithDirChecker replaces the check Chdir runs before accepting a directory.
func (r *Recorder) WithDirChecker(check func(string) error) *Recorder {
	r.isDir = check
	return r
}

func statDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

func (r *Recorder) Getenv(key string) string {
	return r.vars[key]
}

func (r *Recorder) LookupEnv(key string) (string, bool) {
	v, ok := r.vars[key]
	return v, ok
}

func (r *Recorder) Setenv(key, value string) error {
	r.vars[key] = value
	r.ops = append(r.ops, op{kind: opSet, key: key, value: value})
	return nil
}

func (r *Recorder) Unsetenv(key string) error {
	delete(r.vars, key)
	r.ops = append(r.ops, op{kind: opUnset, key: key})
	return nil
}

func (r *Recorder) Chdir(dir string) error {
	if err := r.isDir(dir); err != nil {
		return err
	}
	r.wd = dir
	r.ops = append(r.ops, op{kind: opChdir, value: dir})
	return nil
}

func (r *Recorder) Getwd() (string, error) {
	if r.wd == "" {
		return "", fmt.Errorf("working directory unknown")
	}
	return r.wd, nil
}

func (r *Recorder) SetPrompt(prompt string) error {
	r.prompt = prompt
	r.ops = append(r.ops, op{kind: opPrompt, value: prompt})
	return nil
}

// Prompt returns the last prompt set; the caller's own prompt is unknown.
func (r *Recorder) Prompt() string {
	return r.prompt
}

// Len returns the number of recorded changes.
func (r *Recorder) Len() int {
	return len(r.ops)
}

// Reset drops the recorded changes, keeping the current values.
func (r *Recorder) Reset() {
	r.ops = nil
}
