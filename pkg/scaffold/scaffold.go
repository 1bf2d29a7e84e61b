package scaffold

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/icdeck/icdeck/errors"
	"github.com/icdeck/icdeck/logging"
	"github.com/sirupsen/logrus"
)

// Action kinds reported by Apply.
const (
	ActionDir  = "DIR"
	ActionFile = "FILE"
)

// Action is one directory or file Apply created, or would create.
type Action struct {
	Kind   string `json:"kind"`
	Path   string `json:"path"`
	Source string `json:"source,omitempty"`
}

func (a Action) String() string {
	if a.Source != "" {
		return fmt.Sprintf("[%s] %s <- %s", a.Kind, a.Path, a.Source)
	}
	return fmt.Sprintf("[%s] %s", a.Kind, a.Path)
}

// Options controls Apply.
type Options struct {
	Project string
	// Dest is the directory the root node is created in.
	Dest string
	Vars Vars
	// Enabled lists optional component ids to include.
	Enabled []string
	// TemplateRoot is where 'from' paths are looked up. Defaults to the
	// structure file's directory.
	TemplateRoot string
	Force        bool
	DryRun       bool
}

// Scaffolder materialises structures on disk.
type Scaffolder struct {
	logger *logrus.Entry
}

// New returns a Scaffolder.
func New() *Scaffolder {
	return &Scaffolder{logger: logging.NewLogger("scaffold")}
}

// WithLogger replaces the component logger.
func (s *Scaffolder) WithLogger(logger *logrus.Entry) *Scaffolder {
	s.logger = logger
	return s
}

type run struct {
	opts     Options
	vars     Vars
	enabled  map[string]bool
	template string
	actions  []Action
}

// Apply creates the structure under opts.Dest, or with DryRun only lists
// what it would do. Existing files are kept unless Force is set.
func (s *Scaffolder) Apply(st *Structure, opts Options) ([]Action, error) {
	if opts.Project == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "project name is required")
	}
	if opts.Dest == "" {
		opts.Dest = "."
	}
	dest, err := filepath.Abs(opts.Dest)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid destination")
	}

	r := &run{
		opts:    opts,
		vars:    buildVars(st.Defaults, opts.Vars, opts.Project),
		enabled: make(map[string]bool, len(opts.Enabled)),
	}
	for _, id := range opts.Enabled {
		r.enabled[id] = true
	}
	r.template = opts.TemplateRoot
	if r.template == "" && st.Path != "" {
		r.template = filepath.Dir(st.Path)
	}

	if !opts.DryRun {
		if err := os.MkdirAll(dest, 0755); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, fmt.Sprintf("cannot create destination %s", dest))
		}
	}

	if st.Root.included(r.enabled) {
		if err := r.walk(st.Root, dest); err != nil {
			return r.actions, err
		}
	}

	s.logger.WithFields(logrus.Fields{
		"project": opts.Project,
		"dest":    dest,
		"actions": len(r.actions),
		"dry_run": opts.DryRun,
	}).Info("Scaffold applied")
	return r.actions, nil
}

func (r *run) walk(n *Node, parent string) error {
	dir := filepath.Join(parent, r.vars.Render(n.Dir))
	r.actions = append(r.actions, Action{Kind: ActionDir, Path: dir})
	if !r.opts.DryRun {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, errors.ErrCodeInvalidInput, fmt.Sprintf("cannot create %s", dir))
		}
	}

	for _, f := range n.Files {
		if !r.vars.matches(f.OnlyIf) {
			continue
		}
		if err := r.file(f, dir); err != nil {
			return err
		}
	}

	for _, child := range n.Children {
		if !child.included(r.enabled) {
			continue
		}
		if err := r.walk(child, dir); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) file(f FileEntry, dir string) error {
	dst := filepath.Join(dir, r.vars.Render(f.Name))
	action := Action{Kind: ActionFile, Path: dst}
	if f.From != "" {
		action.Source = filepath.Join(r.template, f.From)
	}
	r.actions = append(r.actions, action)
	if r.opts.DryRun {
		return nil
	}

	if _, err := os.Stat(dst); err == nil && !r.opts.Force {
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("exists: %s (use --force to overwrite)", dst)).
			WithDetail("path", dst)
	}

	switch {
	case f.Content != nil:
		return writeFile(dst, []byte(r.vars.Render(*f.Content)), 0644)
	case f.From != "":
		return r.copyTemplate(action.Source, dst)
	default:
		return writeFile(dst, nil, 0644)
	}
}

// copyTemplate renders text templates and copies anything else verbatim.
func (r *run) copyTemplate(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("missing template file: %s", src)).
			WithDetail("path", src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, fmt.Sprintf("cannot read template %s", src))
	}
	if isText(data) {
		data = []byte(r.vars.Render(string(data)))
	}
	return writeFile(dst, data, info.Mode().Perm())
}

func isText(data []byte) bool {
	return utf8.Valid(data) && !bytes.ContainsRune(data, 0)
}

func writeFile(path string, data []byte, mode os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, fmt.Sprintf("cannot write %s", path))
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		return errors.Wrap(err, errors.ErrCodeInvalidInput, fmt.Sprintf("cannot write %s", path))
	}
	return f.Close()
}
