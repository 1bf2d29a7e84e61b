// Package catalog maps menu selections to the projects defined in the
// projects file.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/icdeck/icdeck/config"
	"github.com/icdeck/icdeck/errors"
	"github.com/icdeck/icdeck/util/pathutil"
)

// QuitKey is the menu input that leaves the selector without a project.
const QuitKey = "q"

// Descriptor is a resolved project: its menu key, display name, absolute
// local path and optional remote.
type Descriptor struct {
	Key       int    `json:"key"`
	Name      string `json:"name"`
	LocalPath string `json:"path"`
	RemoteURL string `json:"git_url,omitempty"`
	Available bool   `json:"available"`
	Color     string `json:"color"`
}

// HasRemote reports whether the project can be installed by cloning.
func (d Descriptor) HasRemote() bool {
	return d.RemoteURL != ""
}

// Entry is one menu row.
type Entry struct {
	Key       int    `json:"key"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Color     string `json:"color"`
}

// Catalog is the ordered, immutable set of projects.
type Catalog struct {
	descriptors []Descriptor
}

// Option configures New.
type Option func(*options)

type options struct {
	expander     *pathutil.Expander
	defaultColor string
}

// WithExpander sets the expander used for project path templates.
func WithExpander(e *pathutil.Expander) Option {
	return func(o *options) { o.expander = e }
}

// WithDefaultColor sets the color of projects that do not name one.
func WithDefaultColor(color string) Option {
	return func(o *options) { o.defaultColor = color }
}

// New builds a catalog from the projects in configuration order. Paths are
// expanded once here; descriptors never change afterwards.
func New(projects []config.Project, opts ...Option) (*Catalog, error) {
	o := options{defaultColor: config.DefaultColor}
	for _, opt := range opts {
		opt(&o)
	}
	if o.expander == nil {
		o.expander = pathutil.NewExpander()
	}

	c := &Catalog{descriptors: make([]Descriptor, 0, len(projects))}
	for i, p := range projects {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, errors.ConfigInvalid(fmt.Sprintf("project %d has no name", i))
		}
		if strings.TrimSpace(p.Path) == "" {
			return nil, errors.ConfigInvalid(fmt.Sprintf("project '%s' has no path", name))
		}
		path, err := o.expander.Expand(strings.TrimSpace(p.Path))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid,
				fmt.Sprintf("cannot expand path of project '%s'", name))
		}

		color := p.Color
		if color == "" {
			color = o.defaultColor
		}
		c.descriptors = append(c.descriptors, Descriptor{
			Key:       i,
			Name:      name,
			LocalPath: path,
			RemoteURL: strings.TrimSpace(p.GitURL),
			Available: p.IsAvailable(),
			Color:     color,
		})
	}
	return c, nil
}

// FromConfig builds the catalog for a loaded projects file.
func FromConfig(cfg *config.Config, opts ...Option) (*Catalog, error) {
	opts = append([]Option{WithDefaultColor(cfg.Colors.Default)}, opts...)
	return New(cfg.Projects, opts...)
}

// IsQuit reports whether choice is the quit sentinel.
func IsQuit(choice string) bool {
	return strings.EqualFold(strings.TrimSpace(choice), QuitKey)
}

// Len returns the number of projects.
func (c *Catalog) Len() int {
	return len(c.descriptors)
}

// Resolve looks up a menu index written in plain decimal, so "01", "+1"
// and "-0" are not indexes. Unavailable projects resolve with Available
// set to false; callers decide how to report them.
func (c *Catalog) Resolve(key string) (Descriptor, error) {
	key = strings.TrimSpace(key)
	idx, err := strconv.Atoi(key)
	if err != nil || strconv.Itoa(idx) != key || idx < 0 || idx >= len(c.descriptors) {
		return Descriptor{}, errors.UnknownProject(key)
	}
	return c.descriptors[idx], nil
}

// ResolveName looks up a project by display name, ignoring case.
func (c *Catalog) ResolveName(name string) (Descriptor, error) {
	want := strings.TrimSpace(name)
	for _, d := range c.descriptors {
		if strings.EqualFold(d.Name, want) {
			return d, nil
		}
	}
	return Descriptor{}, errors.UnknownProject(want)
}

// List returns the menu rows in configuration order.
func (c *Catalog) List() []Entry {
	entries := make([]Entry, len(c.descriptors))
	for i, d := range c.descriptors {
		entries[i] = Entry{Key: d.Key, Name: d.Name, Available: d.Available, Color: d.Color}
	}
	return entries
}

// Descriptors returns a copy of every descriptor in configuration order.
func (c *Catalog) Descriptors() []Descriptor {
	out := make([]Descriptor, len(c.descriptors))
	copy(out, c.descriptors)
	return out
}
