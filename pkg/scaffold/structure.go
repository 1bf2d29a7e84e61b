// Package scaffold creates a project's directory tree from a declarative
// structure file.
package scaffold

import (
	"fmt"
	"os"
	"strings"

	"github.com/icdeck/icdeck/errors"
	"gopkg.in/yaml.v3"
)

// Structure is a parsed structure file.
type Structure struct {
	// Defaults are substitution variables, overridden by --vars.
	Defaults map[string]interface{} `yaml:"defaults"`
	Root     *Node                  `yaml:"root"`

	// Path is where the structure was loaded from, if anywhere.
	Path string `yaml:"-"`
}

// Node is a directory with its files and subdirectories.
type Node struct {
	Dir string `yaml:"dir"`
	// ID names an optional component for --enable.
	ID       string      `yaml:"id,omitempty"`
	Optional bool        `yaml:"optional,omitempty"`
	Files    []FileEntry `yaml:"files,omitempty"`
	Children []*Node     `yaml:"children,omitempty"`
}

// FileEntry is a file to create. Content is written inline, From copies a
// template; with neither the file is created empty.
type FileEntry struct {
	Name    string  `yaml:"name"`
	Content *string `yaml:"content,omitempty"`
	From    string  `yaml:"from,omitempty"`
	// OnlyIf is "var=value"; the file is skipped unless it matches.
	OnlyIf string `yaml:"only_if,omitempty"`
}

// LoadStructure reads and checks a structure file.
func LoadStructure(path string) (*Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("structure file not found: %s", path)).
				WithDetail("path", path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read structure file")
	}
	s, err := ParseStructure(data)
	if err != nil {
		return nil, err
	}
	s.Path = path
	return s, nil
}

// ParseStructure parses structure YAML.
func ParseStructure(data []byte) (*Structure, error) {
	var s Structure
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to parse structure YAML")
	}
	if s.Root == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "structure must contain a 'root' mapping")
	}
	if err := s.Root.check("root"); err != nil {
		return nil, err
	}
	return &s, nil
}

func (n *Node) check(where string) error {
	if n.Dir == "" {
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("%s: every node must define 'dir'", where))
	}
	here := where + "/" + n.Dir
	for i, f := range n.Files {
		if f.Name == "" {
			return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("%s: file %d is missing 'name'", here, i))
		}
		if f.Content != nil && f.From != "" {
			return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("%s/%s: use either 'content' or 'from'", here, f.Name))
		}
		if f.OnlyIf != "" && !strings.Contains(f.OnlyIf, "=") {
			return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("%s/%s: only_if must be var=value, got %q", here, f.Name, f.OnlyIf))
		}
	}
	for _, c := range n.Children {
		if c == nil {
			return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("%s: empty child entry", here))
		}
		if err := c.check(here); err != nil {
			return err
		}
	}
	return nil
}

// included reports whether n is part of the tree given the enabled ids.
func (n *Node) included(enabled map[string]bool) bool {
	if n.Optional && n.ID != "" {
		return enabled[n.ID]
	}
	return true
}
