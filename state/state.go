// Package state keeps small per-user facts between icdeck runs, such as
// the last project entered, in a YAML file under the state directory.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/icdeck/icdeck/pkg/paths"
	"gopkg.in/yaml.v3"
)

const (
	// KeyLastProject is the name of the last project entered.
	KeyLastProject = "session.last_project"
	// KeyLastEntered is when it was entered, RFC 3339.
	KeyLastEntered = "session.last_entered"
)

// State is a generic map of key-value pairs.
type State map[string]interface{}

// Store reads and writes one state file.
type Store struct {
	Path string
}

// Default returns the store at <state dir>/state.yml.
func Default() (*Store, error) {
	dir := paths.StateDir()
	if dir == "" {
		return nil, fmt.Errorf("cannot determine the state directory")
	}
	return &Store{Path: filepath.Join(dir, "state.yml")}, nil
}

// Load returns the stored state, empty if the file does not exist.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(State), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	if st == nil {
		st = make(State)
	}
	return st, nil
}

// Save replaces the stored state.
func (s *Store) Save(st State) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// GetString returns the string stored under key, or "" when it is missing
// or not a string.
func (s *Store) GetString(key string) (string, error) {
	st, err := s.Load()
	if err != nil {
		return "", err
	}
	str, _ := st[key].(string)
	return str, nil
}

// Set stores value under key.
func (s *Store) Set(key string, value interface{}) error {
	return s.Update(map[string]interface{}{key: value})
}

// Update stores several values in one write.
func (s *Store) Update(values map[string]interface{}) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	for k, v := range values {
		st[k] = v
	}
	return s.Save(st)
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	delete(st, key)
	return s.Save(st)
}
