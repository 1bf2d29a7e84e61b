package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ColorNames lists the color names accepted for menu rows and highlights.
var ColorNames = []string{"green", "yellow", "blue", "red", "purple", "cyan", "white"}

// Config is the projects file shared by a team: the ordered project list
// plus presentation and session settings.
type Config struct {
	Projects []Project     `yaml:"projects" toml:"projects" jsonschema:"minItems=1,description=Projects in menu order"`
	Colors   ColorsConfig  `yaml:"colors,omitempty" toml:"colors,omitempty" jsonschema:"description=Menu colors"`
	Session  SessionConfig `yaml:"session,omitempty" toml:"session,omitempty" jsonschema:"description=Shell session settings"`

	// Extensions holds any other top-level sections (e.g. logging), decoded
	// on demand with UnmarshalExtension.
	Extensions map[string]interface{} `yaml:"-" toml:"-"`
}

// Project is one selectable design workspace.
type Project struct {
	Name      string `yaml:"name" toml:"name" jsonschema:"minLength=1,description=Display name exported as PROJECT"`
	Path      string `yaml:"path" toml:"path" jsonschema:"minLength=1,description=Local working copy; may use ~ $VAR and {{USER}}"`
	GitURL    string `yaml:"git_url,omitempty" toml:"git_url,omitempty" jsonschema:"description=Remote to clone from when the path is missing"`
	Color     string `yaml:"color,omitempty" toml:"color,omitempty" jsonschema:"enum=green,enum=yellow,enum=blue,enum=red,enum=purple,enum=cyan,enum=white,description=Menu row color"`
	Available *bool  `yaml:"available,omitempty" toml:"available,omitempty" jsonschema:"description=Set false for projects that are listed but not open yet"`
}

// IsAvailable reports whether the project may be entered. Unset means yes.
func (p Project) IsAvailable() bool {
	return p.Available == nil || *p.Available
}

// ColorsConfig sets the menu palette.
type ColorsConfig struct {
	Default   string `yaml:"default,omitempty" toml:"default,omitempty" jsonschema:"enum=green,enum=yellow,enum=blue,enum=red,enum=purple,enum=cyan,enum=white"`
	Quit      string `yaml:"quit,omitempty" toml:"quit,omitempty" jsonschema:"enum=green,enum=yellow,enum=blue,enum=red,enum=purple,enum=cyan,enum=white"`
	Highlight string `yaml:"highlight,omitempty" toml:"highlight,omitempty" jsonschema:"enum=green,enum=yellow,enum=blue,enum=red,enum=purple,enum=cyan,enum=white,description=Color of the project name in the shell prompt"`
}

// SessionConfig controls what entering and leaving a project does to the shell.
type SessionConfig struct {
	// ProjectRoot is where "exit" leaves the shell.
	ProjectRoot string `yaml:"project_root,omitempty" toml:"project_root,omitempty" jsonschema:"description=Directory to return to on exit"`
	// Prompt is the plain prompt; the active project is prefixed to it.
	// Empty means the default prompt of the shell in use.
	Prompt string `yaml:"prompt,omitempty" toml:"prompt,omitempty" jsonschema:"description=Base shell prompt in the prompt language of the shell"`
	// Shell selects the statement syntax emitted for eval.
	Shell string `yaml:"shell,omitempty" toml:"shell,omitempty" jsonschema:"enum=csh,enum=sh,enum=bash,enum=zsh"`
	// Contact is shown when a project is not available yet.
	Contact string `yaml:"contact,omitempty" toml:"contact,omitempty" jsonschema:"description=Who to ask for access to unavailable projects"`
}

const (
	DefaultColor       = "green"
	DefaultQuitColor   = "blue"
	DefaultHighlight   = "red"
	DefaultProjectRoot = "~/project"
	DefaultPrompt      = "%n@%m:%c2 %# " // csh and tcsh
	DefaultContact     = "the project administrator"
)

// SetDefaults fills unset presentation and session settings.
func (c *Config) SetDefaults() {
	if c.Colors.Default == "" {
		c.Colors.Default = DefaultColor
	}
	if c.Colors.Quit == "" {
		c.Colors.Quit = DefaultQuitColor
	}
	if c.Colors.Highlight == "" {
		c.Colors.Highlight = DefaultHighlight
	}
	if c.Session.ProjectRoot == "" {
		c.Session.ProjectRoot = DefaultProjectRoot
	}
	if c.Session.Contact == "" {
		c.Session.Contact = DefaultContact
	}
}

// UnmarshalExtension decodes the top-level section key into target using
// the target's yaml tags. A missing section leaves target untouched.
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
