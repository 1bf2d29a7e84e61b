package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/icdeck/icdeck/errors"
	"github.com/icdeck/icdeck/pkg/paths"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that points at the projects file.
const EnvConfigPath = "ICDECK_CONFIG"

// Format is the syntax of a projects file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// configFileNames are tried in order in every search directory.
var configFileNames = []string{"projects.yaml", "projects.yml", "projects.toml"}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// FormatFromPath picks the file format from the extension; anything other
// than .toml is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads, validates and decodes the projects file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read projects file").
			WithDetail("path", path)
	}

	cfg, err := LoadFromBytes(data, FormatFromPath(path))
	if err != nil {
		if e, ok := errors.As(err); ok {
			return nil, e.WithDetail("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// LoadDefault finds the projects file with FindConfigFile and loads it.
func LoadDefault() (*Config, error) {
	return LoadWithLogger("", logrus.New())
}

// LoadWithLogger resolves explicit (or the default search path) and loads
// the projects file, logging where it came from.
func LoadWithLogger(explicit string, logger *logrus.Logger) (*Config, error) {
	path, err := FindConfigFile(explicit)
	if err != nil {
		return nil, err
	}
	logger.WithField("path", path).Debug("Loading projects file")

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	logger.WithField("projects", len(cfg.Projects)).Debug("Projects file loaded and validated")
	return cfg, nil
}

// LoadFromBytes parses, validates and decodes a projects document.
func LoadFromBytes(data []byte, format Format) (*Config, error) {
	expanded := expandEnvVars(string(data))

	raw := map[string]interface{}{}
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML")
		}
	default:
		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML")
		}
	}

	validator, err := NewValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to build configuration schema")
	}
	if err := validator.Validate(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "projects file does not match the schema")
	}

	cfg, err := decode(raw)
	if err != nil {
		return nil, err
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode maps the generic document onto Config; sections Config does not
// know about are kept as extensions.
func decode(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{Extensions: map[string]interface{}{}}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  cfg,
		TagName: "yaml",
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to decode projects file")
	}

	for key, value := range raw {
		switch key {
		case "projects", "colors", "session":
		default:
			cfg.Extensions[key] = value
		}
	}
	return cfg, nil
}

// Validate checks rules the schema cannot express.
func (c *Config) Validate() error {
	if len(c.Projects) == 0 {
		return errors.ConfigInvalid("no projects defined under 'projects'")
	}

	seen := make(map[string]int, len(c.Projects))
	for i, p := range c.Projects {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Path) == "" {
			return errors.ConfigInvalid(fmt.Sprintf("project %d must include 'name' and 'path'", i))
		}
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if prev, ok := seen[key]; ok {
			return errors.ConfigInvalid(fmt.Sprintf("projects %d and %d are both named '%s'", prev, i, p.Name))
		}
		seen[key] = i
	}
	return nil
}

// FindConfigFile locates the projects file. Search order: explicit path,
// $ICDECK_CONFIG, the working directory, the XDG config directory, and the
// directory holding the icdeck executable.
func FindConfigFile(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env, nil
	}

	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if dir := paths.ConfigDir(); dir != "" {
		dirs = append(dirs, dir)
	}
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dirs = append(dirs, filepath.Dir(exe))
	}

	for _, dir := range dirs {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}

	return "", errors.ConfigNotFound(strings.Join(configFileNames, ", "))
}

// expandEnvVars replaces ${VAR} with its value. HOME resolves to the
// user's real home even inside a project session; unset variables are
// left as written.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if name == "HOME" {
			if home := paths.UserHome(); home != "" {
				return home
			}
		}
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return match
	})
}
