package session

import (
	"github.com/kelseyhightower/envconfig"
)

// Vars is the session as inherited from the calling shell.
type Vars struct {
	Home       string `envconfig:"HOME"`
	OldHome    string `envconfig:"OLDHOME"`
	Project    string `envconfig:"PROJECT"`
	ProjectDir string `envconfig:"PRJ_DIR"`
	LegacyDir  string `envconfig:"ICPRO_DIR"`
	GitURL     string `envconfig:"GIT_URL"`
}

// LoadVars reads the session variables from the process environment.
func LoadVars() (Vars, error) {
	var v Vars
	if err := envconfig.Process("", &v); err != nil {
		return Vars{}, err
	}
	return v, nil
}

// Map returns the variables that are set, keyed by name. envconfig
// reads an empty value the same as a missing one, so lookup decides
// whether an empty field was set; with a nil lookup empty means unset.
func (v Vars) Map(lookup func(string) (string, bool)) map[string]string {
	m := make(map[string]string, len(sessionKeys))
	for key, value := range map[string]string{
		EnvHome:       v.Home,
		EnvOldHome:    v.OldHome,
		EnvProject:    v.Project,
		EnvProjectDir: v.ProjectDir,
		EnvLegacyDir:  v.LegacyDir,
		EnvGitURL:     v.GitURL,
	} {
		if value != "" {
			m[key] = value
			continue
		}
		if lookup != nil {
			if _, ok := lookup(key); ok {
				m[key] = ""
			}
		}
	}
	return m
}
