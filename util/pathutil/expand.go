package pathutil

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/icdeck/icdeck/pkg/paths"
)

// Expander expands project path templates. Lookup resolves environment
// variables; Home and User fill in '~' and the {{USER}}/{{HOME}} tokens.
type Expander struct {
	Lookup func(string) (string, bool)
	Home   string
	User   string
}

// NewExpander returns an Expander bound to the current process: its
// environment, the user's real home directory and login name.
func NewExpander() *Expander {
	e := &Expander{Lookup: os.LookupEnv, Home: paths.UserHome()}
	if name := os.Getenv("USER"); name != "" {
		e.User = name
	} else if u, err := user.Current(); err == nil {
		e.User = u.Username
	}
	return e
}

// Expand expands '~', {{USER}}/{{HOME}} tokens and $VAR/${VAR} environment
// variables in path and returns a cleaned absolute path.
func (e *Expander) Expand(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	// 1. Expand home directory character '~'.
	if path == "~" || strings.HasPrefix(path, "~/") {
		if e.Home == "" {
			return "", fmt.Errorf("could not get user home directory")
		}
		path = filepath.Join(e.Home, path[1:])
	}

	// 2. Expand template tokens.
	path = strings.ReplaceAll(path, "{{USER}}", e.User)
	path = strings.ReplaceAll(path, "{{HOME}}", e.Home)

	// 3. Expand environment variables. HOME is always the real home, since
	// the process HOME is redirected while a session is active. USER falls
	// back to the expander's value in stripped environments.
	path = os.Expand(path, func(key string) string {
		if key == "HOME" && e.Home != "" {
			return e.Home
		}
		if e.Lookup != nil {
			if v, ok := e.Lookup(key); ok {
				return v
			}
		}
		if key == "USER" {
			return e.User
		}
		return ""
	})

	return filepath.Abs(path)
}

// Expand expands a path against the current process environment.
func Expand(path string) (string, error) {
	return NewExpander().Expand(path)
}
