package scaffold

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}`)

// Vars are the {{TOKEN}} substitutions.
type Vars map[string]string

// ParseVars parses KEY=VAL pairs, expanding $VARS in values.
func ParseVars(pairs []string) (Vars, error) {
	out := Vars{}
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid KEY=VAL: %q", kv)
		}
		out[strings.TrimSpace(k)] = os.ExpandEnv(v)
	}
	return out, nil
}

// Render replaces every known {{TOKEN}} in s. Unknown tokens are kept.
func (v Vars) Render(s string) string {
	return tokenRe.ReplaceAllStringFunc(s, func(match string) string {
		key := tokenRe.FindStringSubmatch(match)[1]
		if value, ok := v[key]; ok {
			return value
		}
		return match
	})
}

// matches evaluates an only_if condition. An empty condition matches.
func (v Vars) matches(cond string) bool {
	if cond == "" {
		return true
	}
	k, want, _ := strings.Cut(cond, "=")
	return v[strings.TrimSpace(k)] == strings.TrimSpace(want)
}

// buildVars layers structure defaults, command line values and PROJECT.
func buildVars(defaults map[string]interface{}, overrides Vars, project string) Vars {
	vars := Vars{}
	for k, v := range defaults {
		if v == nil {
			vars[k] = ""
			continue
		}
		vars[k] = fmt.Sprint(v)
	}
	for k, v := range overrides {
		vars[k] = v
	}
	vars["PROJECT"] = project
	return vars
}
