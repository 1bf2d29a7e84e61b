package session

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadVars(t *testing.T) {
	t.Setenv("HOME", "/home/u/project/Alpha")
	t.Setenv("OLDHOME", "/home/u")
	t.Setenv("PROJECT", "Alpha")
	t.Setenv("PRJ_DIR", "/home/u/project/Alpha")
	t.Setenv("ICPRO_DIR", "/home/u/project/Alpha")
	t.Setenv("GIT_URL", "")

	v, err := LoadVars()
	require.NoError(t, err)
	assert.Equal(t, "Alpha", v.Project)
	assert.Equal(t, "/home/u", v.OldHome)

	m := v.Map(nil)
	assert.Equal(t, "/home/u/project/Alpha", m[EnvHome])
	assert.NotContains(t, m, EnvGitURL)
}

func TestVarsMapKeepsSetEmptyValues(t *testing.T) {
	t.Setenv("HOME", "/home/u/project/Alpha")
	t.Setenv("OLDHOME", "")
	t.Setenv("PROJECT", "Alpha")
	for _, key := range []string{"PRJ_DIR", "ICPRO_DIR", "GIT_URL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	v, err := LoadVars()
	require.NoError(t, err)

	m := v.Map(os.LookupEnv)
	old, ok := m[EnvOldHome]
	assert.True(t, ok, "OLDHOME is set, although empty")
	assert.Empty(t, old)
	assert.NotContains(t, m, EnvProjectDir)
	assert.NotContains(t, m, EnvGitURL)
	assert.Equal(t, "Alpha", m[EnvProject])
}
