package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserHomePrefersOldHome(t *testing.T) {
	t.Setenv("HOME", "/home/u/project/Alpha")
	t.Setenv("OLDHOME", "/home/u")
	assert.Equal(t, "/home/u", UserHome())

	t.Setenv("OLDHOME", "")
	assert.Equal(t, "/home/u/project/Alpha", UserHome())
}

func TestDirectoriesResolution(t *testing.T) {
	t.Setenv("OLDHOME", "")
	t.Setenv("HOME", "/home/u")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ICDECK_HOME", "")
		assert.Equal(t, filepath.Join("/home/u", ".config", "icdeck"), ConfigDir())
		assert.Equal(t, filepath.Join("/home/u", ".local", "state", "icdeck"), StateDir())
		assert.Equal(t, filepath.Join("/home/u", ".local", "state", "icdeck", "logs"), LogDir())
	})

	t.Run("xdg", func(t *testing.T) {
		t.Setenv("ICDECK_HOME", "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
		assert.Equal(t, filepath.Join("/xdg/config", "icdeck"), ConfigDir())
	})

	t.Run("portable root", func(t *testing.T) {
		t.Setenv("ICDECK_HOME", "/opt/icdeck")
		assert.Equal(t, filepath.Join("/opt/icdeck", "config", "icdeck"), ConfigDir())
		assert.Equal(t, filepath.Join("/opt/icdeck", "state", "icdeck"), StateDir())
	})
}
