package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamePath(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "Alpha")
	require.NoError(t, os.Mkdir(real, 0755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(real, link))

	assert.True(t, SamePath(real, real+"/"))
	assert.True(t, SamePath(real, filepath.Join(dir, "x", "..", "Alpha")))
	assert.True(t, SamePath(real, link))
	assert.False(t, SamePath(real, filepath.Join(dir, "Beta")))
}
