package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/icdeck/icdeck/errors"
	"github.com/icdeck/icdeck/git"
	"github.com/icdeck/icdeck/pkg/catalog"
	"github.com/icdeck/icdeck/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeVCS records clone calls and optionally creates the destination.
type fakeVCS struct {
	err    error
	create bool
	clones []string
}

func (f *fakeVCS) EnsureInstalled() error { return nil }

func (f *fakeVCS) Clone(_ context.Context, url, dest string) error {
	f.clones = append(f.clones, url+" -> "+dest)
	if f.err != nil {
		return f.err
	}
	if f.create {
		return os.MkdirAll(dest, 0755)
	}
	return nil
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	ws := New(&fakeVCS{})

	assert.Equal(t, Present(dir), ws.Check(catalog.Descriptor{LocalPath: dir}))
	assert.Equal(t, Absent(file), ws.Check(catalog.Descriptor{LocalPath: file}))

	missing := filepath.Join(dir, "missing")
	status := ws.Check(catalog.Descriptor{LocalPath: missing})
	assert.False(t, status.Present)
	assert.Equal(t, missing, status.Path)
}

func TestCloneWithoutRemote(t *testing.T) {
	vcs := &fakeVCS{create: true}
	ws := New(vcs)

	_, err := ws.Clone(context.Background(), catalog.Descriptor{Name: "Local", LocalPath: "/tmp/x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeNoRemoteConfigured))
	assert.Empty(t, vcs.clones)
}

func TestCloneFailures(t *testing.T) {
	tests := []struct {
		name string
		vcs  *fakeVCS
	}{
		{"vcs error", &fakeVCS{err: fmt.Errorf("exit status 128")}},
		{"directory missing afterwards", &fakeVCS{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			d := catalog.Descriptor{
				Name:      "Alpha",
				LocalPath: filepath.Join(root, "project", "Alpha"),
				RemoteURL: "git@host:Alpha.git",
			}

			_, err := New(tt.vcs).Clone(context.Background(), d)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeCloneFailed))
			assert.Len(t, tt.vcs.clones, 1)
		})
	}
}

func TestCloneRejectsUnsafeRepoNames(t *testing.T) {
	urls := []string{
		"git@host:group/..",
		"git@host:.",
		"git@host:..",
		"ssh://git@host/designs/../",
		"git@host:",
		"git@host:group/-alpha.git",
	}

	for _, url := range urls {
		t.Run(url, func(t *testing.T) {
			root := t.TempDir()
			vcs := &fakeVCS{create: true}
			d := catalog.Descriptor{
				Name:      "Alpha",
				LocalPath: filepath.Join(root, "project", "Alpha"),
				RemoteURL: url,
			}

			path, err := New(vcs).Clone(context.Background(), d)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeCloneFailed))
			assert.Empty(t, path)
			assert.Empty(t, vcs.clones)
			assert.NoDirExists(t, filepath.Join(root, "project"))
		})
	}
}

func TestCloneTargetsParentOfLocalPath(t *testing.T) {
	root := t.TempDir()
	vcs := &fakeVCS{create: true}
	d := catalog.Descriptor{
		Name:      "Alpha",
		LocalPath: filepath.Join(root, "project", "Alpha"),
		RemoteURL: "ssh://git@host/designs/alpha-rtl.git/",
	}

	path, err := New(vcs).Clone(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "project", "alpha-rtl"), path)
	assert.Equal(t, []string{d.RemoteURL + " -> " + path}, vcs.clones)
}

func TestCloneFromRealRemote(t *testing.T) {
	testutil.RequireGit(t)

	remotes := t.TempDir()
	remote := testutil.InitBareRemote(t, remotes, "Alpha")

	root := t.TempDir()
	d := catalog.Descriptor{
		Name:      "Alpha",
		LocalPath: filepath.Join(root, "project", "Alpha"),
		RemoteURL: remote,
	}

	ws := New(git.NewCLIRepository())
	require.Equal(t, Absent(d.LocalPath), ws.Check(d))

	path, err := ws.Clone(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, d.LocalPath, path)
	assert.Equal(t, Present(d.LocalPath), ws.Check(d))
	assert.DirExists(t, filepath.Join(path, ".git"))

	_, err = ws.Clone(context.Background(), d)
	assert.True(t, errors.Is(err, errors.ErrCodeCloneFailed), "cloning onto an existing directory must fail")
}
