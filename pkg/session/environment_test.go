package session

import (
	"testing"

	"github.com/icdeck/icdeck/errors"
	"github.com/icdeck/icdeck/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnterSetsSessionVariables(t *testing.T) {
	env := newFakeEnviron("/home/u")
	env.dirs[alpha.LocalPath] = true
	s := newTestEnvironment(env)

	require.NoError(t, s.Enter(alpha, alpha.LocalPath))

	st := s.State()
	assert.True(t, st.Active)
	assert.Equal(t, "Alpha", st.Project)
	assert.Equal(t, alpha.LocalPath, st.ProjectDir)
	assert.Equal(t, alpha.LocalPath, env.Getenv(EnvLegacyDir))
	assert.Equal(t, alpha.LocalPath, st.Home)
	assert.Equal(t, "/home/u", st.SavedHome)
	assert.Equal(t, "git@host:Alpha.git", st.RemoteURL)
	assert.Equal(t, alpha.LocalPath, env.wd)
	assert.Equal(t, "[Alpha] %n@%m:%c2 %# ", st.Prompt)
}

func TestExitRestoresHome(t *testing.T) {
	env := newFakeEnviron("/home/u")
	env.dirs[alpha.LocalPath] = true
	s := newTestEnvironment(env)

	require.NoError(t, s.Enter(alpha, alpha.LocalPath))
	env.vars[EnvProjectDir] = "/somewhere/else"
	env.vars[EnvHome] = "/tmp/changed-by-user"

	require.NoError(t, s.Exit())

	assert.Equal(t, "/home/u", env.Getenv(EnvHome))
	for _, key := range []string{EnvProject, EnvProjectDir, EnvLegacyDir, EnvOldHome, EnvGitURL} {
		_, ok := env.LookupEnv(key)
		assert.False(t, ok, "%s should be unset", key)
	}
	assert.Equal(t, "%n@%m:%c2 %# ", env.prompt)
	assert.Equal(t, "/home/u/project", env.wd)
	assert.False(t, s.State().Active)
}

func TestExitTwiceIsIdempotent(t *testing.T) {
	env := newFakeEnviron("/home/u")
	env.dirs[alpha.LocalPath] = true
	s := newTestEnvironment(env)

	require.NoError(t, s.Enter(alpha, alpha.LocalPath))
	require.NoError(t, s.Exit())
	once := env.snapshot()

	require.NoError(t, s.Exit())
	assert.Equal(t, once, env.snapshot())
}

func TestExitWhileIdleIsNoop(t *testing.T) {
	env := newFakeEnviron("/home/u")
	s := newTestEnvironment(env)
	before := env.snapshot()

	require.NoError(t, s.Exit())
	assert.Equal(t, before, env.snapshot())
}

func TestEnterWhileActiveIsRejected(t *testing.T) {
	env := newFakeEnviron("/home/u")
	beta := catalog.Descriptor{Name: "Beta", LocalPath: "/home/u/project/Beta", Available: true}
	env.dirs[alpha.LocalPath] = true
	env.dirs[beta.LocalPath] = true
	s := newTestEnvironment(env)

	require.NoError(t, s.Enter(alpha, alpha.LocalPath))
	before := env.snapshot()

	err := s.Enter(beta, beta.LocalPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeSessionAlreadyActive))
	assert.Equal(t, before, env.snapshot())
}

func TestEnterUnreachableDirectoryChangesNothing(t *testing.T) {
	env := newFakeEnviron("/home/u")
	s := newTestEnvironment(env)
	before := env.snapshot()

	err := s.Enter(alpha, alpha.LocalPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDirectoryUnavailable))
	assert.Equal(t, before, env.snapshot())
}

func TestEnterRollsBackFailedWrite(t *testing.T) {
	env := newFakeEnviron("/home/u")
	env.dirs[alpha.LocalPath] = true
	env.failSet = EnvProjectDir
	s := newTestEnvironment(env)
	before := env.snapshot()

	err := s.Enter(alpha, alpha.LocalPath)
	require.Error(t, err)
	assert.Equal(t, before, env.snapshot())
	assert.False(t, s.Active())
}

func TestEnterKeepsStaleOldHome(t *testing.T) {
	env := newFakeEnviron("/home/u/project/Old")
	env.vars[EnvOldHome] = "/home/u"
	env.dirs["/home/u/project"] = true
	env.dirs[alpha.LocalPath] = true
	s := newTestEnvironment(env)

	require.NoError(t, s.Enter(alpha, alpha.LocalPath))
	assert.Equal(t, "/home/u", env.Getenv(EnvOldHome))

	require.NoError(t, s.Exit())
	assert.Equal(t, "/home/u", env.Getenv(EnvHome))
}

func TestEnterWithoutRemoteClearsGitURL(t *testing.T) {
	env := newFakeEnviron("/home/u")
	env.vars[EnvGitURL] = "git@host:Stale.git"
	local := catalog.Descriptor{Name: "Local", LocalPath: "/home/u/project/Local", Available: true}
	env.dirs[local.LocalPath] = true
	s := newTestEnvironment(env)

	require.NoError(t, s.Enter(local, local.LocalPath))
	_, ok := env.LookupEnv(EnvGitURL)
	assert.False(t, ok)
}

func TestEnterExitEnterRoundTrip(t *testing.T) {
	single := newFakeEnviron("/home/u")
	single.dirs[alpha.LocalPath] = true
	require.NoError(t, newTestEnvironment(single).Enter(alpha, alpha.LocalPath))

	env := newFakeEnviron("/home/u")
	env.dirs[alpha.LocalPath] = true
	s := newTestEnvironment(env)
	require.NoError(t, s.Enter(alpha, alpha.LocalPath))
	require.NoError(t, s.Exit())
	require.NoError(t, s.Enter(alpha, alpha.LocalPath))

	assert.Equal(t, single.snapshot(), env.snapshot())
}

func TestExitRestoresEvenWhenRootIsMissing(t *testing.T) {
	env := newFakeEnviron("/home/u")
	delete(env.dirs, "/home/u/project")
	env.dirs[alpha.LocalPath] = true
	s := newTestEnvironment(env)

	require.NoError(t, s.Enter(alpha, alpha.LocalPath))
	err := s.Exit()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDirectoryUnavailable))
	assert.Equal(t, "/home/u", env.Getenv(EnvHome))
	assert.False(t, s.Active())
}
