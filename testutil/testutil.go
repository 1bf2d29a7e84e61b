package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireGit skips the test if git is not available
func RequireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// InitGitRepo initializes a git repository with one commit on main in the given directory
func InitGitRepo(t *testing.T, dir string) {
	t.Helper()

	RunGitCommand(t, dir, "init", "--quiet")
	RunGitCommand(t, dir, "config", "user.name", "Test User")
	RunGitCommand(t, dir, "config", "user.email", "test@example.com")
	RunGitCommand(t, dir, "config", "commit.gpgsign", "false")

	CreateCommit(t, dir, "README.md", "# Test Project\n")

	// Ensure we have a main branch (rename from master if needed)
	cmd := exec.Command("git", "branch", "-m", "main")
	cmd.Dir = dir
	_ = cmd.Run() // Ignore error as branch might already be named main
}

// InitBareRemote creates a bare repository named name+".git" under parent,
// seeded with one commit, and returns its path. It stands in for the shared
// server repository in clone tests.
func InitBareRemote(t *testing.T, parent, name string) string {
	t.Helper()

	seed := filepath.Join(t.TempDir(), "seed")
	require.NoError(t, os.MkdirAll(seed, 0755))
	InitGitRepo(t, seed)

	bare := filepath.Join(parent, name+".git")
	RunGitCommand(t, parent, "clone", "--bare", "--quiet", seed, bare)
	return bare
}

// RunGitCommand runs a git command in the given directory
func RunGitCommand(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to run git %v: %v\n%s", args, err, out)
	}
}

// CreateCommit creates a file and commits it
func CreateCommit(t *testing.T, dir, filename, content string) {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create file %s: %v", filename, err)
	}

	RunGitCommand(t, dir, "add", filename)
	RunGitCommand(t, dir, "commit", "--quiet", "-m", "Add "+filename)
}
