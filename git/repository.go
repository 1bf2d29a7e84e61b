package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/icdeck/icdeck/command"
	"github.com/icdeck/icdeck/errors"
)

// CLIRepository implements VCS and BareRepositoryProvider using the git CLI.
type CLIRepository struct {
	cmdBuilder *command.SafeBuilder
}

// Ensure it implements the interfaces
var (
	_ VCS                    = (*CLIRepository)(nil)
	_ BareRepositoryProvider = (*CLIRepository)(nil)
)

// NewCLIRepository creates a new CLI repository provider. Clones of large
// design repositories are slow, so commands get the maximum timeout.
func NewCLIRepository() *CLIRepository {
	return NewCLIRepositoryWithBuilder(command.NewSafeBuilder().WithDefaultTimeout(command.MaxTimeout))
}

// NewCLIRepositoryWithBuilder creates a provider around an existing builder.
func NewCLIRepositoryWithBuilder(builder *command.SafeBuilder) *CLIRepository {
	return &CLIRepository{cmdBuilder: builder}
}

// EnsureInstalled checks that git is on PATH.
func (r *CLIRepository) EnsureInstalled() error {
	if _, err := r.cmdBuilder.Executor().LookPath("git"); err != nil {
		return errors.VCSNotInstalled("git", err)
	}
	return nil
}

// Clone clones url into dest.
func (r *CLIRepository) Clone(ctx context.Context, url, dest string) error {
	if err := r.cmdBuilder.Validate("remoteURL", url); err != nil {
		return err
	}
	if err := r.cmdBuilder.Validate("fileName", dest); err != nil {
		return err
	}
	_, err := r.run(ctx, "", "clone", "--", url, dest)
	return err
}

// InitBare creates a group-shared bare repository with the given initial branch.
func (r *CLIRepository) InitBare(ctx context.Context, path, defaultBranch string) error {
	if err := r.cmdBuilder.Validate("fileName", path); err != nil {
		return err
	}
	if err := r.cmdBuilder.Validate("gitRef", defaultBranch); err != nil {
		return err
	}
	if _, err := r.run(ctx, "", "init", "--bare", "--shared=group", "--quiet", path); err != nil {
		return err
	}
	// --initial-branch needs git 2.28; setting HEAD works everywhere.
	_, err := r.run(ctx, path, "symbolic-ref", "HEAD", "refs/heads/"+defaultBranch)
	return err
}

// IsBare reports whether path is a bare repository. A path git does not
// recognise as a repository at all yields false without an error.
func (r *CLIRepository) IsBare(ctx context.Context, path string) (bool, error) {
	out, err := r.run(ctx, path, "rev-parse", "--is-bare-repository")
	if err != nil {
		if strings.Contains(err.Error(), "not a git repository") {
			return false, nil
		}
		return false, err
	}
	return out == "true", nil
}

// GetConfig reads key from the repository config. Missing keys yield "".
func (r *CLIRepository) GetConfig(ctx context.Context, repoPath, key string) (string, error) {
	out, err := r.run(ctx, repoPath, "config", "--local", "--get", key)
	if err != nil {
		// git config --get exits 1 when the key is unset
		if e, ok := errors.As(err); ok && e.Detail("exitCode") == "1" {
			return "", nil
		}
		return "", err
	}
	return out, nil
}

// SetConfig writes key=value into the repository config.
func (r *CLIRepository) SetConfig(ctx context.Context, repoPath, key, value string) error {
	_, err := r.run(ctx, repoPath, "config", "--local", key, value)
	return err
}

// HeadRef returns the ref HEAD points at.
func (r *CLIRepository) HeadRef(ctx context.Context, repoPath string) (string, error) {
	return r.run(ctx, repoPath, "symbolic-ref", "HEAD")
}

// run executes git with args, optionally inside dir.
func (r *CLIRepository) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd, err := r.cmdBuilder.Build(ctx, "git", args...)
	if err != nil {
		return "", fmt.Errorf("failed to build command: %w", err)
	}
	cmd.Dir = dir
	out, err := cmd.Run()
	if err != nil {
		return "", errors.CommandFailed(cmd.String(), err)
	}
	return out, nil
}
