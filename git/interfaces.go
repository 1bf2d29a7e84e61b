package git

import "context"

// VCS is the version-control capability the workspace and provisioning
// layers depend on. The production implementation shells out to git.
type VCS interface {
	// EnsureInstalled fails if the git executable cannot be found.
	EnsureInstalled() error

	// Clone clones url into dest. dest must not exist yet.
	Clone(ctx context.Context, url, dest string) error
}

// BareRepositoryProvider defines the operations used to provision shared
// bare repositories on a server.
type BareRepositoryProvider interface {
	// InitBare creates a bare repository shared with its group.
	InitBare(ctx context.Context, path, defaultBranch string) error

	// IsBare reports whether path is a bare repository.
	IsBare(ctx context.Context, path string) (bool, error)

	// GetConfig reads a single config value; a missing key yields "".
	GetConfig(ctx context.Context, repoPath, key string) (string, error)

	// SetConfig writes a config value in the repository's own config file.
	SetConfig(ctx context.Context, repoPath, key, value string) error

	// HeadRef returns the symbolic ref HEAD points at, e.g. refs/heads/main.
	HeadRef(ctx context.Context, repoPath string) (string, error)
}
