package pathutil

import (
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizeForLookup returns an absolute, symlink-resolved path that is
// lowercased on case-insensitive systems (macOS, Windows). Paths that do
// not exist yet are only made absolute.
func NormalizeForLookup(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	canonicalPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		canonicalPath = absPath
	}

	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		return strings.ToLower(canonicalPath), nil
	}

	return canonicalPath, nil
}

// SamePath reports whether two paths refer to the same location. Errors
// while normalizing count as "different".
func SamePath(path1, path2 string) bool {
	norm1, err := NormalizeForLookup(path1)
	if err != nil {
		return false
	}
	norm2, err := NormalizeForLookup(path2)
	if err != nil {
		return false
	}
	return norm1 == norm2
}
