package git

import (
	"strings"
)

// RepoNameFromURL derives the directory name git clone would create for url:
// the last path segment (after '/' or the scp-style ':'), without a
// trailing ".git". Returns "" when nothing usable remains.
func RepoNameFromURL(url string) string {
	url = strings.TrimSpace(url)
	url = strings.TrimRight(url, "/")
	url = strings.TrimSuffix(url, ".git")
	url = strings.TrimRight(url, "/")

	if i := strings.LastIndexAny(url, "/:"); i >= 0 {
		url = url[i+1:]
	}
	return url
}
