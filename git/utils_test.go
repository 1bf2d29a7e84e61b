package git

import (
	"testing"
)

func TestRepoNameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"git@host:Alpha.git", "Alpha"},
		{"git@github.com:asic/Beta.git", "Beta"},
		{"https://git.example.com/asic/gamma.git", "gamma"},
		{"https://git.example.com/asic/gamma.git/", "gamma"},
		{"ssh://git@host:2222/srv/git/delta", "delta"},
		{"/srv/git/epsilon.git", "epsilon"},
		{"file:///srv/git/zeta.git", "zeta"},
		{"plain", "plain"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := RepoNameFromURL(tt.url); got != tt.want {
				t.Errorf("RepoNameFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
