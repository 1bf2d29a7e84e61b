package session

// State is a snapshot of the session as seen through an Environ.
type State struct {
	Active     bool   `json:"active"`
	Project    string `json:"project,omitempty"`
	ProjectDir string `json:"project_dir,omitempty"`
	RemoteURL  string `json:"git_url,omitempty"`
	SavedHome  string `json:"saved_home,omitempty"`
	Home       string `json:"home,omitempty"`
	Prompt     string `json:"-"`
}

// Snapshot reads the session state from env. A session is active exactly
// when PROJECT is set.
func Snapshot(env Environ) State {
	project, active := env.LookupEnv(EnvProject)
	return State{
		Active:     active,
		Project:    project,
		ProjectDir: env.Getenv(EnvProjectDir),
		RemoteURL:  env.Getenv(EnvGitURL),
		SavedHome:  env.Getenv(EnvOldHome),
		Home:       env.Getenv(EnvHome),
		Prompt:     env.Prompt(),
	}
}
