package session

// Names of the environment variables that carry a session.
const (
	EnvProject    = "PROJECT"
	EnvProjectDir = "PRJ_DIR"
	EnvLegacyDir  = "ICPRO_DIR"
	EnvGitURL     = "GIT_URL"
	EnvHome       = "HOME"
	EnvOldHome    = "OLDHOME"
)

// sessionKeys are every variable Enter may touch, in the order they are
// written.
var sessionKeys = []string{EnvOldHome, EnvHome, EnvProject, EnvProjectDir, EnvLegacyDir, EnvGitURL}

// Environ is the shell state a session mutates. The CLI uses a recorder
// that turns the mutations into statements for the calling shell to eval.
type Environ interface {
	Getenv(key string) string
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
	Unsetenv(key string) error

	// Chdir fails if dir is not an accessible directory.
	Chdir(dir string) error
	Getwd() (string, error)

	SetPrompt(prompt string) error
	Prompt() string
}
