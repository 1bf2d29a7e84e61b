package logging

// Config is the optional "logging" section of the projects file.
type Config struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// ICDECK_LOG_LEVEL overrides it.
	Level string `yaml:"level"`

	// ReportCaller adds file, line and function to each entry.
	// ICDECK_LOG_CALLER=true enables it too.
	ReportCaller bool `yaml:"report_caller"`

	File FileSinkConfig `yaml:"file"`

	Format FormatConfig `yaml:"format"`
}

// FileSinkConfig configures the file logging sink.
type FileSinkConfig struct {
	// Enabled turns the file sink on. Without it entries only reach stderr.
	Enabled bool `yaml:"enabled"`
	// Path is the log file. Defaults to <state dir>/logs/<component>-<date>.log.
	Path   string `yaml:"path"`
	Format string `yaml:"format,omitempty"` // "text" (default) or "json"
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset           string `yaml:"preset"`
	DisableTimestamp bool   `yaml:"disable_timestamp"`
	DisableComponent bool   `yaml:"disable_component"`
	// StructuredToStderr is "auto" (default), "always", or "never".
	// stdout is never used: it carries the statements the shell evaluates.
	StructuredToStderr string `yaml:"structured_to_stderr"`
}
