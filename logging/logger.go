package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/icdeck/icdeck/config"
	"github.com/icdeck/icdeck/pkg/paths"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	// stderr is swapped in tests.
	stderr io.Writer = os.Stderr
)

// NewLogger returns the logger for component, creating it on first use from
// the "logging" section of the projects file and the ICDECK_LOG_* variables.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	var logCfg Config
	if cfg, err := config.LoadWithLogger("", quietLogger()); err == nil {
		if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
			logrus.Warnf("Failed to parse 'logging' config: %v", err)
		}
	}

	entry := Configure(logrus.New(), component, logCfg).WithField("component", component)
	loggers[component] = entry
	return entry
}

// Configure applies logCfg and the environment overrides to logger.
func Configure(logger *logrus.Logger, component string, logCfg Config) *logrus.Logger {
	levelStr := "info"
	if env := os.Getenv("ICDECK_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if os.Getenv("ICDECK_LOG_CALLER") == "true" || logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	switch logCfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: logCfg.Format})
	}

	var writers []io.Writer

	if logCfg.File.Enabled {
		if w := openLogFile(logger, component, logCfg.File); w != nil {
			writers = append(writers, w)
		}
	}

	if shouldLogToStderr(logger, logCfg.Format.StructuredToStderr) {
		writers = append(writers, stderr)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	return logger
}

// LogFilePath is where the file sink for component writes when no path is
// configured.
func LogFilePath(component string, now time.Time) string {
	dir := paths.LogDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s.log", component, now.Format("2006-01-02")))
}

func openLogFile(logger *logrus.Logger, component string, sink FileSinkConfig) io.Writer {
	path := LogFilePath(component, time.Now())
	if sink.Path != "" {
		path = expandPath(sink.Path)
	}
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Warnf("Failed to create log directory %s: %v", dir, err)
		return nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger.Warnf("Failed to open log file %s: %v", path, err)
		return nil
	}
	return file
}

// shouldLogToStderr decides whether structured entries reach stderr. In
// "auto" mode an interactive terminal only sees them when debugging.
func shouldLogToStderr(logger *logrus.Logger, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	isDebug := os.Getenv("ICDECK_DEBUG") == "1" || logger.GetLevel() >= logrus.DebugLevel
	isInteractive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return isDebug || !isInteractive
}

// quietLogger is handed to the config loader so that looking for the
// logging section never logs by itself.
func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// expandPath expands a leading tilde against the real home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home := paths.UserHome(); home != "" {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
