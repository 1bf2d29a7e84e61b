package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	t.Setenv("ICDECK_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	logger := NewLogger("test-component")
	if logger == nil {
		t.Fatal("Expected logger to be created")
	}
	if logger.Data["component"] != "test-component" {
		t.Errorf("Expected component to be 'test-component', got %v", logger.Data["component"])
	}
	if NewLogger("test-component") != logger {
		t.Error("Expected the same entry for the same component")
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "entering project",
				Data: logrus.Fields{
					"component": "session",
					"project":   "Alpha",
				},
			},
			want: []string{"[INFO]", "session", "entering project", "project=Alpha"},
		},
		{
			name: "simple format",
			config: FormatConfig{
				DisableTimestamp: true,
				DisableComponent: true,
			},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "no remote",
				Data:    logrus.Fields{"component": "workspace"},
			},
			want:    []string{"[WARN]", "no remote"},
			notWant: []string{"workspace", "warning"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &TextFormatter{Config: tt.config}
			out, err := f.Format(tt.entry)
			if err != nil {
				t.Fatalf("Format returned error: %v", err)
			}
			s := string(out)
			for _, w := range tt.want {
				if !strings.Contains(s, w) {
					t.Errorf("Expected output to contain %q, got: %s", w, s)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(s, nw) {
					t.Errorf("Expected output NOT to contain %q, got: %s", nw, s)
				}
			}
		})
	}
}

func TestTextFormatterSortsFields(t *testing.T) {
	f := &TextFormatter{Config: FormatConfig{DisableTimestamp: true}}
	out, _ := f.Format(&logrus.Entry{
		Level:   logrus.InfoLevel,
		Message: "m",
		Data:    logrus.Fields{"zeta": 1, "alpha": 2},
	})
	s := string(out)
	if strings.Index(s, "alpha=2") > strings.Index(s, "zeta=1") {
		t.Errorf("Expected fields in key order, got: %s", s)
	}
}

func TestConfigureLevels(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		cfg   Config
		level logrus.Level
	}{
		{"default", "", Config{}, logrus.InfoLevel},
		{"from config", "", Config{Level: "debug"}, logrus.DebugLevel},
		{"env wins", "error", Config{Level: "debug"}, logrus.ErrorLevel},
		{"invalid falls back", "loud", Config{}, logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ICDECK_LOG_LEVEL", tt.env)
			logger := Configure(logrus.New(), "test", tt.cfg)
			if logger.GetLevel() != tt.level {
				t.Errorf("Expected level %v, got %v", tt.level, logger.GetLevel())
			}
		})
	}
}

func TestConfigureStderrModes(t *testing.T) {
	var buf bytes.Buffer
	orig := stderr
	stderr = &buf
	defer func() { stderr = orig }()

	logger := Configure(logrus.New(), "test", Config{Format: FormatConfig{StructuredToStderr: "always"}})
	logger.Info("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("Expected entry on stderr, got: %q", buf.String())
	}

	buf.Reset()
	logger = Configure(logrus.New(), "test", Config{Format: FormatConfig{StructuredToStderr: "never"}})
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected no stderr output, got: %q", buf.String())
	}
}

func TestFileSink(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "icdeck.log")

	logger := Configure(logrus.New(), "test", Config{
		File:   FileSinkConfig{Enabled: true, Path: path},
		Format: FormatConfig{StructuredToStderr: "never"},
	})
	logger.Info("written to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("Expected message in log file, got: %s", data)
	}
}

func TestLogFilePath(t *testing.T) {
	t.Setenv("ICDECK_HOME", "/opt/icdeck")
	day := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	got := LogFilePath("select", day)
	want := "/opt/icdeck/state/icdeck/logs/select-2024-03-09.log"
	if got != want {
		t.Errorf("LogFilePath() = %q, want %q", got, want)
	}
}

func TestPrettyLogger(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrettyLogger().WithWriter(&buf)

	p.Success("repository ready")
	p.Field("shared", "group")
	p.Entry("DIR", "/p/Alpha/src")

	out := buf.String()
	for _, want := range []string{"repository ready", "shared:", "group", "[DIR]", "/p/Alpha/src"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got: %s", want, out)
		}
	}
}
