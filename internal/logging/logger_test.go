package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if err != nil {
				t.Fatalf("ParseLevel failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	t.Run("invalid", func(t *testing.T) {
		if _, err := ParseLevel("loud"); err == nil {
			t.Error("Expected error for invalid level")
		}
	})
}

func TestNew(t *testing.T) {
	t.Run("level applied", func(t *testing.T) {
		logger, err := New(Options{Level: "warn", OutputPaths: []string{filepath.Join(t.TempDir(), "a.log")}})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if logger.Core().Enabled(zapcore.InfoLevel) {
			t.Error("Expected info to be disabled at warn level")
		}
		if !logger.Core().Enabled(zapcore.WarnLevel) {
			t.Error("Expected warn to be enabled")
		}
	})

	t.Run("verbose forces debug", func(t *testing.T) {
		logger, err := New(Options{Level: "error", Verbose: true, OutputPaths: []string{filepath.Join(t.TempDir(), "b.log")}})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if !logger.Core().Enabled(zapcore.DebugLevel) {
			t.Error("Expected debug to be enabled")
		}
	})

	t.Run("writes to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "c.log")
		logger, err := New(Options{Level: "info", OutputPaths: []string{path}})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		logger.Info("session ready")
		_ = logger.Sync()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "session ready") {
			t.Errorf("Expected log line in file, got %q", data)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		if _, err := New(Options{Level: "loud"}); err == nil {
			t.Error("Expected error for invalid level")
		}
	})
}
