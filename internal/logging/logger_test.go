package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected zapcore.Level
	}{
		{"debug", zap.DebugLevel},
		{"", zap.InfoLevel},
		{"INFO", zap.InfoLevel},
		{"warning", zap.WarnLevel},
		{" error ", zap.ErrorLevel},
	}

	for _, tt := range tests {
		level, err := ParseLevel(tt.name)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tt.name, err)
		}
		if level != tt.expected {
			t.Errorf("%q: expected %v, got %v", tt.name, tt.expected, level)
		}
	}
}

func TestParseLevel_Unknown(t *testing.T) {
	_, err := ParseLevel("loud")
	if !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("expected ErrUnknownLevel, got %v", err)
	}
}

func TestNew(t *testing.T) {
	logger, err := New("warn", true)
	if err != nil {
		t.Fatal(err)
	}
	if logger.Core().Enabled(zap.InfoLevel) {
		t.Error("info should be disabled at warn")
	}
	if !logger.Core().Enabled(zap.ErrorLevel) {
		t.Error("error should be enabled at warn")
	}

	if _, err := New("nope", false); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drive.log")
	logger, err := NewFile("debug", path)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("motor velocities saturated", zap.Float64("max", 1.5))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "motor velocities saturated") {
		t.Errorf("expected debug entry in log file, got %q", data)
	}

	if _, err := NewFile("nope", path); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("expected ErrUnknownLevel, got %v", err)
	}
}
