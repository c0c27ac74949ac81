package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	if _, err := os.Stat(filepath.Join(configDir, "logs")); os.IsNotExist(err) {
		t.Errorf("log directory was not created under %s", configDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}

	Debug("debug message")
	Info("info message")
	Warn("warning message", "key", "value")
	Error("error message")
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Init in debug mode failed: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	if got := Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("level = %v, want %v", got, log.DebugLevel)
	}
	Debug("search stats", "branches", 12)
}

func TestDefaultLevelWritesWarningsOnly(t *testing.T) {
	configDir := t.TempDir()
	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	Debug("search trace", "branches", 3)
	Info("store opened")
	Warn("automatic backup failed", "error", "disk full")

	data, err := os.ReadFile(filepath.Join(configDir, "logs", "offday.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "automatic backup failed") {
		t.Errorf("warning missing from log:\n%s", got)
	}
	if strings.Contains(got, "search trace") || strings.Contains(got, "store opened") {
		t.Errorf("debug and info should be filtered at the default level:\n%s", got)
	}
}

func TestHelpersWithoutInit(t *testing.T) {
	Logger = nil

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}

func TestInitWithUnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	// A regular file in the path prevents MkdirAll from creating the log directory.
	if err := Init(Config{ConfigDir: blocker}); err == nil {
		t.Error("expected Init to fail when the config dir is a file")
	}
}
