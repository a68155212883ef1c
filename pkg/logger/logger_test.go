package logger

import (
	"os"
	"path/filepath"
	"testing"

	"kocho-pos/config"
)

func TestInitStdout(t *testing.T) {
	cfg := &config.LogConfig{Level: "debug", Format: "json", Output: "stdout"}
	if err := Init(cfg, "production"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if Get() == nil {
		t.Error("Get returned nil after Init")
	}
}

func TestInitFileCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.LogConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: filepath.Join(dir, "nested", "app.log"),
	}
	if err := Init(cfg, "production"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "nested")); err != nil {
		t.Errorf("log directory was not created: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"bogus", "info"},
		{"", "info"},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input).String(); got != tt.want {
			t.Errorf("parseLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUpdateLevel(t *testing.T) {
	cfg := &config.LogConfig{Level: "info", Output: "stdout"}
	if err := Init(cfg, "production"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if atomLevel.Level().String() != "info" {
		t.Fatalf("unexpected initial level %q", atomLevel.Level())
	}
	UpdateLevel("error")
	if atomLevel.Level().String() != "error" {
		t.Errorf("UpdateLevel did not take effect, level is %q", atomLevel.Level())
	}
}

func TestHelpersSafeBeforeInit(t *testing.T) {
	saved := log
	log = nil
	defer func() { log = saved }()

	// None of these may panic without an initialized logger.
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
	if With() == nil {
		t.Error("With returned nil")
	}
	if WithRequestID("abc") == nil {
		t.Error("WithRequestID returned nil")
	}
	if err := Sync(); err != nil {
		t.Errorf("Sync returned error: %v", err)
	}
}
