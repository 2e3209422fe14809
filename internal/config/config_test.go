package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CSRF_KEY", "exactly-32-characters-long!!!!!!")
	t.Setenv("CONFIG_FILE", "")
}

func TestLoadDefaults(t *testing.T) {
	setTestEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.DatabasePath != "data/blogdesign.db" {
		t.Errorf("expected default database path, got %q", cfg.DatabasePath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level 'info', got %q", cfg.LogLevel)
	}
	if cfg.ClassPrefix != "ant" {
		t.Errorf("expected class prefix 'ant', got %q", cfg.ClassPrefix)
	}
}

func TestLoadCustomPort(t *testing.T) {
	setTestEnv(t)
	t.Setenv("PORT", "9090")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
}

func TestLoadInvalidCSRFKey(t *testing.T) {
	setTestEnv(t)
	t.Setenv("CSRF_KEY", "too-short")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error for invalid CSRF_KEY length")
	}
}

func TestLoadInvalidLogLevel(t *testing.T) {
	setTestEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error for unknown LOG_LEVEL")
	}
}

func TestLoadFromFile(t *testing.T) {
	setTestEnv(t)
	path := filepath.Join(t.TempDir(), "blogdesign.yaml")
	content := "port: 7070\nclass_prefix: bd\nbanner_level: warning\nbanner_message: Scheduled maintenance\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 7070 {
		t.Errorf("expected port 7070, got %d", cfg.Port)
	}
	if cfg.ClassPrefix != "bd" {
		t.Errorf("expected class prefix 'bd', got %q", cfg.ClassPrefix)
	}
	if cfg.BannerMessage != "Scheduled maintenance" {
		t.Errorf("unexpected banner message %q", cfg.BannerMessage)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	setTestEnv(t)
	t.Setenv("PORT", "6060")
	path := filepath.Join(t.TempDir(), "blogdesign.yaml")
	if err := os.WriteFile(path, []byte("port: 7070\n"), 0600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 6060 {
		t.Errorf("expected env port 6060 to win, got %d", cfg.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	setTestEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadAllMissing(t *testing.T) {
	os.Clearenv()

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error when CSRF_KEY missing")
	}
}
