package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv isolates a test from overrides set in the calling environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		PathEnv, "PORT", "PUBLIC_URL", "LOG_LEVEL", "LOG_FILE",
		"GLOBE_ALTITUDE", "GLOBE_FOCUS_DURATION", "GLOBE_INIT_DELAY", "COPIED_RESET_DELAY",
	} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Globe.Altitude != 1.5 {
		t.Errorf("expected altitude 1.5, got %v", cfg.Globe.Altitude)
	}
	if cfg.Globe.FocusDuration != 1500*time.Millisecond {
		t.Errorf("expected focus duration 1.5s, got %v", cfg.Globe.FocusDuration)
	}
	if cfg.Session.CopiedResetDelay != 1500*time.Millisecond {
		t.Errorf("expected copied reset delay 1.5s, got %v", cfg.Session.CopiedResetDelay)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.yaml")

	content := `
server:
  port: "9090"
share:
  public_url: "https://names.example.com/"
globe:
  focus_duration: 2s
session:
  copied_reset_delay: 500ms
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Share.PublicURL != "https://names.example.com/" {
		t.Errorf("unexpected public url %s", cfg.Share.PublicURL)
	}
	if cfg.Globe.FocusDuration != 2*time.Second {
		t.Errorf("expected focus duration 2s, got %v", cfg.Globe.FocusDuration)
	}
	if cfg.Session.CopiedResetDelay != 500*time.Millisecond {
		t.Errorf("expected copied reset delay 500ms, got %v", cfg.Session.CopiedResetDelay)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}

	// Values absent from the file keep their defaults.
	if cfg.Globe.Altitude != 1.5 {
		t.Errorf("expected default altitude 1.5, got %v", cfg.Globe.Altitude)
	}
	if cfg.Server.ReadHeaderTimeout != 5*time.Second {
		t.Errorf("expected default read header timeout, got %v", cfg.Server.ReadHeaderTimeout)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: \"9090\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("PORT", ":7070")
	t.Setenv("GLOBE_ALTITUDE", "2.25")
	t.Setenv("COPIED_RESET_DELAY", "3s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("expected env port 7070, got %s", cfg.Server.Port)
	}
	if cfg.Globe.Altitude != 2.25 {
		t.Errorf("expected altitude 2.25, got %v", cfg.Globe.Altitude)
	}
	if cfg.Session.CopiedResetDelay != 3*time.Second {
		t.Errorf("expected copied reset delay 3s, got %v", cfg.Session.CopiedResetDelay)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing explicit config file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("server: [unclosed"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for invalid yaml")
	}

	t.Setenv("GLOBE_INIT_DELAY", "soon")
	if _, err := Load(""); err == nil {
		t.Error("expected error for an invalid duration")
	}
}

func TestLoadWithoutFile(t *testing.T) {
	// No explicit path, no env path, and no ./config.yaml in the package dir.
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != Default().Server.Port {
		t.Errorf("expected default port, got %s", cfg.Server.Port)
	}
}

func TestGet(t *testing.T) {
	t.Setenv("NAMELOCATOR_TEST_KEY", "")
	if got := Get("NAMELOCATOR_TEST_KEY", "fallback"); got != "fallback" {
		t.Errorf("Get = %q, want fallback", got)
	}

	t.Setenv("NAMELOCATOR_TEST_KEY", "value")
	if got := Get("NAMELOCATOR_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("Get = %q, want value", got)
	}
}
