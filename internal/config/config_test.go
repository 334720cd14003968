package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigPathUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	want := filepath.Join(dir, "textcalc", "config.toml")
	if got := DefaultConfigPath(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestXDGConfigHomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", home)
	if got := XDGConfigHome(); got != filepath.Join(home, ".config") {
		t.Fatalf("unexpected config home: %q", got)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Analyzer.Top != nil || cfg.Analyzer.Mode != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigAnalyzerSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[analyzer]
mode = "detailed"
top = 3
wpm = 250
color = "never"
json = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	a := cfg.Analyzer
	if a.Mode == nil || *a.Mode != "detailed" {
		t.Fatalf("unexpected mode: %v", a.Mode)
	}
	if a.Top == nil || *a.Top != 3 {
		t.Fatalf("unexpected top: %v", a.Top)
	}
	if a.WPM == nil || *a.WPM != 250 {
		t.Fatalf("unexpected wpm: %v", a.WPM)
	}
	if a.Color == nil || *a.Color != "never" {
		t.Fatalf("unexpected color: %v", a.Color)
	}
	if a.JSON == nil || !*a.JSON {
		t.Fatalf("unexpected json: %v", a.JSON)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[analyzer]\ntop = 7\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Analyzer.Top == nil || *cfg.Analyzer.Top != 7 {
		t.Fatalf("unexpected top: %v", cfg.Analyzer.Top)
	}
	if cfg.Analyzer.WPM != nil || cfg.Analyzer.Color != nil {
		t.Fatalf("unset keys should stay nil: %+v", cfg.Analyzer)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[analyzer]\ntopp = 7\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "analyzer.topp") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[analyzer\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}
