package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.UI.SyntaxThemeOrDefault(); got != "monokai" {
		t.Errorf("syntax theme = %q, want monokai", got)
	}
	if got := cfg.UI.TabWidthOrDefault(); got != 4 {
		t.Errorf("tab width = %d, want 4", got)
	}
	if got := cfg.Log.LevelOrDefault(); got != "info" {
		t.Errorf("log level = %q, want info", got)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[ui]
syntax_theme = "dracula"
tab_width = 8

[log]
level = "debug"

[climb]
max_steps = 200
`)
	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.SyntaxTheme != "dracula" {
		t.Errorf("syntax theme = %q, want dracula", cfg.UI.SyntaxTheme)
	}
	if cfg.UI.TabWidth != 8 {
		t.Errorf("tab width = %d, want 8", cfg.UI.TabWidth)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Climb.MaxSteps != 200 {
		t.Errorf("max steps = %d, want 200", cfg.Climb.MaxSteps)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[ui]
syntax_theme = "dracula"
`)
	t.Setenv("CLIMBER_SYNTAX_THEME", "nord")

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.SyntaxTheme != "nord" {
		t.Errorf("syntax theme = %q, want env override nord", cfg.UI.SyntaxTheme)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml"), true); err == nil {
		t.Fatal("missing explicit config accepted")
	}
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml"), false); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestValidate_BadLevel(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "shout"
`)
	if _, err := Load(path, true); err == nil {
		t.Fatal("invalid log level accepted")
	}
}

func TestValidate_NegativeMaxSteps(t *testing.T) {
	path := writeConfig(t, `
[climb]
max_steps = -1
`)
	if _, err := Load(path, true); err == nil {
		t.Fatal("negative max_steps accepted")
	}
}

func TestValidate_MaxStepsFloor(t *testing.T) {
	path := writeConfig(t, `
[climb]
max_steps = 1
`)
	if _, err := Load(path, true); err == nil {
		t.Fatal("max_steps below the minimum accepted")
	}

	path = writeConfig(t, `
[climb]
max_steps = 10
`)
	if _, err := Load(path, true); err != nil {
		t.Fatalf("Load with max_steps at the minimum: %v", err)
	}
}
