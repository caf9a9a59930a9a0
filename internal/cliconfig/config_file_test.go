package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfig(t, `
base_url = "https://confluence.example.com"
username = "bot"
api_token = "secret"
space_key = "OPS"
page_title = "Release checklist"
heading = "Sign-off"
set = ["Status=Done", "Owner=alice"]
dry_run = true
http_timeout = "45s"
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if fc.BaseURL != "https://confluence.example.com" {
		t.Errorf("BaseURL = %q", fc.BaseURL)
	}
	if fc.Username != "bot" || fc.APIToken != "secret" {
		t.Errorf("credentials = %q/%q", fc.Username, fc.APIToken)
	}
	if len(fc.Set) != 2 || fc.Set[0] != "Status=Done" {
		t.Errorf("Set = %v", fc.Set)
	}
	if fc.DryRun == nil || !*fc.DryRun {
		t.Errorf("DryRun = %v, want true", fc.DryRun)
	}
	if fc.HTTPTimeout != "45s" {
		t.Errorf("HTTPTimeout = %q", fc.HTTPTimeout)
	}
}

func TestLoadFileConfigErrors(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
	path := writeConfig(t, "base_url = [not toml")
	if _, err := LoadFileConfig(path); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestApplyFileConfig(t *testing.T) {
	yes := true
	fc := FileConfig{
		BaseURL:     "https://file.example.com",
		Username:    "file-user",
		Heading:     "File heading",
		Set:         []string{"Status=Open"},
		Watch:       &yes,
		HTTPTimeout: "90s",
	}

	t.Run("applies unchanged fields", func(t *testing.T) {
		cfg := Config{}
		if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
			t.Fatal(err)
		}
		if cfg.BaseURL != "https://file.example.com" {
			t.Errorf("BaseURL = %q", cfg.BaseURL)
		}
		if cfg.Heading != "File heading" {
			t.Errorf("Heading = %q", cfg.Heading)
		}
		if len(cfg.Set) != 1 || cfg.Set[0] != "Status=Open" {
			t.Errorf("Set = %v", cfg.Set)
		}
		if !cfg.Watch {
			t.Error("Watch = false, want true")
		}
		if cfg.HTTPTimeout != 90*time.Second {
			t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
		}
	})

	t.Run("respects changed flags", func(t *testing.T) {
		cfg := Config{BaseURL: "https://flag.example.com", Heading: "Flag heading"}
		changed := map[string]bool{"url": true, "heading": true}
		if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
			t.Fatal(err)
		}
		if cfg.BaseURL != "https://flag.example.com" {
			t.Errorf("BaseURL = %q, want flag value kept", cfg.BaseURL)
		}
		if cfg.Heading != "Flag heading" {
			t.Errorf("Heading = %q, want flag value kept", cfg.Heading)
		}
		if cfg.Username != "file-user" {
			t.Errorf("Username = %q, want file value applied", cfg.Username)
		}
	})

	t.Run("invalid duration", func(t *testing.T) {
		cfg := Config{}
		bad := FileConfig{HTTPTimeout: "soon"}
		if err := ApplyFileConfig(&cfg, bad, map[string]bool{}); err == nil {
			t.Error("expected error for invalid duration")
		}
	})
}
