package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	BaseURL     string   `toml:"base_url"`
	Username    string   `toml:"username"`
	APIToken    string   `toml:"api_token"`
	SpaceKey    string   `toml:"space_key"`
	PageTitle   string   `toml:"page_title"`
	File        string   `toml:"file"`
	Heading     string   `toml:"heading"`
	Set         []string `toml:"set"`
	Watch       *bool    `toml:"watch"`
	DryRun      *bool    `toml:"dry_run"`
	HTTPTimeout string   `toml:"http_timeout"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.wikitab/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".wikitab", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("url", fc.BaseURL, &cfg.BaseURL)
	s.setString("user", fc.Username, &cfg.Username)
	s.setString("token", fc.APIToken, &cfg.APIToken)
	s.setString("space", fc.SpaceKey, &cfg.SpaceKey)
	s.setString("page", fc.PageTitle, &cfg.PageTitle)
	s.setString("file", fc.File, &cfg.File)
	s.setString("heading", fc.Heading, &cfg.Heading)

	s.setStrings("set", fc.Set, &cfg.Set)

	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setBool("dry-run", fc.DryRun, &cfg.DryRun)

	return s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
