package cliconfig

import (
	"os"
	"strings"
)

// ApplyEnvConfig applies configuration from environment variables (WIKITAB_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("url", os.Getenv("WIKITAB_URL"), &cfg.BaseURL)
	s.setString("user", os.Getenv("WIKITAB_USER"), &cfg.Username)
	s.setString("token", os.Getenv("WIKITAB_API_TOKEN"), &cfg.APIToken)
	s.setString("space", os.Getenv("WIKITAB_SPACE"), &cfg.SpaceKey)
	s.setString("page", os.Getenv("WIKITAB_PAGE"), &cfg.PageTitle)
	s.setString("file", os.Getenv("WIKITAB_FILE"), &cfg.File)
	s.setString("heading", os.Getenv("WIKITAB_HEADING"), &cfg.Heading)

	// Comma-separated Column=Value pairs.
	if v := os.Getenv("WIKITAB_SET"); v != "" {
		s.setStrings("set", strings.Split(v, ","), &cfg.Set)
	}

	s.setBoolFromString("watch", os.Getenv("WIKITAB_WATCH"), &cfg.Watch)
	s.setBoolFromString("dry-run", os.Getenv("WIKITAB_DRY_RUN"), &cfg.DryRun)

	return s.setDuration("timeout", os.Getenv("WIKITAB_HTTP_TIMEOUT"), &cfg.HTTPTimeout)
}
