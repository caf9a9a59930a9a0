package cliconfig

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds CLI configuration for wikitab.
type Config struct {
	// Remote page store (Confluence).
	BaseURL   string
	Username  string
	APIToken  string
	SpaceKey  string
	PageTitle string

	// Local page store. Mutually exclusive with the remote fields.
	File string

	// Heading whose following table gets rewritten.
	Heading string

	// Set holds "Column=Value" assignments applied to every row.
	Set []string

	Watch  bool
	DryRun bool

	HTTPTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		HTTPTimeout: 30 * time.Second,
		APIToken:    os.Getenv("WIKITAB_API_TOKEN"),
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.Heading == "" {
		return fmt.Errorf("heading is required")
	}
	if len(c.Set) == 0 {
		return fmt.Errorf("at least one --set Column=Value assignment is required")
	}
	for _, s := range c.Set {
		if !strings.Contains(s, "=") {
			return fmt.Errorf("malformed assignment %q: want Column=Value", s)
		}
	}

	remote := c.BaseURL != "" || c.SpaceKey != "" || c.PageTitle != ""
	if c.File == "" && !remote {
		return fmt.Errorf("either --file or --url/--space/--page is required")
	}
	if c.File != "" && remote {
		return fmt.Errorf("--file and --url/--space/--page are mutually exclusive")
	}

	if c.File == "" {
		if c.BaseURL == "" {
			return fmt.Errorf("url is required for remote pages")
		}
		if c.SpaceKey == "" {
			return fmt.Errorf("space is required for remote pages")
		}
		if c.PageTitle == "" {
			return fmt.Errorf("page is required for remote pages")
		}
		if c.Username == "" {
			return fmt.Errorf("user is required for remote pages")
		}
		if c.APIToken == "" {
			return fmt.Errorf("token is required for remote pages (or WIKITAB_API_TOKEN)")
		}
	}

	if c.Watch && c.File == "" {
		return fmt.Errorf("--watch requires --file")
	}

	// Ensure no trailing slash
	if len(c.BaseURL) > 0 && c.BaseURL[len(c.BaseURL)-1] == '/' {
		c.BaseURL = c.BaseURL[:len(c.BaseURL)-1]
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings sets a string slice if non-empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
