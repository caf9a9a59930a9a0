// Package wikitab rewrites a wiki-markup table that sits under a named
// heading on a Confluence page (or in a local file), leaving every other byte
// of the page untouched.
//
// Example usage:
//
//	cfg := wikitab.DefaultConfig()
//	cfg.BaseURL = "https://confluence.example.com"
//	cfg.Username = "bot"
//	cfg.APIToken = "secret"
//	cfg.SpaceKey = "OPS"
//	cfg.PageTitle = "Release checklist"
//	cfg.Heading = "Sign-off"
//	cfg.Set = []string{"Status=Done"}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := wikitab.Run(context.Background(), cfg); err != nil {
//	    log.Fatal(err)
//	}
package wikitab

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mill-labs/wikitab/internal/app"
	"github.com/mill-labs/wikitab/internal/cliconfig"
	"github.com/mill-labs/wikitab/internal/markup"
)

// Config holds the configuration for one table update.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// Record is the parsed representation of one table row.
type Record = markup.Record

// Run executes the table update described by cfg: fetch the page, locate the
// heading, rewrite the table under it, persist. With cfg.Watch it blocks,
// re-running the update whenever the local file changes, until the context is
// cancelled.
func Run(ctx context.Context, cfg Config) error {
	return app.Run(ctx, cfg, cliconfig.Logger())
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Logger returns the package-level zerolog logger.
func Logger() zerolog.Logger {
	return cliconfig.Logger()
}
