package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/mill-labs/wikitab/internal/app"
	"github.com/mill-labs/wikitab/internal/cliconfig"
)

const helpDescription = `
Rewrite the wiki-markup table under a heading on a Confluence page, or in a
local file, without touching anything else on the page.

Highlights:
  - Finds the first h1.–h6. heading with the given text and the first
    ||header||/|row| table after it.
  - Applies one or more Column=Value assignments to every row; columns you
    don't set are preserved.
  - Missing heading or table is a warning and a no-op, never a broken page.
  - Configure via file, env (WIKITAB_*), or flags.
`

var longHelp = strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  wikitab --url https://confluence.example.com --user bot --space OPS \
      --page "Release checklist" --heading Sign-off --set Status=Done
  wikitab --file notes.wiki --heading Roster --set Status=Done --watch
  wikitab --config $HOME/.wikitab/config.toml --dry-run
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "wikitab",
		Short:   "Rewrite the table under a heading on a wiki page",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.wikitab/config.toml), then apply flag overrides
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (WIKITAB_*)
			// These override file config but are overridden by flags (checked via changed map)
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			// Validate and set derived defaults
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Log configuration (masking API token)
			logCfg := cfg
			if len(logCfg.APIToken) > 0 {
				logCfg.APIToken = "*****"
			}
			log.Info().Interface("config", logCfg).Msg("configuration")

			// Cancel on SIGINT/SIGTERM; matters for watch mode and in-flight HTTP
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return app.Run(ctx, cfg, log)
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.wikitab/config.toml)")

	root.Flags().StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "Confluence base URL")
	root.Flags().StringVar(&cfg.Username, "user", cfg.Username, "Confluence username")
	root.Flags().StringVar(&cfg.APIToken, "token", cfg.APIToken, "API token for authentication")
	root.Flags().StringVar(&cfg.SpaceKey, "space", cfg.SpaceKey, "space key of the page")
	root.Flags().StringVar(&cfg.PageTitle, "page", cfg.PageTitle, "title of the page containing the table")

	root.Flags().StringVar(&cfg.File, "file", cfg.File, "local wiki-markup file instead of a remote page")
	root.Flags().StringVar(&cfg.Heading, "heading", cfg.Heading, "heading text that precedes the table")
	root.Flags().StringArrayVar(&cfg.Set, "set", cfg.Set, "Column=Value assignment applied to every row (repeatable)")

	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "keep running and re-apply on file changes (requires --file)")
	root.Flags().BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "print the rewritten document instead of persisting it")
	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("wikitab")
		os.Exit(1)
	}
}
