// Package app wires the page store, the markup core and the configured row
// update into the fetch → locate → transform → persist pipeline.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mill-labs/wikitab/internal/cliconfig"
	"github.com/mill-labs/wikitab/internal/confluence"
	"github.com/mill-labs/wikitab/internal/filestore"
	"github.com/mill-labs/wikitab/internal/markup"
	"github.com/mill-labs/wikitab/internal/ports"
)

// Assignment sets one column to a fixed value on every row.
type Assignment struct {
	Column string
	Value  string
}

// ParseAssignments parses "Column=Value" pairs. The value may contain '=';
// only the first one splits.
func ParseAssignments(pairs []string) ([]Assignment, error) {
	assigns := make([]Assignment, 0, len(pairs))
	for _, p := range pairs {
		col, val, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(col) == "" {
			return nil, fmt.Errorf("malformed assignment %q: want Column=Value", p)
		}
		assigns = append(assigns, Assignment{
			Column: strings.TrimSpace(col),
			Value:  strings.TrimSpace(val),
		})
	}
	return assigns, nil
}

// UpdateFunc builds the per-row update from a list of assignments. The
// returned record is partial; TransformTable merges it into each row.
func UpdateFunc(assigns []Assignment) func(markup.Record) markup.Record {
	return func(markup.Record) markup.Record {
		out := make(markup.Record, len(assigns))
		for _, a := range assigns {
			out[a.Column] = a.Value
		}
		return out
	}
}

// Runner executes one update pass against a page store.
type Runner struct {
	Store   ports.PageStore
	Heading string
	Update  func(markup.Record) markup.Record

	// DryRun prints the rewritten document to Out instead of persisting.
	DryRun bool
	Out    io.Writer

	Log zerolog.Logger
}

// RunOnce fetches the page, rewrites the table under the heading, and
// persists the result. A missing heading or table is not an error: the pass
// logs a warning and persists nothing. An unchanged document is also skipped,
// which keeps repeated passes (and watch mode) from rewriting pages forever.
func (r *Runner) RunOnce(ctx context.Context) error {
	page, err := r.Store.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	m, err := markup.FindHeading(page.Body, r.Heading)
	if errors.Is(err, markup.ErrHeadingNotFound) {
		r.Log.Warn().Str("heading", r.Heading).Msg("heading not found; nothing to update")
		return nil
	}
	if err != nil {
		return err
	}

	res, err := markup.TransformTable(page.Body, m.End, r.Update)
	if errors.Is(err, markup.ErrTableNotFound) {
		r.Log.Warn().Str("heading", r.Heading).Msg("no table after heading; nothing to update")
		return nil
	}
	if err != nil {
		return err
	}

	if res.NewDocument == page.Body {
		r.Log.Info().Int("rows", len(res.Records)).Msg("table already up to date")
		return nil
	}

	if r.DryRun {
		out := r.Out
		if out == nil {
			out = os.Stdout
		}
		if _, err := io.WriteString(out, res.NewDocument); err != nil {
			return fmt.Errorf("write dry-run output: %w", err)
		}
		r.Log.Info().Int("rows", len(res.Records)).Msg("dry run; nothing persisted")
		return nil
	}

	page.Body = res.NewDocument
	if err := r.Store.Update(ctx, page); err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	r.Log.Info().Int("rows", len(res.Records)).Str("page", page.Title).Msg("table updated")
	return nil
}

// Run builds a Runner from the CLI configuration and executes it, either as a
// single pass or as a watch loop over a local file.
func Run(ctx context.Context, cfg cliconfig.Config, log zerolog.Logger) error {
	assigns, err := ParseAssignments(cfg.Set)
	if err != nil {
		return err
	}

	var store ports.PageStore
	if cfg.File != "" {
		store = filestore.New(cfg.File)
	} else {
		store = confluence.New(confluence.Options{
			BaseURL:   cfg.BaseURL,
			Username:  cfg.Username,
			APIToken:  cfg.APIToken,
			SpaceKey:  cfg.SpaceKey,
			PageTitle: cfg.PageTitle,
			HTTP:      &http.Client{Timeout: cfg.HTTPTimeout},
			Logger:    log,
		})
	}

	r := &Runner{
		Store:   store,
		Heading: cfg.Heading,
		Update:  UpdateFunc(assigns),
		DryRun:  cfg.DryRun,
		Log:     log,
	}

	if cfg.Watch {
		return r.Watch(ctx, cfg.File, defaultDebounce)
	}
	return r.RunOnce(ctx)
}

const defaultDebounce = 100 * time.Millisecond
