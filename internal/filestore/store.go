// Package filestore implements ports.PageStore over a local wiki-markup file,
// for offline edits, dry runs and watch mode.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mill-labs/wikitab/internal/ports"
)

// Store reads and writes one local file as a page.
type Store struct {
	path string
}

// New creates a file-backed page store for path.
func New(path string) *Store {
	return &Store{path: path}
}

// Fetch reads the file. The file has no version counter; Version stays zero.
func (s *Store) Fetch(ctx context.Context) (*ports.Page, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return &ports.Page{
		ID:    s.path,
		Title: filepath.Base(s.path),
		Body:  string(b),
	}, nil
}

// Update writes the page body back, preserving the file's permissions when it
// already exists.
func (s *Store) Update(ctx context.Context, page *ports.Page) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(s.path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.WriteFile(s.path, []byte(page.Body), mode); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// Ensure Store implements ports.PageStore.
var _ ports.PageStore = (*Store)(nil)
