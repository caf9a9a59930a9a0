package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFetchAndUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.wiki")
	if err := os.WriteFile(path, []byte("h1. Roster\n||A||\n|1|\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := New(path)
	page, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if page.Body != "h1. Roster\n||A||\n|1|\n" {
		t.Errorf("Body = %q", page.Body)
	}
	if page.Title != "notes.wiki" {
		t.Errorf("Title = %q", page.Title)
	}

	page.Body = "rewritten\n"
	if err := s.Update(context.Background(), page); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "rewritten\n" {
		t.Errorf("file = %q", b)
	}
	if fi, err := os.Stat(path); err != nil {
		t.Fatal(err)
	} else if fi.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600 preserved", fi.Mode().Perm())
	}
}

func TestFetchMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing.wiki"))
	if _, err := s.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}
