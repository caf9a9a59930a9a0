package confluence

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mill-labs/wikitab/internal/ports"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(Options{
		BaseURL:   ts.URL,
		Username:  "bot",
		APIToken:  "secret",
		SpaceKey:  "OPS",
		PageTitle: "Release checklist",
		Logger:    zerolog.Nop(),
	})
}

func TestFetch(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/rest/api/content" {
			t.Errorf("path = %s, want /rest/api/content", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("spaceKey") != "OPS" {
			t.Errorf("spaceKey = %q, want OPS", q.Get("spaceKey"))
		}
		if q.Get("title") != "Release checklist" {
			t.Errorf("title = %q", q.Get("title"))
		}
		if q.Get("expand") != "body.storage,version" {
			t.Errorf("expand = %q", q.Get("expand"))
		}
		if q.Get("representation") != "wiki" {
			t.Errorf("representation = %q", q.Get("representation"))
		}
		user, token, ok := r.BasicAuth()
		if !ok || user != "bot" || token != "secret" {
			t.Errorf("basic auth = %q/%q/%v", user, token, ok)
		}

		io.WriteString(w, `{"results":[{"id":"12345","title":"Release checklist",
			"version":{"number":7},
			"body":{"storage":{"value":"h1. Sign-off\n||A||\n|1|\n","representation":"wiki"}}}]}`)
	})

	page, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if page.ID != "12345" || page.Version != 7 {
		t.Errorf("page = %+v", page)
	}
	if page.Body != "h1. Sign-off\n||A||\n|1|\n" {
		t.Errorf("Body = %q", page.Body)
	}
}

func TestFetchNoResults(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results":[]}`)
	})
	_, err := c.Fetch(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no page titled") {
		t.Fatalf("error = %v, want no-page error", err)
	}
}

func TestFetchServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})
	_, err := c.Fetch(context.Background())
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("error = %v, want 403 error", err)
	}
}

func TestUpdate(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if r.URL.Path != "/rest/api/content/12345" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}

		var body struct {
			ID      string `json:"id"`
			Type    string `json:"type"`
			Title   string `json:"title"`
			Version struct {
				Number int `json:"number"`
			} `json:"version"`
			Body struct {
				Storage struct {
					Value          string `json:"value"`
					Representation string `json:"representation"`
				} `json:"storage"`
			} `json:"body"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Type != "page" {
			t.Errorf("type = %q, want page", body.Type)
		}
		if body.Version.Number != 8 {
			t.Errorf("version = %d, want 8 (incremented)", body.Version.Number)
		}
		if body.Body.Storage.Representation != "wiki" {
			t.Errorf("representation = %q, want wiki", body.Body.Storage.Representation)
		}
		if body.Body.Storage.Value != "new body" {
			t.Errorf("value = %q", body.Body.Storage.Value)
		}
		w.WriteHeader(http.StatusOK)
	})

	err := c.Update(context.Background(), &ports.Page{
		ID:      "12345",
		Title:   "Release checklist",
		Version: 7,
		Body:    "new body",
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestUpdateServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "version conflict", http.StatusConflict)
	})
	err := c.Update(context.Background(), &ports.Page{ID: "12345", Version: 7})
	if err == nil || !strings.Contains(err.Error(), "409") {
		t.Fatalf("error = %v, want 409 error", err)
	}
}
