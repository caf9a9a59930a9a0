// Package confluence implements ports.PageStore against the Confluence REST
// API, resolving a page by space key and title and writing it back with the
// wiki storage representation.
package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/mill-labs/wikitab/internal/ports"
)

const contentEndpoint = "/rest/api/content"

// Client resolves and updates one page identified by space key and title.
type Client struct {
	baseURL  string
	username string
	token    string
	spaceKey string
	title    string

	http ports.HTTPClient
	log  zerolog.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	Username  string
	APIToken  string
	SpaceKey  string
	PageTitle string
	HTTP      ports.HTTPClient
	Logger    zerolog.Logger
}

// New creates a Confluence page store client.
func New(opts Options) *Client {
	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:  opts.BaseURL,
		username: opts.Username,
		token:    opts.APIToken,
		spaceKey: opts.SpaceKey,
		title:    opts.PageTitle,
		http:     httpClient,
		log:      opts.Logger,
	}
}

// contentList is the shape of GET /rest/api/content responses.
type contentList struct {
	Results []contentPage `json:"results"`
}

type contentPage struct {
	ID      string `json:"id"`
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

// updateRequest is the shape of PUT /rest/api/content/{id} bodies.
type updateRequest struct {
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

// Fetch resolves the configured space/title to a page with its wiki-markup
// body and current version number.
func (c *Client) Fetch(ctx context.Context) (*ports.Page, error) {
	q := url.Values{}
	q.Set("spaceKey", c.spaceKey)
	q.Set("title", c.title)
	q.Set("expand", "body.storage,version")
	q.Set("representation", "wiki")

	reqURL := c.baseURL + contentEndpoint + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	var list contentList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(list.Results) == 0 {
		return nil, fmt.Errorf("no page titled %q in space %q", c.title, c.spaceKey)
	}

	p := list.Results[0]
	c.log.Debug().Str("id", p.ID).Int("version", p.Version.Number).Msg("fetched page")

	return &ports.Page{
		ID:      p.ID,
		Title:   p.Title,
		Version: p.Version.Number,
		Body:    p.Body.Storage.Value,
	}, nil
}

// Update writes the page body back, bumping the version number so the server
// can reject a write that raced another editor.
func (c *Client) Update(ctx context.Context, page *ports.Page) error {
	var ur updateRequest
	ur.ID = page.ID
	ur.Type = "page"
	ur.Title = page.Title
	ur.Version.Number = page.Version + 1
	ur.Body.Storage.Value = page.Body
	ur.Body.Storage.Representation = "wiki"

	payload, err := json.Marshal(ur)
	if err != nil {
		return fmt.Errorf("marshal update: %w", err)
	}

	reqURL := c.baseURL + contentEndpoint + "/" + page.ID
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	c.log.Debug().Str("id", page.ID).Int("version", page.Version+1).Msg("updated page")
	return nil
}

// Ensure Client implements ports.PageStore.
var _ ports.PageStore = (*Client)(nil)
