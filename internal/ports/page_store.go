package ports

import "context"

// Page is one stored wiki-markup document. Version carries the store's
// optimistic-concurrency counter; the file store leaves it at zero.
type Page struct {
	ID      string
	Title   string
	Version int
	Body    string
}

// PageStore fetches and persists a single page. Fetching and persisting are
// the only two operations the core consumes; authentication, retries and
// conflict handling live behind this interface.
type PageStore interface {
	Fetch(ctx context.Context) (*Page, error)
	Update(ctx context.Context, page *Page) error
}
