package nametrail

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// MaxTitleLen bounds the length, in characters, of a title derived from a URL.
const MaxTitleLen = 50

// PersistenceSink durably stores the text of a crawled page.
type PersistenceSink interface {
	// Save stores text under title. Saving the same title twice
	// overwrites the earlier text.
	Save(ctx context.Context, title, text string) error
}

// Page is a stored page as read back from a sink that supports queries.
type Page struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	ContentHash string    `json:"contentHash"`
	SavedAt     time.Time `json:"savedAt"`
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	Title *string `json:"title"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageService represents a queryable page store.
type PageService interface {
	PersistenceSink

	// FindPages retrieves stored pages matching the filter, newest first.
	FindPages(ctx context.Context, filter PageFilter) ([]*Page, error)
}

// TitleFromURL derives a page title from the URL path: every "/" becomes
// "_" and the result is cut to MaxTitleLen characters. Query and fragment
// are ignored. Distinct URLs may share a title once truncated.
//
// Example: https://example.com/bio/john-smith → _bio_john-smith
func TitleFromURL(rawURL string) string {
	var path string
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	title := strings.ReplaceAll(path, "/", "_")
	if r := []rune(title); len(r) > MaxTitleLen {
		title = string(r[:MaxTitleLen])
	}
	return title
}
