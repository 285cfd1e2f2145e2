package nametrail

import (
	"context"
	"time"
)

// SearchQuery describes a web search used to discover seed pages.
type SearchQuery struct {
	Query string

	// StartDate and EndDate restrict results to a publication window.
	// The window only applies when both are set.
	StartDate *time.Time
	EndDate   *time.Time

	// Pages is the number of result pages to read.
	Pages int
}

// Validate returns an error if the query contains invalid fields.
func (q *SearchQuery) Validate() error {
	if q.Query == "" {
		return Errorf(EINVALID, "search query required")
	}
	if q.Pages < 1 {
		return Errorf(EINVALID, "page count must be at least 1")
	}
	if q.StartDate != nil && q.EndDate != nil && q.EndDate.Before(*q.StartDate) {
		return Errorf(EINVALID, "end date before start date")
	}
	return nil
}

// SearchResult is one organic result of a web search.
type SearchResult struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// SeedProvider supplies seed pages for a crawl.
type SeedProvider interface {
	// Search runs the query and returns its results in ranking order.
	// Failures of individual result pages are skipped; an error is
	// returned only when the query itself is invalid or the context ends.
	Search(ctx context.Context, q SearchQuery) ([]SearchResult, error)
}

// Links returns the result links in order.
func Links(results []SearchResult) []string {
	links := make([]string, 0, len(results))
	for _, r := range results {
		links = append(links, r.Link)
	}
	return links
}

// FeedQuery describes an RSS or Atom feed used to discover seed pages.
type FeedQuery struct {
	URL string

	// StartDate and EndDate bound entry publication days, inclusive.
	// Each bound applies on its own. Entries without a date always pass.
	StartDate *time.Time
	EndDate   *time.Time
}

// Validate returns an error if the query contains invalid fields.
func (q *FeedQuery) Validate() error {
	if q.URL == "" {
		return Errorf(EINVALID, "feed URL required")
	}
	if q.StartDate != nil && q.EndDate != nil && q.EndDate.Before(*q.StartDate) {
		return Errorf(EINVALID, "end date before start date")
	}
	return nil
}

// FeedReader supplies seed pages from a syndication feed.
type FeedReader interface {
	// ReadFeed returns the feed entries in feed order.
	ReadFeed(ctx context.Context, q FeedQuery) ([]SearchResult, error)
}
