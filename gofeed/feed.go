package gofeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/nametrail"
	"github.com/mmcdole/gofeed"
)

// feedUserAgent identifies the reader to feed hosts.
const feedUserAgent = "nametrail/1.0 (+feed reader)"

// Ensure FeedService implements nametrail.FeedReader.
var _ nametrail.FeedReader = (*FeedService)(nil)

// FeedService discovers seed pages from RSS and Atom feeds.
type FeedService struct {
	client *http.Client
}

// NewFeedService creates a new FeedService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewFeedService(client *http.Client) *FeedService {
	if client == nil {
		client = http.DefaultClient
	}
	return &FeedService{client: client}
}

// ReadFeed downloads the feed at q.URL and returns its entries.
func (s *FeedService) ReadFeed(ctx context.Context, q nametrail.FeedQuery) ([]nametrail.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.URL, nil)
	if err != nil {
		return nil, nametrail.Errorf(nametrail.EINVALID, "invalid feed URL %q", q.URL)
	}
	req.Header.Set("User-Agent", feedUserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch feed: HTTP %d", resp.StatusCode)
	}

	return ParseFeed(resp.Body, q.StartDate, q.EndDate)
}

// ParseFeed parses an RSS or Atom document and returns the entries
// published within the optional day window. Entries without a usable
// link are skipped.
func ParseFeed(r io.Reader, start, end *time.Time) ([]nametrail.SearchResult, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, nametrail.Errorf(nametrail.EINVALID, "parse feed: %v", err)
	}

	results := make([]nametrail.SearchResult, 0, len(feed.Items))
	for _, item := range feed.Items {
		link := itemLink(item)
		if link == "" {
			continue
		}
		if !inWindow(item.PublishedParsed, start, end) {
			continue
		}
		results = append(results, nametrail.SearchResult{
			Title: strings.TrimSpace(item.Title),
			Link:  link,
		})
	}
	return results, nil
}

// itemLink prefers the item link, falling back to a GUID that looks
// like an HTTP URL.
func itemLink(item *gofeed.Item) string {
	if link := strings.TrimSpace(item.Link); link != "" {
		return link
	}
	if strings.HasPrefix(item.GUID, "http") {
		return item.GUID
	}
	return ""
}

// inWindow reports whether published falls on or between the start and
// end days. The end day is inclusive.
func inWindow(published, start, end *time.Time) bool {
	if published == nil {
		return true
	}
	if start != nil && published.Before(*start) {
		return false
	}
	if end != nil && !published.Before(end.AddDate(0, 0, 1)) {
		return false
	}
	return true
}
