package nametrail

import "context"

// Fetcher retrieves raw page content from URLs.
type Fetcher interface {
	// Fetch issues a single request for the URL and returns the body as text.
	// Non-2xx responses and transport failures are returned as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (content string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// FetchResult is the outcome of one fetch within a batch.
// Content is empty and Err is set when the fetch failed.
type FetchResult struct {
	URL     string
	Content string
	Err     error
}

// OK reports whether the fetch produced content.
func (r FetchResult) OK() bool {
	return r.Err == nil
}
