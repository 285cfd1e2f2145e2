package crawl

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/fwojciec/nametrail"
	"golang.org/x/sync/errgroup"
)

// FetchBatch fetches every URL concurrently and returns once all requests
// have completed or failed. Results are index-aligned with urls. Failures
// are logged and recorded in the result, never returned.
func FetchBatch(ctx context.Context, fetcher nametrail.Fetcher, urls []string, logger *slog.Logger) []nametrail.FetchResult {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	results := make([]nametrail.FetchResult, len(urls))

	var g errgroup.Group
	for i, u := range urls {
		g.Go(func() error {
			content, err := fetcher.Fetch(ctx, u)
			if err != nil {
				logger.Warn("fetch failed", "url", u, "err", err)
				results[i] = nametrail.FetchResult{URL: u, Err: err}
				return nil
			}
			results[i] = nametrail.FetchResult{URL: u, Content: content}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// ExtractBatch runs extraction for every successful fetch on a pool of at
// most workers goroutines. A non-positive workers uses GOMAXPROCS. Results
// are index-aligned with fetched. Failed fetches and extraction errors yield
// a failed PageResult.
func ExtractBatch(ctx context.Context, extractor nametrail.ContentExtractor, fetched []nametrail.FetchResult, workers int) []nametrail.PageResult {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]nametrail.PageResult, len(fetched))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, f := range fetched {
		if !f.OK() {
			results[i] = nametrail.PageResult{URL: f.URL, Failed: true, Err: f.Err}
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = nametrail.PageResult{URL: f.URL, Failed: true, Err: err}
				return nil
			}
			ext, err := extractor.Extract(f.URL, f.Content)
			if err != nil {
				results[i] = nametrail.PageResult{URL: f.URL, Failed: true, Err: err}
				return nil
			}
			results[i] = nametrail.PageResult{URL: f.URL, Text: ext.Text, Links: ext.Links}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
