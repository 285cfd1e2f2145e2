package main

import (
	"errors"
	"fmt"

	"github.com/fwojciec/nametrail"
	"github.com/fwojciec/nametrail/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	return runCrawl(deps, c.URLs)
}

// runCrawl crawls seeds with the configured crawler and prints a summary.
func runCrawl(deps *Dependencies, seeds []string) error {
	if deps.Crawler == nil {
		return fmt.Errorf("crawler not configured")
	}

	deps.Crawler.Progress = func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressSaved:
			fmt.Fprintf(deps.Stdout, "  saved %s (depth %d, %d links)\n", crawl.TruncateURL(event.URL, 70), event.Depth, event.Links)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(event.URL, 70), event.Error)
		}
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, seeds, deps.Depth)
	if result != nil {
		fmt.Fprintf(deps.Stdout, "%s\n", crawl.FormatSummary(result))
	}
	if err != nil {
		if errors.Is(err, deps.Ctx.Err()) {
			fmt.Fprintln(deps.Stderr, "crawl interrupted")
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", nametrail.ErrorMessage(err))
		}
		return err
	}
	return nil
}
