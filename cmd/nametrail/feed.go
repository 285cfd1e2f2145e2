package main

import (
	"fmt"

	"github.com/fwojciec/nametrail"
)

// Run executes the feed command.
func (c *FeedCmd) Run(deps *Dependencies) error {
	q := nametrail.FeedQuery{URL: c.URL}

	var err error
	if q.StartDate, err = parseDate("start", c.Start); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nametrail.ErrorMessage(err))
		return err
	}
	if q.EndDate, err = parseDate("end", c.End); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nametrail.ErrorMessage(err))
		return err
	}

	results, err := deps.Feeds.ReadFeed(deps.Ctx, q)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nametrail.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No entries found.")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%s\t%s\n", r.Link, r.Title)
	}

	if !c.Crawl {
		return nil
	}
	return runCrawl(deps, nametrail.Links(results))
}
