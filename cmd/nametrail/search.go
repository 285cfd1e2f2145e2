package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/nametrail"
)

// dateLayout is the accepted format of --start and --end.
const dateLayout = "2006-01-02"

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	q := nametrail.SearchQuery{Query: c.Query, Pages: c.ResultPages}

	var err error
	if q.StartDate, err = parseDate("start", c.Start); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nametrail.ErrorMessage(err))
		return err
	}
	if q.EndDate, err = parseDate("end", c.End); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nametrail.ErrorMessage(err))
		return err
	}

	results, err := deps.Seeds.Search(deps.Ctx, q)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nametrail.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results found.")
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

// parseDate parses an optional YYYY-MM-DD flag value.
func parseDate(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, nametrail.Errorf(nametrail.EINVALID, "invalid --%s date %q: want YYYY-MM-DD", flag, value)
	}
	return &t, nil
}
