package main

import (
	"fmt"

	"github.com/fwojciec/nametrail"
	"github.com/fwojciec/nametrail/crawl"
)

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	if deps.Pages == nil {
		err := nametrail.Errorf(nametrail.EINVALID, "no database configured: set --db or NAMETRAIL_DB")
		fmt.Fprintf(deps.Stderr, "error: %s\n", nametrail.ErrorMessage(err))
		return err
	}

	filter := nametrail.PageFilter{Limit: c.Limit}
	if c.Title != "" {
		filter.Title = &c.Title
	}

	pages, err := deps.Pages.FindPages(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nametrail.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages found. Use 'nametrail crawl' to collect some.")
		return nil
	}

	for _, p := range pages {
		title := p.Title
		if title == "" {
			title = "(index)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			p.SavedAt.Format("2006-01-02 15:04"), title, crawl.FormatBytes(len(p.Text)), p.ContentHash)
		if c.Full {
			fmt.Fprintf(deps.Stdout, "\n%s\n\n", p.Text)
		}
	}

	return nil
}
