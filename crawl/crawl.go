// Package crawl provides the depth-bounded, name-guided crawl orchestration.
// It coordinates fetching, extraction and persistence of pages and expands
// the links each page's extractor accepted.
package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/nametrail"
)

// DefaultDelay is the fixed wait before each descent into a link.
const DefaultDelay = 2 * time.Second

// Crawler orchestrates a crawl from one or more seed URLs.
type Crawler struct {
	Fetcher   nametrail.Fetcher
	Extractor nametrail.ContentExtractor
	Sink      nametrail.PersistenceSink
	Logger    *slog.Logger

	// Delay is waited before each descent into a link. It is skipped
	// entirely when the session's max depth is zero.
	Delay time.Duration

	// Sleep waits for d or until ctx is done. Defaults to a timer-based wait.
	Sleep func(ctx context.Context, d time.Duration) error

	// Workers bounds the extraction pool. Defaults to GOMAXPROCS.
	Workers int

	// Progress, if set, receives an event for every page outcome.
	Progress ProgressFunc
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Saved      int
	Failed     int
	Fetched    int
	Discovered int
	Bytes      int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type    ProgressType
	URL     string
	Depth   int
	Links   int
	Pending int
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressSaved ProgressType = iota
	ProgressFailed
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// task is one entry of the crawl worklist. A task with done > 0 is a
// marker that releases done links from the frontier once the subtree
// pushed above it has been fully processed.
type task struct {
	url   string
	depth int
	done  int
}

// Crawl crawls seeds in a fresh session bounded at maxDepth.
func (c *Crawler) Crawl(ctx context.Context, seeds []string, maxDepth int) (*Result, error) {
	session, err := NewSession(maxDepth)
	if err != nil {
		return nil, err
	}
	return c.Run(ctx, session, seeds)
}

// Run crawls seeds within session. Seeds are fetched and extracted as one
// concurrent batch at depth 0, then each seed's subtree is expanded
// depth-first in seed order. Page-level failures are logged and counted,
// never returned. On cancellation Run returns the partial result along with
// the context error.
func (c *Crawler) Run(ctx context.Context, session *Session, seeds []string) (*Result, error) {
	if err := c.validate(session); err != nil {
		return nil, err
	}

	result := &Result{}
	defer func() { result.Discovered = session.Frontier.Discovered() }()

	var batch []string
	for _, seed := range seeds {
		seed = nametrail.NormalizeURL(seed)
		if session.Visited.TryAdd(seed) {
			batch = append(batch, seed)
		}
	}
	if len(batch) == 0 {
		return result, nil
	}

	fetched := FetchBatch(ctx, c.Fetcher, batch, c.logger())
	result.Fetched += len(fetched)
	pages := ExtractBatch(ctx, c.Extractor, fetched, c.Workers)

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		stack := c.handle(ctx, session, page, 0, result, nil)
		if err := c.drain(ctx, session, stack, result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// drain processes the worklist until it is empty. Children are pushed in
// reverse so they pop in document order, which keeps the traversal
// depth-first: a node's subtree finishes before its next sibling starts.
func (c *Crawler) drain(ctx context.Context, session *Session, stack []task, result *Result) error {
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if t.done > 0 {
			session.Frontier.Complete(t.done)
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		if session.MaxDepth > 0 {
			if err := c.sleep(ctx); err != nil {
				return err
			}
		}

		if t.depth > session.MaxDepth {
			continue
		}
		if !session.Visited.TryAdd(t.url) {
			continue
		}

		fetched := FetchBatch(ctx, c.Fetcher, []string{t.url}, c.logger())
		result.Fetched++
		page := ExtractBatch(ctx, c.Extractor, fetched, 1)[0]

		stack = c.handle(ctx, session, page, t.depth, result, stack)
	}
	return nil
}

// handle persists a page and pushes its expansion onto stack.
func (c *Crawler) handle(ctx context.Context, session *Session, page nametrail.PageResult, depth int, result *Result, stack []task) []task {
	logger := c.logger()

	if page.Failed {
		result.Failed++
		logger.Warn("page failed", "url", page.URL, "depth", depth, "err", page.Err)
		c.report(ProgressEvent{Type: ProgressFailed, URL: page.URL, Depth: depth, Error: page.Err, Pending: session.Frontier.Pending()})
		return stack
	}

	title := nametrail.TitleFromURL(page.URL)
	if err := c.Sink.Save(ctx, title, page.Text); err != nil {
		result.Failed++
		logger.Error("save failed", "url", page.URL, "title", title, "err", err)
		c.report(ProgressEvent{Type: ProgressFailed, URL: page.URL, Depth: depth, Error: err, Pending: session.Frontier.Pending()})
	} else {
		result.Saved++
		result.Bytes += len(page.Text)
		c.report(ProgressEvent{Type: ProgressSaved, URL: page.URL, Depth: depth, Links: len(page.Links), Pending: session.Frontier.Pending()})
	}

	if len(page.Links) == 0 {
		return stack
	}

	session.Frontier.Discover(page.Links)
	logger.Debug("expanding links", "url", page.URL, "depth", depth, "links", len(page.Links), "pending", session.Frontier.Pending())

	stack = append(stack, task{done: len(page.Links)})
	for i := len(page.Links) - 1; i >= 0; i-- {
		stack = append(stack, task{url: page.Links[i], depth: depth + 1})
	}
	return stack
}

func (c *Crawler) validate(session *Session) error {
	switch {
	case session == nil:
		return nametrail.Errorf(nametrail.EINVALID, "crawl session required")
	case session.MaxDepth < 0:
		return nametrail.Errorf(nametrail.EINVALID, "max depth must be non-negative, got %d", session.MaxDepth)
	case session.Visited == nil || session.Frontier == nil:
		return nametrail.Errorf(nametrail.EINVALID, "crawl session not initialized")
	case c.Fetcher == nil:
		return nametrail.Errorf(nametrail.EINVALID, "fetcher required")
	case c.Extractor == nil:
		return nametrail.Errorf(nametrail.EINVALID, "extractor required")
	case c.Sink == nil:
		return nametrail.Errorf(nametrail.EINVALID, "persistence sink required")
	}
	return nil
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Crawler) report(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}

func (c *Crawler) sleep(ctx context.Context) error {
	if c.Sleep != nil {
		return c.Sleep(ctx, c.Delay)
	}
	return Sleep(ctx, c.Delay)
}

// Sleep waits for d or until ctx is done, returning the context error in
// the latter case.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
