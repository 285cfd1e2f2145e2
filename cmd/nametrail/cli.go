package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/nametrail"
	"github.com/fwojciec/nametrail/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Crawler *crawl.Crawler
	Seeds   nametrail.SeedProvider
	Feeds   nametrail.FeedReader
	Pages   nametrail.PageService
	Depth   int
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Depth        int           `short:"d" default:"2" help:"Maximum link depth followed from a seed"`
	Delay        time.Duration `default:"2s" help:"Fixed wait before following each link"`
	Timeout      time.Duration `default:"10s" help:"Per-request fetch timeout"`
	Out          string        `short:"o" default:"./output" env:"NAMETRAIL_OUTPUT" help:"Directory for page text files"`
	DB           string        `name:"db" env:"NAMETRAIL_DB" help:"SQLite database that also stores saved pages"`
	Detector     string        `enum:"prose,gemini" default:"prose" help:"Person-name detector (prose, gemini)"`
	GeminiAPIKey string        `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"API key for the gemini detector"`
	Workers      int           `short:"w" help:"Extraction workers (default: number of CPUs)"`
	LogLevel     string        `enum:"debug,info,warn,error" default:"warn" help:"Log level (debug, info, warn, error)"`

	Crawl  CrawlCmd  `cmd:"" help:"Crawl from seed URLs"`
	Search SearchCmd `cmd:"" help:"Search the web for seed pages"`
	Feed   FeedCmd   `cmd:"" help:"Read seed pages from an RSS or Atom feed"`
	Pages  PagesCmd  `cmd:"" help:"List pages stored in the database"`
}

// CheckFlags checks flag values that Kong cannot express in tags.
func (c *CLI) CheckFlags() error {
	if c.Depth < 0 {
		return nametrail.Errorf(nametrail.EINVALID, "depth must be non-negative, got %d", c.Depth)
	}
	if c.Delay < 0 {
		return nametrail.Errorf(nametrail.EINVALID, "delay must be non-negative")
	}
	if c.Timeout <= 0 {
		return nametrail.Errorf(nametrail.EINVALID, "timeout must be positive")
	}
	return nil
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URLs []string `arg:"" name:"url" help:"Seed URLs"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query       string `arg:"" help:"Search query"`
	ResultPages int    `name:"pages" short:"n" default:"1" help:"Number of result pages to read"`
	Start       string `help:"Only results published on or after this date (YYYY-MM-DD)"`
	End         string `help:"Only results published on or before this date (YYYY-MM-DD)"`
	Crawl       bool   `short:"c" help:"Crawl the result links"`
}

// FeedCmd is the "feed" subcommand.
type FeedCmd struct {
	URL   string `arg:"" name:"url" help:"Feed URL"`
	Start string `help:"Only entries published on or after this date (YYYY-MM-DD)"`
	End   string `help:"Only entries published on or before this date (YYYY-MM-DD)"`
	Crawl bool   `short:"c" help:"Crawl the entry links"`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	Title string `help:"Show only the page with this title"`
	Limit int    `short:"l" default:"20" help:"Maximum number of pages to list"`
	Full  bool   `help:"Show full page text"`
}
