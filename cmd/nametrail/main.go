package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/nametrail"
	"github.com/fwojciec/nametrail/crawl"
	"github.com/fwojciec/nametrail/fs"
	"github.com/fwojciec/nametrail/gemini"
	"github.com/fwojciec/nametrail/gofeed"
	"github.com/fwojciec/nametrail/goquery"
	nthttp "github.com/fwojciec/nametrail/http"
	"github.com/fwojciec/nametrail/prose"
	ntslog "github.com/fwojciec/nametrail/slog"
	"github.com/fwojciec/nametrail/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, opened when a database path is configured.
	DB *sqlite.DB

	// SearchURL overrides the search endpoint. Used in tests.
	SearchURL string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("nametrail"),
		kong.Description("Follow the trail of person names across linked web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'nametrail --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	if err := cli.CheckFlags(); err != nil {
		return err
	}

	logger, err := newLogger(stderr, cli.LogLevel)
	if err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
		Depth:  cli.Depth,
	}

	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set NAMETRAIL_DB or --db to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		deps.Pages = sqlite.NewPageService(m.DB)
	}

	cmd := strings.Fields(kongCtx.Command())[0]

	// Seed lookups use the fetch timeout.
	seedClient := &http.Client{Timeout: cli.Timeout}

	if cmd == "search" {
		search := nthttp.NewSearchService(seedClient, m.SearchURL, logger)
		deps.Seeds = ntslog.NewLoggingSeedProvider(search, logger)
	}

	if cmd == "feed" {
		deps.Feeds = ntslog.NewLoggingFeedReader(gofeed.NewFeedService(seedClient), logger)
	}

	if cmd == "crawl" || (cmd == "search" && cli.Search.Crawl) || (cmd == "feed" && cli.Feed.Crawl) {
		detector, err := newDetector(ctx, cli.Detector, cli.GeminiAPIKey, stderr)
		if err != nil {
			return err
		}

		fetcher := nthttp.NewFetcher(nthttp.WithTimeout(cli.Timeout))
		defer fetcher.Close()

		sink := crawl.MultiSink{ntslog.NewLoggingSink(fs.NewTextWriter(cli.Out), logger)}
		if deps.Pages != nil {
			sink = append(sink, deps.Pages)
		}

		deps.Crawler = &crawl.Crawler{
			Fetcher: ntslog.NewLoggingFetcher(fetcher, logger),
			Extractor: goquery.NewExtractor(
				ntslog.NewLoggingNameDetector(detector, logger),
				goquery.NewLinkFilter(nil),
				goquery.WithLogger(logger),
			),
			Sink:    sink,
			Logger:  logger,
			Delay:   cli.Delay,
			Workers: cli.Workers,
		}
	}

	return kongCtx.Run(deps)
}

// newLogger builds a text logger on w at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nametrail.Errorf(nametrail.EINVALID, "invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// newDetector returns the named person-name detector.
func newDetector(ctx context.Context, name, apiKey string, stderr io.Writer) (nametrail.NameDetector, error) {
	switch name {
	case "gemini":
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewNameDetector(client), nil
	default:
		return prose.NewNameDetector(), nil
	}
}
