package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/nametrail"
)

// Ensure LoggingSeedProvider implements nametrail.SeedProvider.
var _ nametrail.SeedProvider = (*LoggingSeedProvider)(nil)

// LoggingSeedProvider wraps a SeedProvider with logging.
type LoggingSeedProvider struct {
	next   nametrail.SeedProvider
	logger *slog.Logger
}

// NewLoggingSeedProvider creates a new LoggingSeedProvider.
func NewLoggingSeedProvider(next nametrail.SeedProvider, logger *slog.Logger) *LoggingSeedProvider {
	return &LoggingSeedProvider{next: next, logger: logger}
}

// Search delegates to the wrapped provider and logs the operation.
func (p *LoggingSeedProvider) Search(ctx context.Context, q nametrail.SearchQuery) (results []nametrail.SearchResult, err error) {
	defer func(begin time.Time) {
		p.logger.Info("search",
			"query", q.Query,
			"pages", q.Pages,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Search(ctx, q)
}
