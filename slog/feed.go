package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/nametrail"
)

// Ensure LoggingFeedReader implements nametrail.FeedReader.
var _ nametrail.FeedReader = (*LoggingFeedReader)(nil)

// LoggingFeedReader wraps a FeedReader with logging.
type LoggingFeedReader struct {
	next   nametrail.FeedReader
	logger *slog.Logger
}

// NewLoggingFeedReader creates a new LoggingFeedReader.
func NewLoggingFeedReader(next nametrail.FeedReader, logger *slog.Logger) *LoggingFeedReader {
	return &LoggingFeedReader{next: next, logger: logger}
}

// ReadFeed delegates to the wrapped reader and logs the operation.
func (r *LoggingFeedReader) ReadFeed(ctx context.Context, q nametrail.FeedQuery) (results []nametrail.SearchResult, err error) {
	defer func(begin time.Time) {
		r.logger.Info("feed",
			"url", q.URL,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ReadFeed(ctx, q)
}
