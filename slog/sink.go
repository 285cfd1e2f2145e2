package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/nametrail"
)

// Ensure LoggingSink implements nametrail.PersistenceSink.
var _ nametrail.PersistenceSink = (*LoggingSink)(nil)

// LoggingSink wraps a PersistenceSink with logging.
type LoggingSink struct {
	next   nametrail.PersistenceSink
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next nametrail.PersistenceSink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// Save delegates to the wrapped sink and logs the operation.
func (s *LoggingSink) Save(ctx context.Context, title, text string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save",
			"title", title,
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, title, text)
}
