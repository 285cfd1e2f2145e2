package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/nametrail"
)

// Ensure LoggingNameDetector implements nametrail.NameDetector.
var _ nametrail.NameDetector = (*LoggingNameDetector)(nil)

// LoggingNameDetector wraps a NameDetector with debug logging.
type LoggingNameDetector struct {
	next   nametrail.NameDetector
	logger *slog.Logger
}

// NewLoggingNameDetector creates a new LoggingNameDetector.
func NewLoggingNameDetector(next nametrail.NameDetector, logger *slog.Logger) *LoggingNameDetector {
	return &LoggingNameDetector{next: next, logger: logger}
}

// DetectPersonNames delegates to the wrapped detector and logs the operation.
func (d *LoggingNameDetector) DetectPersonNames(text string) (names []string, err error) {
	defer func(begin time.Time) {
		d.logger.Debug("name detection",
			"chars", len(text),
			"mentions", len(names),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.DetectPersonNames(text)
}
