package crawl

import (
	"context"
	"errors"

	"github.com/fwojciec/nametrail"
)

// Ensure MultiSink implements nametrail.PersistenceSink at compile time.
var _ nametrail.PersistenceSink = MultiSink(nil)

// MultiSink saves to every sink in order. All sinks are attempted; their
// errors are joined.
type MultiSink []nametrail.PersistenceSink

// Save implements nametrail.PersistenceSink.
func (m MultiSink) Save(ctx context.Context, title, text string) error {
	var errs []error
	for _, s := range m {
		if err := s.Save(ctx, title, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
