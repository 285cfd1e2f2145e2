package crawl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/nametrail/crawl"
	"github.com/fwojciec/nametrail/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiSink_Save(t *testing.T) {
	t.Parallel()

	t.Run("saves to every sink", func(t *testing.T) {
		t.Parallel()

		var got []string
		record := func(name string) *mock.PersistenceSink {
			return &mock.PersistenceSink{
				SaveFn: func(_ context.Context, title, text string) error {
					got = append(got, name+":"+title+":"+text)
					return nil
				},
			}
		}

		err := crawl.MultiSink{record("files"), record("db")}.Save(context.Background(), "_a", "text")

		require.NoError(t, err)
		assert.Equal(t, []string{"files:_a:text", "db:_a:text"}, got)
	})

	t.Run("attempts all sinks and joins errors", func(t *testing.T) {
		t.Parallel()

		errFiles := errors.New("disk full")
		called := false
		sink := crawl.MultiSink{
			&mock.PersistenceSink{SaveFn: func(context.Context, string, string) error { return errFiles }},
			&mock.PersistenceSink{SaveFn: func(context.Context, string, string) error {
				called = true
				return nil
			}},
		}

		err := sink.Save(context.Background(), "_a", "text")

		require.ErrorIs(t, err, errFiles)
		assert.True(t, called)
	})

	t.Run("empty sink succeeds", func(t *testing.T) {
		t.Parallel()

		err := crawl.MultiSink(nil).Save(context.Background(), "_a", "text")

		assert.NoError(t, err)
	})
}
