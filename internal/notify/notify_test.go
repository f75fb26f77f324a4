package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"feedsync/internal/core"
	"feedsync/internal/notify"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type collector struct {
	mu  sync.Mutex
	got []core.Notification
}

func (c *collector) Send(_ context.Context, n core.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, n)
	return nil
}

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("delivers", func(t *testing.T) {
		t.Parallel()

		c := &collector{}
		a := notify.NewAsync(discard(), c, time.Second)

		a.Notify("New Post Added", "Successfully added photo")
		require.NoError(t, a.Flush(t.Context()))

		require.Equal(t, []core.Notification{{Title: "New Post Added", Body: "Successfully added photo"}}, c.got)
	})

	t.Run("does not block on a slow sink", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		a := notify.NewAsync(discard(), notify.SinkFunc(func(context.Context, core.Notification) error {
			<-release
			return nil
		}), 0)

		start := time.Now()
		a.Notify("a", "b")
		require.Less(t, time.Since(start), 100*time.Millisecond)

		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()
		require.ErrorIs(t, a.Flush(ctx), context.DeadlineExceeded)

		close(release)
		require.NoError(t, a.Flush(t.Context()))
	})

	t.Run("swallows errors and panics", func(t *testing.T) {
		t.Parallel()

		a := notify.NewAsync(discard(), notify.Fanout{
			notify.SinkFunc(func(context.Context, core.Notification) error {
				return errors.New("unreachable")
			}),
			notify.SinkFunc(func(context.Context, core.Notification) error {
				panic("boom")
			}),
		}, time.Second)

		require.NotPanics(t, func() {
			a.Notify("a", "b")
			require.NoError(t, a.Flush(t.Context()))
		})
	})
}

func TestFanout(t *testing.T) {
	t.Parallel()

	first, second := &collector{}, &collector{}
	failure := errors.New("down")

	err := notify.Fanout{
		first,
		notify.SinkFunc(func(context.Context, core.Notification) error { return failure }),
		second,
	}.Send(t.Context(), core.Notification{Title: "t"})

	require.ErrorIs(t, err, failure)
	require.Len(t, first.got, 1)
	require.Len(t, second.got, 1)
}
