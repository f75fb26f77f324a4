// Package notify delivers user alerts to one or more sinks without ever
// blocking or failing the caller.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"feedsync/internal/core"
)

type Sink interface {
	Send(ctx context.Context, n core.Notification) error
}

type SinkFunc func(ctx context.Context, n core.Notification) error

func (f SinkFunc) Send(ctx context.Context, n core.Notification) error {
	return f(ctx, n)
}

// Log writes notifications to a logger.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Send(_ context.Context, n core.Notification) error {
	l.Logger.Info("notification", "title", n.Title, "body", n.Body)
	return nil
}

// Fanout sends to every sink and joins their errors.
type Fanout []Sink

func (f Fanout) Send(ctx context.Context, n core.Notification) error {
	var errs []error
	for _, sink := range f {
		if err := sink.Send(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Async implements core.Notifier on top of a Sink. Every notification is sent
// from its own goroutine; sink errors and panics are logged and dropped.
type Async struct {
	logger  *slog.Logger
	sink    Sink
	timeout time.Duration

	wg sync.WaitGroup
}

func NewAsync(logger *slog.Logger, sink Sink, timeout time.Duration) *Async {
	return &Async{
		logger:  logger.With("component", "notify.Async"),
		sink:    sink,
		timeout: timeout,
	}
}

func (a *Async) Notify(title, body string) {
	n := core.Notification{Title: title, Body: body}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		if err := a.send(n); err != nil {
			a.logger.Warn("failed to deliver notification", "title", n.Title, "error", err)
		}
	}()
}

func (a *Async) send(n core.Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()

	ctx := context.Background()
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	return a.sink.Send(ctx, n)
}

// Flush waits for notifications already handed to the sink, giving up when
// ctx is done.
func (a *Async) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
