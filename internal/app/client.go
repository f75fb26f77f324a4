// Package app assembles the feed core with its collaborators for the CLI.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"feedsync/internal/config"
	"feedsync/internal/feed"
	"feedsync/internal/metrics"
	inats "feedsync/internal/nats"
	"feedsync/internal/notify"
	"feedsync/pkg/feedapi"

	"github.com/zhulik/pal"
	"resty.dev/v3"
)

const notifyTimeout = 2 * time.Second

type Client struct {
	Logger *slog.Logger
	Config *config.Config
	NATS   *inats.NATS

	api      *feedapi.Client
	events   *inats.Publisher
	notifier *notify.Async
	syncer   *feed.Syncer
}

func (c *Client) Init(ctx context.Context) error {
	c.Logger = c.Logger.With("component", "app.Client")

	c.api = feedapi.NewClient(&feedapi.ClientConfig{
		BaseURL:           c.Config.APIURL,
		RequestTimeout:    c.Config.RequestTimeout,
		TransportSettings: feedapi.DefaultConfig.TransportSettings,
		ResponseMiddlewares: []resty.ResponseMiddleware{
			metrics.ObserveResponses,
			feedapi.LogResponses(c.Logger),
		},
	})

	c.events = inats.NewPublisher(c.NATS.JS.Conn(), c.Config.EventSubject)
	c.notifier = notify.NewAsync(c.Logger, notify.Fanout{
		notify.Log{Logger: c.Logger},
		c.events,
	}, notifyTimeout)

	c.syncer = feed.New(c.Logger, c.api, inats.NewSessionStore(c.NATS.KV), c.notifier, feed.Options{
		Edit:      feed.EditPolicy(c.Config.EditPolicy),
		Comment:   feed.CommentPolicy(c.Config.CommentPolicy),
		Ownership: feed.OwnershipPolicy(c.Config.Ownership),
	})

	// Nothing may touch the feed before the stored session is back.
	return c.syncer.Restore(ctx)
}

func (c *Client) Syncer() *feed.Syncer {
	return c.syncer
}

func (c *Client) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

// Run mirrors navigation intents to NATS until the container stops.
func (c *Client) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case intent := <-c.syncer.Navigation():
			c.Logger.Info("navigate", "screen", intent.Screen, "replace", intent.Replace, "back", intent.Back)
			if err := c.events.PublishNavigation(intent); err != nil {
				c.Logger.Warn("failed to publish navigation intent", "error", err)
			}
		}
	}
}

func (c *Client) Shutdown(ctx context.Context) error {
	return errors.Join(c.notifier.Flush(ctx), c.api.Close())
}
