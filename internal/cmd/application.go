package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	"feedsync/internal/app"
	"feedsync/internal/cmd/flags"
	"feedsync/internal/config"
	"feedsync/internal/feed"
	"feedsync/internal/metrics"
	"feedsync/internal/nats"
	"feedsync/pkg/clicfg"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
)

const VERSION = "0.1.0"

var ErrOperationFailed = errors.New("operation failed")

var cmd = &cli.Command{
	Name:    config.AppName,
	Usage:   "A client for the social feed service",
	Version: VERSION,
	Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
		if err := initLogger(c.String("log-level")); err != nil {
			return ctx, err
		}
		return ctx, nil
	},
	Flags: []cli.Flag{
		flags.LogLevel,
		flags.APIURL,
		flags.RequestTimeout,
		flags.NATSURL,
		flags.InitNATS,
		flags.SessionBucket,
		flags.EventSubject,
		flags.EditPolicy,
		flags.CommentPolicy,
		flags.Ownership,
		flags.MetricsAddr,
	},
	Commands: []*cli.Command{
		registerCmd,
		loginCmd,
		logoutCmd,
		whoamiCmd,
		feedCmd,
		showCmd,
		postCmd,
		deleteCmd,
		editCmd,
		likeCmd,
		commentCmd,
		shellCmd,
	},
}

func Run() {
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// operation is a unit of work run against the assembled client once every
// service is initialized and the stored session is restored.
type operation func(ctx context.Context, syncer *feed.Syncer) error

type action struct {
	Logger *slog.Logger
	Client *app.Client

	op operation
}

func (a *action) Run(ctx context.Context) error {
	return a.op(ctx, a.Client.Syncer())
}

func run(ctx context.Context, c *cli.Command, op operation, services ...pal.ServiceDef) error {
	cfg := config.Config{}
	if err := clicfg.ParseFlags(c, &cfg); err != nil {
		return err
	}

	services = append(services,
		pal.Provide(&cfg),
		nats.Provide(),
		pal.Provide(&app.Client{}),
		pal.Provide(&metrics.HTTPServer{}),
		pal.Provide(&action{op: op}),
	)

	return pal.New(services...).
		InjectSlog().
		InitTimeout(5*time.Second).
		HealthCheckTimeout(1*time.Second).
		ShutdownTimeout(10*time.Second).
		Run(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// succeeded turns the flag reported by the feed core into an exit status. The
// reason has already been reported through notifications.
func succeeded(ok bool) error {
	if !ok {
		return ErrOperationFailed
	}
	return nil
}
