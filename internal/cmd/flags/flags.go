package flags

import (
	"fmt"
	"slices"

	libnats "github.com/nats-io/nats.go"
	"github.com/urfave/cli/v3"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

func oneOf(name string, allowed ...string) func(string) error {
	return func(value string) error {
		if !slices.Contains(allowed, value) {
			return fmt.Errorf("invalid %s: %s, allowed values are: %s", name, value, allowed)
		}
		return nil
	}
}

var LogLevel = &cli.StringFlag{
	Name:      "log-level",
	Aliases:   []string{"l"},
	Usage:     "The level of the logs",
	Value:     "info",
	Validator: oneOf("log level", validLogLevels...),
	Sources:   cli.EnvVars("LOG_LEVEL"),
}

var APIURL = &cli.StringFlag{
	Name:    "api-url",
	Aliases: []string{"a"},
	Usage:   "The base URL of the feed service",
	Value:   "http://localhost:3010",
	Sources: cli.EnvVars("FEEDSYNC_API_URL"),
}

var RequestTimeout = &cli.DurationFlag{
	Name:        "request-timeout",
	Usage:       "Give up on a feed service request after this long, 0 waits forever",
	DefaultText: "0",
	Sources:     cli.EnvVars("FEEDSYNC_REQUEST_TIMEOUT"),
}

var NATSURL = &cli.StringFlag{
	Name:    "nats-url",
	Aliases: []string{"n"},
	Usage:   "The URL of the NATS server",
	Value:   libnats.DefaultURL,
	Sources: cli.EnvVars("NATS_URL"),
}

var InitNATS = &cli.BoolFlag{
	Name:        "nats-init",
	Aliases:     []string{"i"},
	Usage:       "Initialize the NATS server: create the event stream and the session bucket",
	DefaultText: "false",
	Value:       false,
	Sources:     cli.EnvVars("NATS_INIT"),
}

var SessionBucket = &cli.StringFlag{
	Name:    "session-bucket",
	Usage:   "The JetStream key-value bucket holding the signed-in user",
	Value:   "feedsync-session",
	Sources: cli.EnvVars("FEEDSYNC_SESSION_BUCKET"),
}

var EventSubject = &cli.StringFlag{
	Name:    "event-subject",
	Usage:   "The NATS subject prefix for notifications and navigation events",
	Value:   "feedsync",
	Sources: cli.EnvVars("FEEDSYNC_EVENT_SUBJECT"),
}

var EditPolicy = &cli.StringFlag{
	Name:      "edit-policy",
	Usage:     "How captions are changed: update in place or recreate the post",
	Value:     "update",
	Validator: oneOf("edit policy", "update", "recreate"),
	Sources:   cli.EnvVars("FEEDSYNC_EDIT_POLICY"),
}

var CommentPolicy = &cli.StringFlag{
	Name:      "comment-policy",
	Usage:     "How comments are added: append endpoint or recreate the post",
	Value:     "append",
	Validator: oneOf("comment policy", "append", "recreate"),
	Sources:   cli.EnvVars("FEEDSYNC_COMMENT_POLICY"),
}

var Ownership = &cli.StringFlag{
	Name:      "ownership",
	Usage:     "Ownership check for posts missing from the cached feed: skip it (cached) or fetch the post (refetch)",
	Value:     "cached",
	Validator: oneOf("ownership policy", "cached", "refetch"),
	Sources:   cli.EnvVars("FEEDSYNC_OWNERSHIP"),
}

var MetricsAddr = &cli.StringFlag{
	Name:    "metrics-addr",
	Usage:   "Serve prometheus metrics on this address, empty disables",
	Sources: cli.EnvVars("FEEDSYNC_METRICS_ADDR"),
}

var Image = &cli.StringFlag{
	Name:  "image",
	Usage: "Encoded image reference attached to the post",
}

var Mine = &cli.BoolFlag{
	Name:  "mine",
	Usage: "Only show posts of the signed-in user",
}
