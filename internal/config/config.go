package config

import "time"

const AppName = "feedsync"

type Config struct {
	LogLevel string `flag:"log-level"`

	APIURL         string        `flag:"api-url"`
	RequestTimeout time.Duration `flag:"request-timeout"`

	NATSURL       string `flag:"nats-url"`
	NATSInit      bool   `flag:"nats-init"`
	SessionBucket string `flag:"session-bucket"`
	EventSubject  string `flag:"event-subject"`

	EditPolicy    string `flag:"edit-policy"`
	CommentPolicy string `flag:"comment-policy"`
	Ownership     string `flag:"ownership"`

	MetricsAddr string `flag:"metrics-addr"`
}
