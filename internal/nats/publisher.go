package nats

import (
	"context"
	"encoding/json"

	"feedsync/internal/core"

	libnats "github.com/nats-io/nats.go"
)

const (
	notificationSuffix = ".notification"
	navigationSuffix   = ".navigation"
)

// Publisher mirrors client side events on core NATS subjects so other
// processes (a desktop notifier, a UI shell) can react to them.
type Publisher struct {
	conn    *libnats.Conn
	subject string
}

func NewPublisher(conn *libnats.Conn, subject string) *Publisher {
	return &Publisher{conn: conn, subject: subject}
}

// Send implements notify.Sink.
func (p *Publisher) Send(_ context.Context, n core.Notification) error {
	return p.publish(p.subject+notificationSuffix, n)
}

func (p *Publisher) PublishNavigation(intent core.NavigationIntent) error {
	return p.publish(p.subject+navigationSuffix, intent)
}

func (p *Publisher) publish(subject string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject, payload)
}
