package feedapi

import (
	"context"

	"feedsync/internal/core"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, username, password string) (core.Ack, error) {
	ack := core.Ack{}
	err := c.post(ctx, registerUser, credentials{Username: username, Password: password}, &ack)
	return settle(ack, err)
}

func (c *Client) Login(ctx context.Context, username, password string) (core.Ack, error) {
	ack := core.Ack{}
	err := c.post(ctx, loginUser, credentials{Username: username, Password: password}, &ack)
	return settle(ack, err)
}
