package feedapi

import (
	"context"
	"errors"
	"fmt"

	"feedsync/internal/core"

	"resty.dev/v3"
)

const (
	// The service is usually exposed through an ngrok tunnel which otherwise
	// answers with an HTML interstitial.
	tunnelHeader      = "ngrok-skip-browser-warning"
	tunnelHeaderValue = "69420"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

type Client struct {
	client *resty.Client
}

func NewClient(config *ClientConfig) *Client {
	settings := config.TransportSettings
	if settings == nil {
		settings = DefaultConfig.TransportSettings
	}

	client := resty.NewWithTransportSettings(settings).
		SetBaseURL(config.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader(tunnelHeader, tunnelHeaderValue)

	if config.RequestTimeout > 0 {
		client.SetTimeout(config.RequestTimeout)
	}

	for _, m := range config.RequestMiddlewares {
		client.AddRequestMiddleware(m)
	}
	for _, m := range config.ResponseMiddlewares {
		client.AddResponseMiddleware(m)
	}

	return &Client{
		client: client,
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().WithContext(ctx)
}

// rejection is an error status whose body is the service's own
// {success: false, message} answer.
type rejection struct {
	core.Ack
}

func (r *rejection) Error() string {
	return "rejected: " + r.Message
}

// post sends body to path and decodes a successful answer into result.
func (c *Client) post(ctx context.Context, path string, body, result any) error {
	type failure struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
	}

	failed := &failure{}

	req := c.r(ctx).SetResult(result).SetError(failed)
	if body != nil {
		req.SetBody(body)
	}

	res, err := req.Post(path)
	if err != nil {
		return err
	}

	if res.IsError() {
		if failed.Success == nil {
			return fmt.Errorf("%w: %s %s", ErrUnexpectedStatus, path, res.Status())
		}
		return &rejection{core.Ack{Success: false, Message: failed.Message}}
	}

	return nil
}

// settle turns an error status carrying a service answer back into an Ack.
func settle(ack core.Ack, err error) (core.Ack, error) {
	var rej *rejection
	if errors.As(err, &rej) {
		return rej.Ack, nil
	}
	return ack, err
}
