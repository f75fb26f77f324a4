package core

import (
	"context"
)

// Gateway is the remote feed service. A nil error with Ack.Success == false is a
// failure reported by the service; a non-nil error is a transport failure.
type Gateway interface {
	// FetchFeed returns ErrMalformedFeed when the response carries no post array.
	FetchFeed(ctx context.Context) ([]Post, error)
	AddPost(ctx context.Context, post NewPost) (Ack, error)
	DeletePost(ctx context.Context, postID string) (Ack, error)
	UpdateCaption(ctx context.Context, postID, content string) (Ack, error)
	GetPost(ctx context.Context, postID string) (*Post, Ack, error)
	AddLike(ctx context.Context, postID string) (Ack, error)
	AddComment(ctx context.Context, postID, user, comment string) (Ack, error)
	Register(ctx context.Context, username, password string) (Ack, error)
	Login(ctx context.Context, username, password string) (Ack, error)
}

// SessionStore is durable key-value storage for the signed-in identity.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Notifier fires alerts without blocking and without reporting failures.
type Notifier interface {
	Notify(title, body string)
}
