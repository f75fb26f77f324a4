package core

import "errors"

var (
	ErrMalformedFeed = errors.New("response has no post collection")
	ErrPostNotFound  = errors.New("post not found")
)
