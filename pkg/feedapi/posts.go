package feedapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"feedsync/internal/core"
)

const (
	fetchFeed    = "/"
	addPost      = "/addPost"
	deletePost   = "/deleteSpecificPost"
	updatePost   = "/updatePost"
	getPost      = "/getSpecificPost"
	addLike      = "/addLike"
	addComment   = "/addComment"
	registerUser = "/register"
	loginUser    = "/login"
)

type idRequest struct {
	ID string `json:"id"`
}

type postIDRequest struct {
	PostID string `json:"postId"`
}

// FetchFeed returns all posts in the order the service sent them.
func (c *Client) FetchFeed(ctx context.Context) ([]core.Post, error) {
	type Feed struct {
		Posts json.RawMessage `json:"posts"`
	}

	feed := &Feed{}
	if err := c.post(ctx, fetchFeed, nil, feed); err != nil {
		var rej *rejection
		if errors.As(err, &rej) {
			return nil, fmt.Errorf("%w: %s", core.ErrMalformedFeed, rej.Message)
		}
		return nil, err
	}

	if len(feed.Posts) == 0 || feed.Posts[0] != '[' {
		return nil, core.ErrMalformedFeed
	}

	var posts []core.Post
	if err := json.Unmarshal(feed.Posts, &posts); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedFeed, err)
	}

	return posts, nil
}

func (c *Client) AddPost(ctx context.Context, post core.NewPost) (core.Ack, error) {
	if post.Image == nil {
		post.Image = []string{}
	}

	ack := core.Ack{}
	err := c.post(ctx, addPost, post, &ack)
	return settle(ack, err)
}

func (c *Client) DeletePost(ctx context.Context, postID string) (core.Ack, error) {
	ack := core.Ack{}
	err := c.post(ctx, deletePost, idRequest{ID: postID}, &ack)
	return settle(ack, err)
}

func (c *Client) UpdateCaption(ctx context.Context, postID, content string) (core.Ack, error) {
	type UpdateCaption struct {
		PostID  string `json:"postId"`
		Content string `json:"content"`
	}

	ack := core.Ack{}
	err := c.post(ctx, updatePost, UpdateCaption{PostID: postID, Content: content}, &ack)
	return settle(ack, err)
}

// GetPost returns core.ErrPostNotFound when the service acknowledges the
// request but carries no post.
func (c *Client) GetPost(ctx context.Context, postID string) (*core.Post, core.Ack, error) {
	type SinglePost struct {
		core.Ack
		Post *core.Post `json:"post"`
	}

	res := &SinglePost{}
	err := c.post(ctx, getPost, idRequest{ID: postID}, res)
	ack, err := settle(res.Ack, err)
	if err != nil || !ack.Success {
		return nil, ack, err
	}

	if res.Post == nil {
		return nil, ack, core.ErrPostNotFound
	}

	return res.Post, ack, nil
}

func (c *Client) AddLike(ctx context.Context, postID string) (core.Ack, error) {
	ack := core.Ack{}
	err := c.post(ctx, addLike, postIDRequest{PostID: postID}, &ack)
	return settle(ack, err)
}

func (c *Client) AddComment(ctx context.Context, postID, user, comment string) (core.Ack, error) {
	type NewComment struct {
		PostID  string `json:"postId"`
		User    string `json:"user"`
		Comment string `json:"comment"`
	}

	ack := core.Ack{}
	err := c.post(ctx, addComment, NewComment{PostID: postID, User: user, Comment: comment}, &ack)
	return settle(ack, err)
}
