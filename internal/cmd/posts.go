package cmd

import (
	"context"
	"strings"

	"feedsync/internal/cmd/flags"
	"feedsync/internal/feed"

	"github.com/urfave/cli/v3"
)

// Mutations start from a fresh feed so the ownership check sees the posts the
// user is looking at.

var postCmd = &cli.Command{
	Name:      "post",
	Usage:     "Publish a new post",
	ArgsUsage: "CONTENT...",
	Flags: []cli.Flag{
		flags.Image,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		content := strings.Join(c.Args().Slice(), " ")
		image := c.String("image")
		return run(ctx, c, func(ctx context.Context, syncer *feed.Syncer) error {
			return succeeded(syncer.AddItem(ctx, content, image))
		})
	},
}

var deleteCmd = &cli.Command{
	Name:      "delete",
	Usage:     "Delete one of your posts",
	ArgsUsage: "POST_ID",
	Action: func(ctx context.Context, c *cli.Command) error {
		postID := c.Args().First()
		return run(ctx, c, func(ctx context.Context, syncer *feed.Syncer) error {
			syncer.LoadItems(ctx)
			return succeeded(syncer.DeleteItem(ctx, postID))
		})
	},
}

var editCmd = &cli.Command{
	Name:      "edit",
	Usage:     "Replace the caption of one of your posts",
	ArgsUsage: "POST_ID CONTENT...",
	Action: func(ctx context.Context, c *cli.Command) error {
		postID := c.Args().First()
		content := strings.Join(c.Args().Tail(), " ")
		return run(ctx, c, func(ctx context.Context, syncer *feed.Syncer) error {
			syncer.LoadItems(ctx)
			return succeeded(syncer.EditPost(ctx, postID, content))
		})
	},
}

var likeCmd = &cli.Command{
	Name:      "like",
	Usage:     "Like a post",
	ArgsUsage: "POST_ID",
	Action: func(ctx context.Context, c *cli.Command) error {
		postID := c.Args().First()
		return run(ctx, c, func(ctx context.Context, syncer *feed.Syncer) error {
			return succeeded(syncer.LikePost(ctx, postID))
		})
	},
}

var commentCmd = &cli.Command{
	Name:      "comment",
	Usage:     "Comment on a post",
	ArgsUsage: "POST_ID TEXT...",
	Action: func(ctx context.Context, c *cli.Command) error {
		postID := c.Args().First()
		text := strings.Join(c.Args().Tail(), " ")
		return run(ctx, c, func(ctx context.Context, syncer *feed.Syncer) error {
			return succeeded(syncer.AddComment(ctx, postID, text))
		})
	},
}
