package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"feedsync/internal/cmd/flags"
	"feedsync/internal/core"
	"feedsync/internal/feed"

	"github.com/k0kubun/pp"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
)

var feedCmd = &cli.Command{
	Name:  "feed",
	Usage: "Load and print the feed, newest first",
	Flags: []cli.Flag{
		flags.Mine,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		w := c.Root().Writer
		mine := c.Bool("mine")
		return run(ctx, c, func(ctx context.Context, syncer *feed.Syncer) error {
			syncer.LoadItems(ctx)
			if mine {
				return printProfile(w, syncer)
			}
			return printFeed(w, syncer)
		})
	},
}

var showCmd = &cli.Command{
	Name:      "show",
	Usage:     "Print every field of a single post",
	ArgsUsage: "POST_ID",
	Action: func(ctx context.Context, c *cli.Command) error {
		w := c.Root().Writer
		postID := c.Args().First()
		return run(ctx, c, func(ctx context.Context, syncer *feed.Syncer) error {
			syncer.LoadItems(ctx)

			post, ok := lo.Find(syncer.Posts(), func(p core.Post) bool {
				return p.PostID == postID
			})
			if !ok {
				return fmt.Errorf("%w: %s", core.ErrPostNotFound, postID)
			}

			_, err := pp.Fprintln(w, post)
			return err
		})
	},
}

func printFeed(w io.Writer, syncer *feed.Syncer) error {
	if _, err := fmt.Fprintf(w, "%d posts\n", syncer.PostCount()); err != nil {
		return err
	}
	return printPosts(w, syncer.Posts())
}

func printProfile(w io.Writer, syncer *feed.Syncer) error {
	user, ok := syncer.CurrentUser()
	if !ok {
		return feed.ErrNotSignedIn
	}

	posts := syncer.UserPosts()
	if _, err := fmt.Fprintf(w, "%s's posts: %d\n", user, len(posts)); err != nil {
		return err
	}
	return printPosts(w, posts)
}

func printPosts(w io.Writer, posts []core.Post) error {
	for _, post := range posts {
		image := "no image"
		if len(post.Image) > 0 {
			image = "image"
		}

		_, err := fmt.Fprintf(w, "%s  %s  %s  likes:%d  comments:%d  %s\n    %s\n",
			post.PostID,
			post.User,
			post.Timestamp.Local().Format(time.DateTime),
			post.Likes,
			len(post.Comments),
			image,
			post.Content,
		)
		if err != nil {
			return err
		}

		for _, comment := range post.Comments {
			if _, err := fmt.Fprintf(w, "      %s: %s\n", comment.User, comment.Content); err != nil {
				return err
			}
		}
	}
	return nil
}
