package cmd

import (
	"context"
	"fmt"

	"feedsync/internal/feed"

	"github.com/urfave/cli/v3"
)

var registerCmd = &cli.Command{
	Name:      "register",
	Usage:     "Create an account and sign in",
	ArgsUsage: "USERNAME PASSWORD",
	Action: func(ctx context.Context, c *cli.Command) error {
		username, password := c.Args().Get(0), c.Args().Get(1)
		return run(ctx, c, func(ctx context.Context, syncer *feed.Syncer) error {
			return succeeded(syncer.Register(ctx, username, password))
		})
	},
}

var loginCmd = &cli.Command{
	Name:      "login",
	Usage:     "Sign in and remember the user for later commands",
	ArgsUsage: "USERNAME PASSWORD",
	Action: func(ctx context.Context, c *cli.Command) error {
		username, password := c.Args().Get(0), c.Args().Get(1)
		return run(ctx, c, func(ctx context.Context, syncer *feed.Syncer) error {
			return succeeded(syncer.Login(ctx, username, password))
		})
	},
}

var logoutCmd = &cli.Command{
	Name:  "logout",
	Usage: "Forget the signed-in user",
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c, func(ctx context.Context, syncer *feed.Syncer) error {
			return succeeded(syncer.Logout(ctx))
		})
	},
}

var whoamiCmd = &cli.Command{
	Name:  "whoami",
	Usage: "Print the signed-in user",
	Action: func(ctx context.Context, c *cli.Command) error {
		w := c.Root().Writer
		return run(ctx, c, func(_ context.Context, syncer *feed.Syncer) error {
			user, ok := syncer.CurrentUser()
			if !ok {
				_, err := fmt.Fprintln(w, "not signed in")
				return err
			}
			_, err := fmt.Fprintln(w, user)
			return err
		})
	},
}
