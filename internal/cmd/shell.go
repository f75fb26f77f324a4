package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"feedsync/internal/core"
	"feedsync/internal/feed"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v3"
)

var shellCmd = &cli.Command{
	Name:  "shell",
	Usage: "Interactive session keeping the feed in memory between commands",
	Action: func(ctx context.Context, c *cli.Command) error {
		w := c.Root().Writer
		return run(ctx, c, func(ctx context.Context, syncer *feed.Syncer) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "> ",
				Stdout:          w,
				AutoComplete:    completer(),
				InterruptPrompt: "^C",
				EOFPrompt:       "quit",
			})
			if err != nil {
				return err
			}
			defer rl.Close()

			return newShell(rl, w, syncer).run(ctx)
		})
	},
}

// feedClient is the part of feed.Syncer the shell drives.
type feedClient interface {
	Register(ctx context.Context, username, password string) bool
	Login(ctx context.Context, username, password string) bool
	Logout(ctx context.Context) bool
	LoadItems(ctx context.Context)
	AddItem(ctx context.Context, content, image string) bool
	DeleteItem(ctx context.Context, postID string) bool
	EditPost(ctx context.Context, postID, content string) bool
	LikePost(ctx context.Context, postID string) bool
	AddComment(ctx context.Context, postID, text string) bool

	Posts() []core.Post
	UserPosts() []core.Post
	PostCount() int
	CurrentUser() (string, bool)
}

// lineReader is satisfied by *readline.Instance.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

var errUsage = errors.New("usage")

var shellCommands = []string{
	"register", "login", "logout", "whoami", "feed", "mine", "reload",
	"post", "photo", "delete", "edit", "like", "comment",
}

func completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(shellCommands)+1)
	for _, name := range append(shellCommands, "quit") {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

type shellCommand struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

type shell struct {
	lines  lineReader
	out    io.Writer
	client feedClient

	commands map[string]shellCommand
}

func newShell(lines lineReader, out io.Writer, client feedClient) *shell {
	s := &shell{lines: lines, out: out, client: client}

	s.commands = map[string]shellCommand{
		"register": {"register USERNAME PASSWORD", s.credentials(client.Register)},
		"login":    {"login USERNAME PASSWORD", s.credentials(client.Login)},
		"logout": {"logout", func(ctx context.Context, _ []string) error {
			return s.report(client.Logout(ctx))
		}},
		"whoami": {"whoami", func(context.Context, []string) error {
			user, ok := client.CurrentUser()
			if !ok {
				user = "not signed in"
			}
			return s.println(user)
		}},
		"feed": {"feed", func(context.Context, []string) error {
			return s.printPosts(fmt.Sprintf("%d posts", client.PostCount()), client.Posts())
		}},
		"mine": {"mine", func(context.Context, []string) error {
			posts := client.UserPosts()
			return s.printPosts(fmt.Sprintf("%d of your posts", len(posts)), posts)
		}},
		"reload": {"reload", func(ctx context.Context, _ []string) error {
			client.LoadItems(ctx)
			return s.printPosts(fmt.Sprintf("%d posts", client.PostCount()), client.Posts())
		}},
		"post": {"post CONTENT...", func(ctx context.Context, args []string) error {
			return s.report(client.AddItem(ctx, strings.Join(args, " "), ""))
		}},
		"photo": {"photo IMAGE CONTENT...", func(ctx context.Context, args []string) error {
			if len(args) < 1 {
				return errUsage
			}
			return s.report(client.AddItem(ctx, strings.Join(args[1:], " "), args[0]))
		}},
		"delete": {"delete POST_ID", s.withPost(func(ctx context.Context, postID string, _ string) bool {
			return client.DeleteItem(ctx, postID)
		})},
		"edit": {"edit POST_ID CONTENT...", s.withPost(client.EditPost)},
		"like": {"like POST_ID", s.withPost(func(ctx context.Context, postID string, _ string) bool {
			return client.LikePost(ctx, postID)
		})},
		"comment": {"comment POST_ID TEXT...", s.withPost(client.AddComment)},
	}

	return s
}

// run reads commands until quit, end of input or ctx is done. Ctrl-C on an
// empty line quits, on a partial line it discards the line.
func (s *shell) run(ctx context.Context) error {
	s.client.LoadItems(ctx)

	stop := context.AfterFunc(ctx, func() {
		s.lines.Close() //nolint:errcheck
	})
	defer stop()

	for {
		line, err := s.lines.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		name, args := fields[0], fields[1:]
		if name == "quit" || name == "exit" {
			return nil
		}

		if err := s.dispatch(ctx, name, args); err != nil {
			return err
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

// dispatch only returns errors of the output writer; command failures are
// printed.
func (s *shell) dispatch(ctx context.Context, name string, args []string) error {
	command, ok := s.commands[name]
	if !ok {
		return s.help()
	}

	err := command.run(ctx, args)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errUsage):
		return s.println("usage: " + command.usage)
	case errors.Is(err, ErrOperationFailed):
		return s.println("failed")
	default:
		return err
	}
}

func (s *shell) help() error {
	if err := s.println("commands:"); err != nil {
		return err
	}
	for _, name := range shellCommands {
		if err := s.println("  " + s.commands[name].usage); err != nil {
			return err
		}
	}
	return s.println("  quit")
}

func (s *shell) credentials(call func(ctx context.Context, username, password string) bool) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		if len(args) != 2 {
			return errUsage
		}
		return s.report(call(ctx, args[0], args[1]))
	}
}

func (s *shell) withPost(call func(ctx context.Context, postID, text string) bool) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		if len(args) < 1 {
			return errUsage
		}
		return s.report(call(ctx, args[0], strings.Join(args[1:], " ")))
	}
}

func (s *shell) report(ok bool) error {
	if err := succeeded(ok); err != nil {
		return err
	}
	return s.println("ok")
}

func (s *shell) println(line string) error {
	_, err := fmt.Fprintln(s.out, line)
	return err
}

func (s *shell) printPosts(header string, posts []core.Post) error {
	if err := s.println(header); err != nil {
		return err
	}
	return printPosts(s.out, posts)
}
