// Package feed owns the client side view of the feed and applies every
// mutation against the remote service.
//
// All public operations report a plain success flag. Failures are absorbed
// here: they are logged, counted, and surfaced to the user through the
// notifier. Every successful mutation ends with a full reload of the feed.
package feed

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"feedsync/internal/core"

	"github.com/google/uuid"
	"github.com/moby/locker"
	"github.com/samber/lo"
)

const sessionKey = "currentUser"

type EditPolicy string

const (
	// EditUpdate changes the caption in place through the update endpoint.
	EditUpdate EditPolicy = "update"
	// EditRecreate deletes the post and resubmits it under the same id.
	EditRecreate EditPolicy = "recreate"
)

type CommentPolicy string

const (
	CommentAppend   CommentPolicy = "append"
	CommentRecreate CommentPolicy = "recreate"
)

// OwnershipPolicy decides what happens when a post targeted by edit or delete
// is not in the cached feed.
type OwnershipPolicy string

const (
	// OwnershipCached skips the check for posts missing from the cache.
	OwnershipCached OwnershipPolicy = "cached"
	// OwnershipRefetch fetches the single post and refuses when that fails.
	OwnershipRefetch OwnershipPolicy = "refetch"
)

type Options struct {
	Edit      EditPolicy
	Comment   CommentPolicy
	Ownership OwnershipPolicy

	// NavigationBuffer is the capacity of the Navigation channel.
	NavigationBuffer int

	Now   func() time.Time
	NewID func() string
}

type Syncer struct {
	logger   *slog.Logger
	gateway  core.Gateway
	store    core.SessionStore
	notifier core.Notifier
	opts     Options

	restoreOnce sync.Once
	restoreErr  error

	postLocks *locker.Locker
	nav       chan core.NavigationIntent

	mu          sync.RWMutex
	posts       []core.Post
	userPosts   []core.Post
	currentUser string
}

func New(logger *slog.Logger, gateway core.Gateway, store core.SessionStore, notifier core.Notifier, opts Options) *Syncer {
	if opts.Edit == "" {
		opts.Edit = EditUpdate
	}
	if opts.Comment == "" {
		opts.Comment = CommentAppend
	}
	if opts.Ownership == "" {
		opts.Ownership = OwnershipCached
	}
	if opts.NavigationBuffer <= 0 {
		opts.NavigationBuffer = 16
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	return &Syncer{
		logger:    logger.With("component", "feed.Syncer"),
		gateway:   gateway,
		store:     store,
		notifier:  notifier,
		opts:      opts,
		postLocks: locker.New(),
		nav:       make(chan core.NavigationIntent, opts.NavigationBuffer),
	}
}

// Posts returns a copy of the feed, newest first.
func (s *Syncer) Posts() []core.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePosts(s.posts)
}

// UserPosts returns a copy of the posts authored by the current user.
func (s *Syncer) UserPosts() []core.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePosts(s.userPosts)
}

func (s *Syncer) PostCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// CurrentUser reports the signed-in user, if any.
func (s *Syncer) CurrentUser() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentUser, s.currentUser != ""
}

// Navigation delivers the screen changes requested by finished operations.
func (s *Syncer) Navigation() <-chan core.NavigationIntent {
	return s.nav
}

func (s *Syncer) setCurrentUser(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = user
	s.userPosts = postsOf(s.posts, user)
}

func (s *Syncer) replacePosts(posts []core.Post) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = posts
	s.userPosts = postsOf(posts, s.currentUser)
	return len(posts)
}

func (s *Syncer) cachedPost(postID string) (core.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Find(s.posts, func(p core.Post) bool {
		return p.PostID == postID
	})
}

func (s *Syncer) notify(title, body string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(title, body)
}

func (s *Syncer) navigate(intent core.NavigationIntent) {
	select {
	case s.nav <- intent:
	default:
		s.logger.Warn("navigation intent dropped, nobody is listening", "screen", intent.Screen, "back", intent.Back)
	}
}

func postsOf(posts []core.Post, user string) []core.Post {
	if user == "" {
		return []core.Post{}
	}
	return lo.Filter(posts, func(p core.Post, _ int) bool {
		return p.User == user
	})
}

func clonePosts(posts []core.Post) []core.Post {
	return lo.Map(posts, func(p core.Post, _ int) core.Post {
		p.Image = slices.Clone(p.Image)
		p.Comments = slices.Clone(p.Comments)
		return p
	})
}
