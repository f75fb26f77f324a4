package feed_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"feedsync/internal/core"
	"feedsync/internal/feed"
)

var errUnreachable = errors.New("connection refused")

// service is an in-memory stand-in for the remote feed service.
type service struct {
	mu sync.Mutex

	posts []core.Post
	users map[string]string
	clock time.Time
	calls map[string]int

	// fail makes the named call report a failure with the given message.
	fail map[string]string
	// down makes every call fail at the transport level.
	down bool
	// malformed makes FetchFeed answer without a post collection.
	malformed bool
}

func newService(posts ...core.Post) *service {
	return &service{
		posts: posts,
		users: map[string]string{},
		clock: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		calls: map[string]int{},
		fail:  map[string]string{},
	}
}

func (s *service) called(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *service) enter(name string) (core.Ack, error) {
	s.calls[name]++
	if s.down {
		return core.Ack{}, errUnreachable
	}
	if msg, ok := s.fail[name]; ok {
		return core.Ack{Success: false, Message: msg}, nil
	}
	return core.Ack{Success: true}, nil
}

func (s *service) index(postID string) int {
	return slices.IndexFunc(s.posts, func(p core.Post) bool { return p.PostID == postID })
}

func (s *service) FetchFeed(_ context.Context) ([]core.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.enter("FetchFeed"); err != nil {
		return nil, err
	}
	if s.malformed {
		return nil, core.ErrMalformedFeed
	}

	out := make([]core.Post, len(s.posts))
	for i, p := range s.posts {
		p.Image = slices.Clone(p.Image)
		p.Comments = slices.Clone(p.Comments)
		out[i] = p
	}
	return out, nil
}

func (s *service) AddPost(_ context.Context, post core.NewPost) (core.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ack, err := s.enter("AddPost")
	if err != nil || !ack.Success {
		return ack, err
	}

	s.clock = s.clock.Add(time.Second)
	ts := s.clock
	if post.Timestamp != nil {
		ts = *post.Timestamp
	}

	comments := slices.Clone(post.Comments)
	if comments == nil {
		comments = []core.Comment{}
	}

	s.posts = append(s.posts, core.Post{
		PostID:    post.ID,
		Content:   post.Content,
		User:      post.User,
		Image:     slices.Clone(post.Image),
		Likes:     post.Likes,
		Comments:  comments,
		Timestamp: ts,
	})
	return ack, nil
}

func (s *service) DeletePost(_ context.Context, postID string) (core.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ack, err := s.enter("DeletePost")
	if err != nil || !ack.Success {
		return ack, err
	}

	if i := s.index(postID); i >= 0 {
		s.posts = slices.Delete(s.posts, i, i+1)
	}
	return ack, nil
}

func (s *service) UpdateCaption(_ context.Context, postID, content string) (core.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ack, err := s.enter("UpdateCaption")
	if err != nil || !ack.Success {
		return ack, err
	}

	if i := s.index(postID); i >= 0 {
		s.posts[i].Content = content
	}
	return ack, nil
}

func (s *service) GetPost(_ context.Context, postID string) (*core.Post, core.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ack, err := s.enter("GetPost")
	if err != nil || !ack.Success {
		return nil, ack, err
	}

	i := s.index(postID)
	if i < 0 {
		return nil, ack, core.ErrPostNotFound
	}

	p := s.posts[i]
	p.Image = slices.Clone(p.Image)
	p.Comments = slices.Clone(p.Comments)
	return &p, ack, nil
}

func (s *service) AddLike(_ context.Context, postID string) (core.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ack, err := s.enter("AddLike")
	if err != nil || !ack.Success {
		return ack, err
	}

	if i := s.index(postID); i >= 0 {
		s.posts[i].Likes++
	}
	return ack, nil
}

func (s *service) AddComment(_ context.Context, postID, user, comment string) (core.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ack, err := s.enter("AddComment")
	if err != nil || !ack.Success {
		return ack, err
	}

	if i := s.index(postID); i >= 0 {
		s.clock = s.clock.Add(time.Second)
		s.posts[i].Comments = append(s.posts[i].Comments, core.Comment{User: user, Content: comment, Timestamp: s.clock})
	}
	return ack, nil
}

func (s *service) Register(_ context.Context, username, password string) (core.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ack, err := s.enter("Register")
	if err != nil || !ack.Success {
		return ack, err
	}

	if _, ok := s.users[username]; ok {
		return core.Ack{Success: false, Message: "Username already exists"}, nil
	}
	s.users[username] = password
	return ack, nil
}

func (s *service) Login(_ context.Context, username, password string) (core.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ack, err := s.enter("Login")
	if err != nil || !ack.Success {
		return ack, err
	}

	if pw, ok := s.users[username]; !ok || pw != password {
		return core.Ack{Success: false}, nil
	}
	return ack, nil
}

type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
	gets   int
	err    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func (m *memoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.values, key)
	return nil
}

func (m *memoryStore) value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

type recorder struct {
	mu   sync.Mutex
	sent []core.Notification
}

func (r *recorder) Notify(title, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, core.Notification{Title: title, Body: body})
}

func (r *recorder) last() core.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return core.Notification{}
	}
	return r.sent[len(r.sent)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

type fixture struct {
	svc      *service
	store    *memoryStore
	notifier *recorder
	syncer   *feed.Syncer
}

func newFixture(opts feed.Options, posts ...core.Post) *fixture {
	f := &fixture{
		svc:      newService(posts...),
		store:    newMemoryStore(),
		notifier: &recorder{},
	}

	if opts.NewID == nil {
		var n atomic.Int32
		opts.NewID = func() string {
			return fmt.Sprintf("post-%d", n.Add(1))
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.syncer = feed.New(logger, f.svc, f.store, f.notifier, opts)
	return f
}

// signIn registers and logs user in through the service.
func (f *fixture) signIn(ctx context.Context, user string) bool {
	f.svc.mu.Lock()
	f.svc.users[user] = "secret"
	f.svc.mu.Unlock()
	return f.syncer.Login(ctx, user, "secret")
}

func at(minute int) time.Time {
	return time.Date(2024, 4, 1, 10, minute, 0, 0, time.UTC)
}

func post(id, user string, minute int) core.Post {
	return core.Post{
		PostID:    id,
		Content:   "content of " + id,
		User:      user,
		Image:     []string{},
		Comments:  []core.Comment{},
		Timestamp: at(minute),
	}
}
