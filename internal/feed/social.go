package feed

import (
	"context"
	"slices"
	"strings"

	"feedsync/internal/core"
)

// LikePost adds one like. The counter itself is kept by the service.
func (s *Syncer) LikePost(ctx context.Context, postID string) bool {
	s.Restore(ctx) //nolint:errcheck

	s.postLocks.Lock(postID)
	defer s.postLocks.Unlock(postID) //nolint:errcheck

	return s.settle("like_post", s.likePost(ctx, postID))
}

func (s *Syncer) likePost(ctx context.Context, postID string) error {
	if _, ok := s.CurrentUser(); !ok {
		s.notify("Error Liking Post", "You must be logged in to like a post")
		return ErrNotSignedIn
	}

	if err := check(s.gateway.AddLike(ctx, postID)); err != nil {
		s.notify("Error Liking Post", failureBody(err, "Failed to like post"))
		return err
	}

	s.reload(ctx) //nolint:errcheck
	return nil
}

// AddComment appends a comment by the current user to a post.
func (s *Syncer) AddComment(ctx context.Context, postID, text string) bool {
	s.Restore(ctx) //nolint:errcheck

	s.postLocks.Lock(postID)
	defer s.postLocks.Unlock(postID) //nolint:errcheck

	return s.settle("add_comment", s.addComment(ctx, postID, text))
}

func (s *Syncer) addComment(ctx context.Context, postID, text string) error {
	user, ok := s.CurrentUser()
	if !ok {
		s.notify("Error Adding Comment", "You must be logged in to comment")
		return ErrNotSignedIn
	}

	if strings.TrimSpace(text) == "" {
		s.notify("Error Adding Comment", "Comment cannot be empty")
		return ErrBlankContent
	}

	var err error
	switch s.opts.Comment {
	case CommentRecreate:
		err = s.recreate(ctx, postID, func(post *core.Post) {
			post.Comments = append(slices.Clone(post.Comments), core.Comment{
				User:      user,
				Content:   text,
				Timestamp: s.opts.Now(),
			})
		})
	default:
		err = check(s.gateway.AddComment(ctx, postID, user, text))
	}
	if err != nil {
		s.notify("Error Adding Comment", failureBody(err, "Failed to add comment"))
		return err
	}

	s.notify("Comment Added", "Your comment was posted")
	s.reload(ctx) //nolint:errcheck

	return nil
}
