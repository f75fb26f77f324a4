package feed

import (
	"context"
	"errors"
	"strings"

	"feedsync/internal/core"
)

// AddItem publishes a new post for the current user. An empty image means the
// post carries no image.
func (s *Syncer) AddItem(ctx context.Context, content, image string) bool {
	s.Restore(ctx) //nolint:errcheck
	return s.settle("add_item", s.addItem(ctx, content, image))
}

func (s *Syncer) addItem(ctx context.Context, content, image string) error {
	user, ok := s.CurrentUser()
	if !ok {
		s.notify("Error Adding Post", "You must be logged in to add a post")
		return ErrNotSignedIn
	}

	post := core.NewPost{
		ID:      s.opts.NewID(),
		Content: content,
		User:    user,
		Image:   []string{},
	}
	if image != "" {
		post.Image = []string{image}
	}

	if err := check(s.gateway.AddPost(ctx, post)); err != nil {
		s.notify("Error Adding Post", failureBody(err, "Failed to add Post"))
		return err
	}

	s.notify("New Post Added", "Successfully added photo")
	s.reload(ctx) //nolint:errcheck
	s.navigate(core.NavigationIntent{Screen: core.ScreenHome})

	return nil
}

// DeleteItem removes a post owned by the current user.
func (s *Syncer) DeleteItem(ctx context.Context, postID string) bool {
	s.Restore(ctx) //nolint:errcheck

	s.postLocks.Lock(postID)
	defer s.postLocks.Unlock(postID) //nolint:errcheck

	return s.settle("delete_item", s.deleteItem(ctx, postID))
}

func (s *Syncer) deleteItem(ctx context.Context, postID string) error {
	if err := s.authorize(ctx, postID); err != nil {
		if errors.Is(err, ErrNotOwner) {
			s.notify("Permission Denied", "You can only delete your own posts")
		}
		return err
	}

	if err := check(s.gateway.DeletePost(ctx, postID)); err != nil {
		s.logger.Error("failed to delete post", "post_id", postID, "error", err)
		return err
	}

	s.notify("Post Deleted", "Your post was deleted")
	s.reload(ctx) //nolint:errcheck

	return nil
}

// EditPost replaces the caption of a post owned by the current user.
func (s *Syncer) EditPost(ctx context.Context, postID, content string) bool {
	s.Restore(ctx) //nolint:errcheck

	s.postLocks.Lock(postID)
	defer s.postLocks.Unlock(postID) //nolint:errcheck

	return s.settle("edit_post", s.editPost(ctx, postID, content))
}

func (s *Syncer) editPost(ctx context.Context, postID, content string) error {
	if strings.TrimSpace(content) == "" {
		s.notify("Error Updating Post", "Post content cannot be empty")
		return ErrBlankContent
	}

	if err := s.authorize(ctx, postID); err != nil {
		if errors.Is(err, ErrNotOwner) {
			s.notify("Permission Denied", "You can only edit your own posts")
		} else {
			s.notify("Error Updating Post", failureBody(err, "Failed to update post"))
		}
		return err
	}

	var err error
	switch s.opts.Edit {
	case EditRecreate:
		err = s.recreate(ctx, postID, func(post *core.Post) {
			post.Content = content
		})
	default:
		err = check(s.gateway.UpdateCaption(ctx, postID, content))
	}
	if err != nil {
		s.notify("Error Updating Post", failureBody(err, "Failed to update post"))
		return err
	}

	s.notify("Post Updated", "Your post was updated")
	s.reload(ctx) //nolint:errcheck
	s.navigate(core.NavigationIntent{Back: true})

	return nil
}

// authorize refuses posts in the cached feed that belong to someone else.
// Posts missing from the cache are handled according to the ownership policy.
func (s *Syncer) authorize(ctx context.Context, postID string) error {
	user, _ := s.CurrentUser()

	post, ok := s.cachedPost(postID)
	if !ok {
		if s.opts.Ownership != OwnershipRefetch {
			s.logger.Debug("post not in cached feed, skipping ownership check", "post_id", postID)
			return nil
		}

		fetched, err := s.fetchPost(ctx, postID)
		if err != nil {
			return err
		}
		post = *fetched
	}

	if post.User != user {
		s.logger.Warn("refusing to modify a post owned by another user",
			"post_id", postID, "owner", post.User, "user", user)
		return ErrNotOwner
	}

	return nil
}

func (s *Syncer) fetchPost(ctx context.Context, postID string) (*core.Post, error) {
	post, ack, err := s.gateway.GetPost(ctx, postID)
	if errors.Is(err, core.ErrPostNotFound) {
		return nil, &RejectedError{Message: "Post not found"}
	}
	if err := check(ack, err); err != nil {
		return nil, err
	}
	return post, nil
}

// recreate applies mutate to the current server copy of a post, deletes the
// post and submits it again under the same id. Another client changing the
// post between the fetch and the resubmission loses its change.
func (s *Syncer) recreate(ctx context.Context, postID string, mutate func(*core.Post)) error {
	post, err := s.fetchPost(ctx, postID)
	if err != nil {
		return err
	}

	mutate(post)

	if err := check(s.gateway.DeletePost(ctx, postID)); err != nil {
		return err
	}

	resubmitted := core.NewPost{
		ID:       postID,
		Content:  post.Content,
		User:     post.User,
		Image:    post.Image,
		Likes:    post.Likes,
		Comments: post.Comments,
	}
	if !post.Timestamp.IsZero() {
		resubmitted.Timestamp = &post.Timestamp
	}

	if err := check(s.gateway.AddPost(ctx, resubmitted)); err != nil {
		s.logger.Error("post deleted but could not be recreated", "post_id", postID, "error", err)
		return err
	}

	return nil
}
