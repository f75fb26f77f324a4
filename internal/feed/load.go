package feed

import (
	"context"
	"errors"
	"slices"

	"feedsync/internal/core"
)

// LoadItems replaces the feed with a fresh copy from the service. A failed
// fetch or a response without a post collection leaves the feed as it was.
func (s *Syncer) LoadItems(ctx context.Context) {
	s.Restore(ctx) //nolint:errcheck
	s.settle("load_items", s.reload(ctx))
}

func (s *Syncer) reload(ctx context.Context) error {
	posts, err := s.gateway.FetchFeed(ctx)
	if err != nil {
		if errors.Is(err, core.ErrMalformedFeed) {
			s.logger.Warn("no posts found in feed response", "error", err)
			return err
		}
		s.logger.Error("failed to load feed", "error", err)
		return err
	}

	// The service's ordering is not trusted.
	slices.SortStableFunc(posts, func(a, b core.Post) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	count := s.replacePosts(posts)
	postCount.Set(float64(count))

	s.logger.Debug("feed loaded", "posts", count)
	return nil
}
