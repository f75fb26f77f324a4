package nats

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
)

// SessionStore keeps the signed-in identity in a JetStream key-value bucket.
type SessionStore struct {
	kv jetstream.KeyValue
}

func NewSessionStore(kv jetstream.KeyValue) *SessionStore {
	return &SessionStore{kv: kv}
}

// Get reports false when the key was never written or has been removed.
func (s *SessionStore) Get(ctx context.Context, key string) (string, bool, error) {
	entry, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) || errors.Is(err, jetstream.ErrKeyDeleted) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	return string(entry.Value()), true, nil
}

func (s *SessionStore) Set(ctx context.Context, key, value string) error {
	_, err := s.kv.PutString(ctx, key, value)
	if err != nil {
		return fmt.Errorf("failed to store key %s: %w", key, err)
	}
	return nil
}

func (s *SessionStore) Remove(ctx context.Context, key string) error {
	err := s.kv.Delete(ctx, key)
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}
	return nil
}
