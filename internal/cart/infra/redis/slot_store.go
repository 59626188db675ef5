package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// SlotStore keeps each cart slot as a plain string key. A zero TTL keeps
// slots forever.
type SlotStore struct {
	client *goredis.Client
	ttl    time.Duration
}

type Option func(*SlotStore)

// WithTTL expires a slot ttl after its last write.
func WithTTL(ttl time.Duration) Option {
	return func(s *SlotStore) {
		s.ttl = ttl
	}
}

func NewSlotStore(client *goredis.Client, opts ...Option) *SlotStore {
	s := &SlotStore{client: client}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *SlotStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SlotStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, s.ttl).Err()
}

func (s *SlotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
