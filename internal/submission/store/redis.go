package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"govdesk/internal/submission/models"
	"govdesk/pkg/platform/sentinel"
)

// DefaultRedisKey holds the collection when no key is configured.
const DefaultRedisKey = "govdesk:submissions"

// RedisAdapter keeps the collection as one JSON string under a single key.
// SET replaces the value atomically; there is no WATCH, so concurrent writers
// in different processes follow the same last-save-wins rule as the file.
type RedisAdapter struct {
	client *redis.Client
	key    string
}

// RedisAdapterOption configures a RedisAdapter instance.
type RedisAdapterOption func(*RedisAdapter)

// WithRedisKey overrides the key the collection lives under.
func WithRedisKey(key string) RedisAdapterOption {
	return func(a *RedisAdapter) {
		if key != "" {
			a.key = key
		}
	}
}

// NewRedisAdapter constructs a Redis-backed adapter.
func NewRedisAdapter(client *redis.Client, opts ...RedisAdapterOption) *RedisAdapter {
	a := &RedisAdapter{client: client, key: DefaultRedisKey}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

func (a *RedisAdapter) Load(ctx context.Context) ([]*models.Submission, error) {
	data, err := a.client.Get(ctx, a.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []*models.Submission{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: redis get %s: %v", sentinel.ErrIO, a.key, err)
	}
	subs, err := decodeCollection(data)
	if err != nil {
		return nil, fmt.Errorf("load redis key %s: %w", a.key, err)
	}
	return subs, nil
}

func (a *RedisAdapter) Save(ctx context.Context, subs []*models.Submission) error {
	data, err := encodeCollection(subs)
	if err != nil {
		return err
	}
	if err := a.client.Set(ctx, a.key, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: redis set %s: %v", sentinel.ErrIO, a.key, err)
	}
	return nil
}
