package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"govdesk/internal/notification/models"
	"govdesk/pkg/domain"
	"govdesk/pkg/platform/sentinel"
)

const defaultRedisPrefix = "govdesk:notifications"

// RedisStore keeps each notification as a hash field keyed by id, plus one
// list of ids per recipient in insertion order.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisStoreOption configures a RedisStore instance.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix namespaces every key the store touches.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

func NewRedis(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, prefix: defaultRedisPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *RedisStore) itemsKey() string {
	return s.prefix + ":items"
}

func (s *RedisStore) userKey(email string) string {
	return s.prefix + ":user:" + domain.NormalizeEmail(email)
}

func (s *RedisStore) Add(ctx context.Context, n *models.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.itemsKey(), n.ID.String(), data)
		pipe.RPush(ctx, s.userKey(n.UserEmail), n.ID.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: add notification: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *RedisStore) ListByUser(ctx context.Context, email string) ([]*models.Notification, error) {
	ids, err := s.client.LRange(ctx, s.userKey(email), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: list notification ids: %v", sentinel.ErrUnavailable, err)
	}
	if len(ids) == 0 {
		return []*models.Notification{}, nil
	}
	raw, err := s.client.HMGet(ctx, s.itemsKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: load notifications: %v", sentinel.ErrUnavailable, err)
	}
	out := make([]*models.Notification, 0, len(raw))
	for _, v := range raw {
		str, ok := v.(string)
		if !ok {
			continue // id listed but item removed
		}
		var n models.Notification
		if err := json.Unmarshal([]byte(str), &n); err != nil {
			return nil, fmt.Errorf("%w: decode notification: %v", sentinel.ErrCorrupt, err)
		}
		out = append(out, &n)
	}
	return newestFirst(out), nil
}

// MarkRead flags one notification as read under WATCH so a concurrent
// ClearAll cannot resurrect it.
func (s *RedisStore) MarkRead(ctx context.Context, id domain.NotificationID) error {
	key := s.itemsKey()
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		str, err := tx.HGet(ctx, key, id.String()).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		var n models.Notification
		if err := json.Unmarshal([]byte(str), &n); err != nil {
			return fmt.Errorf("%w: decode notification: %v", sentinel.ErrCorrupt, err)
		}
		if n.Read {
			return nil
		}
		n.Read = true
		data, err := json.Marshal(&n)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, id.String(), data)
			return nil
		})
		return err
	}, key)
	if err != nil && !errors.Is(err, sentinel.ErrCorrupt) {
		return fmt.Errorf("%w: mark read: %v", sentinel.ErrUnavailable, err)
	}
	return err
}

func (s *RedisStore) ClearAll(ctx context.Context, email string) (int, error) {
	userKey := s.userKey(email)
	ids, err := s.client.LRange(ctx, userKey, 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: list notification ids: %v", sentinel.ErrUnavailable, err)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	var removed *redis.IntCmd
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.HDel(ctx, s.itemsKey(), ids...)
		pipe.Del(ctx, userKey)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: clear notifications: %v", sentinel.ErrUnavailable, err)
	}
	return int(removed.Val()), nil
}
