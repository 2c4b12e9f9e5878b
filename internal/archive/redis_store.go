package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	gameKeyPrefix = "chess:game:"
	recentKey     = "chess:games:recent"

	defaultTTL         = 30 * 24 * time.Hour
	defaultRecentLimit = 20
)

// Store 对局存档
type Store interface {
	Save(ctx context.Context, r Record) error
	Load(ctx context.Context, id string) (*Record, error)
	Recent(ctx context.Context, n int) ([]Record, error)
}

// Option configures a RedisStore.
type Option func(*RedisStore)

// WithTTL sets how long a record is kept; 0 keeps it forever.
func WithTTL(ttl time.Duration) Option {
	return func(rs *RedisStore) { rs.ttl = ttl }
}

// WithRecentLimit caps the recent-games list.
func WithRecentLimit(n int) Option {
	return func(rs *RedisStore) {
		if n > 0 {
			rs.limit = n
		}
	}
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	limit  int
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client, opts ...Option) *RedisStore {
	rs := &RedisStore{
		client: client,
		ttl:    defaultTTL,
		limit:  defaultRecentLimit,
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// Save writes the record and pushes its id onto the recent list.
func (rs *RedisStore) Save(ctx context.Context, r Record) error {
	if r.ID == "" {
		return errors.New("archive: record without id")
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("序列化对局失败: %w", err)
	}

	_, err = rs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, gameKeyPrefix+r.ID, data, rs.ttl)
		pipe.LPush(ctx, recentKey, r.ID)
		pipe.LTrim(ctx, recentKey, 0, int64(rs.limit-1))
		return nil
	})
	return err
}

// Load returns nil, nil when the record does not exist or has expired.
func (rs *RedisStore) Load(ctx context.Context, id string) (*Record, error) {
	data, err := rs.client.Get(ctx, gameKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("反序列化对局失败: %w", err)
	}
	return &r, nil
}

// Recent returns up to n records, newest first. Expired ids are skipped.
func (rs *RedisStore) Recent(ctx context.Context, n int) ([]Record, error) {
	if n <= 0 || n > rs.limit {
		n = rs.limit
	}

	ids, err := rs.client.LRange(ctx, recentKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := rs.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, gameKeyPrefix+id)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	records := make([]Record, 0, len(ids))
	for _, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			continue
		}
		var r Record
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}
