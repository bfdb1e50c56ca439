package search

import (
	"context"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisTTL = 30 * 24 * time.Hour

// RedisRecents stores recent searches in a per-user Redis list, surviving
// restarts and shared across instances.
type RedisRecents struct {
	rdb *redis.Client
}

func NewRedisRecents(rdb *redis.Client) *RedisRecents {
	return &RedisRecents{rdb: rdb}
}

func key(userID string) string {
	return "recents:" + userID
}

func (r *RedisRecents) Get(ctx context.Context, userID string) ([]string, error) {
	list, err := r.rdb.LRange(ctx, key(userID), 0, MaxRecent-1).Result()
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

func (r *RedisRecents) Add(ctx context.Context, userID, term string) error {
	if strings.TrimSpace(term) == "" {
		return nil
	}
	current, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	next := push(current, term)

	k := key(userID)
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, k)
	if len(next) > 0 {
		args := make([]interface{}, len(next))
		for i, t := range next {
			args[i] = t
		}
		pipe.RPush(ctx, k, args...)
		pipe.Expire(ctx, k, redisTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisRecents) Clear(ctx context.Context, userID string) error {
	return r.rdb.Del(ctx, key(userID)).Err()
}
