package likes

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"board/internal/cache"
	"board/internal/observability"

	"github.com/redis/go-redis/v9"
)

// SADD and INCR run in one script so the liker set and the counter never
// diverge.
var incrementScript = redis.NewScript(`
if redis.call("SADD", KEYS[2], ARGV[1]) == 1 then
	return redis.call("INCR", KEYS[1])
end
return -1
`)

var decrementScript = redis.NewScript(`
if redis.call("SREM", KEYS[2], ARGV[1]) == 1 then
	return redis.call("DECR", KEYS[1])
end
return -1
`)

// RedisCounter stores like counts in Redis. CountBatch reads many posts with
// one MGET, which a cluster rejects across slots, so the counter takes a
// single-node client.
type RedisCounter struct {
	client *redis.Client
	prefix string
}

// NewRedisCounter returns a Counter backed by client. prefix namespaces every key.
func NewRedisCounter(client *redis.Client, prefix string) *RedisCounter {
	return &RedisCounter{client: client, prefix: prefix}
}

func (c *RedisCounter) keys(postID uint) []string {
	return []string{cache.LikeCountKey(c.prefix, postID), cache.LikersKey(c.prefix, postID)}
}

func (c *RedisCounter) Increment(ctx context.Context, postID uint, likerID string) (bool, error) {
	n, err := incrementScript.Run(ctx, c.client, c.keys(postID), likerID).Int64()
	if err != nil {
		return false, fmt.Errorf("increment likes for post %d: %w", postID, err)
	}
	return n >= 0, nil
}

func (c *RedisCounter) Decrement(ctx context.Context, postID uint, likerID string) (bool, error) {
	n, err := decrementScript.Run(ctx, c.client, c.keys(postID), likerID).Int64()
	if err != nil {
		return false, fmt.Errorf("decrement likes for post %d: %w", postID, err)
	}
	return n >= 0, nil
}

func (c *RedisCounter) Count(ctx context.Context, postID uint) (int64, error) {
	n, err := c.client.Get(ctx, cache.LikeCountKey(c.prefix, postID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count likes for post %d: %w", postID, err)
	}
	return n, nil
}

func (c *RedisCounter) CountBatch(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	observability.LikeCountBatchSize.Observe(float64(len(postIDs)))

	keys := make([]string, len(postIDs))
	for i, id := range postIDs {
		keys[i] = cache.LikeCountKey(c.prefix, id)
	}
	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("count likes for %d posts: %w", len(postIDs), err)
	}

	for i, id := range postIDs {
		counts[id] = 0
		s, ok := values[i].(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse like count for post %d: %w", id, err)
		}
		counts[id] = n
	}
	return counts, nil
}

func (c *RedisCounter) Forget(ctx context.Context, postID uint) error {
	if err := c.client.Del(ctx, c.keys(postID)...).Err(); err != nil {
		return fmt.Errorf("forget likes for post %d: %w", postID, err)
	}
	return nil
}
