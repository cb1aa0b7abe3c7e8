package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const viewerKeyPrefix = "stream:viewers:"

// viewerKeyTTL bounds counter lifetime so abandoned streams do not leak keys.
const viewerKeyTTL = 6 * time.Hour

// ViewerCounter tracks live viewer presence per stream.
type ViewerCounter interface {
	Join(ctx context.Context, callID string) (int64, error)
	Leave(ctx context.Context, callID string) (int64, error)
	Count(ctx context.Context, callID string) (int64, error)
	Clear(ctx context.Context, callID string) error
}

// RedisViewerCounter implements ViewerCounter on go-redis counters.
type RedisViewerCounter struct {
	redis *Redis
}

// NewRedisViewerCounter builds a counter over the shared Redis client.
func NewRedisViewerCounter(redis *Redis) *RedisViewerCounter {
	return &RedisViewerCounter{redis: redis}
}

func (v *RedisViewerCounter) client() error {
	if v.redis == nil || v.redis.Client == nil {
		return errors.New("redis client not configured")
	}
	return nil
}

// Join increments the stream's viewer count and refreshes the key TTL.
func (v *RedisViewerCounter) Join(ctx context.Context, callID string) (int64, error) {
	if err := v.client(); err != nil {
		return 0, err
	}
	key := viewerKeyPrefix + callID
	count, err := v.redis.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	v.redis.Client.Expire(ctx, key, viewerKeyTTL)
	return count, nil
}

// Leave decrements the stream's viewer count, flooring at zero.
func (v *RedisViewerCounter) Leave(ctx context.Context, callID string) (int64, error) {
	if err := v.client(); err != nil {
		return 0, err
	}
	key := viewerKeyPrefix + callID
	count, err := v.redis.Client.Decr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count < 0 {
		v.redis.Client.Set(ctx, key, 0, viewerKeyTTL)
		count = 0
	}
	return count, nil
}

// Count reads the current viewer count; a missing key means zero.
func (v *RedisViewerCounter) Count(ctx context.Context, callID string) (int64, error) {
	if err := v.client(); err != nil {
		return 0, err
	}
	count, err := v.redis.Client.Get(ctx, viewerKeyPrefix+callID).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Clear removes the stream's counter key.
func (v *RedisViewerCounter) Clear(ctx context.Context, callID string) error {
	if err := v.client(); err != nil {
		return err
	}
	return v.redis.Client.Del(ctx, viewerKeyPrefix+callID).Err()
}
