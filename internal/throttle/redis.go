package throttle

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisLimiter is a fixed-window counter shared by every instance using the same Redis
type RedisLimiter struct {
	client redis.Cmdable
	limit  int
	period time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisLimiter allows limit requests per key in each period
func NewRedisLimiter(client redis.Cmdable, limit int, period time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, period: period, prefix: "throttle", now: time.Now}
}

func (l *RedisLimiter) windowKey(key string) string {
	start := l.now().Truncate(l.period).Unix()
	return l.prefix + ":" + key + ":" + strconv.FormatInt(start, 10)
}

// Allow counts one request for key in the current window
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	wk := l.windowKey(key)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, wk)
	pipe.Expire(ctx, wk, l.period)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("throttle: redis incr %s: %w", wk, err)
	}
	return incr.Val() <= int64(l.limit), nil
}
