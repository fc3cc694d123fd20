package data

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const ratePrefix = "ratelimit:"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// RateLimitAllow counts one hit for the key within the window and reports
// whether the caller is still under the limit. Fails open on Redis errors so
// an unavailable cache never blocks verification traffic.
func RateLimitAllow(ctx context.Context, rdb *redis.Client, key string, limit int64, window time.Duration) (bool, error) {
	full := ratePrefix + key
	n, err := rdb.Incr(ctx, full).Result()
	if err != nil {
		return true, err
	}
	if n == 1 {
		if err := rdb.Expire(ctx, full, window).Err(); err != nil {
			return true, err
		}
	}
	return n <= limit, nil
}
