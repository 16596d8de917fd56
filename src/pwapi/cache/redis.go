package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "pwcache:"

// Redis backs the response cache with a shared redis instance so several
// proxy processes can share one memoization window. Expiry is delegated to
// redis key TTLs, so SweepExpired is a no-op here.
type Redis struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (r *Redis) Get(ctx context.Context, sig string) ([]byte, bool) {
	body, err := r.rdb.Get(ctx, redisPrefix+sig).Bytes()
	if err != nil {
		// redis.Nil and real failures alike degrade to a miss
		return nil, false
	}
	return body, true
}

func (r *Redis) Set(ctx context.Context, sig string, body []byte, ttl time.Duration) {
	_ = r.rdb.Set(ctx, redisPrefix+sig, body, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, sig string) {
	_ = r.rdb.Del(ctx, redisPrefix+sig).Err()
}

func (r *Redis) SweepExpired(ctx context.Context) int { return 0 }
