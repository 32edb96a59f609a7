package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"eventticketing/internal/domain"
)

const (
	defaultRedisTTL   = 10 * time.Second
	defaultRedisRetry = 25 * time.Millisecond
	redisKeyPrefix    = "eventticketing:lock:"
)

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker shared by every instance talking to the same Redis.
// Keys expire after ttl so a crashed holder cannot block an event forever.
type Redis struct {
	client   redis.Cmdable
	logger   *slog.Logger
	ttl      time.Duration
	retry    time.Duration
	newToken func() string
}

// NewRedis returns a Redis locker. Zero ttl or retry use the defaults.
func NewRedis(client redis.Cmdable, logger *slog.Logger, ttl, retry time.Duration) *Redis {
	if ttl <= 0 {
		ttl = defaultRedisTTL
	}
	if retry <= 0 {
		retry = defaultRedisRetry
	}
	return &Redis{
		client:   client,
		logger:   logger,
		ttl:      ttl,
		retry:    retry,
		newToken: uuid.NewString,
	}
}

// Lock polls SET NX until the key is acquired or ctx is done.
func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	k := redisKeyPrefix + key
	token := r.newToken()
	for {
		ok, err := r.client.SetNX(ctx, k, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", domain.ErrLockTimeout, key)
		case <-time.After(r.retry):
		}
	}
	return func() {
		// The caller's ctx may already be done; release must still happen.
		if err := releaseScript.Run(context.Background(), r.client, []string{k}, token).Err(); err != nil {
			r.logger.Error("release lock", "key", key, "err", err)
		}
	}, nil
}
