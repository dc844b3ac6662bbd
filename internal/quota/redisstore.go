package quota

import (
	"context"
	"fmt"

	"github.com/kapu/creator-pulse-go/internal/constants"
	"github.com/kapu/creator-pulse-go/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore backs the quota tracker with an atomic counter per day and
// platform. Unlike the file store it is safe across processes; keys expire on
// their own, so no explicit purge is needed.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func quotaKey(date, platform string) string {
	return fmt.Sprintf("quota:%s:%s", date, platform)
}

func (rs *RedisStore) Usage(ctx context.Context, date, platform string) (int, error) {
	used, err := rs.client.Get(ctx, quotaKey(date, platform)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, errors.NewPersistenceError("failed to read quota counter", "get", quotaKey(date, platform), err)
	}
	return used, nil
}

func (rs *RedisStore) Increment(ctx context.Context, date, platform string) error {
	key := quotaKey(date, platform)

	pipe := rs.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, constants.QuotaDefaults.RedisKeyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.NewPersistenceError("failed to increment quota counter", "incr", key, err)
	}
	return nil
}
