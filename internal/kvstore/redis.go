package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient dials lazily; connectivity errors surface on first use.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

type redisStore struct {
	rdb redis.Cmdable
}

// NewRedis stores each key as a plain string value without expiry.
func NewRedis(rdb redis.Cmdable) Store {
	return &redisStore{rdb: rdb}
}

func (r *redisStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (r *redisStore) Save(ctx context.Context, key string, data []byte) error {
	return r.rdb.Set(ctx, key, data, 0).Err()
}

func (r *redisStore) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
