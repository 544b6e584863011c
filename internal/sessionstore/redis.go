package sessionstore

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const redisTimeout = 3 * time.Second

// RedisStorage is a fiber.Storage backed by redis. All keys are prefixed,
// so the redis database can be shared with other applications.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

var _ fiber.Storage = (*RedisStorage)(nil)

// NewRedisStorage connects to redis and checks the connection
func NewRedisStorage(opts *redis.Options, prefix string) (*RedisStorage, error) {
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "sessionstore: could not connect to redis")
	}
	return &RedisStorage{
		client: client,
		prefix: prefix,
	}, nil
}

func (s *RedisStorage) key(key string) string {
	return s.prefix + key
}

func timeoutCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), redisTimeout)
}

// Get returns the value stored for key; nil if there is none
func (s *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	c, cancel := timeoutCtx()
	defer cancel()
	val, err := s.client.Get(c, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, errors.WithStack(err)
}

// Set stores val for key; exp of 0 means no expiry
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	c, cancel := timeoutCtx()
	defer cancel()
	return errors.WithStack(s.client.Set(c, s.key(key), val, exp).Err())
}

// Delete deletes the value stored for key
func (s *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	c, cancel := timeoutCtx()
	defer cancel()
	return errors.WithStack(s.client.Del(c, s.key(key)).Err())
}

// Reset deletes all values with the prefix of this storage
func (s *RedisStorage) Reset() error {
	c, cancel := timeoutCtx()
	defer cancel()
	iter := s.client.Scan(c, 0, s.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(c) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return errors.WithStack(err)
	}
	if len(keys) == 0 {
		return nil
	}
	return errors.WithStack(s.client.Del(c, keys...).Err())
}

// Close closes the redis connection
func (s *RedisStorage) Close() error {
	return errors.WithStack(s.client.Close())
}
