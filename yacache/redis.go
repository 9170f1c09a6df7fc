package yacache

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaTgBotKit/yabackoff"
	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotKit/yalogger"
	"github.com/redis/go-redis/v9"
)

// Redis wraps a *redis.Client and implements Cache.
type Redis struct {
	client *redis.Client
}

// NewRedis turns an already configured *redis.Client into a Redis cache.
//
// Example:
//
//	client, err := yacache.NewRedisClient(ctx, "localhost:6379", "", 1, log)
//	cache := yacache.NewRedis(client)
func NewRedis(client *redis.Client) *Redis {
	return &Redis{
		client: client,
	}
}

// Connection attempts made by NewRedisClient before giving up.
const (
	connectAttempts        = 5
	connectInitialInterval = 200 * time.Millisecond
	connectMaxInterval     = 3 * time.Second
)

// NewRedisClient dials Redis at addr and PINGs it, retrying with exponential
// back-off until the ping succeeds, the attempts run out, or ctx is done.
//
// Example:
//
//	client, err := yacache.NewRedisClient(ctx, "127.0.0.1:6379", "", 0, log)
//	if err != nil {
//		log.Fatalf("Failed to connect redis: %v", err)
//	}
func NewRedisClient(
	ctx context.Context,
	addr string,
	password string,
	db int,
	log yalogger.Logger,
) (*redis.Client, yaerrors.Error) {
	if log == nil {
		log = yalogger.NewBaseLogger(nil).NewLogger()
	}

	log.Infof("Redis connecting to addr %s", addr)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	backoff := yabackoff.NewExponential(connectInitialInterval, 2, connectMaxInterval)

	err := yabackoff.Retry(ctx, connectAttempts, &backoff, func(ctx context.Context) error {
		err := client.Ping(ctx).Err()
		if err != nil {
			log.Warnf("Redis ping to %s failed: %v", addr, err)
		}

		return err
	})
	if err != nil {
		_ = client.Close()

		return nil, yaerrors.FromError(
			http.StatusServiceUnavailable,
			err,
			"[CACHE] failed to connect redis",
		)
	}

	log.Infof("Redis connected to addr %s", addr)

	return client, nil
}

// Raw exposes the underlying client for commands outside the Cache API.
func (r *Redis) Raw() *redis.Client {
	return r.client
}

func (r *Redis) SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, yaerrors.Error) {
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[REDIS] failed `SETNX` for `"+key+"`",
		)
	}

	return ok, nil
}

func (r *Redis) Set(ctx context.Context, key string, value string, ttl time.Duration) yaerrors.Error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[REDIS] failed `SET` for `"+key+"`",
		)
	}

	return nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, yaerrors.Error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", yaerrors.FromError(
				http.StatusNotFound,
				ErrCacheKeyNotFound,
				"[REDIS] failed to get `"+key+"`",
			)
		}

		return "", yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[REDIS] failed `GET` for `"+key+"`",
		)
	}

	return value, nil
}

func (r *Redis) Exists(ctx context.Context, keys ...string) (bool, yaerrors.Error) {
	count, err := r.client.Exists(ctx, keys...).Result()
	if err != nil {
		return false, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[REDIS] failed `EXISTS`",
		)
	}

	return count == int64(len(keys)), nil
}

func (r *Redis) Del(ctx context.Context, key string) yaerrors.Error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[REDIS] failed `DEL` for `"+key+"`",
		)
	}

	return nil
}

func (r *Redis) Ping(ctx context.Context) yaerrors.Error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return yaerrors.FromError(
			http.StatusServiceUnavailable,
			err,
			"[REDIS] ping failed",
		)
	}

	return nil
}

func (r *Redis) Close() yaerrors.Error {
	if err := r.client.Close(); err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[REDIS] failed to close client",
		)
	}

	return nil
}
