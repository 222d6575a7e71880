// Package redis wraps the shared client used for short-lived state:
// computed timetable and qibla caches, board pairing codes and per-user
// search history lists.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

func InitRedis(redisAddress, redisUsername, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// Enabled reports whether a client has been configured. Handlers treat
// redis as a best-effort layer and skip caching when it's absent.
func Enabled() bool {
	return Rdb != nil
}

func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if !Enabled() {
		return
	}
	if err := Rdb.Set(ctx, key, value, expiration).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set redis key")
	}
}

// Get fetches a plain string value; ok is false on miss or error.
func Get(ctx context.Context, key string) (string, bool) {
	if !Enabled() {
		return "", false
	}
	val, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Error().Err(err).Str("key", key).Msg("failed to get redis key")
		}
		return "", false
	}
	return val, true
}

func Del(ctx context.Context, keys ...string) {
	if !Enabled() {
		return
	}
	if err := Rdb.Del(ctx, keys...).Err(); err != nil {
		log.Error().Err(err).Strs("keys", keys).Msg("failed to delete redis keys")
	}
}

// SetJSON marshals value and stores it under key with a TTL.
func SetJSON(ctx context.Context, key string, value any, expiration time.Duration) {
	if !Enabled() {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal cache value")
		return
	}
	Set(ctx, key, raw, expiration)
}

// GetJSON unmarshals the cached value into dest; ok is false on miss.
func GetJSON(ctx context.Context, key string, dest any) bool {
	raw, ok := Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cache value")
		return false
	}
	return true
}

// PushHistory prepends entry to a capped list, deduplicating so a
// repeated entry moves to the front instead of appearing twice.
func PushHistory(ctx context.Context, key, entry string, max int64) {
	if !Enabled() {
		return
	}
	pipe := Rdb.Pipeline()
	pipe.LRem(ctx, key, 0, entry)
	pipe.LPush(ctx, key, entry)
	pipe.LTrim(ctx, key, 0, max-1)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to push history entry")
	}
}

// History returns the list newest first.
func History(ctx context.Context, key string) []string {
	if !Enabled() {
		return nil
	}
	entries, err := Rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to read history")
		return nil
	}
	return entries
}
