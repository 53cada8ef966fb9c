// cache.go
//
// A rotating quote-of-the-day API with anonymous sessions, likes, and bookmarks
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of author-clock.
// author-clock is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// author-clock is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with author-clock.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/localnerve/author-clock/internal/config"
	"github.com/redis/go-redis/v9"
)

// Store is the key/value contract consumed by the quote service.
// Implementations hold JSON-serialized payloads under string keys.
type Store interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Redis is the production Store backed by a redis client.
type Redis struct {
	client *redis.Client
}

// Connect creates a Redis store and verifies connectivity.
func Connect(cfg *config.Config) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	log.Printf("Connected to redis: %s", cfg.RedisAddr)

	return &Redis{client: rdb}, nil
}

// GetJSON reads and unmarshals the value at key into dest. Returns
// false with a nil error on a plain miss.
func (r *Redis) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals value and stores it at key with the given TTL.
func (r *Redis) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes the value at key. Deleting a missing key is not an error.
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Ping verifies the redis connection is alive.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

// DailyQuoteKey builds the cache key for a (language, date) pair.
func DailyQuoteKey(language, isoDate string) string {
	return fmt.Sprintf("daily-quote:%s:%s", language, isoDate)
}
