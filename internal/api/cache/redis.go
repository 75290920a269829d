package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache backed by a Redis server, for deployments running more
// than one API instance. Every namespace keeps a SET of its keys so
// invalidation deletes exactly the namespace's entries.
//
// Entries expire via TTL; index members for expired entries linger until the
// next invalidation, which is harmless because DEL on an absent key is a
// no-op.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis connects to the Redis server at url (redis:// form) and verifies
// connectivity. A non-positive ttl falls back to DefaultTTL.
func NewRedis(url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Redis{rdb: rdb, ttl: ttl}, nil
}

func entryKey(ns Namespace, key string) string {
	return "cache:" + string(ns) + ":" + key
}

func indexKey(ns Namespace) string {
	return "cacheidx:" + string(ns)
}

func (r *Redis) Get(ctx context.Context, ns Namespace, key string) ([]byte, bool, error) {
	payload, err := r.rdb.Get(ctx, entryKey(ns, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (r *Redis) Put(ctx context.Context, ns Namespace, key string, payload []byte) error {
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, entryKey(ns, key), payload, r.ttl)
	pipe.SAdd(ctx, indexKey(ns), entryKey(ns, key))
	_, err := pipe.Exec(ctx)
	return err
}

func (r *Redis) InvalidateNamespace(ctx context.Context, namespaces ...Namespace) error {
	for _, ns := range namespaces {
		keys, err := r.rdb.SMembers(ctx, indexKey(ns)).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if err := r.rdb.Del(ctx, indexKey(ns)).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
