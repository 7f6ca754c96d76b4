package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the shared TagCache backend for multi-instance deployments.
// Tag membership lives in redis sets under <prefix>tag:<tag> so invalidation
// stays a two step SMembers + Del without scanning the keyspace
type Redis struct {
	client *redis.Client
	prefix string
}

// RedisConfig configures the redis backend
type RedisConfig struct {
	URL    string // redis://[:password@]host:port/db
	Prefix string
}

// NewRedis dials redis and verifies connectivity before returning
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &Redis{client: client, prefix: cfg.Prefix}, nil
}

func (r *Redis) key(k string) string    { return r.prefix + k }
func (r *Redis) tagKey(t string) string { return r.prefix + "tag:" + t }

// Get implements TagCache
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set implements TagCache
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(key), value, ttl)
	for _, tag := range tags {
		pipe.SAdd(ctx, r.tagKey(tag), key)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Delete implements TagCache
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// InvalidateTag implements TagCache
func (r *Redis) InvalidateTag(ctx context.Context, tag string) (int, error) {
	members, err := r.client.SMembers(ctx, r.tagKey(tag)).Result()
	if err != nil {
		return 0, err
	}
	if len(members) == 0 {
		return 0, r.client.Del(ctx, r.tagKey(tag)).Err()
	}
	keys := make([]string, 0, len(members)+1)
	for _, m := range members {
		keys = append(keys, r.key(m))
	}
	keys = append(keys, r.tagKey(tag))
	n, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, err
	}
	// the tag set itself is not a cache entry
	evicted := int(n) - 1
	if evicted < 0 {
		evicted = 0
	}
	return evicted, nil
}

// Close implements TagCache
func (r *Redis) Close() error { return r.client.Close() }
