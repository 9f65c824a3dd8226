package dedup

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Redis is the multi-replica store: SET NX with expiry makes MarkSeen an
// atomic first-writer-wins across all instances.
type Redis struct {
	redisdb *redis.Client
	ttl     time.Duration
}

func NewRedis(cfg RedisConfig) *Redis {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}

	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &Redis{redisdb: redisdb, ttl: cfg.TTL}
}

func (s *Redis) MarkSeen(ctx context.Context, ref string) (bool, error) {
	return s.redisdb.SetNX(ctx, "ticket:ref:"+ref, 1, s.ttl).Result()
}

func (s *Redis) Forget(ctx context.Context, ref string) error {
	return s.redisdb.Del(ctx, "ticket:ref:"+ref).Err()
}

// this ping function checks redis connectivity

func (s *Redis) Ping(ctx context.Context) error {
	return s.redisdb.Ping(ctx).Err()
}

// this closes the client

func (s *Redis) Close() error {
	return s.redisdb.Close()
}
