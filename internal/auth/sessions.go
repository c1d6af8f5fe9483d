package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"appeal-archive/internal/db"
)

// SessionStore maps opaque tokens to user ids. db.Store implements it over
// the sessions table; RedisSessions keeps them in Redis.
type SessionStore interface {
	CreateSession(ctx context.Context, token string, userID int64, ttl time.Duration) error
	SessionUser(ctx context.Context, token string) (int64, error)
	DeleteSession(ctx context.Context, token string) error
}

const redisKeyPrefix = "archive:session:"

type RedisSessions struct {
	rdb *redis.Client
}

func NewRedisSessions(rdb *redis.Client) *RedisSessions {
	return &RedisSessions{rdb: rdb}
}

// DialRedis parses a redis:// URL and checks the server answers.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func (s *RedisSessions) CreateSession(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, redisKeyPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *RedisSessions) SessionUser(ctx context.Context, token string) (int64, error) {
	val, err := s.rdb.Get(ctx, redisKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, db.ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get session: %w", err)
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("get session: corrupt value %q", val)
	}
	return id, nil
}

func (s *RedisSessions) DeleteSession(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
