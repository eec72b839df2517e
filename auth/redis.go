package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"echochamber/types"
)

// RedisConfig configures the Redis-backed repository.
type RedisConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	// KeyPrefix namespaces the two records, e.g. "echochamber".
	KeyPrefix string
}

// RedisRepository stores the user collection and session as two JSON
// values under <prefix>:users and <prefix>:session.
type RedisRepository struct {
	client     *redis.Client
	usersKey   string
	sessionKey string
}

// NewRedisRepositoryFromEnv creates a RedisRepository using environment
// variables REDIS_ADDR, REDIS_PASS and AUTH_KEY_PREFIX (optional).
func NewRedisRepositoryFromEnv() (*RedisRepository, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	prefix := os.Getenv("AUTH_KEY_PREFIX")
	if prefix == "" {
		prefix = "echochamber"
	}
	cfg := RedisConfig{Addr: addr, Password: os.Getenv("REDIS_PASS"), KeyPrefix: prefix}
	return NewRedisRepository(cfg)
}

// NewRedisRepository creates a RedisRepository and verifies connectivity.
func NewRedisRepository(cfg RedisConfig) (*RedisRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &RedisRepository{
		client:     client,
		usersKey:   cfg.KeyPrefix + ":users",
		sessionKey: cfg.KeyPrefix + ":session",
	}, nil
}

func (r *RedisRepository) LoadUsers(ctx context.Context) ([]types.User, error) {
	raw, err := r.client.Get(ctx, r.usersKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	var users []types.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *RedisRepository) SaveUsers(ctx context.Context, users []types.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := r.client.Set(ctx, r.usersKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (r *RedisRepository) LoadSession(ctx context.Context) (*types.Session, error) {
	raw, err := r.client.Get(ctx, r.sessionKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var s types.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (r *RedisRepository) SaveSession(ctx context.Context, s types.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.sessionKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisRepository) ClearSession(ctx context.Context) error {
	if err := r.client.Del(ctx, r.sessionKey).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
