package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/stagex-boxoffice/internal/config"
	"github.com/iliyamo/stagex-boxoffice/internal/seatmap"
)

// RedisStore keeps sessions as JSON under <prefix>:<id>, so every
// instance behind a load balancer sees the same editor state.
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore stores sessions in rdb under cfg.Prefix with a sliding
// cfg.TTL.
func NewRedisStore(rdb *redis.Client, cfg config.SessionConfig) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: cfg.TTL, prefix: cfg.Prefix}
}

func (r *RedisStore) key(id string) string { return r.prefix + ":" + id }

func (r *RedisStore) Create(ctx context.Context, s seatmap.Session) (string, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	id := newID()
	ok, err := r.rdb.SetNX(ctx, r.key(id), body, r.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	if !ok {
		return "", errors.New("store session: id collision")
	}
	return id, nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (seatmap.Session, error) {
	if !validID(id) {
		return seatmap.Session{}, ErrNotFound
	}
	// GETEX reads and slides the expiry in one round trip
	body, err := r.rdb.GetEx(ctx, r.key(id), r.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return seatmap.Session{}, ErrNotFound
	}
	if err != nil {
		return seatmap.Session{}, fmt.Errorf("load session: %w", err)
	}
	var s seatmap.Session
	if err := json.Unmarshal(body, &s); err != nil {
		return seatmap.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

func (r *RedisStore) Put(ctx context.Context, id string, s seatmap.Session) error {
	if !validID(id) {
		return ErrNotFound
	}
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	// XX: never resurrect a session that expired mid-request
	ok, err := r.rdb.SetXX(ctx, r.key(id), body, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if err := r.rdb.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
