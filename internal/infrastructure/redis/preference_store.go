// Package redis guarda las preferencias por usuario (payload del widget) en Redis.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/resell-inventory/internal/domain/repository"
)

var _ repository.PreferenceRepository = (*PreferenceStore)(nil)

const keyPrefix = "prefs:"

// NewClient crea el cliente desde una URL redis:// y valida la conexión.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// PreferenceStore un hash por usuario: prefs:{userID} -> {clave: valor}.
type PreferenceStore struct {
	rdb *redis.Client
}

// NewPreferenceStore construye el almacén.
func NewPreferenceStore(rdb *redis.Client) *PreferenceStore {
	return &PreferenceStore{rdb: rdb}
}

func userKey(userID string) string { return keyPrefix + userID }

// Set guarda o reemplaza el valor.
func (s *PreferenceStore) Set(ctx context.Context, userID, key, value string) error {
	if err := s.rdb.HSet(ctx, userKey(userID), key, value).Err(); err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

// Get lee el valor; found=false si no existe.
func (s *PreferenceStore) Get(ctx context.Context, userID, key string) (string, bool, error) {
	v, err := s.rdb.HGet(ctx, userKey(userID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget: %w", err)
	}
	return v, true, nil
}

// Ping para el health check.
func (s *PreferenceStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
