// redis — хранилище сессии в Redis для общих/киосковых профилей,
// где несколько экземпляров клиента делят одну сессию.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/douglas-germano/fitgen-sub000/internal/storage"
)

// Store — хранилище поверх Redis-клиента.
type Store struct {
	rdb *redis.Client
}

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
func New(ctx context.Context, redisURL string) (*Store, error) {
	const op = "storage.redis.New"

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{rdb: rdb}, nil
}

func key(k string) string { return storage.Prefix + k }

func (s *Store) Set(ctx context.Context, k, value string) error {
	const op = "storage.redis.Set"

	if err := s.rdb.Set(ctx, key(k), value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, k string) (string, error) {
	const op = "storage.redis.Get"

	v, err := s.rdb.Get(ctx, key(k)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrNotFound
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

func (s *Store) Delete(ctx context.Context, k string) error {
	const op = "storage.redis.Delete"

	if err := s.rdb.Del(ctx, key(k)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Clear удаляет только ключи под storage.Prefix (SCAN + DEL).
func (s *Store) Clear(ctx context.Context) error {
	const op = "storage.redis.Clear"

	iter := s.rdb.Scan(ctx, 0, storage.Prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) Close() error { return s.rdb.Close() }
