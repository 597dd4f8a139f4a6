// Package redis provides a Redis-backed EntityStore for deployments that
// need entity state shared across workflow hosts.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/agentgraph/store"
)

// Config describes the Redis connection parameters.
type Config struct {
	Address  string
	Password string
	DB       int
	// Prefix namespaces entity keys. Defaults to "agentgraph:entities".
	Prefix string
}

// Store persists entities as JSON values under a key prefix.
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore connects to Redis and verifies the connection with a ping.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address must not be empty")
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "agentgraph:entities"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connect: %w", err)
	}

	return &Store{client: client, prefix: prefix}, nil
}

// NewStoreFromClient wraps an existing Redis client.
func NewStoreFromClient(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "agentgraph:entities"
	}
	return &Store{client: client, prefix: prefix}
}

// Load implements store.EntityStore.
func (s *Store) Load(ctx context.Context, id string) (store.Entity, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return store.Entity{}, store.ErrNotFound
	}
	if err != nil {
		return store.Entity{}, fmt.Errorf("redis get: %w", err)
	}

	var e store.Entity
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return store.Entity{}, fmt.Errorf("decode entity %s: %w", id, err)
	}
	return e, nil
}

// Save implements store.EntityStore.
func (s *Store) Save(ctx context.Context, e store.Entity) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode entity %s: %w", e.ID, err)
	}
	if err := s.client.Set(ctx, s.key(e.ID), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close releases the underlying client connection.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(id string) string { return s.prefix + ":" + id }
