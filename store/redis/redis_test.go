package redis

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentgraph/store"
)

// unreachableClient returns a client pointing at a closed port so error
// paths can be exercised without a running Redis.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewStoreRequiresAddress(t *testing.T) {
	_, err := NewStore(context.Background(), Config{})

	assert.ErrorContains(t, err, "address")
}

func TestStoreKeyPrefix(t *testing.T) {
	client := unreachableClient(t)

	s := NewStoreFromClient(client, "")
	assert.Equal(t, "agentgraph:entities:wo-2024-468", s.key("wo-2024-468"))

	custom := NewStoreFromClient(client, "factory")
	assert.Equal(t, "factory:wo-2024-468", custom.key("wo-2024-468"))
}

func TestLoadConnectionErrorIsNotNotFound(t *testing.T) {
	s := NewStoreFromClient(unreachableClient(t), "")

	_, err := s.Load(context.Background(), "wo-1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
	assert.ErrorContains(t, err, "redis get")
}

func TestSaveConnectionError(t *testing.T) {
	s := NewStoreFromClient(unreachableClient(t), "")

	err := s.Save(context.Background(), store.Entity{ID: "wo-1", Kind: "work_order"})

	assert.ErrorContains(t, err, "redis set")
}
