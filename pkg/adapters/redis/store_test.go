package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espalier-dev/espalier/pkg/adapters/redis"
	"github.com/espalier-dev/espalier/pkg/domain"
	"github.com/espalier-dev/espalier/pkg/ports"
)

func newTestStore(t *testing.T, opts ...redis.Option) *redis.Store {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	ports.RunWorkflowStoreContract(t, newTestStore(t))
}

func TestRedisStore_PrefixIsolation(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	storeA := redis.NewFromClient(client, redis.WithPrefix("a:"))
	storeB := redis.NewFromClient(client, redis.WithPrefix("b:"))

	ctx := context.Background()
	wf := &domain.Workflow{ID: "wf1", Steps: []domain.Step{{ID: "t", Type: domain.NodeTypeTrigger}}}
	require.NoError(t, storeA.Save(ctx, wf))

	_, err = storeB.Load(ctx, "wf1")
	assert.ErrorIs(t, err, domain.ErrWorkflowNotFound)

	ids, err := storeB.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
