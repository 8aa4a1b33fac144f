package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/investify-pos/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorRepository(t *testing.T) {
	t.Parallel()

	alice := entity.Operator{ID: uuid.New(), Name: "Alice", Roles: []string{"cashier"}}
	repo := NewOperatorRepository(alice)
	ctx := context.Background()

	got, err := repo.GetByName(ctx, " alice ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice.ID, got.ID)

	got, err = repo.GetByName(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, got)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = repo.GetByName(cancelled, "alice")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResponseStore(t *testing.T) {
	t.Parallel()

	store := NewResponseStore()
	ctx := context.Background()
	operator := uuid.New()
	now := time.Now()

	claim := func(key string, ttl time.Duration) *entity.StoredResponse {
		return &entity.StoredResponse{Key: key, OperatorID: operator, Endpoint: "POST /payments", ExpiresAt: now.Add(ttl)}
	}

	held, err := store.Reserve(ctx, claim("live", time.Hour), now)
	require.NoError(t, err)
	assert.Nil(t, held, "the first claim wins")

	held, err = store.Reserve(ctx, claim("live", time.Hour), now)
	require.NoError(t, err)
	require.NotNil(t, held)
	assert.True(t, held.Pending)
	assert.False(t, held.StoredAt.IsZero())

	body := []byte(`{"success":true}`)
	completed := claim("live", time.Hour)
	completed.Status, completed.Body = 201, body
	require.NoError(t, store.Save(ctx, completed))
	body[0] = 'X'

	held, err = store.Reserve(ctx, claim("live", time.Hour), now)
	require.NoError(t, err)
	require.NotNil(t, held)
	assert.False(t, held.Pending)
	assert.Equal(t, 201, held.Status)
	assert.Equal(t, `{"success":true}`, string(held.Body), "the store keeps its own copy")

	require.NoError(t, store.Release(ctx, operator, "live"))
	held, err = store.Reserve(ctx, claim("live", time.Hour), now)
	require.NoError(t, err)
	assert.NotNil(t, held, "completed responses survive Release")

	other := claim("live", time.Hour)
	other.OperatorID = uuid.New()
	held, err = store.Reserve(ctx, other, now)
	require.NoError(t, err)
	assert.Nil(t, held, "keys are scoped to the operator")

	_, err = store.Reserve(ctx, claim("failed", time.Hour), now)
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, operator, "failed"))
	held, err = store.Reserve(ctx, claim("failed", time.Hour), now)
	require.NoError(t, err)
	assert.Nil(t, held, "a released claim frees the key")

	_, err = store.Reserve(ctx, claim("stale", -time.Second), now)
	require.NoError(t, err)
	held, err = store.Reserve(ctx, claim("stale", time.Hour), now)
	require.NoError(t, err)
	assert.Nil(t, held, "an expired entry does not hold its key")

	purged, err := store.Purge(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 4, purged)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = store.Reserve(cancelled, claim("late", time.Hour), now)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = store.Purge(cancelled, now)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResponseStore_ConcurrentReserve(t *testing.T) {
	t.Parallel()

	store := NewResponseStore()
	operator := uuid.New()
	now := time.Now()

	const workers = 16
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			held, err := store.Reserve(context.Background(), &entity.StoredResponse{
				Key: "pay-1", OperatorID: operator, Endpoint: "POST /payments", ExpiresAt: now.Add(time.Minute),
			}, now)
			if err == nil && held == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestStoredResponse_ExpiredAt(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	resp := entity.StoredResponse{ExpiresAt: at}
	assert.False(t, resp.ExpiredAt(at.Add(-time.Nanosecond)))
	assert.True(t, resp.ExpiredAt(at))
}
