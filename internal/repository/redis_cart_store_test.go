package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront/internal/domain"
)

// knownUsers answers GetByID for a fixed set of ids.
type knownUsers map[string]bool

func (k knownUsers) Create(context.Context, *domain.User) error { return nil }

func (k knownUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if !k[id] {
		return nil, pgx.ErrNoRows
	}
	return &domain.User{ID: id}, nil
}

func (k knownUsers) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func newTestRedisCartStore(t *testing.T) (*redisCartStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	store := NewRedisCartStore(client, knownUsers{"u1": true, "u2": true}, "test-cart:").(*redisCartStore)
	return store, mr
}

func TestRedisCartStore_AddIsIdempotent(t *testing.T) {
	store, _ := newTestRedisCartStore(t)
	ctx := context.Background()

	added, err := store.AddItem(ctx, "u1", "prod1")
	require.NoError(t, err)
	assert.True(t, added)

	for i := 0; i < 3; i++ {
		added, err = store.AddItem(ctx, "u1", "prod1")
		require.NoError(t, err)
		assert.False(t, added)
	}

	items, err := store.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"prod1"}, items)
}

func TestRedisCartStore_PreservesInsertionOrder(t *testing.T) {
	store, _ := newTestRedisCartStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	for _, id := range []string{"zeta", "alpha", "mid"} {
		_, err := store.AddItem(ctx, "u1", id)
		require.NoError(t, err)
	}

	items, err := store.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, items)
}

func TestRedisCartStore_RemoveIsTolerant(t *testing.T) {
	store, mr := newTestRedisCartStore(t)
	ctx := context.Background()

	removed, err := store.RemoveItem(ctx, "u1", "missing")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = store.AddItem(ctx, "u1", "prod1")
	require.NoError(t, err)
	removed, err = store.RemoveItem(ctx, "u1", "prod1")
	require.NoError(t, err)
	assert.True(t, removed)

	items, err := store.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.False(t, mr.Exists("test-cart:u1"))
}

func TestRedisCartStore_ConcurrentAddsApplyOnce(t *testing.T) {
	store, _ := newTestRedisCartStore(t)
	ctx := context.Background()

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			added, err := store.AddItem(ctx, "u1", "prod1")
			assert.NoError(t, err)
			if added {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, applied)
	items, err := store.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"prod1"}, items)
}

func TestRedisCartStore_SeparatesUsers(t *testing.T) {
	store, _ := newTestRedisCartStore(t)
	ctx := context.Background()

	_, err := store.AddItem(ctx, "u1", "prod1")
	require.NoError(t, err)

	items, err := store.Items(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRedisCartStore_UnknownUser(t *testing.T) {
	store, mr := newTestRedisCartStore(t)
	ctx := context.Background()

	_, err := store.AddItem(ctx, "ghost", "prod1")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	_, err = store.RemoveItem(ctx, "ghost", "prod1")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	_, err = store.Items(ctx, "ghost")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.False(t, mr.Exists("test-cart:ghost"))
}
