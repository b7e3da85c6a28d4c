package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

func TestAddIsIdempotent(t *testing.T) {
	f := newFixture(t, "development")
	ctx := context.Background()
	user := f.register(t, "a@x.com")

	for i := 0; i < 3; i++ {
		require.NoError(t, f.carts.Add(ctx, user, "prod1"))
	}
	items, err := f.carts.Items(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []string{"prod1"}, items)
	assert.Len(t, f.eventsOf(events.EventCartItemAdded), 1)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	f := newFixture(t, "development")
	ctx := context.Background()
	user := f.register(t, "a@x.com")

	require.NoError(t, f.carts.Remove(ctx, user, "prod1"))
	items, err := f.carts.Items(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, f.eventsOf(events.EventCartItemRemoved))
}

func TestAddThenRemove(t *testing.T) {
	f := newFixture(t, "development")
	ctx := context.Background()
	user := f.register(t, "a@x.com")

	require.NoError(t, f.carts.Add(ctx, user, "prod1"))
	require.NoError(t, f.carts.Add(ctx, user, "prod2"))
	require.NoError(t, f.carts.Remove(ctx, user, "prod1"))

	items, err := f.carts.Items(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []string{"prod2"}, items)

	removed := f.eventsOf(events.EventCartItemRemoved)
	require.Len(t, removed, 1)
	assert.Equal(t, events.CartItemPayload{UserID: user.ID(), ProductID: "prod1"}, removed[0].Payload)
}

func TestCartGate(t *testing.T) {
	f := newFixture(t, "development")
	ctx := context.Background()
	admin := domain.AdminIdentity("admin-id", "root@x.com")

	err := f.carts.Add(ctx, admin, "prod1")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
	err = f.carts.Remove(ctx, admin, "prod1")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
	_, err = f.carts.Items(ctx, admin)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	err = f.carts.Add(ctx, domain.Anonymous(), "prod1")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))
}

func TestAddValidation(t *testing.T) {
	f := newFixture(t, "development")
	ctx := context.Background()
	user := f.register(t, "a@x.com")

	err := f.carts.Add(ctx, user, "  ")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	err = f.carts.Add(ctx, user, "missing")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestMutationForVanishedUser(t *testing.T) {
	f := newFixture(t, "development")
	ctx := context.Background()
	user := f.register(t, "a@x.com")
	f.store.DeleteUser(user.ID())

	err := f.carts.Add(ctx, user, "prod1")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	err = f.carts.Remove(ctx, user, "prod1")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestConcurrentAddsLandOnce(t *testing.T) {
	f := newFixture(t, "development")
	ctx := context.Background()
	user := f.register(t, "a@x.com")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.carts.Add(ctx, user, "prod1"))
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"prod1"}, f.store.Cart(user.ID()))
	assert.Len(t, f.eventsOf(events.EventCartItemAdded), 1)
}
