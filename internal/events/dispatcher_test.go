package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront/internal/domain"
)

func TestDispatcherRoutesByType(t *testing.T) {
	d := NewInMemoryDispatcher()
	var added, removed int
	d.Subscribe(EventCartItemAdded, func(context.Context, Event) error { added++; return nil })
	d.Subscribe(EventCartItemRemoved, func(context.Context, Event) error { removed++; return nil })

	actor := domain.UserIdentity("u1", "a@x.com")
	require.NoError(t, d.Publish(context.Background(), New(EventCartItemAdded, actor, CartItemPayload{UserID: "u1", ProductID: "p1"})))
	require.NoError(t, d.Publish(context.Background(), New(EventCartItemAdded, actor, nil)))
	require.NoError(t, d.Publish(context.Background(), New(EventSessionIssued, actor, nil)))

	assert.Equal(t, 2, added)
	assert.Equal(t, 0, removed)
}

func TestDispatcherRunsAllHandlersOnError(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	var calls int
	d.Subscribe(EventSessionIssued, func(context.Context, Event) error { calls++; return boom })
	d.Subscribe(EventSessionIssued, func(context.Context, Event) error { calls++; return nil })

	err := d.Publish(context.Background(), New(EventSessionIssued, domain.AdminIdentity("a1", "root@x.com"), nil))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestNewEventSnapshotsActor(t *testing.T) {
	event := New(EventCartItemRemoved, domain.UserIdentity("u1", "a@x.com"), nil)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
	assert.Equal(t, Actor{Kind: domain.IdentityUser, ID: "u1", Email: "a@x.com"}, event.Actor)
}
