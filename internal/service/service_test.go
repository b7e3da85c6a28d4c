package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/config"
	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/observability"
	"github.com/spec-kit/storefront/internal/testutil"
)

type fixture struct {
	store      *testutil.Store
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	auth       *AuthService
	carts      *CartService

	mu        sync.Mutex
	published []events.Event
}

func newFixture(t *testing.T, env string) *fixture {
	t.Helper()
	tokens, err := auth.NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	f := &fixture{
		store:      testutil.NewStore(),
		dispatcher: events.NewInMemoryDispatcher(),
		metrics:    observability.NewMetrics("test"),
	}
	record := func(_ context.Context, e events.Event) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.published = append(f.published, e)
		return nil
	}
	for _, et := range []events.EventType{events.EventCartItemAdded, events.EventCartItemRemoved, events.EventSessionIssued, events.EventSessionCleared} {
		f.dispatcher.Subscribe(et, record)
	}

	cfg := config.Config{
		App:  config.AppConfig{Env: env},
		Auth: config.AuthConfig{BcryptCost: 4},
	}
	logger := testutil.NewLogger(t)
	f.auth = NewAuthService(cfg, AuthDependencies{
		UserRepo:    f.store.Users(),
		AdminRepo:   f.store.Admins(),
		ProductRepo: f.store.Products(),
		CartStore:   f.store.Carts(),
		Tokens:      tokens,
		Dispatcher:  f.dispatcher,
		Logger:      logger,
	})
	f.carts = NewCartService(CartDependencies{
		ProductRepo: f.store.Products(),
		CartStore:   f.store.Carts(),
		Dispatcher:  f.dispatcher,
		Metrics:     f.metrics,
		Logger:      logger,
	})
	f.store.AddProduct(domain.Product{ID: "prod1", Name: "Lamp", Price: 40})
	f.store.AddProduct(domain.Product{ID: "prod2", Name: "Rug", Price: 120, Discount: 10})
	return f
}

func (f *fixture) eventsOf(eventType events.EventType) []events.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []events.Event
	for _, e := range f.published {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func (f *fixture) register(t *testing.T, email string) domain.Identity {
	t.Helper()
	user, _, err := f.auth.RegisterUser(context.Background(), Credentials{Name: "A", Email: email, Password: "pw"})
	require.NoError(t, err)
	return domain.UserIdentity(user.ID, user.Email)
}

