package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/observability"
	"github.com/spec-kit/storefront/internal/repository"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

const (
	opAdd    = "add"
	opRemove = "remove"
)

// CartService applies cart mutations on behalf of a resolved identity.
// Every mutation is a single atomic store operation; there is no
// read-modify-write in this layer.
type CartService struct {
	products   repository.ProductRepository
	carts      repository.CartStore
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// CartDependencies bundles cart service collaborators.
type CartDependencies struct {
	ProductRepo repository.ProductRepository
	CartStore   repository.CartStore
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// NewCartService constructs the service.
func NewCartService(deps CartDependencies) *CartService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		products:   deps.ProductRepo,
		carts:      deps.CartStore,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// Add puts productID in the caller's cart. Adding a product already present
// succeeds without change.
func (s *CartService) Add(ctx context.Context, identity domain.Identity, productID string) error {
	if err := s.gate(identity, "only users can add items to cart"); err != nil {
		return err
	}
	productID, err := requireProductID(productID)
	if err != nil {
		return err
	}

	exists, err := s.products.Exists(ctx, productID)
	if err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return apperrors.NewNotFound("product", map[string]any{"id": productID})
	}

	added, err := s.carts.AddItem(ctx, identity.ID(), productID)
	if err != nil {
		return s.storeError(identity, err)
	}
	s.record(ctx, identity, opAdd, productID, added)
	return nil
}

// Remove takes productID out of the caller's cart. Removing an absent
// product succeeds without change.
func (s *CartService) Remove(ctx context.Context, identity domain.Identity, productID string) error {
	if err := s.gate(identity, "only users can remove items from cart"); err != nil {
		return err
	}
	productID, err := requireProductID(productID)
	if err != nil {
		return err
	}

	removed, err := s.carts.RemoveItem(ctx, identity.ID(), productID)
	if err != nil {
		return s.storeError(identity, err)
	}
	s.record(ctx, identity, opRemove, productID, removed)
	return nil
}

// Items returns the caller's cart product ids in insertion order.
func (s *CartService) Items(ctx context.Context, identity domain.Identity) ([]string, error) {
	if err := s.gate(identity, "only users have a cart"); err != nil {
		return nil, err
	}
	items, err := s.carts.Items(ctx, identity.ID())
	if err != nil {
		return nil, s.storeError(identity, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

// gate admits only customers. The admin has no cart.
func (s *CartService) gate(identity domain.Identity, message string) error {
	switch identity.Kind() {
	case domain.IdentityUser:
		return nil
	case domain.IdentityAdmin:
		return apperrors.NewForbidden(message)
	default:
		return apperrors.NewUnauthorized("please login first")
	}
}

func (s *CartService) storeError(identity domain.Identity, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("user", map[string]any{"id": identity.ID()})
	}
	return fmt.Errorf("cart store: %w", err)
}

func (s *CartService) record(ctx context.Context, identity domain.Identity, op, productID string, changed bool) {
	if !changed {
		s.metrics.RecordCartMutation(op, "noop")
		return
	}
	s.metrics.RecordCartMutation(op, "applied")

	eventType := events.EventCartItemAdded
	if op == opRemove {
		eventType = events.EventCartItemRemoved
	}
	if s.dispatcher == nil {
		return
	}
	event := events.New(eventType, identity, events.CartItemPayload{UserID: identity.ID(), ProductID: productID})
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}

func requireProductID(productID string) (string, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return "", apperrors.NewValidationError("product id is required", map[string]any{"product_id": "cannot be blank"})
	}
	return productID, nil
}
