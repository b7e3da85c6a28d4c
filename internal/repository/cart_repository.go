package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CartStore owns cart membership. AddItem and RemoveItem are single atomic
// set operations executed by the store; callers never read-modify-write.
// Every method returns pgx.ErrNoRows when userID names no user.
type CartStore interface {
	// AddItem inserts productID unless present and reports whether it did.
	AddItem(ctx context.Context, userID, productID string) (bool, error)
	// RemoveItem deletes productID if present and reports whether it did.
	RemoveItem(ctx context.Context, userID, productID string) (bool, error)
	// Items lists the cart in insertion order.
	Items(ctx context.Context, userID string) ([]string, error)
}

type pgCartStore struct {
	pool *pgxpool.Pool
}

// NewPostgresCartStore keeps carts in the users.cart array column.
func NewPostgresCartStore(pool *pgxpool.Pool) CartStore {
	return &pgCartStore{pool: pool}
}

// The UPDATE holds the row lock and Postgres re-checks the membership
// predicate against the latest row version, so concurrent adds of the same
// product apply exactly once. pgx.ErrNoRows means the user row is absent.
func (s *pgCartStore) AddItem(ctx context.Context, userID, productID string) (bool, error) {
	const query = `
        WITH target AS (
            SELECT id FROM users WHERE id=$1
        ), updated AS (
            UPDATE users SET cart = array_append(cart, $2::text), updated_at=NOW()
            WHERE id=$1 AND NOT ($2::text = ANY(cart))
            RETURNING id
        )
        SELECT EXISTS(SELECT 1 FROM target), EXISTS(SELECT 1 FROM updated)`

	return s.mutate(ctx, query, userID, productID)
}

func (s *pgCartStore) RemoveItem(ctx context.Context, userID, productID string) (bool, error) {
	const query = `
        WITH target AS (
            SELECT id FROM users WHERE id=$1
        ), updated AS (
            UPDATE users SET cart = array_remove(cart, $2::text), updated_at=NOW()
            WHERE id=$1 AND $2::text = ANY(cart)
            RETURNING id
        )
        SELECT EXISTS(SELECT 1 FROM target), EXISTS(SELECT 1 FROM updated)`

	return s.mutate(ctx, query, userID, productID)
}

func (s *pgCartStore) mutate(ctx context.Context, query, userID, productID string) (bool, error) {
	var found, changed bool
	if err := s.pool.QueryRow(ctx, query, userID, productID).Scan(&found, &changed); err != nil {
		return false, err
	}
	if !found {
		return false, pgx.ErrNoRows
	}
	return changed, nil
}

func (s *pgCartStore) Items(ctx context.Context, userID string) ([]string, error) {
	var cart []string
	if err := s.pool.QueryRow(ctx, `SELECT cart FROM users WHERE id=$1`, userID).Scan(&cart); err != nil {
		return nil, err
	}
	if cart == nil {
		cart = []string{}
	}
	return cart, nil
}
