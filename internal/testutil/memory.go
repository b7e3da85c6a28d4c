// Package testutil provides in-memory stores and helpers for tests.
package testutil

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/repository"
)

// Store is an in-memory credential store and catalog. It satisfies
// UserRepository, AdminRepository, ProductRepository and CartStore with the
// same not-found and atomicity semantics as the Postgres implementations.
type Store struct {
	mu       sync.Mutex
	users    map[string]*domain.User
	admins   map[string]*domain.Admin
	products map[string]domain.Product
	order    []string

	// Err, when set, is returned by every call to simulate an outage.
	Err error
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:    map[string]*domain.User{},
		admins:   map[string]*domain.Admin{},
		products: map[string]domain.Product{},
	}
}

// Users exposes the store as a UserRepository.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// Admins exposes the store as an AdminRepository.
func (s *Store) Admins() repository.AdminRepository { return adminRepo{s} }

// Products exposes the store as a ProductRepository.
func (s *Store) Products() repository.ProductRepository { return productRepo{s} }

// Carts exposes the store as a CartStore.
func (s *Store) Carts() repository.CartStore { return cartStore{s} }

// AddProduct seeds the catalog.
func (s *Store) AddProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if _, ok := s.products[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.products[p.ID] = p
}

// DeleteUser removes a user record to simulate an account deleted elsewhere.
func (s *Store) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// DeleteAdmin removes the admin record.
func (s *Store) DeleteAdmin(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.admins, id)
}

// Cart returns a copy of a user's cart for assertions.
func (s *Store) Cart(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	return append([]string{}, u.Cart...)
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	if user.Cart == nil {
		user.Cart = []string{}
	}
	stored := *user
	stored.Cart = append([]string{}, user.Cart...)
	r.s.users[user.ID] = &stored
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *u
	out.Cart = append([]string{}, u.Cart...)
	return &out, nil
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	var id string
	for _, u := range r.s.users {
		if u.Email == email {
			id = u.ID
			break
		}
	}
	r.s.mu.Unlock()
	if id == "" {
		if r.s.Err != nil {
			return nil, r.s.Err
		}
		return nil, pgx.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

type adminRepo struct{ s *Store }

func (r adminRepo) Create(_ context.Context, admin *domain.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if len(r.s.admins) > 0 {
		return repository.ErrAdminExists
	}
	now := time.Now()
	admin.CreatedAt, admin.UpdatedAt = now, now
	stored := *admin
	r.s.admins[admin.ID] = &stored
	return nil
}

func (r adminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	a, ok := r.s.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *a
	return &out, nil
}

func (r adminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, a := range r.s.admins {
		if a.Email == email {
			out := *a
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r adminRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	return len(r.s.admins), nil
}

type productRepo struct{ s *Store }

func (r productRepo) Create(_ context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	product.CreatedAt = time.Now()
	if _, ok := r.s.products[product.ID]; !ok {
		r.s.order = append(r.s.order, product.ID)
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r productRepo) Update(_ context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	existing, ok := r.s.products[product.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	product.CreatedAt = existing.CreatedAt
	r.s.products[product.ID] = *product
	return nil
}

func (r productRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	if _, ok := r.s.products[id]; !ok {
		return false, nil
	}
	delete(r.s.products, id)
	r.s.order = slices.DeleteFunc(r.s.order, func(v string) bool { return v == id })
	return true, nil
}

func (r productRepo) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	_, ok := r.s.products[id]
	return ok, nil
}

func (r productRepo) GetByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []domain.Product{}
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r productRepo) List(_ context.Context) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]domain.Product, 0, len(r.s.order))
	for _, id := range r.s.order {
		out = append(out, r.s.products[id])
	}
	return out, nil
}

// cartStore applies each mutation under the store lock, mirroring the single
// UPDATE statement of the Postgres store.
type cartStore struct{ s *Store }

func (c cartStore) AddItem(_ context.Context, userID, productID string) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if c.s.Err != nil {
		return false, c.s.Err
	}
	u, ok := c.s.users[userID]
	if !ok {
		return false, pgx.ErrNoRows
	}
	if slices.Contains(u.Cart, productID) {
		return false, nil
	}
	u.Cart = append(u.Cart, productID)
	u.UpdatedAt = time.Now()
	return true, nil
}

func (c cartStore) RemoveItem(_ context.Context, userID, productID string) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if c.s.Err != nil {
		return false, c.s.Err
	}
	u, ok := c.s.users[userID]
	if !ok {
		return false, pgx.ErrNoRows
	}
	kept := u.Cart[:0:0]
	for _, id := range u.Cart {
		if id != productID {
			kept = append(kept, id)
		}
	}
	removed := len(kept) != len(u.Cart)
	u.Cart = kept
	if removed {
		u.UpdatedAt = time.Now()
	}
	return removed, nil
}

func (c cartStore) Items(_ context.Context, userID string) ([]string, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if c.s.Err != nil {
		return nil, c.s.Err
	}
	u, ok := c.s.users[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return append([]string{}, u.Cart...), nil
}
