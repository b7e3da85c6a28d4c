package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/repository"
)

// ErrSessionStale reports a well-signed token whose subject no longer exists.
var ErrSessionStale = errors.New("session subject no longer exists")

// SessionTokens holds the raw contents of the two cookie slots.
type SessionTokens struct {
	Admin string
	User  string
}

// Principal is the outcome of role resolution for one request.
type Principal struct {
	Identity domain.Identity
	User     *domain.User
	Admin    *domain.Admin

	// Why each slot did not produce an identity. Nil for the winning slot
	// and for a slot that was not consulted.
	AdminFailure error
	UserFailure  error

	// Conflict is set when a valid admin session shadowed a well-signed
	// user token on the same request.
	Conflict bool
}

// Resolver turns session tokens into exactly one identity.
type Resolver struct {
	tokens *TokenManager
	users  repository.UserRepository
	admins repository.AdminRepository
}

// NewResolver constructs a resolver.
func NewResolver(tokens *TokenManager, users repository.UserRepository, admins repository.AdminRepository) *Resolver {
	return &Resolver{tokens: tokens, users: users, admins: admins}
}

// Resolve applies the fixed precedence: a valid, existing admin wins over
// any user session; otherwise a valid, existing user; otherwise anonymous.
// Only store failures are returned as errors.
func (r *Resolver) Resolve(ctx context.Context, in SessionTokens) (*Principal, error) {
	principal := &Principal{Identity: domain.Anonymous()}

	admin, err := r.resolveAdmin(ctx, in.Admin)
	switch {
	case err == nil:
		principal.Identity = domain.AdminIdentity(admin.ID, admin.Email)
		principal.Admin = admin
		if in.User != "" {
			if _, userErr := r.tokens.VerifyRole(in.User, domain.RoleUser); userErr == nil {
				principal.Conflict = true
			}
		}
		return principal, nil
	case isAuthFailure(err):
		principal.AdminFailure = err
	default:
		return nil, err
	}

	user, err := r.resolveUser(ctx, in.User)
	switch {
	case err == nil:
		principal.Identity = domain.UserIdentity(user.ID, user.Email)
		principal.User = user
	case isAuthFailure(err):
		principal.UserFailure = err
	default:
		return nil, err
	}
	return principal, nil
}

func (r *Resolver) resolveAdmin(ctx context.Context, token string) (*domain.Admin, error) {
	claims, err := r.tokens.VerifyRole(token, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	admin, err := r.admins.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionStale
		}
		return nil, fmt.Errorf("load admin %s: %w", claims.Subject, err)
	}
	return admin, nil
}

func (r *Resolver) resolveUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := r.tokens.VerifyRole(token, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	user, err := r.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionStale
		}
		return nil, fmt.Errorf("load user %s: %w", claims.Subject, err)
	}
	return user, nil
}

func isAuthFailure(err error) bool {
	return errors.Is(err, ErrTokenMissing) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenBadSignature) ||
		errors.Is(err, ErrSessionStale)
}
