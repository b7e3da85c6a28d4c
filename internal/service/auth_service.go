package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/config"
	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/repository"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

const invalidCredentials = "invalid email or password"

// AuthService coordinates registration, login and the admin bootstrap.
type AuthService struct {
	users      repository.UserRepository
	admins     repository.AdminRepository
	products   repository.ProductRepository
	carts      repository.CartStore
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	production bool
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	AdminRepo   repository.AdminRepository
	ProductRepo repository.ProductRepository
	CartStore   repository.CartStore
	Tokens      *auth.TokenManager
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// Credentials carries an account's name, email and plain password.
type Credentials struct {
	Name     string
	Email    string
	Password string
}

// UserProfile is a user with their cart resolved against the catalog.
type UserProfile struct {
	User     *domain.User
	Products []domain.Product
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		admins:     deps.AdminRepo,
		products:   deps.ProductRepo,
		carts:      deps.CartStore,
		tokenMgr:   deps.Tokens,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
		production: cfg.App.IsProduction(),
	}
}

// NormalizeEmail lower-cases and trims an address so lookups are stable.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterUser creates a customer account and issues its session.
func (s *AuthService) RegisterUser(ctx context.Context, in Credentials) (*domain.User, domain.Session, error) {
	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, domain.Session{}, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        NormalizeEmail(in.Email),
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, domain.Session{}, apperrors.NewConflict("email already registered", map[string]any{"email": user.Email})
		}
		return nil, domain.Session{}, fmt.Errorf("create user: %w", err)
	}

	session, err := s.issue(ctx, domain.UserIdentity(user.ID, user.Email))
	if err != nil {
		return nil, domain.Session{}, err
	}
	return user, session, nil
}

// LoginUser authenticates a customer. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*domain.User, domain.Session, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Session{}, apperrors.NewUnauthorized(invalidCredentials)
	}
	if err != nil {
		return nil, domain.Session{}, err
	}
	if ok, err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, domain.Session{}, err
	} else if !ok {
		return nil, domain.Session{}, apperrors.NewUnauthorized(invalidCredentials)
	}

	if user.Cart, err = s.carts.Items(ctx, user.ID); err != nil {
		return nil, domain.Session{}, fmt.Errorf("load cart: %w", err)
	}

	session, err := s.issue(ctx, domain.UserIdentity(user.ID, user.Email))
	if err != nil {
		return nil, domain.Session{}, err
	}
	return user, session, nil
}

// LoginAdmin authenticates the administrator.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.Admin, domain.Session, error) {
	admin, err := s.admins.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Session{}, apperrors.NewUnauthorized(invalidCredentials)
	}
	if err != nil {
		return nil, domain.Session{}, err
	}
	if ok, err := auth.VerifyPassword(admin.PasswordHash, password); err != nil {
		return nil, domain.Session{}, err
	} else if !ok {
		return nil, domain.Session{}, apperrors.NewUnauthorized(invalidCredentials)
	}

	session, err := s.issue(ctx, domain.AdminIdentity(admin.ID, admin.Email))
	if err != nil {
		return nil, domain.Session{}, err
	}
	return admin, session, nil
}

// CreateAdmin is the HTTP bootstrap: closed in production.
func (s *AuthService) CreateAdmin(ctx context.Context, in Credentials) (*domain.Admin, error) {
	if s.production {
		return nil, apperrors.NewForbidden("admin creation is disabled in production")
	}
	return s.BootstrapAdmin(ctx, in)
}

// BootstrapAdmin creates the single administrator account. It fails with a
// conflict once an admin exists.
func (s *AuthService) BootstrapAdmin(ctx context.Context, in Credentials) (*domain.Admin, error) {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil, apperrors.NewConflict("admin already exists", nil)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	admin := &domain.Admin{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        NormalizeEmail(in.Email),
		PasswordHash: hash,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrAdminExists) {
			return nil, apperrors.NewConflict("admin already exists", nil)
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	s.logger.Info("admin created", zap.String("admin_id", admin.ID), zap.String("email", admin.Email))
	return admin, nil
}

// UserProfile resolves the user's cart into catalog products, in cart
// order. Ids no longer in the catalog are skipped.
func (s *AuthService) UserProfile(ctx context.Context, user *domain.User) (*UserProfile, error) {
	items, err := s.carts.Items(ctx, user.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": user.ID})
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	products, err := s.products.GetByIDs(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("load cart products: %w", err)
	}
	profile := *user
	profile.Cart = items
	return &UserProfile{User: &profile, Products: products}, nil
}

// Logout records that a session slot was cleared. Tokens are stateless, so
// nothing is revoked server-side.
func (s *AuthService) Logout(ctx context.Context, identity domain.Identity, role domain.Role) {
	s.publish(ctx, events.New(events.EventSessionCleared, identity, events.SessionPayload{Role: role}))
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issue(ctx context.Context, identity domain.Identity) (domain.Session, error) {
	session, err := s.tokenMgr.Issue(identity)
	if err != nil {
		return domain.Session{}, fmt.Errorf("issue session: %w", err)
	}
	s.publish(ctx, events.New(events.EventSessionIssued, identity, events.SessionPayload{
		Role:      session.Role,
		ExpiresAt: session.ExpiresAt,
	}))
	return session, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
