package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/storefront/internal/domain"
)

// Verification failures. Callers deny access for all of them; the kinds
// stay distinct for logging, metrics and tests.
var (
	ErrTokenMissing      = errors.New("session token missing")
	ErrTokenMalformed    = errors.New("session token malformed")
	ErrTokenExpired      = errors.New("session token expired")
	ErrTokenBadSignature = errors.New("session token signature invalid")
)

// FailureKind returns a short label for a verification error.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTokenMissing):
		return "missing"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenBadSignature):
		return "bad_signature"
	case errors.Is(err, ErrSessionStale):
		return "stale"
	default:
		return "malformed"
	}
}

// TokenManager handles issuing and validating session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a new manager. A missing secret is a configuration
// error and is reported here rather than per request.
func NewTokenManager(secret string, ttl time.Duration, opts ...TokenOption) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token signing secret not configured")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	tm := &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// Claims describes JWT payload.
type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity converts verified claims to the matching identity variant.
func (c *Claims) Identity() domain.Identity {
	switch c.Role {
	case domain.RoleAdmin:
		return domain.AdminIdentity(c.Subject, c.Email)
	case domain.RoleUser:
		return domain.UserIdentity(c.Subject, c.Email)
	default:
		return domain.Anonymous()
	}
}

// Issue builds and signs a token for a verified identity.
func (tm *TokenManager) Issue(identity domain.Identity) (domain.Session, error) {
	role, ok := identity.Role()
	if !ok || identity.ID() == "" {
		return domain.Session{}, errors.New("cannot issue a session for an anonymous identity")
	}

	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		Email: identity.Email(),
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return domain.Session{}, fmt.Errorf("sign session token: %w", err)
	}
	return domain.Session{Token: tokenString, Role: role, ExpiresAt: expiresAt}, nil
}

// Verify validates signature and expiry and returns the claims.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrTokenMissing
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, classify(err)
	}
	if !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrTokenMalformed, claims.Role)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: subject is not an id", ErrTokenMalformed)
	}
	return claims, nil
}

// VerifyRole verifies the token and requires it to be issued for role.
func (tm *TokenManager) VerifyRole(tokenStr string, role domain.Role) (*Claims, error) {
	claims, err := tm.Verify(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Role != role {
		return nil, fmt.Errorf("%w: %s token in %s slot", ErrTokenMalformed, claims.Role, role)
	}
	return claims, nil
}

// classify folds jwt parser errors into the verification failure kinds.
// The parser checks the signature before claims, so an expired token with
// a forged signature reports ErrTokenBadSignature.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrTokenBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}
