package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/observability"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

const (
	principalKey = "auth_principal"

	// PrecedenceHeader tells clients that an admin session shadowed their
	// user session on this request.
	PrecedenceHeader = "X-Session-Precedence"
)

// SessionMiddleware resolves the caller identity from session cookies once
// per request and hosts the guards built on it.
type SessionMiddleware struct {
	resolver *Resolver
	cookies  SessionCookies
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(resolver *Resolver, cookies SessionCookies, logger *zap.Logger, metrics *observability.Metrics) *SessionMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionMiddleware{resolver: resolver, cookies: cookies, logger: logger, metrics: metrics}
}

// Handle resolves the identity without enforcing any policy.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	if _, err := m.principal(c); err != nil {
		return err
	}
	return c.Next()
}

// Optional resolves the identity when it can and never fails the request.
// Routes that must work during a store outage, such as logout, use it.
func (m *SessionMiddleware) Optional(c *fiber.Ctx) error {
	_, _ = m.principal(c)
	return c.Next()
}

func (m *SessionMiddleware) principal(c *fiber.Ctx) (*Principal, error) {
	if principal, ok := PrincipalFromContext(c); ok {
		return principal, nil
	}

	principal, err := m.resolver.Resolve(c.UserContext(), m.cookies.Tokens(c))
	if err != nil {
		m.logger.Error("session resolution failed", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	m.observe(c, principal)
	c.Locals(principalKey, principal)
	return principal, nil
}

func (m *SessionMiddleware) observe(c *fiber.Ctx, principal *Principal) {
	m.metrics.RecordResolution(string(principal.Identity.Kind()))
	for slot, failure := range map[string]error{"admin": principal.AdminFailure, "user": principal.UserFailure} {
		if kind := FailureKind(failure); kind != "" && kind != "missing" {
			m.metrics.RecordTokenFailure(slot, kind)
			m.logger.Debug("session token rejected", zap.String("slot", slot), zap.String("kind", kind))
		}
	}
	if principal.Conflict {
		m.metrics.RecordSessionConflict()
		m.logger.Warn("admin and user sessions both valid; admin takes precedence",
			zap.String("admin_id", principal.Identity.ID()),
			zap.String("path", c.Path()))
		c.Set(PrecedenceHeader, "admin")
	}
}

// PrincipalFromContext retrieves the resolved caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
