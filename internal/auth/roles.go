package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/domain"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

// AdminOnly admits only the administrator. Missing, invalid, expired and
// stale tokens all produce the same 401.
func (m *SessionMiddleware) AdminOnly() fiber.Handler {
	return m.guard("please login as admin first", domain.IdentityAdmin)
}

// UserOnly admits only customers. An admin session resolves to Admin and is
// therefore rejected here.
func (m *SessionMiddleware) UserOnly() fiber.Handler {
	return m.guard("please login first", domain.IdentityUser)
}

// EitherRole admits customers and the administrator. Handlers read the
// resolved identity with PrincipalFromContext.
func (m *SessionMiddleware) EitherRole() fiber.Handler {
	return m.guard("please login first", domain.IdentityUser, domain.IdentityAdmin)
}

func (m *SessionMiddleware) guard(message string, allowed ...domain.IdentityKind) fiber.Handler {
	allowedSet := make(map[domain.IdentityKind]struct{}, len(allowed))
	for _, kind := range allowed {
		allowedSet[kind] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, err := m.principal(c)
		if err != nil {
			return err
		}
		if _, ok := allowedSet[principal.Identity.Kind()]; !ok {
			return apperrors.NewUnauthorized(message)
		}
		return c.Next()
	}
}
