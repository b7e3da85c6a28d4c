package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/storefront/internal/auth"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

// principalOf returns the identity resolved by the session middleware. A
// route without a guard is a wiring mistake, reported as a server error.
func principalOf(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewInternalError(nil)
	}
	return principal, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

// routeParam copies a route value out of the request buffer, which fasthttp
// reuses once the handler returns.
func routeParam(c *fiber.Ctx, name string) string {
	return utils.CopyString(c.Params(name))
}
