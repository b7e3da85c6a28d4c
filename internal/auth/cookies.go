package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/config"
	"github.com/spec-kit/storefront/internal/domain"
)

// SessionCookies reads and writes the two HTTP-only session slots.
type SessionCookies struct {
	userName  string
	adminName string
	secure    bool
}

// NewSessionCookies builds the cookie codec from configuration.
func NewSessionCookies(cfg config.SessionConfig) SessionCookies {
	return SessionCookies{userName: cfg.UserCookie, adminName: cfg.AdminCookie, secure: cfg.CookieSecure}
}

// Name returns the cookie name of the slot for role.
func (s SessionCookies) Name(role domain.Role) string {
	if role == domain.RoleAdmin {
		return s.adminName
	}
	return s.userName
}

// Tokens extracts both slots from the request.
func (s SessionCookies) Tokens(c *fiber.Ctx) SessionTokens {
	return SessionTokens{
		Admin: c.Cookies(s.adminName),
		User:  c.Cookies(s.userName),
	}
}

// Set stores an issued session in its role's slot.
func (s SessionCookies) Set(c *fiber.Ctx, session domain.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     s.Name(session.Role),
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Clear expires the slot for role. The other slot is left untouched.
func (s SessionCookies) Clear(c *fiber.Ctx, role domain.Role) {
	c.Cookie(&fiber.Cookie{
		Name:     s.Name(role),
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-24 * time.Hour),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
