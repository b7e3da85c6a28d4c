package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/api/dto"
	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/service"
)

// UsersHandler exposes customer session and cart-read endpoints.
type UsersHandler struct {
	auth    *service.AuthService
	carts   *service.CartService
	cookies auth.SessionCookies
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, cartService *service.CartService, cookies auth.SessionCookies) *UsersHandler {
	return &UsersHandler{auth: authService, carts: cartService, cookies: cookies}
}

// Register handles POST /api/users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := dto.Check(req); err != nil {
		return err
	}

	user, session, err := h.auth.RegisterUser(c.UserContext(), service.Credentials{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	h.cookies.Set(c, session)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    dto.NewUserResponse(user),
	})
}

// Login handles POST /api/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := dto.Check(req); err != nil {
		return err
	}

	user, session, err := h.auth.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	h.cookies.Set(c, session)

	return c.JSON(fiber.Map{
		"success": true,
		"user":    dto.NewUserResponse(user),
	})
}

// Me handles GET /api/users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	profile, err := h.auth.UserProfile(c.UserContext(), principal.User)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    dto.NewUserProfileResponse(profile.User, profile.Products),
	})
}

// Logout handles GET /api/users/logout. Only the user slot is cleared, and
// an admin resolved from the other slot is not reported as the actor.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	identity := domain.Anonymous()
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Identity.IsUser() {
		identity = principal.Identity
	}
	h.cookies.Clear(c, domain.RoleUser)
	h.auth.Logout(c.UserContext(), identity, domain.RoleUser)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "logged out",
	})
}

// Cart handles GET /api/users/cart.
func (h *UsersHandler) Cart(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	items, err := h.carts.Items(c.UserContext(), principal.Identity)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"cartItems": items,
	})
}
