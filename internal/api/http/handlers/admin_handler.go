package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/api/dto"
	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/service"
)

// AdminHandler exposes administrator session and catalog endpoints.
type AdminHandler struct {
	auth    *service.AuthService
	catalog *service.CatalogService
	cookies auth.SessionCookies
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, catalog *service.CatalogService, cookies auth.SessionCookies) *AdminHandler {
	return &AdminHandler{auth: authService, catalog: catalog, cookies: cookies}
}

// Create handles POST /api/admin/create.
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	var req dto.AdminCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := dto.Check(req); err != nil {
		return err
	}

	admin, err := h.auth.CreateAdmin(c.UserContext(), service.Credentials{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"admin":   dto.NewAdminResponse(admin),
	})
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := dto.Check(req); err != nil {
		return err
	}

	admin, session, err := h.auth.LoginAdmin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	h.cookies.Set(c, session)

	return c.JSON(fiber.Map{
		"success": true,
		"admin":   dto.NewAdminResponse(admin),
	})
}

// Logout handles GET /api/admin/logout. Only the admin slot is cleared, and
// a user resolved from the other slot is not reported as the actor.
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	identity := domain.Anonymous()
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Identity.IsAdmin() {
		identity = principal.Identity
	}
	h.cookies.Clear(c, domain.RoleAdmin)
	h.auth.Logout(c.UserContext(), identity, domain.RoleAdmin)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "admin logged out",
	})
}

// Me handles GET /api/admin/me.
func (h *AdminHandler) Me(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"admin":   dto.NewAdminResponse(principal.Admin),
	})
}

// Products handles GET /api/admin.
func (h *AdminHandler) Products(c *fiber.Ctx) error {
	products, err := h.catalog.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"products": dto.NewProductResponses(products),
	})
}
