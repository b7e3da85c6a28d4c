package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/api/dto"
	"github.com/spec-kit/storefront/internal/service"
)

// ShopHandler serves the storefront listing to either role.
type ShopHandler struct {
	catalog *service.CatalogService
}

// NewShopHandler constructs handler.
func NewShopHandler(catalog *service.CatalogService) *ShopHandler {
	return &ShopHandler{catalog: catalog}
}

// List handles GET /api/shop.
func (h *ShopHandler) List(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	products, err := h.catalog.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"identity": dto.NewIdentityResponse(principal.Identity),
		"products": dto.NewProductResponses(products),
	})
}
