package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/service"
)

// CartHandler exposes cart mutations.
type CartHandler struct {
	carts *service.CartService
}

// NewCartHandler constructs handler.
func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Add handles POST /api/cart/add/:product_id.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	if err := h.carts.Add(c.UserContext(), principal.Identity, routeParam(c, "product_id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "item added to cart",
	})
}

// Remove handles DELETE /api/cart/remove/:product_id.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	if err := h.carts.Remove(c.UserContext(), principal.Identity, routeParam(c, "product_id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "item removed from cart",
	})
}

