package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/api/dto"
	"github.com/spec-kit/storefront/internal/service"
)

// ProductsHandler exposes the public catalog and the admin's product management.
type ProductsHandler struct {
	catalog *service.CatalogService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(catalog *service.CatalogService) *ProductsHandler {
	return &ProductsHandler{catalog: catalog}
}

// List handles GET /api/products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.catalog.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"products": dto.NewProductResponses(products),
	})
}

// Create handles POST /api/products/create.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	input, err := productInput(c)
	if err != nil {
		return err
	}
	product, err := h.catalog.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "product created",
		"product": dto.NewProductResponse(*product),
	})
}

// Update handles PUT /api/admin/updateProduct/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	input, err := productInput(c)
	if err != nil {
		return err
	}
	product, err := h.catalog.Update(c.UserContext(), routeParam(c, "id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "product updated",
		"product": dto.NewProductResponse(*product),
	})
}

// Delete handles DELETE /api/admin/deleteProduct/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.Delete(c.UserContext(), routeParam(c, "id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "product deleted",
	})
}

func productInput(c *fiber.Ctx) (service.ProductInput, error) {
	var req dto.ProductRequest
	if err := parseBody(c, &req); err != nil {
		return service.ProductInput{}, err
	}
	if err := dto.Check(req); err != nil {
		return service.ProductInput{}, err
	}
	return service.ProductInput{Name: req.Name, Price: req.Price, Discount: req.Discount}, nil
}
