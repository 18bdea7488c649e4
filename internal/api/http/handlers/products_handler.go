package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/glowmart/storefront-service/internal/api/dto"
	"github.com/glowmart/storefront-service/internal/auth"
	"github.com/glowmart/storefront-service/internal/service"
	"github.com/glowmart/storefront-service/pkg/util"
)

// ProductsHandler exposes the catalog, public reads plus staff writes.
type ProductsHandler struct {
	catalog *service.CatalogService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(catalog *service.CatalogService) *ProductsHandler {
	return &ProductsHandler{catalog: catalog}
}

// ListPublished handles GET /products.
func (h *ProductsHandler) ListPublished(c *fiber.Ctx) error {
	var query dto.ListQuery
	if err := c.QueryParser(&query); err != nil {
		return util.NewValidationError("invalid query parameters", nil)
	}

	products, err := h.catalog.ListPublished(c.UserContext(), query.Limit, query.Offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponses(products)})
}

// Get handles GET /products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.catalog.Get(c.UserContext(), auth.AccountFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// ListAll handles GET /admin/products.
func (h *ProductsHandler) ListAll(c *fiber.Ctx) error {
	var query dto.ListQuery
	if err := c.QueryParser(&query); err != nil {
		return util.NewValidationError("invalid query parameters", nil)
	}

	products, err := h.catalog.ListAll(c.UserContext(), auth.AccountFromContext(c), query.Limit, query.Offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponses(products)})
}

// Create handles POST /admin/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	product, err := h.catalog.Create(c.UserContext(), auth.AccountFromContext(c), productInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// Update handles PUT /admin/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	product, err := h.catalog.Update(c.UserContext(), auth.AccountFromContext(c), c.Params("id"), productInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// TogglePublished handles POST /admin/products/:id/toggle.
func (h *ProductsHandler) TogglePublished(c *fiber.Ctx) error {
	product, err := h.catalog.TogglePublished(c.UserContext(), auth.AccountFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// Delete handles DELETE /admin/products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.Delete(c.UserContext(), auth.AccountFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "product deleted"}})
}

func productInput(req dto.ProductRequest) service.ProductInput {
	return service.ProductInput{
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		IsPublished: req.IsPublished,
	}
}
