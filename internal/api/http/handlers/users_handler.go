package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glowmart/storefront-service/internal/api/dto"
	"github.com/glowmart/storefront-service/internal/auth"
	"github.com/glowmart/storefront-service/internal/domain"
	"github.com/glowmart/storefront-service/internal/repository"
	"github.com/glowmart/storefront-service/internal/service"
	"github.com/glowmart/storefront-service/pkg/util"
)

// UsersHandler exposes the admin user-management surface.
type UsersHandler struct {
	accounts *service.AccountService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(accounts *service.AccountService) *UsersHandler {
	return &UsersHandler{accounts: accounts}
}

// List handles GET /admin/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	var query dto.ListQuery
	if err := c.QueryParser(&query); err != nil {
		return util.NewValidationError("invalid query parameters", nil)
	}

	filter := repository.AccountFilter{Limit: query.Limit, Offset: query.Offset}
	if role := c.Query("role"); role != "" {
		r := domain.Role(role)
		if !r.Valid() {
			return util.NewValidationError("unknown role", map[string]any{"role": role})
		}
		filter.Role = &r
	}

	accounts, err := h.accounts.List(c.UserContext(), auth.AccountFromContext(c), filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewAccountResponses(accounts)})
}

// Get handles GET /admin/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	account, err := h.accounts.Get(c.UserContext(), auth.AccountFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// Promote handles POST /admin/users/:id/promote.
func (h *UsersHandler) Promote(c *fiber.Ctx) error {
	var req dto.PromoteRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	account, err := h.accounts.Promote(
		c.UserContext(),
		auth.AccountFromContext(c),
		c.Params("id"),
		domain.Role(req.Role),
		req.Department,
		req.Position,
	)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// Demote handles POST /admin/users/:id/demote.
func (h *UsersHandler) Demote(c *fiber.Ctx) error {
	account, err := h.accounts.Demote(c.UserContext(), auth.AccountFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// ToggleStatus handles POST /admin/users/:id/toggle-status.
func (h *UsersHandler) ToggleStatus(c *fiber.Ctx) error {
	account, err := h.accounts.ToggleStatus(c.UserContext(), auth.AccountFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// Delete handles DELETE /admin/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.accounts.Delete(c.UserContext(), auth.AccountFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "account deleted"}})
}
