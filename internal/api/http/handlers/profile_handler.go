package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glowmart/storefront-service/internal/api/dto"
	"github.com/glowmart/storefront-service/internal/auth"
	"github.com/glowmart/storefront-service/internal/authz"
	"github.com/glowmart/storefront-service/internal/service"
	"github.com/glowmart/storefront-service/pkg/util"
)

// ProfileHandler exposes profile self-service to signed-in customers.
type ProfileHandler struct {
	accounts *service.AccountService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(accounts *service.AccountService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

// Get handles GET /account/profile.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	account := auth.AccountFromContext(c)
	if account == nil {
		return util.NewSessionInvalid(authz.RedirectShopLogin)
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// Update handles PUT /account/profile.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	account, err := h.accounts.UpdateProfile(c.UserContext(), auth.AccountFromContext(c), req.FullName, req.Phone)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}
