package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/glowmart/storefront-service/internal/api/dto"
	"github.com/glowmart/storefront-service/internal/auth"
	"github.com/glowmart/storefront-service/internal/authz"
	"github.com/glowmart/storefront-service/internal/service"
	"github.com/glowmart/storefront-service/pkg/util"
)

// AuthHandler exposes the authentication lifecycle for both audiences.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	return h.login(c, service.AudienceShop)
}

// AdminLogin handles POST /auth/admin/login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	return h.login(c, service.AudienceAdmin)
}

func (h *AuthHandler) login(c *fiber.Ctx, audience service.Audience) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Login(c.UserContext(), audience, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"account": dto.NewAccountResponse(result.Account),
			"session": dto.NewSessionResponse(result.Session),
		},
	})
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Signup(c.UserContext(), req.Email, req.Password, req.FullName, req.Phone)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"account":               dto.NewAccountResponse(result.Account),
			"session":               dto.NewSessionResponse(result.Session),
			"requires_confirmation": result.RequiresConfirmation,
		},
	})
}

// VerifyEmail handles POST /auth/verify-email.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req dto.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.VerifyEmail(c.UserContext(), req.TokenHash)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"account": dto.NewAccountResponse(result.Account),
			"session": dto.NewSessionResponse(result.Session),
		},
	})
}

// ForgotPassword handles POST /auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	if err := h.auth.SendPasswordResetEmail(c.UserContext(), req.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"message": "if the address exists, a reset link has been sent",
		},
	})
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	if err := h.auth.ResetPassword(c.UserContext(), req.TokenHash, req.NewPassword, req.ConfirmPassword); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"message": "password updated"},
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := ""
	if principal, ok := auth.PrincipalFromContext(c); ok {
		token = principal.Token
	}

	if err := h.auth.SignOut(c.UserContext(), token); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"message": "signed out"},
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	account := auth.AccountFromContext(c)
	if account == nil {
		if err := auth.ResolveErrorFromContext(c); err != nil {
			return err
		}
		return util.NewSessionInvalid("")
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"account": dto.NewAccountResponse(account)},
	})
}

// CheckAccess handles GET /auth/access/check?path=. It answers the admission
// question for a console path without serving the path itself, so navigation
// menus can be rendered from the same rules that guard the routes.
func (h *AuthHandler) CheckAccess(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return util.NewValidationError("path query parameter is required", nil)
	}

	check := authz.CanAccessRoute(auth.AccountFromContext(c), path)
	body := fiber.Map{"allowed": check.Allowed}
	if len(check.RequiredRoles) > 0 {
		body["required_roles"] = check.RequiredRoles
	}
	if check.Redirect != "" {
		body["redirect"] = check.Redirect
	}

	return c.JSON(fiber.Map{"data": body})
}
