package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/glowmart/storefront-service/internal/authz"
	"github.com/glowmart/storefront-service/internal/service"
	"github.com/glowmart/storefront-service/pkg/util"
)

const guardResultKey = "auth_guard_result"

// Guards turns pure admission decisions into fiber middleware. The session
// side effects live here: a deactivated account is signed out the moment a
// guard rejects it, so its token stops working immediately.
type Guards struct {
	guard  *authz.Guard
	auth   *service.AuthService
	logger *zap.Logger
}

// NewGuards constructs the middleware set.
func NewGuards(guard *authz.Guard, auth *service.AuthService, logger *zap.Logger) *Guards {
	return &Guards{guard: guard, auth: auth, logger: logger}
}

// RequireAdminAccess admits active admin-tier accounts and enforces the
// per-route role rules of the admin console.
func (g *Guards) RequireAdminAccess(c *fiber.Ctx) error {
	principal, _ := PrincipalFromContext(c)
	account := AccountFromContext(c)

	result, err := g.guard.VerifyAdminAccess(account, ResolveErrorFromContext(c))
	if err != nil {
		g.signOutIfInactive(c, principal, err)
		return err
	}

	check := authz.CanAccessRoute(result.Account, c.Path())
	if !check.Allowed {
		return util.NewAccessDenied(check.Redirect, map[string]any{
			"required_roles": check.RequiredRoles,
		})
	}

	c.Locals(guardResultKey, result)
	return c.Next()
}

// RequireCustomerAccess admits any authenticated, active account. Unexpected
// resolution failures admit the request as a guest per the guard's fail-open
// policy.
func (g *Guards) RequireCustomerAccess(c *fiber.Ctx) error {
	principal, _ := PrincipalFromContext(c)
	account := AccountFromContext(c)

	result, err := g.guard.VerifyCustomerAccess(account, ResolveErrorFromContext(c))
	if err != nil {
		g.signOutIfInactive(c, principal, err)
		return err
	}

	c.Locals(guardResultKey, result)
	return c.Next()
}

// GuardResultFromContext retrieves the admission outcome set by a guard.
func GuardResultFromContext(c *fiber.Ctx) (*authz.GuardResult, bool) {
	val := c.Locals(guardResultKey)
	if val == nil {
		return nil, false
	}
	result, ok := val.(*authz.GuardResult)
	return result, ok
}

func (g *Guards) signOutIfInactive(c *fiber.Ctx, principal *Principal, err error) {
	if util.CodeOf(err) != util.CodeAccountInactive || principal == nil {
		return
	}
	if signOutErr := g.auth.SignOut(c.UserContext(), principal.Token); signOutErr != nil {
		g.logger.Warn("forced sign-out failed", zap.Error(signOutErr))
	}
}
