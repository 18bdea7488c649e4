package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/glowmart/storefront-service/internal/domain"
	"github.com/glowmart/storefront-service/internal/service"
)

const (
	principalKey  = "auth_principal"
	resolveErrKey = "auth_resolve_error"
)

// Principal represents the resolved caller.
type Principal struct {
	Account *domain.Account
	Token   string
}

// SessionMiddleware resolves the bearer session on every request. It never
// blocks: resolution failures are stored alongside the principal and judged
// later by the route's guard, which is what lets customer routes fail open
// while admin routes stay strict.
type SessionMiddleware struct {
	auth *service.AuthService
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(auth *service.AuthService) *SessionMiddleware {
	return &SessionMiddleware{auth: auth}
}

// Handle resolves the session, if any, and continues.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Next()
	}

	account, err := m.auth.GetCurrentUser(c.UserContext(), token)
	if err != nil {
		c.Locals(resolveErrKey, err)
		return c.Next()
	}

	c.Locals(principalKey, &Principal{Account: account, Token: token})
	return c.Next()
}

// PrincipalFromContext retrieves the resolved caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// AccountFromContext returns the resolved account or nil.
func AccountFromContext(c *fiber.Ctx) *domain.Account {
	if principal, ok := PrincipalFromContext(c); ok {
		return principal.Account
	}
	return nil
}

// ResolveErrorFromContext returns the session resolution failure, if any.
func ResolveErrorFromContext(c *fiber.Ctx) error {
	if val := c.Locals(resolveErrKey); val != nil {
		if err, ok := val.(error); ok {
			return err
		}
	}
	return nil
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
