package authz

import (
	"github.com/glowmart/storefront-service/internal/domain"
	"github.com/glowmart/storefront-service/pkg/util"
)

// GuardResult is returned when an access check admits the request.
type GuardResult struct {
	Account      *domain.Account
	IsAdmin      bool
	IsChiefAdmin bool
}

// Guard evaluates admission for an already-resolved account. It holds no
// session state: callers resolve the account (and any resolution failure)
// first, then pass both in, which keeps every decision a pure function of its
// inputs.
//
// ShopFailOpen preserves a deliberate availability-over-strictness tradeoff:
// when resolving the account fails for an unexpected reason (backend outage
// rather than a bad or missing session), customer routes admit the request as
// a guest instead of blocking shopping. The admin check never fails open.
type Guard struct {
	ShopFailOpen bool
}

// NewGuard returns a guard with the shop fail-open policy enabled.
func NewGuard() *Guard {
	return &Guard{ShopFailOpen: true}
}

// VerifyAdminAccess admits only active admin-tier accounts. resolveErr is the
// failure, if any, from resolving the current account; it is passed through
// with an admin-audience redirect. Callers are expected to force a sign-out
// when the returned error carries CodeAccountInactive.
func (g *Guard) VerifyAdminAccess(account *domain.Account, resolveErr error) (*GuardResult, error) {
	if resolveErr != nil {
		return nil, util.WithRedirect(resolveErr, RedirectAdminLogin)
	}
	if account == nil {
		return nil, util.NewSessionInvalid(RedirectAdminLogin)
	}
	if !account.Role.IsAdminTier() {
		return nil, util.NewUnauthorizedRole(RedirectAdminLogin)
	}
	if !account.IsActive {
		return nil, util.NewAccountInactive(RedirectAdminLogin)
	}
	return &GuardResult{
		Account:      account,
		IsAdmin:      account.Role.AtLeast(domain.RoleAdmin),
		IsChiefAdmin: account.Role == domain.RoleChiefAdmin,
	}, nil
}

// VerifyCustomerAccess admits any authenticated, active account. A clean
// authentication failure (missing, invalid or expired session, missing
// profile) is reported with a shop-audience redirect; any other resolution
// failure admits the request as a guest when ShopFailOpen is set.
func (g *Guard) VerifyCustomerAccess(account *domain.Account, resolveErr error) (*GuardResult, error) {
	if resolveErr != nil {
		switch util.CodeOf(resolveErr) {
		case util.CodeSessionInvalid, util.CodeSessionExpired, util.CodeProfileNotFound:
			return nil, util.WithRedirect(resolveErr, RedirectShopLogin)
		}
		if g.ShopFailOpen {
			return &GuardResult{}, nil
		}
		return nil, util.WithRedirect(resolveErr, RedirectShopLogin)
	}
	if account == nil {
		return nil, util.NewSessionInvalid(RedirectShopLogin)
	}
	if !account.IsActive {
		return nil, util.NewAccountInactive(RedirectShopLogin)
	}
	return &GuardResult{
		Account:      account,
		IsAdmin:      account.Role.AtLeast(domain.RoleAdmin),
		IsChiefAdmin: account.Role == domain.RoleChiefAdmin,
	}, nil
}
