package authz

import (
	"strings"

	"github.com/glowmart/storefront-service/internal/domain"
)

// Redirect targets handed back with guard failures so callers respond without
// re-deriving policy.
const (
	RedirectAdminLogin = "/admin/login"
	RedirectAdminHome  = "/admin"
	RedirectShopLogin  = "/login"
	RedirectHome       = "/"
)

// Action names a privileged operation subject to the role table.
type Action string

const (
	ActionPromoteUser      Action = "promote_user"
	ActionDemoteUser       Action = "demote_user"
	ActionDeleteUser       Action = "delete_user"
	ActionToggleUserStatus Action = "toggle_user_status"
	ActionManageAgents     Action = "manage_agents"
	ActionCreateProduct    Action = "create_product"
	ActionUpdateProduct    Action = "update_product"
	ActionDeleteProduct    Action = "delete_product"
	ActionToggleProduct    Action = "toggle_product"
	ActionViewOrders       Action = "view_orders"
	ActionUpdateOrder      Action = "update_order"
	ActionViewAuditLogs    Action = "view_audit_logs"
	ActionViewSalesLogs    Action = "view_sales_logs"
	ActionViewDashboard    Action = "view_dashboard"
)

// actionTiers maps each action to the minimum role allowed to perform it.
var actionTiers = map[Action]domain.Role{
	ActionPromoteUser:      domain.RoleChiefAdmin,
	ActionDemoteUser:       domain.RoleChiefAdmin,
	ActionDeleteUser:       domain.RoleChiefAdmin,
	ActionToggleUserStatus: domain.RoleChiefAdmin,
	ActionManageAgents:     domain.RoleChiefAdmin,
	ActionCreateProduct:    domain.RoleAgent,
	ActionUpdateProduct:    domain.RoleAgent,
	ActionDeleteProduct:    domain.RoleAgent,
	ActionToggleProduct:    domain.RoleAgent,
	ActionViewOrders:       domain.RoleAgent,
	ActionUpdateOrder:      domain.RoleAgent,
	ActionViewAuditLogs:    domain.RoleAdmin,
	ActionViewSalesLogs:    domain.RoleAdmin,
	ActionViewDashboard:    domain.RoleAgent,
}

// Can reports whether the account's role meets the action's minimum tier.
// Unknown actions and nil accounts are denied.
func Can(account *domain.Account, action Action) bool {
	if account == nil {
		return false
	}
	tier, ok := actionTiers[action]
	if !ok {
		return false
	}
	return account.Role.AtLeast(tier)
}

// Staff-management, role-configuration and user-management surfaces are
// reserved for the top role.
var chiefAdminOnlyPrefixes = []string{
	"/admin/users",
	"/admin/staff",
	"/admin/roles",
}

// Audit and sales reporting surfaces are closed to agents but open to admin
// and above.
var agentDeniedPrefixes = []string{
	"/admin/audit-log",
	"/admin/sales-log",
}

// RouteCheck is the outcome of a route admission decision.
type RouteCheck struct {
	Allowed       bool
	RequiredRoles []domain.Role
	Redirect      string
}

// CanAccessRoute decides admission to an admin-console path. chief_admin is
// admitted to every path unconditionally, including paths that do not exist
// yet. When a path matches more than one rule the more restrictive one wins:
// chief-admin-only prefixes are checked before agent exclusions.
func CanAccessRoute(account *domain.Account, path string) RouteCheck {
	if account == nil {
		return RouteCheck{
			RequiredRoles: []domain.Role{domain.RoleAgent, domain.RoleAdmin, domain.RoleChiefAdmin},
			Redirect:      RedirectAdminLogin,
		}
	}
	if account.Role == domain.RoleChiefAdmin {
		return RouteCheck{Allowed: true}
	}
	for _, prefix := range chiefAdminOnlyPrefixes {
		if strings.HasPrefix(path, prefix) {
			return RouteCheck{
				RequiredRoles: []domain.Role{domain.RoleChiefAdmin},
				Redirect:      redirectFor(account),
			}
		}
	}
	if account.Role == domain.RoleAgent {
		for _, prefix := range agentDeniedPrefixes {
			if strings.HasPrefix(path, prefix) {
				return RouteCheck{
					RequiredRoles: []domain.Role{domain.RoleAdmin, domain.RoleChiefAdmin},
					Redirect:      RedirectAdminHome,
				}
			}
		}
	}
	if !account.Role.IsAdminTier() {
		return RouteCheck{
			RequiredRoles: []domain.Role{domain.RoleAgent, domain.RoleAdmin, domain.RoleChiefAdmin},
			Redirect:      RedirectHome,
		}
	}
	return RouteCheck{Allowed: true}
}

func redirectFor(account *domain.Account) string {
	if account.Role.IsAdminTier() {
		return RedirectAdminHome
	}
	return RedirectHome
}
