package authz

import (
	"testing"

	"github.com/glowmart/storefront-service/internal/domain"
)

func accountWithRole(role domain.Role) *domain.Account {
	return &domain.Account{ID: "acc-1", Role: role, IsActive: true}
}

func TestCanActionTiers(t *testing.T) {
	cases := []struct {
		role   domain.Role
		action Action
		want   bool
	}{
		{domain.RoleChiefAdmin, ActionPromoteUser, true},
		{domain.RoleAdmin, ActionPromoteUser, false},
		{domain.RoleAgent, ActionPromoteUser, false},
		{domain.RoleCustomer, ActionPromoteUser, false},

		{domain.RoleChiefAdmin, ActionDeleteUser, true},
		{domain.RoleAdmin, ActionToggleUserStatus, false},

		{domain.RoleAgent, ActionCreateProduct, true},
		{domain.RoleAgent, ActionUpdateOrder, true},
		{domain.RoleAgent, ActionViewDashboard, true},
		{domain.RoleCustomer, ActionCreateProduct, false},

		{domain.RoleAdmin, ActionViewAuditLogs, true},
		{domain.RoleAgent, ActionViewAuditLogs, false},
		{domain.RoleAdmin, ActionViewSalesLogs, true},
		{domain.RoleAgent, ActionViewSalesLogs, false},
		{domain.RoleChiefAdmin, ActionViewSalesLogs, true},
	}
	for _, tc := range cases {
		if got := Can(accountWithRole(tc.role), tc.action); got != tc.want {
			t.Fatalf("Can(%s, %s) = %v, want %v", tc.role, tc.action, got, tc.want)
		}
	}
}

func TestCanNilAccountAndUnknownAction(t *testing.T) {
	if Can(nil, ActionViewDashboard) {
		t.Fatal("nil account must be denied")
	}
	if Can(accountWithRole(domain.RoleChiefAdmin), Action("unknown_action")) {
		t.Fatal("unknown actions must be denied even for chief_admin")
	}
}

func TestCanAccessRouteChiefAdminEverywhere(t *testing.T) {
	chief := accountWithRole(domain.RoleChiefAdmin)
	for _, path := range []string{"/admin/users", "/admin/audit-log", "/admin/sales-log", "/admin/dashboard", "/admin/some-future-page"} {
		check := CanAccessRoute(chief, path)
		if !check.Allowed {
			t.Fatalf("chief_admin denied on %s", path)
		}
	}
}

func TestCanAccessRouteAgentDeniedChiefOnly(t *testing.T) {
	agent := accountWithRole(domain.RoleAgent)
	check := CanAccessRoute(agent, "/admin/users")
	if check.Allowed {
		t.Fatal("agent must not access /admin/users")
	}
	if len(check.RequiredRoles) != 1 || check.RequiredRoles[0] != domain.RoleChiefAdmin {
		t.Fatalf("expected chief_admin requirement, got %v", check.RequiredRoles)
	}
	if check.Redirect != RedirectAdminHome {
		t.Fatalf("expected redirect to %s, got %s", RedirectAdminHome, check.Redirect)
	}
}

func TestCanAccessRouteAgentDeniedReporting(t *testing.T) {
	agent := accountWithRole(domain.RoleAgent)
	for _, path := range []string{"/admin/audit-log", "/admin/sales-log"} {
		check := CanAccessRoute(agent, path)
		if check.Allowed {
			t.Fatalf("agent must not access %s", path)
		}
		if check.Redirect != RedirectAdminHome {
			t.Fatalf("expected redirect to %s, got %s", RedirectAdminHome, check.Redirect)
		}
	}
}

func TestCanAccessRouteAdminAllowedReporting(t *testing.T) {
	admin := accountWithRole(domain.RoleAdmin)
	for _, path := range []string{"/admin/audit-log", "/admin/sales-log", "/admin/dashboard", "/admin/products"} {
		if check := CanAccessRoute(admin, path); !check.Allowed {
			t.Fatalf("admin denied on %s", path)
		}
	}
	if check := CanAccessRoute(admin, "/admin/users"); check.Allowed {
		t.Fatal("admin must not access /admin/users")
	}
}

func TestCanAccessRouteChiefOnlyWinsOverAgentExclusion(t *testing.T) {
	// A path matching both rule sets must report the stricter requirement.
	agent := accountWithRole(domain.RoleAgent)
	check := CanAccessRoute(agent, "/admin/users/audit-log")
	if check.Allowed {
		t.Fatal("expected denial")
	}
	if len(check.RequiredRoles) != 1 || check.RequiredRoles[0] != domain.RoleChiefAdmin {
		t.Fatalf("expected chief_admin requirement, got %v", check.RequiredRoles)
	}
}

func TestCanAccessRouteCustomerAndNil(t *testing.T) {
	customer := accountWithRole(domain.RoleCustomer)
	check := CanAccessRoute(customer, "/admin/dashboard")
	if check.Allowed {
		t.Fatal("customer must not access admin routes")
	}
	if check.Redirect != RedirectHome {
		t.Fatalf("expected redirect to %s, got %s", RedirectHome, check.Redirect)
	}

	check = CanAccessRoute(customer, "/admin/users")
	if check.Allowed {
		t.Fatal("customer must not access chief-only routes")
	}
	if check.Redirect != RedirectHome {
		t.Fatalf("expected redirect to %s, got %s", RedirectHome, check.Redirect)
	}

	check = CanAccessRoute(nil, "/admin/dashboard")
	if check.Allowed {
		t.Fatal("anonymous caller must be denied")
	}
	if check.Redirect != RedirectAdminLogin {
		t.Fatalf("expected redirect to %s, got %s", RedirectAdminLogin, check.Redirect)
	}
}
