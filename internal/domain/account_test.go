package domain

import "testing"

func TestRoleRankOrdering(t *testing.T) {
	ordered := []Role{RoleCustomer, RoleAgent, RoleAdmin, RoleChiefAdmin}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Rank() <= ordered[i-1].Rank() {
			t.Fatalf("expected %s to outrank %s", ordered[i], ordered[i-1])
		}
	}
}

func TestRoleAtLeast(t *testing.T) {
	cases := []struct {
		role     Role
		required Role
		want     bool
	}{
		{RoleCustomer, RoleCustomer, true},
		{RoleCustomer, RoleAgent, false},
		{RoleAgent, RoleCustomer, true},
		{RoleAgent, RoleAgent, true},
		{RoleAgent, RoleAdmin, false},
		{RoleAdmin, RoleAgent, true},
		{RoleAdmin, RoleChiefAdmin, false},
		{RoleChiefAdmin, RoleCustomer, true},
		{RoleChiefAdmin, RoleChiefAdmin, true},
		{Role("superuser"), RoleCustomer, false},
		{Role(""), RoleCustomer, false},
	}
	for _, tc := range cases {
		if got := tc.role.AtLeast(tc.required); got != tc.want {
			t.Fatalf("AtLeast(%q, %q) = %v, want %v", tc.role, tc.required, got, tc.want)
		}
	}
}

func TestRoleIsAdminTier(t *testing.T) {
	if RoleCustomer.IsAdminTier() {
		t.Fatal("customer must not be admin tier")
	}
	for _, role := range []Role{RoleAgent, RoleAdmin, RoleChiefAdmin} {
		if !role.IsAdminTier() {
			t.Fatalf("%s should be admin tier", role)
		}
	}
	if Role("unknown").IsAdminTier() {
		t.Fatal("unknown role must not be admin tier")
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleCustomer, RoleAgent, RoleAdmin, RoleChiefAdmin} {
		if !role.Valid() {
			t.Fatalf("%s should be valid", role)
		}
	}
	if Role("root").Valid() {
		t.Fatal("unexpected role accepted")
	}
}
