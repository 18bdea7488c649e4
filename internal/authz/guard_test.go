package authz

import (
	"errors"
	"testing"

	"github.com/glowmart/storefront-service/internal/domain"
	"github.com/glowmart/storefront-service/pkg/util"
)

func TestVerifyAdminAccessAdmits(t *testing.T) {
	guard := NewGuard()
	account := &domain.Account{ID: "a1", Role: domain.RoleAdmin, IsActive: true}

	result, err := guard.VerifyAdminAccess(account, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsAdmin || result.IsChiefAdmin {
		t.Fatalf("unexpected flags: %+v", result)
	}

	chief := &domain.Account{ID: "a2", Role: domain.RoleChiefAdmin, IsActive: true}
	result, err = guard.VerifyAdminAccess(chief, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsChiefAdmin {
		t.Fatal("expected chief admin flag")
	}

	agent := &domain.Account{ID: "a3", Role: domain.RoleAgent, IsActive: true}
	result, err = guard.VerifyAdminAccess(agent, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsAdmin {
		t.Fatal("agent must not carry the admin flag")
	}
}

func TestVerifyAdminAccessRejections(t *testing.T) {
	guard := NewGuard()

	_, err := guard.VerifyAdminAccess(nil, nil)
	if util.CodeOf(err) != util.CodeSessionInvalid {
		t.Fatalf("expected SESSION_INVALID, got %s", util.CodeOf(err))
	}

	customer := &domain.Account{ID: "c1", Role: domain.RoleCustomer, IsActive: true}
	_, err = guard.VerifyAdminAccess(customer, nil)
	if util.CodeOf(err) != util.CodeUnauthorizedRole {
		t.Fatalf("expected UNAUTHORIZED_ROLE, got %s", util.CodeOf(err))
	}

	inactive := &domain.Account{ID: "c2", Role: domain.RoleAdmin, IsActive: false}
	_, err = guard.VerifyAdminAccess(inactive, nil)
	if util.CodeOf(err) != util.CodeAccountInactive {
		t.Fatalf("expected ACCOUNT_INACTIVE, got %s", util.CodeOf(err))
	}
}

func TestVerifyAdminAccessNeverFailsOpen(t *testing.T) {
	guard := NewGuard()

	_, err := guard.VerifyAdminAccess(nil, errors.New("redis connection refused"))
	if err == nil {
		t.Fatal("admin access must fail closed on resolution errors")
	}
	var domainErr *util.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %T", err)
	}
	if domainErr.Redirect != RedirectAdminLogin {
		t.Fatalf("expected admin login redirect, got %s", domainErr.Redirect)
	}
}

func TestVerifyCustomerAccessFailsOpenOnBackendErrors(t *testing.T) {
	guard := NewGuard()

	result, err := guard.VerifyCustomerAccess(nil, errors.New("redis connection refused"))
	if err != nil {
		t.Fatalf("expected guest admission, got %v", err)
	}
	if result.Account != nil {
		t.Fatal("guest admission must not carry an account")
	}
}

func TestVerifyCustomerAccessCleanAuthFailuresRedirect(t *testing.T) {
	guard := NewGuard()

	for _, resolveErr := range []error{
		util.NewSessionInvalid(""),
		util.NewSessionExpired(),
		util.NewProfileNotFound(""),
	} {
		_, err := guard.VerifyCustomerAccess(nil, resolveErr)
		if err == nil {
			t.Fatalf("clean auth failure %v must not fail open", resolveErr)
		}
		var domainErr *util.DomainError
		if !errors.As(err, &domainErr) {
			t.Fatalf("expected domain error, got %T", err)
		}
		if domainErr.Redirect != RedirectShopLogin {
			t.Fatalf("expected shop login redirect, got %s", domainErr.Redirect)
		}
	}
}

func TestVerifyCustomerAccessStrictMode(t *testing.T) {
	guard := &Guard{ShopFailOpen: false}

	_, err := guard.VerifyCustomerAccess(nil, errors.New("redis connection refused"))
	if err == nil {
		t.Fatal("strict mode must not admit guests on backend errors")
	}
}

func TestVerifyCustomerAccessInactive(t *testing.T) {
	guard := NewGuard()
	inactive := &domain.Account{ID: "c1", Role: domain.RoleCustomer, IsActive: false}

	_, err := guard.VerifyCustomerAccess(inactive, nil)
	if util.CodeOf(err) != util.CodeAccountInactive {
		t.Fatalf("expected ACCOUNT_INACTIVE, got %s", util.CodeOf(err))
	}
}
