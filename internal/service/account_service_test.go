package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/glowmart/storefront-service/internal/domain"
	"github.com/glowmart/storefront-service/pkg/util"
)

func newTestAccountService(accounts *fakeAccountRepo, staff *fakeStaffRepo, provider *fakeProvider, audits *fakeAuditRepo) *AccountService {
	logger := zap.NewNop()
	return NewAccountService(accounts, staff, provider, NewAuditService(audits, logger), logger)
}

func chiefAdmin() *domain.Account {
	return &domain.Account{ID: "chief", Email: "chief@glow.test", Role: domain.RoleChiefAdmin, IsActive: true}
}

func TestPromoteRequiresChiefAdmin(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(&domain.Account{ID: "u1", Role: domain.RoleCustomer, IsActive: true})
	svc := newTestAccountService(accounts, newFakeStaffRepo(), newFakeProvider(), &fakeAuditRepo{})

	for _, actor := range []*domain.Account{
		nil,
		{ID: "x", Role: domain.RoleCustomer, IsActive: true},
		{ID: "x", Role: domain.RoleAgent, IsActive: true},
		{ID: "x", Role: domain.RoleAdmin, IsActive: true},
	} {
		_, err := svc.Promote(context.Background(), actor, "u1", domain.RoleAgent, "support", "rep")
		if util.CodeOf(err) != util.CodeAccessDenied {
			t.Fatalf("actor %+v: expected ACCESS_DENIED, got %s", actor, util.CodeOf(err))
		}
	}
}

func TestPromoteDemoteRoundTrip(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(&domain.Account{ID: "u1", Role: domain.RoleCustomer, IsActive: true})
	staff := newFakeStaffRepo()
	audits := &fakeAuditRepo{}
	svc := newTestAccountService(accounts, staff, newFakeProvider(), audits)
	ctx := context.Background()

	promoted, err := svc.Promote(ctx, chiefAdmin(), "u1", domain.RoleAgent, "support", "rep")
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if promoted.Role != domain.RoleAgent {
		t.Fatalf("expected agent, got %s", promoted.Role)
	}
	if _, ok := staff.staff["u1"]; !ok {
		t.Fatal("expected staff record after promotion")
	}
	if audits.lastAction() != domain.AuditActionPromoteUser {
		t.Fatalf("expected promote audit entry, got %q", audits.lastAction())
	}

	demoted, err := svc.Demote(ctx, chiefAdmin(), "u1")
	if err != nil {
		t.Fatalf("demote: %v", err)
	}
	if demoted.Role != domain.RoleCustomer {
		t.Fatalf("expected customer, got %s", demoted.Role)
	}
	if _, ok := staff.staff["u1"]; ok {
		t.Fatal("staff record must be removed on demotion")
	}
	if audits.lastAction() != domain.AuditActionDemoteUser {
		t.Fatalf("expected demote audit entry, got %q", audits.lastAction())
	}
}

func TestPromoteTwiceIsIdempotent(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(&domain.Account{ID: "u1", Role: domain.RoleCustomer, IsActive: true})
	staff := newFakeStaffRepo()
	svc := newTestAccountService(accounts, staff, newFakeProvider(), &fakeAuditRepo{})
	ctx := context.Background()

	if _, err := svc.Promote(ctx, chiefAdmin(), "u1", domain.RoleAgent, "support", "rep"); err != nil {
		t.Fatalf("first promote: %v", err)
	}
	if _, err := svc.Promote(ctx, chiefAdmin(), "u1", domain.RoleAdmin, "support", "lead"); err != nil {
		t.Fatalf("second promote must tolerate the existing staff record: %v", err)
	}

	account, _ := accounts.GetByID(ctx, "u1")
	if account.Role != domain.RoleAdmin {
		t.Fatalf("expected admin after second promote, got %s", account.Role)
	}
}

func TestPromoteRejectsCustomerRole(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(&domain.Account{ID: "u1", Role: domain.RoleCustomer, IsActive: true})
	svc := newTestAccountService(accounts, newFakeStaffRepo(), newFakeProvider(), &fakeAuditRepo{})

	_, err := svc.Promote(context.Background(), chiefAdmin(), "u1", domain.RoleCustomer, "", "")
	if util.CodeOf(err) != util.CodeValidationFailed {
		t.Fatalf("expected VALIDATION_FAILED, got %s", util.CodeOf(err))
	}
	_, err = svc.Promote(context.Background(), chiefAdmin(), "u1", domain.Role("root"), "", "")
	if util.CodeOf(err) != util.CodeValidationFailed {
		t.Fatalf("expected VALIDATION_FAILED for unknown role, got %s", util.CodeOf(err))
	}
}

func TestDemoteMissingStaffRecordIsTolerated(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(&domain.Account{ID: "u1", Role: domain.RoleAgent, IsActive: true})
	svc := newTestAccountService(accounts, newFakeStaffRepo(), newFakeProvider(), &fakeAuditRepo{})

	if _, err := svc.Demote(context.Background(), chiefAdmin(), "u1"); err != nil {
		t.Fatalf("demote without staff record: %v", err)
	}
}

func TestToggleStatusRevokesSessionsOnDeactivate(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(&domain.Account{ID: "u1", Role: domain.RoleCustomer, IsActive: true})
	provider := newFakeProvider()
	audits := &fakeAuditRepo{}
	svc := newTestAccountService(accounts, newFakeStaffRepo(), provider, audits)
	ctx := context.Background()

	account, err := svc.ToggleStatus(ctx, chiefAdmin(), "u1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if account.IsActive {
		t.Fatal("expected deactivation")
	}
	if len(provider.revokedUsers) != 1 || provider.revokedUsers[0] != "u1" {
		t.Fatalf("expected session revocation for u1, got %v", provider.revokedUsers)
	}
	if audits.lastAction() != domain.AuditActionToggleUserStatus {
		t.Fatalf("expected toggle audit entry, got %q", audits.lastAction())
	}

	account, err = svc.ToggleStatus(ctx, chiefAdmin(), "u1")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if !account.IsActive {
		t.Fatal("expected reactivation")
	}
	if len(provider.revokedUsers) != 1 {
		t.Fatal("reactivation must not revoke sessions")
	}
}

func TestDeleteAccountCleansUp(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(&domain.Account{ID: "u1", Role: domain.RoleAgent, IsActive: true})
	staff := newFakeStaffRepo()
	staff.staff["u1"] = &domain.StaffProfile{ID: "s1", AccountID: "u1"}
	provider := newFakeProvider()
	audits := &fakeAuditRepo{}
	svc := newTestAccountService(accounts, staff, provider, audits)

	if err := svc.Delete(context.Background(), chiefAdmin(), "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := accounts.GetByID(context.Background(), "u1"); err == nil {
		t.Fatal("account record must be gone")
	}
	if _, ok := staff.staff["u1"]; ok {
		t.Fatal("staff record must be gone")
	}
	if len(provider.deletedUsers) != 1 {
		t.Fatal("credentials must be deleted")
	}
	if audits.lastAction() != domain.AuditActionDeleteUser {
		t.Fatalf("expected delete audit entry, got %q", audits.lastAction())
	}
}

func TestDeleteUnknownAccount(t *testing.T) {
	svc := newTestAccountService(newFakeAccountRepo(), newFakeStaffRepo(), newFakeProvider(), &fakeAuditRepo{})

	err := svc.Delete(context.Background(), chiefAdmin(), "ghost")
	if util.CodeOf(err) != util.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %s", util.CodeOf(err))
	}
}

func TestUpdateProfileKeepsUnsetFields(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(&domain.Account{ID: "u1", FullName: "Jane Doe", Phone: "555-0101", Role: domain.RoleCustomer, IsActive: true})
	audits := &fakeAuditRepo{}
	svc := newTestAccountService(accounts, newFakeStaffRepo(), newFakeProvider(), audits)

	self, _ := accounts.GetByID(context.Background(), "u1")
	updated, err := svc.UpdateProfile(context.Background(), self, "", "555-0202")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FullName != "Jane Doe" {
		t.Fatalf("name must be kept, got %q", updated.FullName)
	}
	if updated.Phone != "555-0202" {
		t.Fatalf("phone must be updated, got %q", updated.Phone)
	}
	if len(audits.entries) != 0 {
		t.Fatal("profile self-service must not be audited")
	}
}
