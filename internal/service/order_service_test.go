package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/glowmart/storefront-service/internal/domain"
	"github.com/glowmart/storefront-service/pkg/util"
)

func newTestOrderService(orders *fakeOrderRepo, audits *fakeAuditRepo) *OrderService {
	logger := zap.NewNop()
	return NewOrderService(orders, NewAuditService(audits, logger), logger)
}

func agentAccount() *domain.Account {
	return &domain.Account{ID: "agent", Role: domain.RoleAgent, IsActive: true}
}

func adminAccount() *domain.Account {
	return &domain.Account{ID: "admin", Role: domain.RoleAdmin, IsActive: true}
}

func TestUpdateStatusValidTransition(t *testing.T) {
	orders := newFakeOrderRepo()
	orders.add(&domain.Order{ID: "o1", AccountID: "u1", Status: domain.OrderStatusPending, TotalCents: 2500})
	audits := &fakeAuditRepo{}
	svc := newTestOrderService(orders, audits)

	order, err := svc.UpdateStatus(context.Background(), agentAccount(), "o1", domain.OrderStatusPaid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != domain.OrderStatusPaid {
		t.Fatalf("expected paid, got %s", order.Status)
	}
	if audits.lastAction() != domain.AuditActionUpdateOrderStatus {
		t.Fatalf("expected order audit entry, got %q", audits.lastAction())
	}
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	orders := newFakeOrderRepo()
	orders.add(&domain.Order{ID: "o1", AccountID: "u1", Status: domain.OrderStatusPending})
	audits := &fakeAuditRepo{}
	svc := newTestOrderService(orders, audits)

	_, err := svc.UpdateStatus(context.Background(), agentAccount(), "o1", domain.OrderStatusDelivered)
	if util.CodeOf(err) != util.CodeConflict {
		t.Fatalf("expected CONFLICT, got %s", util.CodeOf(err))
	}

	stored, _ := orders.GetByID(context.Background(), "o1")
	if stored.Status != domain.OrderStatusPending {
		t.Fatalf("rejected transition must not write, got %s", stored.Status)
	}
	if len(audits.entries) != 0 {
		t.Fatal("rejected transition must not be audited")
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	orders := newFakeOrderRepo()
	orders.add(&domain.Order{ID: "o1", Status: domain.OrderStatusPending})
	svc := newTestOrderService(orders, &fakeAuditRepo{})

	_, err := svc.UpdateStatus(context.Background(), agentAccount(), "o1", domain.OrderStatus("returned"))
	if util.CodeOf(err) != util.CodeValidationFailed {
		t.Fatalf("expected VALIDATION_FAILED, got %s", util.CodeOf(err))
	}
}

func TestUpdateStatusRequiresStaff(t *testing.T) {
	orders := newFakeOrderRepo()
	orders.add(&domain.Order{ID: "o1", AccountID: "u1", Status: domain.OrderStatusPending})
	svc := newTestOrderService(orders, &fakeAuditRepo{})

	customer := &domain.Account{ID: "u1", Role: domain.RoleCustomer, IsActive: true}
	_, err := svc.UpdateStatus(context.Background(), customer, "o1", domain.OrderStatusPaid)
	if util.CodeOf(err) != util.CodeAccessDenied {
		t.Fatalf("expected ACCESS_DENIED, got %s", util.CodeOf(err))
	}
}

func TestGetOrderOwnership(t *testing.T) {
	orders := newFakeOrderRepo()
	orders.add(&domain.Order{ID: "o1", AccountID: "u1", Status: domain.OrderStatusPaid})
	svc := newTestOrderService(orders, &fakeAuditRepo{})
	ctx := context.Background()

	owner := &domain.Account{ID: "u1", Role: domain.RoleCustomer, IsActive: true}
	if _, err := svc.Get(ctx, owner, "o1"); err != nil {
		t.Fatalf("owner must see own order: %v", err)
	}

	stranger := &domain.Account{ID: "u2", Role: domain.RoleCustomer, IsActive: true}
	if _, err := svc.Get(ctx, stranger, "o1"); util.CodeOf(err) != util.CodeNotFound {
		t.Fatalf("stranger must get NOT_FOUND, got %s", util.CodeOf(err))
	}

	if _, err := svc.Get(ctx, agentAccount(), "o1"); err != nil {
		t.Fatalf("staff must see any order: %v", err)
	}
}

func TestSalesReportRequiresAdmin(t *testing.T) {
	orders := newFakeOrderRepo()
	svc := newTestOrderService(orders, &fakeAuditRepo{})

	_, err := svc.SalesReport(context.Background(), agentAccount())
	if util.CodeOf(err) != util.CodeAccessDenied {
		t.Fatalf("agents must not read the sales report, got %s", util.CodeOf(err))
	}
}

func TestSalesReportTotals(t *testing.T) {
	orders := newFakeOrderRepo()
	orders.add(&domain.Order{ID: "o1", Status: domain.OrderStatusPending, TotalCents: 1000})
	orders.add(&domain.Order{ID: "o2", Status: domain.OrderStatusPaid, TotalCents: 2000})
	orders.add(&domain.Order{ID: "o3", Status: domain.OrderStatusDelivered, TotalCents: 3000})
	orders.add(&domain.Order{ID: "o4", Status: domain.OrderStatusCancelled, TotalCents: 4000})
	svc := newTestOrderService(orders, &fakeAuditRepo{})

	summary, err := svc.SalesReport(context.Background(), adminAccount())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.OrderCount != 4 {
		t.Fatalf("expected 4 orders, got %d", summary.OrderCount)
	}
	if summary.RevenueCents != 5000 {
		t.Fatalf("expected revenue 5000, got %d", summary.RevenueCents)
	}
	if summary.DeliveredOrders != 1 {
		t.Fatalf("expected 1 delivered, got %d", summary.DeliveredOrders)
	}
	if summary.ByStatus[domain.OrderStatusCancelled] != 1 {
		t.Fatalf("expected cancelled count 1, got %d", summary.ByStatus[domain.OrderStatusCancelled])
	}
}
